package suggest

// Set holds the latest suggestions and which of them are selected.
// Suggestions are not persisted.
type Set struct {
	items    []string
	selected map[int]bool
}

func NewSet() *Set {
	return &Set{selected: map[int]bool{}}
}

// Replace swaps in a new batch and clears the selection.
func (s *Set) Replace(items []string) {
	s.items = append([]string(nil), items...)
	s.selected = map[int]bool{}
}

func (s *Set) Items() []string {
	return append([]string(nil), s.items...)
}

func (s *Set) Len() int { return len(s.items) }

// Toggle flips the selection of item i. Out of range indexes are ignored.
func (s *Set) Toggle(i int) {
	if i < 0 || i >= len(s.items) {
		return
	}
	if s.selected[i] {
		delete(s.selected, i)
		return
	}
	s.selected[i] = true
}

func (s *Set) IsSelected(i int) bool {
	return s.selected[i]
}

// Selected returns the chosen items in display order.
func (s *Set) Selected() []string {
	out := []string{}
	for i, item := range s.items {
		if s.selected[i] {
			out = append(out, item)
		}
	}
	return out
}

func (s *Set) Clear() {
	s.items = nil
	s.selected = map[int]bool{}
}
