package todo

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Persister stores the whole list as one unit.
type Persister interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
}

// Store owns the ordered task list. Every mutation writes the full list
// through the Persister before it becomes visible; a failed write leaves
// the list as it was.
type Store struct {
	mu    sync.Mutex
	tasks []Task
	p     Persister
	now   func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open loads the persisted list once.
func Open(p Persister, opts ...Option) (*Store, error) {
	s := &Store{p: p, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	tasks, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = cloneTasks(tasks)
	return s, nil
}

func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statsOf(s.tasks)
}

// Add appends a new pending task. Blank text returns ErrEmptyText and
// leaves the list untouched.
func (s *Store) Add(text string, reminder *time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneTasks(s.tasks)
	t := s.newTaskLocked(next, text, reminder)
	if err := s.commitLocked(append(next, t)); err != nil {
		return Task{}, err
	}
	return t.clone(), nil
}

// AddBatch adds every non-blank text in order with a single write.
func (s *Store) AddBatch(texts []string) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneTasks(s.tasks)
	var added []Task
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		t := s.newTaskLocked(next, text, nil)
		next = append(next, t)
		added = append(added, t.clone())
	}
	if len(added) == 0 {
		return nil, nil
	}
	if err := s.commitLocked(next); err != nil {
		return nil, err
	}
	return added, nil
}

// ToggleCompleted flips the completion flag. Unknown ids are a no-op.
func (s *Store) ToggleCompleted(id int64) (Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneTasks(s.tasks)
	i := indexOf(next, id)
	if i < 0 {
		return Task{}, false, nil
	}
	next[i].Completed = !next[i].Completed
	if err := s.commitLocked(next); err != nil {
		return Task{}, true, err
	}
	return next[i].clone(), true, nil
}

// Delete removes the task with id. Deleting an unknown id still succeeds.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t.clone())
		}
	}
	return s.commitLocked(next)
}

// ToggleReminder clears a set reminder, or sets it to pending. An unset
// reminder with no pending time returns ErrNoReminderTime.
func (s *Store) ToggleReminder(id int64, pending *time.Time) (ReminderChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneTasks(s.tasks)
	i := indexOf(next, id)
	if i < 0 {
		return ReminderUnchanged, nil
	}

	change := ReminderRemoved
	if next[i].Reminder != nil {
		next[i].Reminder = nil
	} else {
		if pending == nil {
			return ReminderUnchanged, ErrNoReminderTime
		}
		r := pending.Round(0)
		next[i].Reminder = &r
		change = ReminderSet
	}
	if err := s.commitLocked(next); err != nil {
		return ReminderUnchanged, err
	}
	return change, nil
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			next = append(next, t.clone())
		}
	}
	removed := len(s.tasks) - len(next)
	if removed == 0 {
		return 0, ErrNothingCompleted
	}
	if err := s.commitLocked(next); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) commitLocked(next []Task) error {
	if err := s.p.Save(next); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	s.tasks = next
	return nil
}

func (s *Store) newTaskLocked(existing []Task, text string, reminder *time.Time) Task {
	now := s.now()
	t := Task{
		ID:        nextID(existing, now),
		Text:      text,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}
	if reminder != nil {
		r := reminder.Round(0)
		t.Reminder = &r
	}
	return t
}

func nextID(existing []Task, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range existing {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func indexOf(tasks []Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
