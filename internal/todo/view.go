package todo

// Control is one interactive element of a rendered row.
type Control int

const (
	ControlCheckbox Control = iota
	ControlText
	ControlReminder
	ControlDelete
)

// Op is the store operation a control is wired to.
type Op int

const (
	OpToggleCompleted Op = iota
	OpToggleReminder
	OpDelete
)

// Op returns the store operation bound to c. The checkbox and the text
// both toggle completion.
func (c Control) Op() Op {
	switch c {
	case ControlReminder:
		return OpToggleReminder
	case ControlDelete:
		return OpDelete
	default:
		return OpToggleCompleted
	}
}

var rowControls = []Control{ControlCheckbox, ControlText, ControlReminder, ControlDelete}

const (
	PlaceholderTitle    = "No tasks yet"
	PlaceholderSubtitle = "Add your first task to get started!"

	createdLayout = "2006-01-02"
)

type Row struct {
	ID            int64
	Text          string
	Completed     bool
	Created       string
	HasReminder   bool
	Reminder      string
	ReminderTitle string
	Controls      []Control
}

type View struct {
	Empty       bool
	Placeholder [2]string
	Rows        []Row
	Stats       Stats
}

// Project maps the list onto a view tree. It reads nothing but its
// argument, so any front end can call it after each mutation.
func Project(tasks []Task) View {
	v := View{Stats: statsOf(tasks)}
	if len(tasks) == 0 {
		v.Empty = true
		v.Placeholder = [2]string{PlaceholderTitle, PlaceholderSubtitle}
		return v
	}

	v.Rows = make([]Row, 0, len(tasks))
	for _, t := range tasks {
		r := Row{
			ID:            t.ID,
			Text:          t.Text,
			Completed:     t.Completed,
			Created:       t.CreatedAt.Local().Format(createdLayout),
			ReminderTitle: "Set reminder",
			Controls:      append([]Control(nil), rowControls...),
		}
		if t.Reminder != nil {
			r.HasReminder = true
			r.Reminder = FormatReminder(*t.Reminder)
			r.ReminderTitle = "Remove reminder"
		}
		v.Rows = append(v.Rows, r)
	}
	return v
}
