// Package todo holds the task list state container, its reminder scan and
// the pure projection used by any view layer.
package todo

import (
	"errors"
	"time"
)

var (
	ErrEmptyText        = errors.New("task text is empty")
	ErrNoReminderTime   = errors.New("reminder time is not set")
	ErrNothingCompleted = errors.New("no completed tasks to clear")
)

// Task is one entry of the list. ID is the creation time in Unix
// milliseconds, bumped when needed to stay unique.
type Task struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
	Reminder  *time.Time `json:"reminder"`
}

func (t Task) clone() Task {
	if t.Reminder != nil {
		r := *t.Reminder
		t.Reminder = &r
	}
	return t
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.clone()
	}
	return out
}

// ReminderChange reports what ToggleReminder did.
type ReminderChange int

const (
	ReminderUnchanged ReminderChange = iota
	ReminderSet
	ReminderRemoved
)

// Stats summarizes the list for the header counters.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

func statsOf(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
