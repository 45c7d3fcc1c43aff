package todo

import (
	"strings"
	"time"
)

const (
	// ReminderPeriod is how often the view scans for due reminders.
	ReminderPeriod = 60 * time.Second
	// DueWindow is how long after its time a reminder still counts as due.
	DueWindow = 60 * time.Second

	ReminderLayout = "2006-01-02 15:04"
)

// IsDue reports whether t's reminder fell within the last DueWindow.
// A window missed while nothing was scanning never fires.
func IsDue(t Task, now time.Time) bool {
	if t.Completed || t.Reminder == nil {
		return false
	}
	d := now.Sub(*t.Reminder)
	return d >= 0 && d < DueWindow
}

func DueReminders(tasks []Task, now time.Time) []Task {
	var due []Task
	for _, t := range tasks {
		if IsDue(t, now) {
			due = append(due, t.clone())
		}
	}
	return due
}

// DefaultReminder is the time offered when the reminder input is armed.
func DefaultReminder(now time.Time) time.Time {
	return now.Add(time.Hour).Truncate(time.Minute)
}

func ParseReminder(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(ReminderLayout, strings.TrimSpace(s), loc)
}

func FormatReminder(t time.Time) string {
	return t.Local().Format(ReminderLayout)
}
