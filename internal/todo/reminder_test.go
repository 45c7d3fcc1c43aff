package todo

import (
	"testing"
	"time"
)

func TestIsDue(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"exactly now", Task{Reminder: at(0)}, true},
		{"thirty seconds ago", Task{Reminder: at(-30 * time.Second)}, true},
		{"just inside window", Task{Reminder: at(-DueWindow + time.Millisecond)}, true},
		{"window edge", Task{Reminder: at(-DueWindow)}, false},
		{"two minutes ago", Task{Reminder: at(-2 * time.Minute)}, false},
		{"in the future", Task{Reminder: at(time.Second)}, false},
		{"no reminder", Task{}, false},
		{"completed", Task{Completed: true, Reminder: at(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(tt.task, now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueReminders(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	justNow := now
	stale := now.Add(-2 * time.Minute)
	tasks := []Task{
		{ID: 1, Text: "due", Reminder: &justNow},
		{ID: 2, Text: "stale", Reminder: &stale},
		{ID: 3, Text: "none"},
	}

	due := DueReminders(tasks, now)
	if len(due) != 1 || due[0].ID != 1 {
		t.Fatalf("DueReminders = %+v, want only task 1", due)
	}
}

func TestParseReminder(t *testing.T) {
	got, err := ParseReminder(" 2026-10-17 18:45 ", time.UTC)
	if err != nil {
		t.Fatalf("ParseReminder: %v", err)
	}
	want := time.Date(2026, 10, 17, 18, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseReminder("tomorrow", time.UTC); err == nil {
		t.Error("expected error for free text")
	}
}

func TestDefaultReminder(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 12, 44, 0, time.UTC)
	want := time.Date(2026, 10, 17, 10, 12, 0, 0, time.UTC)
	if got := DefaultReminder(now); !got.Equal(want) {
		t.Errorf("DefaultReminder = %v, want %v", got, want)
	}
}
