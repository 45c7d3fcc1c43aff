package todo

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

type failingPersister struct {
	tasks []Task
	err   error
}

func (f *failingPersister) Load() ([]Task, error)  { return f.tasks, nil }
func (f *failingPersister) Save(tasks []Task) error { return f.err }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func openTestStore(t *testing.T, kv *memKV, now time.Time) *Store {
	t.Helper()
	s, err := Open(NewBlobPersister(kv), WithClock(fixedClock(now)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func mustAdd(t *testing.T, s *Store, text string) Task {
	t.Helper()
	task, err := s.Add(text, nil)
	if err != nil {
		t.Fatalf("Add(%q): %v", text, err)
	}
	return task
}

func TestAddRejectsBlankText(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	mustAdd(t, s, "existing")

	for _, text := range []string{"", "   ", "\t\n "} {
		_, err := s.Add(text, nil)
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("Add(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
	if got := len(s.Tasks()); got != 1 {
		t.Fatalf("expected list unchanged with 1 task, got %d", got)
	}
}

func TestAddCreatesPendingTasksWithUniqueIDs(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	s := openTestStore(t, newMemKV(), now)

	seen := map[int64]bool{}
	var last int64
	for _, text := range []string{"one", "two", "  three  "} {
		task := mustAdd(t, s, text)
		if task.Completed {
			t.Errorf("task %q created completed", task.Text)
		}
		if seen[task.ID] {
			t.Errorf("duplicate id %d", task.ID)
		}
		if task.ID <= last {
			t.Errorf("id %d not greater than previous %d", task.ID, last)
		}
		seen[task.ID] = true
		last = task.ID
	}

	tasks := s.Tasks()
	if tasks[2].Text != "three" {
		t.Errorf("expected trimmed text, got %q", tasks[2].Text)
	}
	if tasks[0].ID != now.UnixMilli() {
		t.Errorf("first id = %d, want creation millis %d", tasks[0].ID, now.UnixMilli())
	}
}

func TestAddKeepsReminder(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	at := time.Date(2026, 10, 17, 18, 30, 0, 0, time.UTC)

	task, err := s.Add("call mom", &at)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if task.Reminder == nil || !task.Reminder.Equal(at) {
		t.Fatalf("reminder = %v, want %v", task.Reminder, at)
	}

	at = at.Add(time.Hour)
	if got := s.Tasks()[0].Reminder; !got.Equal(at.Add(-time.Hour)) {
		t.Errorf("stored reminder aliased caller value: %v", got)
	}
}

func TestAddBatch(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())

	added, err := s.AddBatch([]string{"buy cake", " ", "send invites"})
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 added, got %d", len(added))
	}
	if added[0].ID == added[1].ID {
		t.Error("batch tasks share an id")
	}
	tasks := s.Tasks()
	if tasks[0].Text != "buy cake" || tasks[1].Text != "send invites" {
		t.Errorf("unexpected order: %+v", tasks)
	}
}

func TestToggleCompletedTwiceRestoresValue(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	task := mustAdd(t, s, "water plants")

	first, found, err := s.ToggleCompleted(task.ID)
	if err != nil || !found {
		t.Fatalf("first toggle: found=%v err=%v", found, err)
	}
	if !first.Completed {
		t.Error("expected completed after first toggle")
	}
	second, _, err := s.ToggleCompleted(task.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Completed != task.Completed {
		t.Errorf("completed = %v after two toggles, want %v", second.Completed, task.Completed)
	}
}

func TestToggleCompletedUnknownIDIsNoop(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	mustAdd(t, s, "keep")

	_, found, err := s.ToggleCompleted(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for unknown id")
	}
	if s.Tasks()[0].Completed {
		t.Error("existing task changed")
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")

	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != b.ID {
		t.Fatalf("unexpected tasks after delete: %+v", tasks)
	}

	if err := s.Delete(a.ID); err != nil {
		t.Errorf("deleting a missing id should succeed, got %v", err)
	}
}

func TestToggleReminder(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	task := mustAdd(t, s, "dentist")
	at := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	t.Run("unset without pending time", func(t *testing.T) {
		change, err := s.ToggleReminder(task.ID, nil)
		if !errors.Is(err, ErrNoReminderTime) {
			t.Fatalf("err = %v, want ErrNoReminderTime", err)
		}
		if change != ReminderUnchanged {
			t.Errorf("change = %v, want ReminderUnchanged", change)
		}
		if s.Tasks()[0].Reminder != nil {
			t.Error("reminder set despite error")
		}
	})

	t.Run("sets pending time", func(t *testing.T) {
		change, err := s.ToggleReminder(task.ID, &at)
		if err != nil {
			t.Fatalf("ToggleReminder: %v", err)
		}
		if change != ReminderSet {
			t.Errorf("change = %v, want ReminderSet", change)
		}
		if r := s.Tasks()[0].Reminder; r == nil || !r.Equal(at) {
			t.Errorf("reminder = %v, want %v", r, at)
		}
	})

	t.Run("clears a set reminder", func(t *testing.T) {
		change, err := s.ToggleReminder(task.ID, &at)
		if err != nil {
			t.Fatalf("ToggleReminder: %v", err)
		}
		if change != ReminderRemoved {
			t.Errorf("change = %v, want ReminderRemoved", change)
		}
		if s.Tasks()[0].Reminder != nil {
			t.Error("reminder still set")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		change, err := s.ToggleReminder(999, nil)
		if err != nil || change != ReminderUnchanged {
			t.Errorf("got change=%v err=%v", change, err)
		}
	})
}

func TestClearCompleted(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	keep1 := mustAdd(t, s, "keep 1")
	done1 := mustAdd(t, s, "done 1")
	keep2 := mustAdd(t, s, "keep 2")
	done2 := mustAdd(t, s, "done 2")
	for _, id := range []int64{done1.ID, done2.ID} {
		if _, _, err := s.ToggleCompleted(id); err != nil {
			t.Fatalf("ToggleCompleted: %v", err)
		}
	}

	n, err := s.ClearCompleted()
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if n != 2 {
		t.Errorf("removed %d, want 2", n)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != keep1.ID || tasks[1].ID != keep2.ID {
		t.Fatalf("unexpected remaining tasks: %+v", tasks)
	}

	if _, err := s.ClearCompleted(); !errors.Is(err, ErrNothingCompleted) {
		t.Errorf("second clear err = %v, want ErrNothingCompleted", err)
	}
	if len(s.Tasks()) != 2 {
		t.Error("second clear changed the list")
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	a := mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	mustAdd(t, s, "c")
	if _, _, err := s.ToggleCompleted(a.ID); err != nil {
		t.Fatal(err)
	}

	got := s.Stats()
	want := Stats{Total: 3, Completed: 1, Pending: 2}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestPersistReloadRoundTrip(t *testing.T) {
	kv := newMemKV()
	now := time.Date(2026, 10, 17, 9, 15, 30, 123456789, time.UTC)
	s := openTestStore(t, kv, now)

	at := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)
	mustAdd(t, s, "first")
	second, err := s.Add("second", &at)
	if err != nil {
		t.Fatal(err)
	}
	mustAdd(t, s, "third")
	if _, _, err := s.ToggleCompleted(second.ID); err != nil {
		t.Fatal(err)
	}

	reloaded := openTestStore(t, kv, now)
	assertSameTasks(t, s.Tasks(), reloaded.Tasks())
}

func TestSaveFailureLeavesListUnchanged(t *testing.T) {
	boom := errors.New("disk full")
	p := &failingPersister{err: boom}
	s, err := Open(p)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Add("lost", nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if len(s.Tasks()) != 0 {
		t.Error("list changed after failed save")
	}
}

func TestOpenRejectsInvalidBlob(t *testing.T) {
	kv := newMemKV()
	kv.data[TasksKey] = []byte(`[{"id": "nope", "text": "", "completed": false}]`)

	if _, err := Open(NewBlobPersister(kv)); err == nil {
		t.Fatal("expected error for invalid stored list")
	}
}

func TestOpenMissingKeyIsEmpty(t *testing.T) {
	s := openTestStore(t, newMemKV(), time.Now())
	if tasks := s.Tasks(); len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(tasks))
	}
}

func assertSameTasks(t *testing.T, want, got []Task) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.ID != g.ID || w.Text != g.Text || w.Completed != g.Completed {
			t.Errorf("task %d = %+v, want %+v", i, g, w)
		}
		if !w.CreatedAt.Equal(g.CreatedAt) {
			t.Errorf("task %d createdAt = %v, want %v", i, g.CreatedAt, w.CreatedAt)
		}
		switch {
		case w.Reminder == nil && g.Reminder == nil:
		case w.Reminder == nil || g.Reminder == nil:
			t.Errorf("task %d reminder = %v, want %v", i, g.Reminder, w.Reminder)
		case !w.Reminder.Equal(*g.Reminder):
			t.Errorf("task %d reminder = %v, want %v", i, *g.Reminder, *w.Reminder)
		}
	}
}
