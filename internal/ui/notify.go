package ui

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskpilot/internal/todo"
)

const noticeTTL = 3 * time.Second

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
)

type notice struct {
	text string
	kind noticeKind
	seq  int
}

type noticeExpiredMsg struct{ seq int }

// Notifier raises an out-of-band alert for a due reminder. Failures are
// ignored by the caller.
type Notifier interface {
	Notify(t todo.Task) error
}

// BellNotifier rings the terminal bell.
type BellNotifier struct {
	W io.Writer
}

func (b BellNotifier) Notify(todo.Task) error {
	w := b.W
	if w == nil {
		w = os.Stderr
	}
	_, err := io.WriteString(w, "\a")
	return err
}

// setNotice replaces the status line and schedules its removal. Only the
// latest notice is cleared by its own timer.
func (m *Model) setNotice(kind noticeKind, text string) tea.Cmd {
	m.noticeSeq++
	m.notice = &notice{text: text, kind: kind, seq: m.noticeSeq}
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) success(text string) tea.Cmd { return m.setNotice(noticeSuccess, text) }

func (m *Model) failure(text string) tea.Cmd { return m.setNotice(noticeError, text) }
