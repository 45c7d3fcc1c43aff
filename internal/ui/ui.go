package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskpilot/internal/config"
	"taskpilot/internal/suggest"
	"taskpilot/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeReminderTime
	modePrompt
	modeSuggestions
)

// Generator produces suggestions for a prompt.
type Generator interface {
	GenerateTasks(ctx context.Context, prompt string) ([]string, error)
}

// Deps is everything the view needs from the outside.
type Deps struct {
	Store     *todo.Store
	Prefs     todo.KV
	Generator Generator
	Notifier  Notifier
	Keys      config.Keymap
	Logger    *log.Logger
	Now       func() time.Time
	Location  *time.Location
}

type reminderTickMsg struct{ at time.Time }

type tasksGeneratedMsg struct {
	tasks []string
	err   error
}

type Model struct {
	deps       Deps
	keys       config.Keymap
	view       todo.View
	cursor     int
	mode       mode
	input      textinput.Model
	theme      palette
	notice     *notice
	noticeSeq  int
	pending    *time.Time
	confirmDel bool
	pendingDel *todo.Row
	generating bool
	spin       spinner.Model
	prompt     string
	sugs       *suggest.Set
	sugCursor  int
}

func Run(deps Deps) error {
	program := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// New builds the initial model without starting a program.
func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Notifier == nil {
		deps.Notifier = BellNotifier{}
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		deps:  deps,
		keys:  deps.Keys,
		input: ti,
		spin:  sp,
		mode:  modeList,
		theme: newPalette(loadTheme(deps.Prefs)),
		sugs:  suggest.NewSet(),
	}
	m.reload()
	return m
}

// Init runs the first reminder scan right away; each scan schedules the
// next one.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return reminderTickMsg{at: m.deps.Now()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	case reminderTickMsg:
		return m.checkReminders(msg.at)
	case noticeExpiredMsg:
		if m.notice != nil && m.notice.seq == msg.seq {
			m.notice = nil
		}
	case tasksGeneratedMsg:
		return m.applyGenerated(msg)
	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeReminderTime:
		return m.updateReminderTimeMode(key, msg)
	case modePrompt:
		return m.updatePromptMode(key, msg)
	case modeSuggestions:
		return m.updateSuggestionsMode(key)
	}
	return m.updateListMode(key)
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.keys.Quit:
		return m, tea.Quit
	case m.keys.Down, "down":
		if len(m.view.Rows) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(m.view.Rows))
		}
	case m.keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.view.Rows))
		}
	case m.keys.Add:
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "What needs to be done?"
		m.input.Focus()
	case m.keys.ReminderTime:
		if m.pending != nil {
			m.pending = nil
			return m, nil
		}
		m.mode = modeReminderTime
		m.input.SetValue(todo.DefaultReminder(m.deps.Now()).In(m.deps.Location).Format(todo.ReminderLayout))
		m.input.Placeholder = todo.ReminderLayout
		m.input.CursorEnd()
		m.input.Focus()
	case m.keys.Toggle:
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m.apply(row, todo.ControlCheckbox)
	case m.keys.Reminder:
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m.apply(row, todo.ControlReminder)
	case m.keys.Delete:
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &row
	case m.keys.ClearDone:
		n, err := m.deps.Store.ClearCompleted()
		if errors.Is(err, todo.ErrNothingCompleted) {
			return m, m.failure("No completed tasks to clear!")
		}
		if err != nil {
			return m, m.saveFailed(err)
		}
		m.reload()
		return m, m.success(fmt.Sprintf("Cleared %d completed tasks!", n))
	case m.keys.Generate:
		if m.generating {
			return m, nil
		}
		m.mode = modePrompt
		m.input.SetValue(m.prompt)
		m.input.Placeholder = "Describe what you want to get done"
		m.input.CursorEnd()
		m.input.Focus()
	case m.keys.Suggestions:
		if m.sugs.Len() > 0 {
			m.mode = modeSuggestions
			m.sugCursor = clampCursor(m.sugCursor, m.sugs.Len())
		}
	case m.keys.Theme:
		next := themeLight
		if m.theme.name == themeLight {
			next = themeDark
		}
		m.theme = newPalette(next)
		if err := saveTheme(m.deps.Prefs, next); err != nil {
			m.deps.Logger.Warn("save theme", "err", err)
		}
	}
	return m, nil
}

// apply dispatches a row control to the store operation it is bound to.
func (m Model) apply(row todo.Row, c todo.Control) (tea.Model, tea.Cmd) {
	switch c.Op() {
	case todo.OpToggleCompleted:
		if _, _, err := m.deps.Store.ToggleCompleted(row.ID); err != nil {
			return m, m.saveFailed(err)
		}
		m.reload()
		return m, nil
	case todo.OpToggleReminder:
		change, err := m.deps.Store.ToggleReminder(row.ID, m.pending)
		if errors.Is(err, todo.ErrNoReminderTime) {
			return m, m.failure("Please set a time first!")
		}
		if err != nil {
			return m, m.saveFailed(err)
		}
		m.reload()
		if change == todo.ReminderRemoved {
			return m, m.success("Reminder removed!")
		}
		return m, m.success("Reminder set!")
	case todo.OpDelete:
		if err := m.deps.Store.Delete(row.ID); err != nil {
			return m, m.saveFailed(err)
		}
		m.reload()
		return m, m.success("Task deleted!")
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Cancel:
		m.leaveInput()
		return m, nil
	case m.keys.Confirm:
		_, err := m.deps.Store.Add(m.input.Value(), m.pending)
		if errors.Is(err, todo.ErrEmptyText) {
			return m, m.failure("Please enter a task!")
		}
		if err != nil {
			return m, m.saveFailed(err)
		}
		m.reload()
		m.cursor = clampCursor(len(m.view.Rows)-1, len(m.view.Rows))
		m.pending = nil
		m.leaveInput()
		return m, m.success("Task added successfully!")
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateReminderTimeMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Cancel:
		m.leaveInput()
		return m, nil
	case m.keys.Confirm:
		at, err := todo.ParseReminder(m.input.Value(), m.deps.Location)
		if err != nil {
			return m, m.failure("Use the format " + todo.ReminderLayout)
		}
		m.pending = &at
		m.leaveInput()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updatePromptMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Cancel:
		m.prompt = m.input.Value()
		m.leaveInput()
		return m, nil
	case m.keys.Confirm:
		prompt := strings.TrimSpace(m.input.Value())
		m.prompt = m.input.Value()
		if prompt == "" {
			return m, m.failure("Please enter a prompt for the AI assistant!")
		}
		m.leaveInput()
		m.generating = true
		m.sugs.Clear()
		m.sugCursor = 0
		return m, tea.Batch(m.generate(prompt), m.spin.Tick)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) generate(prompt string) tea.Cmd {
	gen := m.deps.Generator
	return func() tea.Msg {
		if gen == nil {
			return tasksGeneratedMsg{err: errors.New("no task generator configured")}
		}
		tasks, err := gen.GenerateTasks(context.Background(), prompt)
		return tasksGeneratedMsg{tasks: tasks, err: err}
	}
}

func (m Model) applyGenerated(msg tasksGeneratedMsg) (tea.Model, tea.Cmd) {
	m.generating = false
	if msg.err != nil {
		m.deps.Logger.Error("generate tasks", "err", msg.err)
		m.sugs.Clear()
		return m, m.failure(msg.err.Error())
	}
	m.sugs.Replace(msg.tasks)
	if m.sugs.Len() == 0 {
		return m, m.failure("AI could not generate tasks for this prompt. Try another!")
	}
	m.prompt = ""
	m.sugCursor = 0
	if m.mode == modeList {
		m.mode = modeSuggestions
	}
	return m, m.success("AI generated tasks. Review and add!")
}

func (m Model) updateSuggestionsMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case m.keys.Cancel:
		m.mode = modeList
	case m.keys.Down, "down":
		m.sugCursor = clampCursor(m.sugCursor+1, m.sugs.Len())
	case m.keys.Up, "up":
		m.sugCursor = clampCursor(m.sugCursor-1, m.sugs.Len())
	case m.keys.Select:
		m.sugs.Toggle(m.sugCursor)
	case m.keys.AddSelected:
		selected := m.sugs.Selected()
		if len(selected) == 0 {
			return m, m.failure("No suggested tasks selected to add!")
		}
		added, err := m.deps.Store.AddBatch(selected)
		if err != nil {
			return m, m.saveFailed(err)
		}
		m.reload()
		m.sugs.Clear()
		m.mode = modeList
		return m, m.success(fmt.Sprintf("Added %d tasks from AI suggestions!", len(added)))
	case m.keys.ClearSuggest:
		m.sugs.Clear()
		m.mode = modeList
		return m, m.success("AI suggestions cleared!")
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	row := m.pendingDel
	m.confirmDel = false
	m.pendingDel = nil
	switch key {
	case "y", "Y":
		if row == nil {
			return m, nil
		}
		return m.apply(*row, todo.ControlDelete)
	default:
		return m, nil
	}
}

func (m Model) checkReminders(at time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tea.Tick(todo.ReminderPeriod, func(t time.Time) tea.Msg {
		return reminderTickMsg{at: t}
	})}
	var texts []string
	for _, t := range todo.DueReminders(m.deps.Store.Tasks(), at) {
		if err := m.deps.Notifier.Notify(t); err != nil {
			m.deps.Logger.Debug("notify", "id", t.ID, "err", err)
		}
		m.deps.Logger.Info("reminder due", "id", t.ID)
		texts = append(texts, t.Text)
	}
	// One combined notice per scan.
	if len(texts) > 0 {
		cmds = append(cmds, m.success("Reminder: "+strings.Join(texts, ", ")))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) saveFailed(err error) tea.Cmd {
	m.deps.Logger.Error("save tasks", "err", err)
	return m.failure(fmt.Sprintf("save failed: %v", err))
}

func (m *Model) reload() {
	m.view = todo.Project(m.deps.Store.Tasks())
	m.cursor = clampCursor(m.cursor, len(m.view.Rows))
}

func (m *Model) leaveInput() {
	m.input.SetValue("")
	m.input.Blur()
	m.mode = modeList
}

func (m Model) selectedRow() (todo.Row, bool) {
	if len(m.view.Rows) == 0 {
		return todo.Row{}, false
	}
	return m.view.Rows[clampCursor(m.cursor, len(m.view.Rows))], true
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
