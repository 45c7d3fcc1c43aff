package ui

import (
	"fmt"
	"strings"

	"taskpilot/internal/config"
	"taskpilot/internal/todo"
)

func (m Model) View() string {
	var b strings.Builder
	p := m.theme

	b.WriteString(p.title.Render("taskpilot"))
	b.WriteString("  ")
	b.WriteString(p.muted.Render(p.label()))
	b.WriteString("\n")
	s := m.view.Stats
	b.WriteString(p.muted.Render(fmt.Sprintf("Total %d • Completed %d • Pending %d", s.Total, s.Completed, s.Pending)))
	b.WriteString("\n\n")

	if m.view.Empty {
		b.WriteString(m.view.Placeholder[0])
		b.WriteString("\n")
		b.WriteString(p.muted.Render(m.view.Placeholder[1]))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	if m.pending != nil {
		b.WriteString(p.reminder.Render("🔔 next task reminds at " + todo.FormatReminder(*m.pending)))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("New task\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeReminderTime:
		b.WriteString("Reminder time (" + todo.ReminderLayout + ")\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modePrompt:
		b.WriteString("AI assistant\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.generating {
		b.WriteString(m.spin.View() + p.muted.Render(" Generating tasks…"))
		b.WriteString("\n")
	}
	if m.sugs.Len() > 0 {
		b.WriteString(p.panel.Render(m.renderSuggestions()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.confirmDel && m.pendingDel != nil:
		b.WriteString(fmt.Sprintf("Delete \"%s\"? y/n", m.pendingDel.Text))
	case m.notice != nil && m.notice.kind == noticeError:
		b.WriteString(p.failure.Render(m.notice.text))
	case m.notice != nil:
		b.WriteString(p.success.Render(m.notice.text))
	}
	b.WriteString("\n")
	b.WriteString(p.muted.Render(m.renderHelp()))

	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	p := m.theme
	for i, r := range m.view.Rows {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = p.cursor.Render(">")
		}

		checkbox := "[ ]"
		text := r.Text
		if r.Completed {
			checkbox = "[x]"
			text = p.done.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s %s %s", cursor, checkbox, text))
		if r.HasReminder {
			b.WriteString("  ")
			b.WriteString(p.reminder.Render("🔔 " + r.Reminder))
		}
		b.WriteString("\n")
		b.WriteString(p.muted.Render("      Created: " + r.Created))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSuggestions() string {
	var b strings.Builder
	p := m.theme
	b.WriteString("Suggested tasks\n")
	for i, item := range m.sugs.Items() {
		cursor := " "
		if m.mode == modeSuggestions && i == m.sugCursor {
			cursor = p.cursor.Render(">")
		}
		box := "[ ]"
		if m.sugs.IsSelected(i) {
			box = p.selected.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, item))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderHelp() string {
	k := m.keys
	switch m.mode {
	case modeAdd, modeReminderTime, modePrompt:
		return fmt.Sprintf("%s confirm • %s cancel", k.Confirm, k.Cancel)
	case modeSuggestions:
		return fmt.Sprintf("%s/%s move • %s select • %s add selected • %s clear • %s back",
			k.Up, k.Down, keyName(k.Select), k.AddSelected, k.ClearSuggest, k.Cancel)
	}
	return renderListHelp(k)
}

func renderListHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s reminder • %s time • %s delete • %s clear done • %s ai • %s suggestions • %s theme • %s quit",
		k.Up, k.Down, k.Add, keyName(k.Toggle), k.Reminder, k.ReminderTime, k.Delete, k.ClearDone, k.Generate, k.Suggestions, k.Theme, k.Quit)
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
