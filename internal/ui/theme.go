package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskpilot/internal/todo"
)

const (
	themeKey   = "theme"
	themeDark  = "dark"
	themeLight = "light"
)

type palette struct {
	name     string
	title    lipgloss.Style
	muted    lipgloss.Style
	done     lipgloss.Style
	cursor   lipgloss.Style
	reminder lipgloss.Style
	selected lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	panel    lipgloss.Style
}

func newPalette(name string) palette {
	fg, muted, accent, bell, ok, bad := "#E5E7EB", "#6B7280", "#A78BFA", "#FBBF24", "#34D399", "#F87171"
	if name == themeLight {
		fg, muted, accent, bell, ok, bad = "#111827", "#9CA3AF", "#6D28D9", "#B45309", "#047857", "#B91C1C"
	} else {
		name = themeDark
	}
	return palette{
		name:     name,
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		done:     lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color(muted)),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fg)),
		reminder: lipgloss.NewStyle().Foreground(lipgloss.Color(bell)),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color(ok)),
		failure:  lipgloss.NewStyle().Foreground(lipgloss.Color(bad)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(0, 1),
	}
}

func (p palette) label() string {
	if p.name == themeLight {
		return "☀️ Light Mode"
	}
	return "🌙 Dark Mode"
}

// loadTheme reads the saved theme, defaulting to dark.
func loadTheme(kv todo.KV) string {
	if kv == nil {
		return themeDark
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	v, ok, err := kv.Get(ctx, themeKey)
	if err != nil || !ok || string(v) != themeLight {
		return themeDark
	}
	return themeLight
}

func saveTheme(kv todo.KV, name string) error {
	if kv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return kv.Put(ctx, themeKey, []byte(name))
}
