package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/i18n"
)

type logModel struct {
	session *focus.Session
	width   int
	height  int
	offset  int
}

func newLogModel(s *focus.Session) logModel {
	return logModel{session: s}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

// pageSize is how many entries fit in the panel.
func (l logModel) pageSize() int {
	n := l.height - 6
	if n < 5 {
		n = 5
	}
	return n
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		total := len(l.session.Entries())
		switch {
		case key.Matches(msg, keys.Up):
			if l.offset > 0 {
				l.offset--
			}
		case key.Matches(msg, keys.Down):
			if l.offset < total-l.pageSize() {
				l.offset++
			}
		}
	}
	return l, nil
}

func (l logModel) view(tr *i18n.Translator) string {
	w := l.width - 4
	title := titleStyle.Render(tr.T(i18n.SessionLog))

	entries := l.session.RecentEntries(len(l.session.Entries()))
	if len(entries) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render(tr.T(i18n.NoEntries))),
		)
	}

	offset := min(l.offset, max(len(entries)-1, 0))
	end := min(offset+l.pageSize(), len(entries))

	rows := []string{title, ""}
	for _, e := range entries[offset:end] {
		rows = append(rows, renderEntry(e, tr))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d-%d / %d   ↑/↓", offset+1, end, len(entries))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderEntry(e focus.LogEntry, tr *i18n.Translator) string {
	status := successStyle.Render("✓")
	if !e.Success {
		status = errorStyle.Render("✗")
	}
	when := e.Time.Local().Format("2006-01-02 15:04")
	phase := phaseStyle(e.Phase).Render(fmt.Sprintf("%-8s", tr.Phase(e.Phase)))
	xp := ""
	if e.Experience > 0 {
		xp = highlightStyle.Render(fmt.Sprintf("+%d %s", e.Experience, tr.T(i18n.XP)))
	}
	return fmt.Sprintf("  %s %s  %s %5s  %s", status, mutedStyle.Render(when), phase, formatMinutes(e.Minutes), xp)
}
