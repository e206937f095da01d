package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/i18n"
)

const progressWidth = 30

type timerModel struct {
	session *focus.Session
	width   int
	height  int
}

func newTimerModel(s *focus.Session) timerModel {
	return timerModel{session: s}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) view(tr *i18n.Translator) string {
	w := t.width - 4
	st := t.session.State()
	prog := t.session.Progression()
	prefs := t.session.Preferences()

	title := titleStyle.Render(tr.T(i18n.Title))

	clockStyle := timerPausedStyle
	status := tr.T(i18n.Paused)
	if st.Running {
		clockStyle = timerRunningStyle
		status = tr.T(i18n.Running)
	}
	timeDisplay := clockStyle.Width(max(w-6, 8)).Render(formatClock(st.Remaining))
	phaseLabel := phaseStyle(st.Phase).Bold(!prefs.AccessibleFont).Render(strings.ToUpper(tr.Phase(st.Phase))) +
		mutedStyle.Render("  "+status)

	cfg := st.Config
	durations := mutedStyle.Render(fmt.Sprintf("%s %d  ·  %s %d",
		tr.T(i18n.FocusMin), cfg.FocusMinutes, tr.T(i18n.BreakMin), cfg.BreakMinutes))

	stats := fmt.Sprintf("%s %s   %s %s   %s %s",
		mutedStyle.Render(tr.T(i18n.XP)), highlightStyle.Render(fmt.Sprint(prog.Experience)),
		mutedStyle.Render(tr.T(i18n.Level)), highlightStyle.Render(fmt.Sprint(prog.Level)),
		mutedStyle.Render(tr.T(i18n.Streak)), highlightStyle.Render(fmt.Sprint(prog.Streak)),
	)

	rows := []string{
		title,
		"",
		timeDisplay,
		phaseLabel,
		"",
		renderProgressBar(st.Progress(), progressWidth),
		durations,
		"",
		stats,
		renderBadgeProgress(prog),
	}
	if prefs.Muted {
		rows = append(rows, warningStyle.Render("♪ "+tr.T(i18n.Mute)))
	}

	toggle := tr.T(i18n.Start)
	if st.Running {
		toggle = tr.T(i18n.Pause)
	}
	controls := mutedStyle.Render(fmt.Sprintf("space: %s  r: %s  1: %s  2: %s  m: %s",
		toggle, tr.T(i18n.Reset), tr.T(i18n.Quick25), tr.T(i18n.Quick50), tr.T(i18n.Mute)))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, rows...), "", controls),
	)
}

// renderProgressBar draws the completed fraction of the phase.
func renderProgressBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return bar + mutedStyle.Render(fmt.Sprintf(" %3d%%", int(frac*100)))
}

// renderBadgeProgress shows the streak toward the next unearned badge.
func renderBadgeProgress(p focus.Progression) string {
	var next *focus.Badge
	for i := range focus.BadgeCatalog {
		if !p.HasBadge(focus.BadgeCatalog[i].ID) {
			next = &focus.BadgeCatalog[i]
			break
		}
	}
	if next == nil {
		return successStyle.Render("★ " + string(focus.BadgeGold))
	}

	var parts []string
	for i := 0; i < next.Threshold; i++ {
		if i < p.Streak {
			parts = append(parts, successStyle.Render("●"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d %s", min(p.Streak, next.Threshold), next.Threshold, next.ID))
	return strings.Join(parts, " ") + counter
}
