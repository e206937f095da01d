package tui

import (
	"fmt"

	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/i18n"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewStats
	viewLog
	viewSettings
	viewCount
)

var viewKeys = []string{i18n.Timer, i18n.Stats, i18n.SessionLog, i18n.Settings}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// tickMsg carries the generation it was scheduled in; ticks from an older
// generation were cancelled by a pause and are dropped.
type tickMsg struct {
	gen int
}

type exportDoneMsg struct {
	path string
}

// eventQueue collects session events between Update calls.
type eventQueue struct {
	events []focus.Event
}

func (q *eventQueue) push(e focus.Event) {
	q.events = append(q.events, e)
}

func (q *eventQueue) drain() []focus.Event {
	out := q.events
	q.events = nil
	return out
}

// --- Helpers ---

// formatClock renders a countdown as MM:SS, or H:MM:SS from one hour up.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
}
