// Package notify plays audible cues for the focus session.
package notify

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/sadopc/focusplus/internal/focus"
)

const bel = "\a"

// Bell rings the terminal bell: once when a phase ends, three times for a
// badge. It stays quiet when muted, disabled, or not attached to a terminal.
type Bell struct {
	w       io.Writer
	tty     bool
	enabled bool
	logger  *slog.Logger
}

// NewBell rings on f if f is a terminal.
func NewBell(f *os.File, enabled bool, logger *slog.Logger) *Bell {
	return newBell(f, term.IsTerminal(int(f.Fd())), enabled, logger)
}

// NewBellWriter rings on w unconditionally, as if it were a terminal.
func NewBellWriter(w io.Writer, enabled bool, logger *slog.Logger) *Bell {
	return newBell(w, true, enabled, logger)
}

func newBell(w io.Writer, tty, enabled bool, logger *slog.Logger) *Bell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bell{w: w, tty: tty, enabled: enabled, logger: logger}
}

func (b *Bell) PhaseEnded(_ focus.Phase, muted bool) {
	b.ring(1, muted)
}

func (b *Bell) BadgeEarned(_ focus.Badge, muted bool) {
	b.ring(3, muted)
}

func (b *Bell) ring(n int, muted bool) {
	if muted || !b.enabled || !b.tty {
		return
	}
	if _, err := io.WriteString(b.w, strings.Repeat(bel, n)); err != nil {
		b.logger.Debug("bell failed", "error", err)
	}
}
