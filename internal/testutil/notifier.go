package testutil

import "github.com/sadopc/focusplus/internal/focus"

// Cue is one call recorded by RecordingNotifier.
type Cue struct {
	Kind  string // "phase" or "badge"
	Phase focus.Phase
	Badge focus.Badge
	Muted bool
}

// RecordingNotifier remembers every cue. With Panic set it panics after
// recording, to exercise the session's isolation of notifier failures.
type RecordingNotifier struct {
	Cues  []Cue
	Panic bool
}

func (n *RecordingNotifier) PhaseEnded(p focus.Phase, muted bool) {
	n.Cues = append(n.Cues, Cue{Kind: "phase", Phase: p, Muted: muted})
	if n.Panic {
		panic("speaker unplugged")
	}
}

func (n *RecordingNotifier) BadgeEarned(b focus.Badge, muted bool) {
	n.Cues = append(n.Cues, Cue{Kind: "badge", Badge: b, Muted: muted})
	if n.Panic {
		panic("speaker unplugged")
	}
}

// Count returns how many cues of kind were recorded.
func (n *RecordingNotifier) Count(kind string) int {
	c := 0
	for _, cue := range n.Cues {
		if cue.Kind == kind {
			c++
		}
	}
	return c
}
