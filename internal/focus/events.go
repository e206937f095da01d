package focus

// EventKind identifies what changed.
type EventKind int

const (
	EventTicked EventKind = iota
	EventStarted
	EventPaused
	EventPhaseCompleted
	EventPhaseAbandoned
	EventBadgeEarned
	EventConfigChanged
	EventPreferencesChanged
	EventDataReset
	EventSaveFailed
)

var eventNames = map[EventKind]string{
	EventTicked:             "ticked",
	EventStarted:            "started",
	EventPaused:             "paused",
	EventPhaseCompleted:     "phase_completed",
	EventPhaseAbandoned:     "phase_abandoned",
	EventBadgeEarned:        "badge_earned",
	EventConfigChanged:      "config_changed",
	EventPreferencesChanged: "preferences_changed",
	EventDataReset:          "data_reset",
	EventSaveFailed:         "save_failed",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is delivered to subscribers after each state change. State is always
// the timer state after the change; the other fields are set per kind.
type Event struct {
	Kind  EventKind
	State State

	Entry *LogEntry // PhaseCompleted, PhaseAbandoned
	Next  Phase     // PhaseCompleted
	Badge Badge     // BadgeEarned
	Err   error     // SaveFailed
}

// Listener receives events synchronously on the caller's goroutine.
type Listener func(Event)
