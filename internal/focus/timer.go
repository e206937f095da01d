package focus

// State is what a renderer needs to draw the timer.
type State struct {
	Phase     Phase
	Remaining int // seconds
	Running   bool
	Config    TimerConfig
}

// Duration is the full length of the current phase in seconds.
func (s State) Duration() int { return s.Config.Seconds(s.Phase) }

// Elapsed is how many seconds of the current phase have run.
func (s State) Elapsed() int { return s.Duration() - s.Remaining }

// Progress is the completed fraction of the current phase in [0,1].
func (s State) Progress() float64 {
	total := s.Duration()
	if total <= 0 {
		return 0
	}
	return float64(s.Elapsed()) / float64(total)
}

// Timer is the phase countdown. It has no side effects; Session decides what
// happens around each transition.
//
// Invariant: 0 <= remaining <= cfg.Seconds(phase).
type Timer struct {
	cfg       TimerConfig
	phase     Phase
	remaining int
	running   bool
}

// NewTimer returns a paused timer at the start of a focus phase.
func NewTimer(cfg TimerConfig) *Timer {
	return &Timer{
		cfg:       cfg,
		phase:     PhaseFocus,
		remaining: cfg.Seconds(PhaseFocus),
	}
}

func (t *Timer) State() State {
	return State{Phase: t.phase, Remaining: t.remaining, Running: t.running, Config: t.cfg}
}

func (t *Timer) Config() TimerConfig { return t.cfg }
func (t *Timer) Phase() Phase        { return t.phase }
func (t *Timer) Remaining() int      { return t.remaining }
func (t *Timer) Running() bool       { return t.running }

// Start reports whether the timer was paused and is now running.
func (t *Timer) Start() bool {
	if t.running {
		return false
	}
	t.running = true
	return true
}

// Pause reports whether the timer was running and is now paused.
func (t *Timer) Pause() bool {
	if !t.running {
		return false
	}
	t.running = false
	return true
}

// Step consumes one second. It returns true, without decrementing, when the
// countdown is already at zero and the phase should complete.
func (t *Timer) Step() bool {
	if t.remaining <= 0 {
		t.remaining = 0
		return true
	}
	t.remaining--
	return false
}

// MidRun reports whether leaving the current phase now would abandon progress.
func (t *Timer) MidRun() bool {
	return t.running || t.remaining < t.cfg.Seconds(t.phase)
}

// ElapsedMinutes is the whole minutes run so far in the current phase.
func (t *Timer) ElapsedMinutes() int {
	elapsed := t.cfg.Seconds(t.phase) - t.remaining
	if elapsed < 0 {
		return 0
	}
	return elapsed / 60
}

// Advance moves to the next phase at full duration and keeps running.
// With breaks disabled the next phase is always focus.
func (t *Timer) Advance() Phase {
	next := PhaseFocus
	if t.phase == PhaseFocus && t.cfg.BreakEnabled() {
		next = PhaseBreak
	}
	t.phase = next
	t.remaining = t.cfg.Seconds(next)
	t.running = true
	return next
}

// Restart returns to a paused focus phase at full duration.
func (t *Timer) Restart() {
	t.phase = PhaseFocus
	t.remaining = t.cfg.Seconds(PhaseFocus)
	t.running = false
}

// Configure applies new durations. A focus phase restarts paused at the new
// length; a break keeps going but is clamped to the new break length, and
// ends immediately in a paused focus phase if breaks were disabled.
func (t *Timer) Configure(cfg TimerConfig) {
	t.cfg = cfg
	if t.phase == PhaseFocus {
		t.remaining = cfg.Seconds(PhaseFocus)
		t.running = false
		return
	}
	if !cfg.BreakEnabled() {
		t.Restart()
		return
	}
	if full := cfg.Seconds(PhaseBreak); t.remaining > full {
		t.remaining = full
	}
}
