package focus

import (
	"fmt"
	"log/slog"
	"time"
)

// Persister receives a full snapshot at every mutation boundary.
type Persister interface {
	Save(Snapshot) error
	Clear() error
}

// Notifier plays end-of-phase and badge cues. Implementations are best effort
// and must not block; the session recovers from panics.
type Notifier interface {
	PhaseEnded(phase Phase, muted bool)
	BadgeEarned(badge Badge, muted bool)
}

type nopNotifier struct{}

func (nopNotifier) PhaseEnded(Phase, bool)  {}
func (nopNotifier) BadgeEarned(Badge, bool) {}

// Option configures a Session.
type Option func(*Session)

func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session is the application context: it owns the timer, progression, log and
// preferences, and is the only writer of any of them. It is not safe for
// concurrent use; hosts serialize calls on one goroutine.
type Session struct {
	timer       *Timer
	progression Progression
	log         *SessionLog
	prefs       Preferences

	store     Persister
	notifier  Notifier
	clock     Clock
	logger    *slog.Logger
	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// NewSession restores a session from snap. Invalid persisted values fall back
// to defaults; the timer always starts paused at a full focus phase.
func NewSession(snap Snapshot, store Persister, opts ...Option) *Session {
	cfg := snap.Config
	if cfg.Validate() != nil {
		cfg = DefaultTimerConfig()
	}
	s := &Session{
		timer:       NewTimer(cfg),
		progression: snap.Progression.normalize(),
		log:         NewSessionLog(snap.Log),
		prefs:       snap.Preferences.orDefaults(),
		store:       store,
		notifier:    nopNotifier{},
		clock:       RealClock{},
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l for all future events and returns a function that
// removes it.
func (s *Session) Subscribe(l Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	return func() {
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) State() State             { return s.timer.State() }
func (s *Session) Running() bool            { return s.timer.Running() }
func (s *Session) Config() TimerConfig      { return s.timer.Config() }
func (s *Session) Preferences() Preferences { return s.prefs }
func (s *Session) Progression() Progression { return s.progression.copy() }

// Entries returns a read-only copy of the session log, oldest first.
func (s *Session) Entries() []LogEntry { return s.log.Entries() }

// RecentEntries returns up to n entries, newest first.
func (s *Session) RecentEntries(n int) []LogEntry { return s.log.Recent(n) }

// Snapshot returns the state that Save would write.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Config:      s.timer.Config(),
		Preferences: s.prefs,
		Progression: s.progression.copy(),
		Log:         s.log.Entries(),
	}
}

// Start resumes the countdown. It reports whether the timer was paused, so
// the host knows to schedule ticks.
func (s *Session) Start() bool {
	if !s.timer.Start() {
		return false
	}
	s.emit(Event{Kind: EventStarted})
	return true
}

// Pause stops the countdown without changing phase or remaining time.
func (s *Session) Pause() bool {
	if !s.timer.Pause() {
		return false
	}
	s.emit(Event{Kind: EventPaused})
	return true
}

// Toggle starts a paused timer or pauses a running one and reports whether
// the timer is now running.
func (s *Session) Toggle() bool {
	if s.timer.Running() {
		s.Pause()
		return false
	}
	s.Start()
	return true
}

// Tick is called once per elapsed second. It does nothing while paused. When
// the countdown is already at zero the phase completes instead.
func (s *Session) Tick() error {
	if !s.timer.Running() {
		return nil
	}
	if !s.timer.Step() {
		s.emit(Event{Kind: EventTicked})
		return nil
	}
	return s.completePhase()
}

func (s *Session) completePhase() error {
	finished := s.timer.Phase()
	minutes := s.timer.Config().Minutes(finished)
	xp := 0
	if finished == PhaseFocus {
		xp = minutes
	}

	var earned []Badge
	if finished == PhaseFocus {
		s.progression.AwardExperience(xp)
		s.progression.IncrementStreak()
		earned = s.progression.CheckBadges()
	}

	entry := LogEntry{
		Time:       s.now(),
		Phase:      finished,
		Minutes:    minutes,
		Experience: xp,
		Success:    true,
	}
	s.log.Append(entry)

	next := s.timer.Advance()
	s.cuePhaseEnded(finished)

	s.logger.Info("phase completed",
		"phase", finished.String(),
		"minutes", minutes,
		"xp", xp,
		"streak", s.progression.Streak,
		"next", next.String(),
	)

	for _, b := range earned {
		s.logger.Info("badge earned", "badge", string(b.ID), "streak", s.progression.Streak)
		s.cueBadgeEarned(b)
		s.emit(Event{Kind: EventBadgeEarned, Badge: b})
	}
	s.emit(Event{Kind: EventPhaseCompleted, Entry: &entry, Next: next})

	return s.save("complete phase")
}

// ResetPhase abandons the current phase. Without confirmation nothing
// changes. A phase that had started is logged as a failure with the whole
// minutes it ran; the timer then returns to a paused, full focus phase.
func (s *Session) ResetPhase(confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	s.abandon("reset")
	s.timer.Restart()
	return true, s.save("reset phase")
}

// abandon logs the current phase as failed if it had started.
func (s *Session) abandon(reason string) {
	if !s.timer.MidRun() {
		return
	}
	entry := LogEntry{
		Time:    s.now(),
		Phase:   s.timer.Phase(),
		Minutes: s.timer.ElapsedMinutes(),
		Success: false,
	}
	s.log.Append(entry)
	s.logger.Info("phase abandoned",
		"phase", entry.Phase.String(),
		"minutes", entry.Minutes,
		"reason", reason,
	)
	s.emit(Event{Kind: EventPhaseAbandoned, Entry: &entry})
}

// ChangeDuration applies new phase lengths. Invalid values are rejected
// before anything changes. Interrupting a focus phase this way is not logged.
func (s *Session) ChangeDuration(focusMinutes, breakMinutes int) error {
	cfg := TimerConfig{FocusMinutes: focusMinutes, BreakMinutes: breakMinutes}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.timer.Configure(cfg)
	s.logger.Info("durations changed", "focus", focusMinutes, "break", breakMinutes)
	s.emit(Event{Kind: EventConfigChanged})
	return s.save("change duration")
}

// ApplyPreset is ChangeDuration with a named pair.
func (s *Session) ApplyPreset(p Preset) error {
	return s.ChangeDuration(p.Config.FocusMinutes, p.Config.BreakMinutes)
}

// UpdatePreferences validates and stores display preferences.
func (s *Session) UpdatePreferences(p Preferences) error {
	p.Locale = NormalizeLocale(p.Locale)
	if err := p.Validate(); err != nil {
		return err
	}
	s.prefs = p
	s.emit(Event{Kind: EventPreferencesChanged})
	return s.save("update preferences")
}

// SetMuted toggles audio cues.
func (s *Session) SetMuted(muted bool) error {
	p := s.prefs
	p.Muted = muted
	return s.UpdatePreferences(p)
}

// ResetAll wipes progress, history and settings and deletes the store. The
// timer returns to a paused default focus phase.
func (s *Session) ResetAll() error {
	s.progression.Reset()
	s.log.clear()
	s.prefs = DefaultPreferences()
	s.timer = NewTimer(DefaultTimerConfig())
	s.logger.Info("data reset")
	s.emit(Event{Kind: EventDataReset})

	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(); err != nil {
		s.logger.Error("clear store failed", "error", err)
		s.emit(Event{Kind: EventSaveFailed, Err: err})
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Shutdown runs before the process exits. A running phase is logged as
// failed; the snapshot is then saved unconditionally.
func (s *Session) Shutdown() error {
	if s.timer.Running() {
		s.abandon("shutdown")
		s.timer.Pause()
	}
	return s.save("shutdown")
}

// Save writes the current snapshot. Callers use it to retry after a failure.
func (s *Session) Save() error {
	return s.save("save")
}

func (s *Session) save(op string) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.Snapshot()); err != nil {
		s.logger.Error("save snapshot failed", "op", op, "error", err)
		s.emit(Event{Kind: EventSaveFailed, Err: err})
		return fmt.Errorf("%s: save snapshot: %w", op, err)
	}
	return nil
}

func (s *Session) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}

func (s *Session) emit(e Event) {
	e.State = s.timer.State()
	// Listeners may unsubscribe while being called.
	subs := append([]subscription(nil), s.listeners...)
	for _, sub := range subs {
		sub.fn(e)
	}
}

func (s *Session) cuePhaseEnded(p Phase) {
	defer s.recoverNotifier("phase ended")
	s.notifier.PhaseEnded(p, s.prefs.Muted)
}

func (s *Session) cueBadgeEarned(b Badge) {
	defer s.recoverNotifier("badge earned")
	s.notifier.BadgeEarned(b, s.prefs.Muted)
}

func (s *Session) recoverNotifier(cue string) {
	if r := recover(); r != nil {
		s.logger.Warn("notifier failed", "cue", cue, "panic", fmt.Sprint(r))
	}
}
