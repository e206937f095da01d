package focus

import (
	"errors"
	"fmt"
	"time"
)

// Phase is the interval type the timer is counting down.
type Phase int

const (
	PhaseFocus Phase = iota
	PhaseBreak
)

func (p Phase) String() string {
	if p == PhaseBreak {
		return "break"
	}
	return "focus"
}

// ParsePhase accepts the lowercase names written to the log.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "focus":
		return PhaseFocus, nil
	case "break":
		return PhaseBreak, nil
	}
	return PhaseFocus, fmt.Errorf("unknown phase %q", s)
}

const (
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5

	// MaxMinutes bounds both durations to one day.
	MaxMinutes = 24 * 60
)

var (
	ErrInvalidConfig      = errors.New("invalid timer config")
	ErrInvalidPreferences = errors.New("invalid preferences")
)

// TimerConfig holds the user-chosen phase lengths in whole minutes.
// A break of 0 disables the break phase.
type TimerConfig struct {
	FocusMinutes int
	BreakMinutes int
}

func DefaultTimerConfig() TimerConfig {
	return TimerConfig{FocusMinutes: DefaultFocusMinutes, BreakMinutes: DefaultBreakMinutes}
}

func (c TimerConfig) Validate() error {
	if c.FocusMinutes < 1 || c.FocusMinutes > MaxMinutes {
		return fmt.Errorf("%w: focus must be between 1 and %d minutes, got %d", ErrInvalidConfig, MaxMinutes, c.FocusMinutes)
	}
	if c.BreakMinutes < 0 || c.BreakMinutes > MaxMinutes {
		return fmt.Errorf("%w: break must be between 0 and %d minutes, got %d", ErrInvalidConfig, MaxMinutes, c.BreakMinutes)
	}
	return nil
}

// BreakEnabled reports whether completed focus phases are followed by a break.
func (c TimerConfig) BreakEnabled() bool { return c.BreakMinutes > 0 }

// Minutes returns the configured length of phase p.
func (c TimerConfig) Minutes(p Phase) int {
	if p == PhaseBreak {
		return c.BreakMinutes
	}
	return c.FocusMinutes
}

// Seconds returns the full countdown length of phase p.
func (c TimerConfig) Seconds(p Phase) int {
	return c.Minutes(p) * 60
}

// Preset is a one-key focus/break pair.
type Preset struct {
	Name   string
	Config TimerConfig
}

var Presets = []Preset{
	{Name: "25/5", Config: TimerConfig{FocusMinutes: 25, BreakMinutes: 5}},
	{Name: "50/10", Config: TimerConfig{FocusMinutes: 50, BreakMinutes: 10}},
}

// LookupPreset finds a preset by name ("25/5", "50/10").
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Supported display preference values.
const (
	LocaleEnglish = "en"
	LocaleKorean  = "ko"
	LocaleChinese = "zh"

	ThemeSoft    = "soft"
	ThemePlayful = "playful"

	MinFontSize     = 10
	MaxFontSize     = 28
	DefaultFontSize = 14
)

var (
	Locales = []string{LocaleEnglish, LocaleKorean, LocaleChinese}
	Themes  = []string{ThemeSoft, ThemePlayful}
)

// Preferences are display settings. The core persists them but never acts on them,
// except Muted which gates notifier cues.
type Preferences struct {
	Locale         string
	Theme          string
	FontSize       int
	AccessibleFont bool
	Muted          bool
}

func DefaultPreferences() Preferences {
	return Preferences{
		Locale:   LocaleEnglish,
		Theme:    ThemeSoft,
		FontSize: DefaultFontSize,
	}
}

func (p Preferences) Validate() error {
	if !contains(Locales, p.Locale) {
		return fmt.Errorf("%w: unsupported locale %q", ErrInvalidPreferences, p.Locale)
	}
	if !contains(Themes, p.Theme) {
		return fmt.Errorf("%w: unsupported theme %q", ErrInvalidPreferences, p.Theme)
	}
	if p.FontSize < MinFontSize || p.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font size must be between %d and %d, got %d", ErrInvalidPreferences, MinFontSize, MaxFontSize, p.FontSize)
	}
	return nil
}

// orDefaults replaces each out-of-range field with its default and keeps the
// rest.
func (p Preferences) orDefaults() Preferences {
	def := DefaultPreferences()
	p.Locale = NormalizeLocale(p.Locale)
	if !contains(Locales, p.Locale) {
		p.Locale = def.Locale
	}
	if !contains(Themes, p.Theme) {
		p.Theme = def.Theme
	}
	if p.FontSize < MinFontSize || p.FontSize > MaxFontSize {
		p.FontSize = def.FontSize
	}
	return p
}

// NormalizeLocale maps legacy and regional codes onto a supported locale.
func NormalizeLocale(s string) string {
	switch s {
	case "cn", "zh-CN", "zh-Hans", "zh":
		return LocaleChinese
	case "ko", "ko-KR":
		return LocaleKorean
	case "en", "en-US", "en-GB":
		return LocaleEnglish
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// LogEntry records how one phase ended.
type LogEntry struct {
	Time       time.Time
	Phase      Phase
	Minutes    int
	Experience int
	Success    bool
}

// Snapshot is everything that survives a restart.
type Snapshot struct {
	Config      TimerConfig
	Preferences Preferences
	Progression Progression
	Log         []LogEntry
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		Config:      DefaultTimerConfig(),
		Preferences: DefaultPreferences(),
		Progression: NewProgression(),
	}
}
