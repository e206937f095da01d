package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/focusplus/internal/focus"
)

// legacyTimeLayout is how the desktop app stamped log entries, in local time.
const legacyTimeLayout = "2006-01-02 15:04:05"

type legacyState struct {
	FocusMin     *int    `json:"focus_min"`
	BreakMin     *int    `json:"break_min"`
	Locale       *string `json:"locale"`
	Theme        *string `json:"theme"`
	FontSize     *int    `json:"font_size"`
	DyslexiaFont *bool   `json:"dyslexia_font"`
	Muted        *bool   `json:"muted"`

	XP         int           `json:"xp"`
	Level      int           `json:"level"`
	Streak     int           `json:"streak"`
	Badges     []int         `json:"badges"`
	SessionLog []legacyEntry `json:"session_log"`
}

type legacyEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"`
	Minutes int    `json:"minutes"`
	XP      int    `json:"xp"`
	Success bool   `json:"success"`
}

// ImportLegacy reads a productivity_timer_state.json file written by the
// desktop app. Keys it does not carry keep their defaults. Log timestamps are
// read in loc (time.Local when nil).
func ImportLegacy(path string, loc *time.Location) (focus.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return focus.Snapshot{}, fmt.Errorf("read legacy state: %w", err)
	}
	var st legacyState
	if err := json.Unmarshal(data, &st); err != nil {
		return focus.Snapshot{}, fmt.Errorf("decode legacy state: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}

	snap := focus.DefaultSnapshot()
	if st.FocusMin != nil {
		snap.Config.FocusMinutes = *st.FocusMin
	}
	if st.BreakMin != nil {
		snap.Config.BreakMinutes = *st.BreakMin
	}
	if err := snap.Config.Validate(); err != nil {
		return focus.Snapshot{}, fmt.Errorf("legacy durations: %w", err)
	}

	if st.Locale != nil {
		snap.Preferences.Locale = focus.NormalizeLocale(*st.Locale)
	}
	if st.Theme != nil {
		snap.Preferences.Theme = strings.ToLower(*st.Theme)
	}
	if st.FontSize != nil {
		snap.Preferences.FontSize = *st.FontSize
	}
	if st.DyslexiaFont != nil {
		snap.Preferences.AccessibleFont = *st.DyslexiaFont
	}
	if st.Muted != nil {
		snap.Preferences.Muted = *st.Muted
	}
	if err := snap.Preferences.Validate(); err != nil {
		return focus.Snapshot{}, fmt.Errorf("legacy preferences: %w", err)
	}

	snap.Progression = focus.Progression{
		Experience: max(st.XP, 0),
		Level:      max(st.Level, focus.LevelFor(st.XP)),
		Streak:     max(st.Streak, 0),
	}
	for _, threshold := range st.Badges {
		b, ok := focus.BadgeForThreshold(threshold)
		if !ok {
			return focus.Snapshot{}, fmt.Errorf("legacy badges: unknown threshold %d", threshold)
		}
		snap.Progression.Badges = append(snap.Progression.Badges, b.ID)
	}
	snap.Progression.Badges = focus.SortBadges(snap.Progression.Badges)

	for i, le := range st.SessionLog {
		t, err := time.ParseInLocation(legacyTimeLayout, le.Time, loc)
		if err != nil {
			return focus.Snapshot{}, fmt.Errorf("legacy log entry %d: %w", i, err)
		}
		phase, err := focus.ParsePhase(strings.ToLower(le.Type))
		if err != nil {
			return focus.Snapshot{}, fmt.Errorf("legacy log entry %d: %w", i, err)
		}
		snap.Log = append(snap.Log, focus.LogEntry{
			Time:       t.UTC(),
			Phase:      phase,
			Minutes:    max(le.Minutes, 0),
			Experience: max(le.XP, 0),
			Success:    le.Success,
		})
	}
	return snap, nil
}
