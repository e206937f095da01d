package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/focusplus/internal/focus"
)

// Load returns the last saved snapshot. Missing or unreadable data yields
// defaults; the failure is logged rather than returned.
func (s *Store) Load() focus.Snapshot {
	snap, err := s.load()
	if err != nil {
		s.logger.Warn("load snapshot failed, using defaults", "path", s.path, "error", err)
		return focus.DefaultSnapshot()
	}
	return snap
}

func (s *Store) load() (focus.Snapshot, error) {
	snap := focus.DefaultSnapshot()

	settings, err := s.GetAllSettings()
	if err != nil {
		return snap, err
	}
	s.applySettings(&snap, settings)

	prog, err := s.loadProgression()
	if err != nil {
		return snap, err
	}
	snap.Progression = prog

	entries, err := s.loadLog()
	if err != nil {
		return snap, err
	}
	snap.Log = entries
	return snap, nil
}

// applySettings overlays stored values on the defaults already in snap. A
// value that does not parse keeps its default.
func (s *Store) applySettings(snap *focus.Snapshot, settings []Setting) {
	for _, kv := range settings {
		var err error
		switch kv.Key {
		case KeyFocusMinutes:
			err = parseInt(kv.Value, &snap.Config.FocusMinutes)
		case KeyBreakMinutes:
			err = parseInt(kv.Value, &snap.Config.BreakMinutes)
		case KeyLocale:
			snap.Preferences.Locale = kv.Value
		case KeyTheme:
			snap.Preferences.Theme = kv.Value
		case KeyFontSize:
			err = parseInt(kv.Value, &snap.Preferences.FontSize)
		case KeyAccessibleFont:
			err = parseBool(kv.Value, &snap.Preferences.AccessibleFont)
		case KeyMuted:
			err = parseBool(kv.Value, &snap.Preferences.Muted)
		}
		if err != nil {
			s.logger.Warn("ignoring stored setting", "key", kv.Key, "value", kv.Value, "error", err)
		}
	}
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func (s *Store) loadProgression() (focus.Progression, error) {
	p := focus.NewProgression()
	err := s.db.QueryRow(`SELECT experience, level, streak FROM progression WHERE id = 1`).
		Scan(&p.Experience, &p.Level, &p.Streak)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("get progression: %w", err)
	}

	rows, err := s.db.Query(`SELECT threshold, name FROM badges ORDER BY threshold`)
	if err != nil {
		return p, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var threshold int
		var name string
		if err := rows.Scan(&threshold, &name); err != nil {
			return p, err
		}
		p.Badges = append(p.Badges, focus.BadgeID(name))
	}
	return p, rows.Err()
}

func (s *Store) loadLog() ([]focus.LogEntry, error) {
	rows, err := s.db.Query(`SELECT recorded_at, phase, minutes, xp, success FROM session_log ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list session log: %w", err)
	}
	defer rows.Close()

	var entries []focus.LogEntry
	for rows.Next() {
		var e focus.LogEntry
		var recordedAt, phase string
		if err := rows.Scan(&recordedAt, &phase, &e.Minutes, &e.Experience, &e.Success); err != nil {
			return nil, err
		}
		if e.Time, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parse log time %q: %w", recordedAt, err)
		}
		if e.Phase, err = focus.ParsePhase(phase); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save replaces the stored snapshot in a single transaction.
func (s *Store) Save(snap focus.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	settings := []Setting{
		{KeyFocusMinutes, strconv.Itoa(snap.Config.FocusMinutes)},
		{KeyBreakMinutes, strconv.Itoa(snap.Config.BreakMinutes)},
		{KeyLocale, snap.Preferences.Locale},
		{KeyTheme, snap.Preferences.Theme},
		{KeyFontSize, strconv.Itoa(snap.Preferences.FontSize)},
		{KeyAccessibleFont, strconv.FormatBool(snap.Preferences.AccessibleFont)},
		{KeyMuted, strconv.FormatBool(snap.Preferences.Muted)},
	}
	for _, kv := range settings {
		if err := setSetting(tx, kv.Key, kv.Value); err != nil {
			return err
		}
	}

	p := snap.Progression
	_, err = tx.Exec(
		`INSERT INTO progression (id, experience, level, streak) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET experience = excluded.experience, level = excluded.level, streak = excluded.streak`,
		p.Experience, p.Level, p.Streak,
	)
	if err != nil {
		return fmt.Errorf("save progression: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM badges`); err != nil {
		return fmt.Errorf("clear badges: %w", err)
	}
	for _, id := range p.Badges {
		b, ok := focus.LookupBadge(id)
		if !ok {
			return fmt.Errorf("save badge: unknown badge %q", id)
		}
		if _, err := tx.Exec(`INSERT INTO badges (threshold, name) VALUES (?, ?)`, b.Threshold, string(b.ID)); err != nil {
			return fmt.Errorf("save badge %s: %w", b.ID, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM session_log`); err != nil {
		return fmt.Errorf("clear session log: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO session_log (recorded_at, phase, minutes, xp, success) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare log insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range snap.Log {
		_, err := stmt.Exec(e.Time.UTC().Format(time.RFC3339Nano), e.Phase.String(), e.Minutes, e.Experience, e.Success)
		if err != nil {
			return fmt.Errorf("save log entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Clear deletes everything. A file-backed store removes its database files
// and reopens empty; an in-memory store drops its rows.
func (s *Store) Clear() error {
	if s.path == memoryPath {
		for _, table := range []string{"settings", "progression", "badges", "session_log"} {
			if _, err := s.db.Exec(`DELETE FROM ` + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	var removeErr error
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(s.path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			removeErr = errors.Join(removeErr, err)
		}
	}
	db, err := openDB(s.path)
	if err != nil {
		return errors.Join(fmt.Errorf("reopen database: %w", err), removeErr)
	}
	s.db = db
	if removeErr != nil {
		return fmt.Errorf("remove database: %w", removeErr)
	}
	s.logger.Info("store cleared", "path", s.path)
	return nil
}
