package store

import "testing"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func getSetting(s *Store, key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	return value, err
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/focusplus.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen, should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		KeyFocusMinutes:   "25",
		KeyBreakMinutes:   "5",
		KeyLocale:         "en",
		KeyTheme:          "soft",
		KeyFontSize:       "14",
		KeyAccessibleFont: "false",
		KeyMuted:          "false",
	}

	for k, expected := range defaults {
		val, err := getSetting(s, k)
		if err != nil {
			t.Fatalf("setting(%q): %v", k, err)
		}
		if val != expected {
			t.Fatalf("setting(%q) = %q, want %q", k, val, expected)
		}
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	setSetting(s.db, KeyTheme, "soft")
	setSetting(s.db, KeyTheme, "playful")
	val, _ := getSetting(s, KeyTheme)
	if val != "playful" {
		t.Fatalf("expected playful, got %s", val)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := getSetting(s, "nonexistent")
	if err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 7 {
		t.Fatalf("expected 7 default settings, got %d", len(all))
	}
	// Should be sorted by key
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("settings not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}

// ============================================================
// Constraints
// ============================================================

func TestSessionLogRejectsUnknownPhase(t *testing.T) {
	s := newTestStore(t)
	_, err := s.db.Exec(`INSERT INTO session_log (recorded_at, phase) VALUES ('2026-03-02T09:00:00Z', 'nap')`)
	if err == nil {
		t.Fatal("expected check constraint error")
	}
}

func TestProgressionSingleRow(t *testing.T) {
	s := newTestStore(t)
	_, err := s.db.Exec(`INSERT INTO progression (id) VALUES (2)`)
	if err == nil {
		t.Fatal("expected check constraint error")
	}
}

// ============================================================
// Close
// ============================================================

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	err := s.Close()
	if err != nil {
		t.Fatalf("first close: %v", err)
	}
}
