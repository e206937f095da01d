package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	currentVersion = 1
	memoryPath     = ":memory:"
)

// Store persists the focus snapshot in SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string, opts ...Option) (*Store, error) {
	s := &Store{path: dbPath, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	s.db = db
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory(opts ...Option) (*Store, error) {
	return New(memoryPath, opts...)
}

// Open is New for the application's own database file. A file that cannot be
// opened as a database is moved aside to <path>.corrupt-<timestamp> and a
// fresh store is created in its place.
func Open(dbPath string, opts ...Option) (*Store, error) {
	s, err := New(dbPath, opts...)
	if err == nil {
		return s, nil
	}
	if _, statErr := os.Stat(dbPath); statErr != nil {
		return nil, err
	}

	aside := fmt.Sprintf("%s.corrupt-%s", dbPath, time.Now().UTC().Format("20060102T150405Z"))
	if renameErr := os.Rename(dbPath, aside); renameErr != nil {
		return nil, errors.Join(err, fmt.Errorf("quarantine database: %w", renameErr))
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(dbPath + suffix)
	}

	s, retryErr := New(dbPath, opts...)
	if retryErr != nil {
		return nil, retryErr
	}
	s.logger.Warn("database unreadable, started fresh", "path", dbPath, "moved_to", aside, "error", err)
	return s, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database location, or ":memory:".
func (s *Store) Path() string { return s.path }

func migrate(db *sql.DB) error {
	var version int
	err := db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := migrateV1(db); err != nil {
			return err
		}
	}

	_, err = db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func migrateV1(db *sql.DB) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS progression (
		id          INTEGER PRIMARY KEY CHECK (id = 1),
		experience  INTEGER NOT NULL DEFAULT 0,
		level       INTEGER NOT NULL DEFAULT 1,
		streak      INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS badges (
		threshold  INTEGER PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS session_log (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at  TEXT NOT NULL,
		phase        TEXT NOT NULL CHECK (phase IN ('focus', 'break')),
		minutes      INTEGER NOT NULL DEFAULT 0,
		xp           INTEGER NOT NULL DEFAULT 0,
		success      INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_session_log_recorded ON session_log(recorded_at);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('focus_minutes',   '25'),
		('break_minutes',   '5'),
		('locale',          'en'),
		('theme',           'soft'),
		('font_size',       '14'),
		('accessible_font', 'false'),
		('muted',           'false');
	`
	_, err := db.Exec(ddl)
	return err
}
