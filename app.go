package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sadopc/focusplus/internal/config"
	"github.com/sadopc/focusplus/internal/focus"
	"github.com/sadopc/focusplus/internal/notify"
	"github.com/sadopc/focusplus/internal/store"
)

// app bundles what every command needs. The caller must defer Close.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	logFile io.Closer
	store   *store.Store
	session *focus.Session
}

// openApp loads the config, opens the log and the store, and restores the
// session. Bells go to bellOut; nil disables them.
func openApp(bellOut *os.File) (*app, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger, logFile, err := newLogger(cfg.LogFilePath(), level)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(cfg.DatabasePath(), store.WithLogger(logger))
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	opts := []focus.Option{focus.WithLogger(logger)}
	if bellOut != nil {
		opts = append(opts, focus.WithNotifier(notify.NewBell(bellOut, cfg.Bell, logger)))
	}
	sess := focus.NewSession(s.Load(), s, opts...)

	logger.Debug("session restored", "db", s.Path(), "entries", len(sess.Entries()))
	return &app{cfg: cfg, logger: logger, logFile: logFile, store: s, session: sess}, nil
}

func (a *app) Close() error {
	err := a.store.Close()
	a.logFile.Close()
	return err
}

// newLogger appends text records to path. Nothing is written to the
// terminal, which belongs to the UI.
func newLogger(path string, level slog.Level) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}
