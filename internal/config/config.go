package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const appName = "focusplus"

// Config holds process-level settings. Timer lengths and display preferences
// are user data and live in the store instead.
type Config struct {
	DataDir  string `toml:"data_dir" env:"FOCUSPLUS_DATA_DIR"`
	DBPath   string `toml:"db_path,omitempty" env:"FOCUSPLUS_DB_PATH"`   // defaults to <data_dir>/focusplus.db
	LogPath  string `toml:"log_path,omitempty" env:"FOCUSPLUS_LOG_PATH"` // defaults to <data_dir>/focusplus.log
	LogLevel string `toml:"log_level" env:"FOCUSPLUS_LOG_LEVEL"`         // debug, info, warn or error
	Bell     bool   `toml:"bell" env:"FOCUSPLUS_BELL"`
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return &Config{
		DataDir:  filepath.Join(dir, appName),
		LogLevel: "info",
		Bell:     true,
	}, nil
}

// DatabasePath is DBPath, or the default file inside DataDir.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, appName+".db")
}

// LogFilePath is LogPath, or the default file inside DataDir.
func (c *Config) LogFilePath() string {
	if c.LogPath != "" {
		return c.LogPath
	}
	return filepath.Join(c.DataDir, appName+".log")
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// DefaultPath returns $FOCUSPLUS_CONFIG, or config.toml in the user config dir.
func DefaultPath() (string, error) {
	var e struct {
		Path string `env:"FOCUSPLUS_CONFIG"`
	}
	if err := env.Parse(&e); err != nil {
		return "", fmt.Errorf("parse env: %w", err)
	}
	if e.Path != "" {
		return e.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads the file at path over the defaults, then applies FOCUSPLUS_*
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer f.Close()
		if _, err := toml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
