package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		// Dir holds the aggregate files (users.json, tests.json, results.json).
		Dir string `yaml:"dir"`
		// SnapshotDir holds the per-test audit snapshots; defaults to
		// <dir>/tests when empty.
		SnapshotDir string `yaml:"snapshotDir"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Session struct {
		Duration string `yaml:"duration"`
	} `yaml:"session"`
	Lockout struct {
		MaxAttempts int    `yaml:"maxAttempts"`
		Window      string `yaml:"window"`
	} `yaml:"lockout"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DataDir returns the storage dir, defaulting to "data".
func (c Config) DataDir() string {
	if c.Storage.Dir == "" {
		return "data"
	}
	return c.Storage.Dir
}

// UsersPath is the users aggregate file.
func (c Config) UsersPath() string { return filepath.Join(c.DataDir(), "users.json") }

// TestsPath is the tests aggregate file.
func (c Config) TestsPath() string { return filepath.Join(c.DataDir(), "tests.json") }

// ResultsPath is the results aggregate file.
func (c Config) ResultsPath() string { return filepath.Join(c.DataDir(), "results.json") }

// TestSnapshotDir is where per-test audit snapshots live.
func (c Config) TestSnapshotDir() string {
	if c.Storage.SnapshotDir == "" {
		return filepath.Join(c.DataDir(), "tests")
	}
	return c.Storage.SnapshotDir
}

// SessionDuration is the test-taking deadline window, default 10 minutes.
func (c Config) SessionDuration() time.Duration {
	return DurationOr(c.Session.Duration, 10*time.Minute)
}

// LockoutWindow is how long a username stays blocked, default 10 minutes.
func (c Config) LockoutWindow() time.Duration {
	return DurationOr(c.Lockout.Window, 10*time.Minute)
}

// LockoutAttempts is the consecutive-failure threshold, default 5.
func (c Config) LockoutAttempts() int {
	if c.Lockout.MaxAttempts <= 0 {
		return 5
	}
	return c.Lockout.MaxAttempts
}

// DurationOr parses a duration string or returns the fallback if empty or
// malformed.
func DurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
