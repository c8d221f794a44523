// Package config loads client settings: a JSON file under the user config
// dir (written by `taskchat login`), overlaid with TASKCHAT_* environment
// variables. A .env file in the working directory is honored for local
// development. Precedence: flags > env > file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const appDirName = "taskchat"

type Config struct {
	// ServerURL is the task manager's base URL, e.g. http://localhost:8787.
	ServerURL string `json:"serverUrl" env:"TASKCHAT_SERVER"`
	// Token is the bearer token from the last successful login.
	Token string `json:"token,omitempty" env:"TASKCHAT_TOKEN"`
	// DebugLog is an optional path for the TUI debug log.
	DebugLog string `json:"debugLog,omitempty" env:"TASKCHAT_DEBUG_LOG"`
	// LogLevel applies to the debug log (debug/info/warn/error).
	LogLevel string `json:"logLevel,omitempty" env:"TASKCHAT_LOG_LEVEL"`
}

func defaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName, "config.json"), nil
}

// Load reads the config file (missing file is fine) and applies env
// overrides. path may be empty to use the default location.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: env/flags must supply everything.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Best-effort .env for local development; absence is not an error.
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	return cfg, nil
}

// Save writes the config file, creating the directory as needed. Used by
// `taskchat login` to persist the session token.
func Save(path string, cfg Config) error {
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Token lives here, keep it user-only.
	return os.WriteFile(path, append(b, '\n'), 0o600)
}
