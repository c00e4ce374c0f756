// Package config reads the purely cosmetic CLI settings golox supports:
// whether to colorize diagnostics, and where the REPL keeps its history
// file. Neither setting affects Lox language semantics or exit codes —
// stringifying the same program produces the same output either way.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
)

// Config holds golox's ambient, non-semantic CLI settings.
type Config struct {
	NoColor     bool   `env:"GOLOX_NO_COLOR"`
	HistoryFile string `env:"GOLOX_HISTORY_FILE"`
}

// Load reads Config from the environment, filling HistoryFile with a
// default under the user's home directory when unset.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	if c.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryFile = filepath.Join(home, ".golox_history")
		}
	}
	return c, nil
}
