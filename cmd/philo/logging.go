package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/philo/internal/config"
)

func parseLevel(s string) (log.Level, error) {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid --log-level %q: %w", s, err)
	}
	return level, nil
}

// newLogger returns a logger writing to stderr at the configured level.
func newLogger(prefix string) *log.Logger {
	level, _ := parseLevel(flagLogLevel)
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// logPresets records where the timing presets came from. Presets read from
// a file change the game, so they are reported at info level.
func logPresets(logger *log.Logger, presets config.ReflexConfig) {
	if presets.FromFile() {
		logger.Info("timing presets loaded from file", "path", presets.Source)
		return
	}
	logger.Debug("timing presets loaded", "source", presets.Source)
}

// newPlayLogger returns the logger for interactive play. The terminal is
// taken over by the game, so logs go to ~/.philo/philo.log, and only when
// debugging. The returned func closes the log file.
func newPlayLogger() (*log.Logger, func()) {
	level, _ := parseLevel(flagLogLevel)
	if level > log.DebugLevel {
		return log.New(io.Discard), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".philo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "philo.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "philo",
		Level:           level,
	}), func() { f.Close() }
}
