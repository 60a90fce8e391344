// ABOUTME: File-backed diagnostic logger for the CLI and TUI
// ABOUTME: Writes to the config directory so output never corrupts the terminal

package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init points the logger at a file in the given config directory.
// An empty directory leaves logging disabled.
func Init(configDir string) error {
	if configDir == "" {
		return nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(configDir, "debug.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	if lvl := os.Getenv("BLOG_LOG_LEVEL"); lvl != "" {
		if level, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level.SetLevel(level)
		}
	}

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built
	return nil
}

// L returns the process-wide logger
func L() *zap.Logger {
	return logger
}

// Sync flushes buffered log entries; call before exit
func Sync() {
	_ = logger.Sync()
}
