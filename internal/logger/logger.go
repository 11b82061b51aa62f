// Package logger configures the galog diagnostics backends used by uartlog.
package logger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GoogleCloudPlatform/galog"
)

// ShutdownTimeout bounds how long Shutdown waits for queued entries.
const ShutdownTimeout = time.Second

// Options configures the diagnostics loggers.
type Options struct {
	// Level is the log level, 1 (errors) through 4 (debug).
	Level int
	// Verbosity is the minimum verbosity for V() gated entries.
	Verbosity int
	// LogFile is the path of an optional diagnostics file. It is only
	// registered when its directory exists.
	LogFile string
	// LogToStderr flags if the stderr logger must be enabled.
	LogToStderr bool
}

// Init registers the configured backends and applies level and verbosity.
func Init(ctx context.Context, opts Options) error {
	var enabledLoggers []galog.Backend

	galog.SetMinVerbosity(opts.Verbosity)

	if opts.LogFile != "" {
		if !dirExists(filepath.Dir(opts.LogFile)) {
			return fmt.Errorf("diagnostic log directory %s does not exist", filepath.Dir(opts.LogFile))
		}
		enabledLoggers = append(enabledLoggers, galog.NewFileBackend(opts.LogFile))
	}

	if opts.LogToStderr {
		enabledLoggers = append(enabledLoggers, galog.NewStderrBackend(os.Stderr))
	}

	for _, logger := range enabledLoggers {
		galog.RegisterBackend(ctx, logger)
	}

	level, err := galog.ParseLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	galog.SetLevel(level)
	return nil
}

// Shutdown flushes and unregisters all backends.
func Shutdown() {
	galog.Shutdown(ShutdownTimeout)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
