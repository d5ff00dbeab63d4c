// Package logging builds the ambient diagnostic logger used for startup
// messages, provider failures, and sink I/O errors — distinct from the
// eventsink's fixed reading/transition/fault/rule_violation line protocol.
// It follows the chaos-utils example repo's own logger wrapper
// (pkg/reporting/logger.go): a small struct around zerolog.Logger,
// switchable between JSON and console output.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Format selects the rendering of log lines.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Config configures a Logger.
type Config struct {
	Level  zerolog.Level
	Format Format
	Output io.Writer
}

// Logger wraps zerolog.Logger with a stable run_id field so diagnostic
// lines from one supervisor run can be correlated across an aggregated
// log store. run_id never appears in eventsink's JSON event lines.
type Logger struct {
	zerolog.Logger
	RunID uuid.UUID
}

// New builds a Logger from cfg. A zero Config yields JSON logging to
// stderr at debug level (zerolog's zero Level is DebugLevel).
func New(cfg Config) Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	output := cfg.Output
	if cfg.Format == FormatConsole {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339, NoColor: true}
	}

	runID := uuid.New()
	logger := zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Str("run_id", runID.String()).
		Logger()

	return Logger{Logger: logger, RunID: runID}
}
