// Package logger provides the shared logging framework.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level aliases the zerolog level type.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config is the logging configuration.
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init initializes the global logger. Subsequent calls are no-ops.
func Init(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(cfg.Level))

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			output = os.Stdout
			if cfg.FilePath != "" {
				if f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
					output = f
				}
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

// parseLevel maps the config string to a zerolog level.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger, initializing defaults if needed.
func Get() *zerolog.Logger {
	if logger.GetLevel() == zerolog.Disabled {
		Init(DefaultConfig())
	}
	return &logger
}

// WithContext derives a logger carrying request-scoped fields.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()
	if reqID, ok := ctx.Value("request_id").(string); ok {
		l = l.With().Str("request_id", reqID).Logger()
	}
	return &l
}

// Debug starts a debug event.
func Debug() *zerolog.Event { return Get().Debug() }

// Info starts an info event.
func Info() *zerolog.Event { return Get().Info() }

// Warn starts a warning event.
func Warn() *zerolog.Event { return Get().Warn() }

// Error starts an error event.
func Error() *zerolog.Event { return Get().Error() }

// Fatal starts a fatal event.
func Fatal() *zerolog.Event { return Get().Fatal() }

// WithError starts an error event with the given error attached.
func WithError(err error) *zerolog.Event { return Get().Error().Err(err) }

// RosterLogger is the roster engine's component logger.
type RosterLogger struct {
	base *zerolog.Logger
}

// NewRosterLogger creates an engine logger.
func NewRosterLogger() *RosterLogger {
	l := Get().With().Str("component", "roster").Logger()
	return &RosterLogger{base: &l}
}

// StartRun records the start of a roster generation run.
func (l *RosterLogger) StartRun(role, monthKey string, staff, rows int) {
	l.base.Info().
		Str("role", role).
		Str("month", monthKey).
		Int("staff", staff).
		Int("rows", rows).
		Msg("roster generation started")
}

// UnmetNeed records a slot that could not be fully filled.
func (l *RosterLogger) UnmetNeed(day int, label string, required, assigned int) {
	l.base.Warn().
		Int("day", day).
		Str("row", label).
		Int("required", required).
		Int("assigned", assigned).
		Msg("unmet need")
}

// RunComplete records the end of a generation run.
func (l *RosterLogger) RunComplete(role, monthKey string, duration time.Duration, assigned, issues int) {
	l.base.Info().
		Str("role", role).
		Str("month", monthKey).
		Dur("duration", duration).
		Int("assigned", assigned).
		Int("issues", issues).
		Msg("roster generation complete")
}
