package di

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/goliatone/nwdi-cpd/pkg/config"
)

// provideLogger creates a default structured logger writing text to stderr.
func provideLogger() Logger {
	return &slogAdapter{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})),
	}
}

// provideLoggerWithConfig creates a logger configured from the logging config.
// Respects log level, format (text/json), verbose, quiet and the optional rotated
// log file. The returned closer is non-nil when a log file was opened.
func provideLoggerWithConfig(cfg *config.Config, out io.Writer) (Logger, io.Closer) {
	if cfg == nil {
		return provideLogger(), nil
	}

	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer
	if cfg.Logging.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.Logging.File,
			MaxSize:    cfg.Logging.MaxSize,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAge:     cfg.Logging.MaxAge,
			Compress:   cfg.Logging.Compress,
		}
		out = file
		closer = file
	}

	opts := &slog.HandlerOptions{Level: logLevel(cfg.Logging)}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &slogAdapter{logger: slog.New(handler)}, closer
}

func logLevel(l config.LoggingConfig) slog.Level {
	if l.Quiet {
		return slog.LevelWarn
	}
	if l.Verbose {
		return slog.LevelDebug
	}
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slogAdapter adapts slog.Logger to implement our Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (s *slogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

func (s *slogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *slogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

func (s *slogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}
