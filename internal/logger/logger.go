package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DefaultLogFile is used when Output is "file" and no File is configured.
const DefaultLogFile = "review-relay.log"

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
	File   string `mapstructure:"file"`
}

// Writer resolves the configured output destination.
func (c Config) Writer() io.Writer {
	switch c.Output {
	case "stderr":
		return os.Stderr
	case "file":
		path := c.File
		if path == "" {
			path = DefaultLogFile
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
			return os.Stdout
		}
		return f
	default:
		return os.Stdout
	}
}

// NewLogger builds a slog logger from cfg. A nil output falls back to
// cfg.Writer(). Unknown levels resolve to info.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = cfg.Writer()
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
