package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ServiceName is attached to every record as the "service" attribute.
const ServiceName = "pokedex"

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
}

// Validate rejects unknown levels and formats. Empty values are accepted and
// fall back to INFO and JSON.
func (c LoggerConfig) Validate() error {
	if _, ok := levels[strings.ToUpper(c.Level)]; c.Level != "" && !ok {
		return fmt.Errorf("unknown log level %q", c.Level)
	}

	switch strings.ToLower(c.Format) {
	case "", FormatJSON, FormatText:
		return nil
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
}

// NewLogger creates a slog.Logger writing to w.
// The level defaults to INFO if invalid or empty.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{
		AddSource:   config.Source,
		Level:       parseLevel(config.Level),
		ReplaceAttr: nil,
	}

	var handler slog.Handler
	if strings.EqualFold(config.Format, FormatText) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}

	return slog.New(handler).With(slog.String("service", ServiceName))
}

var levels = map[string]slog.Level{ //nolint:gochecknoglobals
	"DEBUG":   slog.LevelDebug,
	"INFO":    slog.LevelInfo,
	"WARN":    slog.LevelWarn,
	"WARNING": slog.LevelWarn,
	"ERROR":   slog.LevelError,
}

func parseLevel(level string) slog.Level {
	if parsed, ok := levels[strings.ToUpper(level)]; ok {
		return parsed
	}

	return slog.LevelInfo
}
