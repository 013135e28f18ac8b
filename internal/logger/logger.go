// internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects level and sink for the process logger.
type Config struct {
	Level      string `yaml:"level"`
	Debug      bool   `yaml:"debug"`
	Output     string `yaml:"output"`
	TimeFormat string `yaml:"time_format"`
}

var root zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	root = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init replaces the process logger. Safe to call once at startup only.
func Init(cfg Config) error {
	var out io.Writer = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	} else if cfg.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
	}

	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	root = zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = root

	return nil
}

// Get returns the process logger.
func Get() zerolog.Logger {
	return root
}

// WithComponent returns a child logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}

// NewTestLogger returns a disabled logger that discards everything.
func NewTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}
