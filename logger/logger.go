// Package logger wraps zerolog so every other package logs the same way.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/receiptwirehq/core/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*zerolog.Logger
}

var (
	logger Logger
	once   sync.Once
)

// Get returns the process-wide logger, creating it on first call. Console
// output is always on; a rotating file writer is added when LOG_FILENAME is
// set. Dev environment forces trace level.
func Get(cfg config.AppConfig) *Logger {
	once.Do(func() {
		writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Stamp}}

		if cfg.LogFilename != "" {
			writers = append(writers, &lumberjack.Logger{Filename: cfg.LogFilename})
		}

		level := zerolog.InfoLevel
		if cfg.LogConsoleLevel != "" {
			parsed, err := zerolog.ParseLevel(cfg.LogConsoleLevel)
			if err == nil {
				level = parsed
			}
		}

		if cfg.AppEnv == "dev" {
			level = zerolog.TraceLevel
		}

		zerolog.SetGlobalLevel(level)

		zl := zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
		logger = Logger{&zl}
	})

	return &logger
}
