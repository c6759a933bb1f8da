/*
Package logging holds the process wide structured logger.

Call Init once at startup to pick level, format and destination. Until
then GetLogger hands out a logger that only reports warnings and errors
on stderr, so library use stays quiet.

	log := logging.WithTable("people")
	log.Debug("record appended", "index", 3)
*/
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

import (
	"github.com/timtadh/xbase/errors"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

type Config struct {
	Level Level
	// OutputPath is a file to append to. Empty means stderr.
	OutputPath string
	// Format is "json" or "text".
	Format string
}

var (
	logger   *slog.Logger
	logFile  *os.File
	loggerMu sync.RWMutex
)

func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l, nil
	}
	return "", errors.Errorf("unknown log level '%s'", s)
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Init replaces the process logger. A file opened by an earlier Init is
// closed.
func Init(config Config) error {
	var writer io.Writer = os.Stderr
	var file *os.File
	if config.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0o750); err != nil {
			return err
		}
		f, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		writer = f
		file = f
	}

	opts := &slog.HandlerOptions{Level: config.Level.slog()}
	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	case "", "text":
		handler = slog.NewTextHandler(writer, opts)
	default:
		if file != nil {
			file.Close()
		}
		return errors.Errorf("unknown log format '%s'", config.Format)
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logger = slog.New(handler)
	logFile = file
	return nil
}

// Close releases the log file, if any, and falls back to the default
// logger.
func Close() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	var err error
	if logFile != nil {
		err = logFile.Close()
		logFile = nil
	}
	logger = nil
	return err
}

func GetLogger() *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return logger
}

// WithTable returns a logger that tags every entry with the table name.
func WithTable(name string) *slog.Logger {
	return GetLogger().With("table", name)
}
