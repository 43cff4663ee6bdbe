// Package logging builds the shell's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Options configures New.
type Options struct {
	// Level is the initial level name ("debug", "info", "warn", "error").
	Level string
	// Debug forces debug level regardless of Level.
	Debug bool
	// FilePath, when set, adds a JSON core appending to this file.
	FilePath string
	// Console disables the stderr core when false.
	Console bool
}

// Logger bundles the root logger with its adjustable level and run id.
type Logger struct {
	*zap.Logger
	Level zap.AtomicLevel
	RunID string

	file *os.File
}

// New builds a logger writing to stderr and, optionally, a log file.
// Every entry carries the run_id of this shell run.
func New(opts Options) (*Logger, error) {
	lvl := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if err := SetLevel(lvl, opts.Level); err != nil {
		return nil, err
	}
	if opts.Debug {
		lvl.SetLevel(zapcore.DebugLevel)
	}

	var cores []zapcore.Core
	if opts.Console {
		cores = append(cores, zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), lvl))
	}

	var file *os.File
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", opts.FilePath, err)
		}
		file = f
		cores = append(cores, zapcore.NewCore(fileEncoder(), zapcore.AddSync(f), lvl))
	}

	runID := uuid.NewString()
	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).
		With(zap.String("run_id", runID))

	return &Logger{Logger: logger, Level: lvl, RunID: runID, file: file}, nil
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.Logger.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// SetLevel applies a level name to lvl. An empty name leaves it unchanged.
func SetLevel(lvl zap.AtomicLevel, name string) error {
	if name == "" {
		return nil
	}
	parsed, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	lvl.SetLevel(parsed)
	return nil
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	if term.IsTerminal(int(os.Stderr.Fd())) {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func fileEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}
