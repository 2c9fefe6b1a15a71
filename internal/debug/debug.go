package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "ACE_DEBUG"

var (
	mu      sync.Mutex
	logFile *os.File
	logger  = newLogger(os.Stderr, log.WarnLevel)
)

func init() {
	if path := os.Getenv(EnvVar); path != "" {
		if err := Init(path); err != nil {
			logger.Warn("debug log disabled", "path", path, "err", err)
		}
	}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "ace",
		ReportTimestamp: level == log.DebugLevel,
		TimeFormat:      "15:04:05.000",
	})
}

// Init redirects logging to the file at path and lowers the level to debug.
// If path is empty, uses "ace-debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = "ace-debug.log"
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = newLogger(f, log.DebugLevel)
	return nil
}

// Close closes the debug log file and falls back to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	logger = newLogger(os.Stderr, log.WarnLevel)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// SetOutput replaces the logger, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, logger.GetLevel())
}

// SetLevel changes the minimum level that is written.
func SetLevel(level log.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetLevel(level)
}

// ParseLevel converts a level name such as "debug" or "warn".
func ParseLevel(name string) (log.Level, error) {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.WarnLevel, fmt.Errorf("parse log level %q: %w", name, err)
	}
	return level, nil
}

// Logger returns the current logger.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	Logger().Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	Logger().Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	Logger().Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...any) {
	Logger().Error(msg, keyvals...)
}
