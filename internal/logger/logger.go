// Package logger owns the process-wide structured logger. Output goes to a
// rotating file under the config directory so it never corrupts the TUI.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger instance. It is nil until Init succeeds.
var Logger *log.Logger

var fileWriter *lumberjack.Logger

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Mirror copies debug output to stderr. Leave it off while the TUI
	// owns the terminal.
	Mirror bool
}

// Path returns the log file location for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", "wfdash.log")
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	logFile := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return err
	}

	Close()
	fileWriter = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = fileWriter
	if cfg.Debug && cfg.Mirror {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "wfdash",
	})

	return nil
}

// Close flushes and releases the log file.
func Close() {
	if fileWriter != nil {
		_ = fileWriter.Close()
		fileWriter = nil
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
