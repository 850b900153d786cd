// Package logging provides the process-wide logger: colored leveled text on
// stdout plus an optional JSON file sink.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config captures logging configuration options. Dir may be empty, in which
// case no file sink is opened.
type Config struct {
	Level    string
	Dir      string
	Filename string
}

var (
	colorReset = "\x1b[0m"
	colorTime  = "\x1b[90m"
	colorDebug = "\x1b[36m"
	colorInfo  = "\x1b[32m"
	colorWarn  = "\x1b[33m"
	colorError = "\x1b[31m"
)

// textHandler renders colored single-line records for interactive output.
type textHandler struct {
	writer io.Writer
	level  slog.Level
	mu     sync.Mutex
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timeStr := r.Time.Format("2006-01-02 15:04:05.000")

	var levelStr, levelColor string
	switch r.Level {
	case slog.LevelDebug:
		levelStr, levelColor = "DEBUG", colorDebug
	case slog.LevelWarn:
		levelStr, levelColor = "WARN", colorWarn
	case slog.LevelError:
		levelStr, levelColor = "ERROR", colorError
	default:
		levelStr, levelColor = "INFO", colorInfo
	}

	output := fmt.Sprintf("%s[%s]%s %s[%s]%s %s",
		colorTime, timeStr, colorReset,
		levelColor, levelStr, colorReset,
		r.Message)

	if r.NumAttrs() > 0 {
		output += " {"
		r.Attrs(func(a slog.Attr) bool {
			output += fmt.Sprintf(" %s=%v", a.Key, a.Value)
			return true
		})
		output += " }"
	}
	output += "\n"

	_, err := h.writer.Write([]byte(output))
	return err
}

func (h *textHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *textHandler) WithGroup(string) slog.Handler      { return h }

// Logger writes every record to the console text handler and, when
// configured, to a JSON log file.
type Logger struct {
	textLogger *slog.Logger
	jsonLogger *slog.Logger
	logFile    *os.File
	level      slog.Level
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// New creates a Logger from the given config.
func New(cfg Config) (*Logger, error) {
	level := parseLevel(cfg.Level)

	logger := &Logger{
		textLogger: slog.New(&textHandler{writer: os.Stdout, level: level}),
		level:      level,
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		name := cfg.Filename
		if name == "" {
			name = "storeicons.log"
		}
		file, err := os.OpenFile(filepath.Join(cfg.Dir, name),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.logFile = file
		logger.jsonLogger = slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level: level,
		}))
	}

	return logger, nil
}

func (l *Logger) log(level slog.Level, msg string, args ...interface{}) {
	if len(args) > 0 && strings.Contains(msg, "%") {
		msg = fmt.Sprintf(msg, args...)
	}
	ctx := context.Background()
	l.textLogger.LogAttrs(ctx, level, msg)
	if l.jsonLogger != nil {
		l.jsonLogger.LogAttrs(ctx, level, msg)
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(slog.LevelDebug, msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(slog.LevelInfo, msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(slog.LevelError, msg, args...)
}

// Slog exposes the structured console logger for integrations that want the
// slog API directly.
func (l *Logger) Slog() *slog.Logger {
	return l.textLogger
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}
