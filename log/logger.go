package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	mu     *sync.Mutex
	writer io.Writer

	Name  string
	Level LogLevel

	TimeFormat string
	File       string
	NoColor    bool
	JSON       bool
	NoTerminal bool
	Rotation   *LoggerRotation
}

type LoggerRotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type LoggerOption func(*Logger)

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// WithFile additionally writes log lines into a rotated file.
func WithFile(file string) LoggerOption {
	return func(l *Logger) {
		l.File = file
	}
}

// WithJSON switches the output to one JSON object per line.
func WithJSON() LoggerOption {
	return func(l *Logger) {
		l.JSON = true
	}
}

// WithoutColor disables terminal escape sequences.
func WithoutColor() LoggerOption {
	return func(l *Logger) {
		l.NoColor = true
	}
}

// WithoutTerminal stops writing to stderr. Without a file nothing is written.
func WithoutTerminal() LoggerOption {
	return func(l *Logger) {
		l.NoTerminal = true
	}
}

// WithWriter replaces the terminal writer, mostly used by tests.
func WithWriter(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.writer = w
		l.NoColor = true
	}
}

func NewLogger(name string, level LogLevel, opts ...LoggerOption) *Logger {
	l := &Logger{
		mu:    &sync.Mutex{},
		Name:  name,
		Level: level,

		TimeFormat: "2006-01-02 15:04:05",
		Rotation: &LoggerRotation{
			MaxSize:    128,
			MaxBackups: 5,
			MaxAge:     16,
			Compress:   false,
		},
	}

	for _, opt := range opts {
		opt(l)
	}

	l.setupWriter()

	return l
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLogger("", Fatal+1, WithWriter(io.Discard))
}

func (l *Logger) setupWriter() {
	var writers []io.Writer

	switch {
	case l.NoTerminal:
		l.NoColor = true
	case l.writer != nil:
		writers = append(writers, l.writer)
	default:
		if !supportsColor(os.Stderr) {
			l.NoColor = true
		}
		writers = append(writers, os.Stderr)
	}

	if l.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.Rotation.MaxSize,
			MaxBackups: l.Rotation.MaxBackups,
			MaxAge:     l.Rotation.MaxAge,
			Compress:   l.Rotation.Compress,
		}
		writers = append(writers, fileWriter)
		// Terminal escapes would end up in the file otherwise
		l.NoColor = true
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	l.writer = io.MultiWriter(writers...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.Level {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	formattedMsg := fmt.Sprintf(msg, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Message:   formattedMsg,
		}
		if l.Name != "" {
			entry.Service = l.Name
		}

		jsonBytes, _ := json.Marshal(entry)
		fmt.Fprintf(l.writer, "%s\n", jsonBytes)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.Name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.Name)
		}

		line := fmt.Sprintf("%s %s", prefix, formattedMsg)
		if !l.NoColor {
			line = colorize(level, line)
		}
		fmt.Fprintln(l.writer, line)
	}

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

func (l *Logger) Named(name string) *Logger {
	if l.Name != "" {
		name = fmt.Sprintf("%s/%s", l.Name, name)
	}

	return &Logger{
		mu:     l.mu,
		writer: l.writer, // Share the same writer

		Name:  name,
		Level: l.Level,

		TimeFormat: l.TimeFormat,
		File:       l.File,
		NoColor:    l.NoColor,
		NoTerminal: l.NoTerminal,
		JSON:       l.JSON,
		Rotation:   l.Rotation,
	}
}
