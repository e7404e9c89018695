package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string, err error)
	Debug(msg string)
	With(key string, value any) Logger
}

type FarkleLogger struct {
	logger *slog.Logger
}

var level = new(slog.LevelVar)

// SetLevel changes the level of every logger created by this package.
// Unknown names fall back to info.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

func New(loggerName string) Logger {
	return NewWithWriter(loggerName, os.Stdout)
}

func NewWithWriter(loggerName string, w io.Writer) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	attrs := []slog.Attr{slog.String("logger", loggerName)}
	h := handler.WithAttrs(attrs)
	logger := slog.New(h)
	return FarkleLogger{logger}
}

func (fl FarkleLogger) Info(msg string) {
	fl.logger.Info(msg)
}

func (fl FarkleLogger) Warn(msg string) {
	fl.logger.Warn(msg)
}

func (fl FarkleLogger) Error(msg string, err error) {
	if err != nil {
		e := slog.String("error", err.Error())
		fl.logger.Error(msg, e)
		return
	}
	fl.logger.Error(msg)
}

func (fl FarkleLogger) Debug(msg string) {
	fl.logger.Debug(msg)
}

func (fl FarkleLogger) With(key string, value any) Logger {
	return FarkleLogger{fl.logger.With(key, value)}
}
