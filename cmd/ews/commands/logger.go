package commands

import (
	"io"
	"log/slog"
	"sort"

	"github.com/fivetwenty-io/ews-client/pkg/ews"
)

// slogLogger adapts a *slog.Logger to the ews.Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

// newLogger returns a text logger on w. verbose lowers the level to debug.
func newLogger(w io.Writer, verbose bool) ews.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return slogLogger{logger: slog.New(handler).With("component", "ews/findfolder")}
}

func (s slogLogger) Debug(msg string, fields map[string]interface{}) {
	s.logger.Debug(msg, attrs(fields)...)
}

func (s slogLogger) Info(msg string, fields map[string]interface{}) {
	s.logger.Info(msg, attrs(fields)...)
}

func (s slogLogger) Warn(msg string, fields map[string]interface{}) {
	s.logger.Warn(msg, attrs(fields)...)
}

func (s slogLogger) Error(msg string, fields map[string]interface{}) {
	s.logger.Error(msg, attrs(fields)...)
}

// attrs flattens fields in key order so log lines are stable.
func attrs(fields map[string]interface{}) []any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}
