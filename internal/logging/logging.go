// Package logging builds the application slog logger: coloured console output
// via tint, JSON lines to a file, or both.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Output modes.
const (
	OutputConsole = "console"
	OutputFile    = "file"
	OutputBoth    = "both"
)

// Options configures New.
type Options struct {
	Level    string
	Output   string
	FilePath string
	// Console is the console destination (default os.Stderr).
	Console io.Writer
	// NoColor disables ANSI colours. It is forced on when stderr is not a terminal.
	NoColor bool
}

// New returns a logger for the given options and a function that closes the log
// file, if one was opened.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := ParseLevel(opts.Level)
	console, noColor := opts.Console, opts.NoColor
	if console == nil {
		console = os.Stderr
		noColor = noColor || !term.IsTerminal(int(os.Stderr.Fd()))
	}
	noop := func() error { return nil }

	switch strings.ToLower(opts.Output) {
	case OutputFile:
		file, err := openLogFile(opts.FilePath)
		if err != nil {
			return nil, noop, err
		}
		return slog.New(jsonHandler(file, level)), file.Close, nil
	case OutputBoth:
		file, err := openLogFile(opts.FilePath)
		if err != nil {
			return nil, noop, err
		}
		h := fanout{consoleHandler(console, level, noColor), jsonHandler(file, level)}
		return slog.New(h), file.Close, nil
	default:
		return slog.New(consoleHandler(console, level, noColor)), noop, nil
	}
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func consoleHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// diagnostics without a file, column or row leave those fields unset
			switch a.Key {
			case "file", "column":
				if a.Value.Kind() == slog.KindString && a.Value.String() == "" {
					return slog.Attr{}
				}
			case "row":
				if a.Value.Kind() == slog.KindInt64 && a.Value.Int64() == 0 {
					return slog.Attr{}
				}
			}
			return a
		},
	})
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, errors.New("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
