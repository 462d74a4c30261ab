// Package logger wraps zerolog with the constructors the API uses.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger
type Logger struct {
	zerolog.Logger
	component string
}

// New creates a JSON logger writing to stdout. In dev mode output is
// human-readable console lines instead.
func New(level string, dev bool) *Logger {
	var out io.Writer = os.Stdout
	if dev {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	}
	return NewWithWriter(out, level)
}

// NewWithWriter creates a logger writing JSON lines to w
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	l := zerolog.New(w).Level(lvl).With().
		Str("service", "ma-helper").
		Timestamp().
		Logger()

	return &Logger{Logger: l}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithContext attaches l to ctx
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *zerolog.Ctx(ctx)}
}

// Component returns a child logger tagged with a component name
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.With().Str("component", name).Logger(), component: name}
}

// Ctx returns the request logger carried by ctx, tagged with l's component.
// Without a request logger l itself is returned.
func (l *Logger) Ctx(ctx context.Context) *Logger {
	reqLog := FromContext(ctx)
	if reqLog.GetLevel() == zerolog.Disabled {
		return l
	}
	if l.component == "" {
		return reqLog
	}
	return &Logger{
		Logger:    reqLog.With().Str("component", l.component).Logger(),
		component: l.component,
	}
}
