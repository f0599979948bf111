// Package logger provides the slog handler used by the jsonkit CLI.
//
// Records are written as one line: time, level, message, then key=value
// attributes, optionally coloured by level.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"
)

// ANSI escape codes.
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	White  = "\033[97m"
)

// Options configures a PrettyHandler.
type Options struct {
	Level    slog.Leveler
	Colorize bool
	// TimeFormat defaults to "15:04:05". Set to "-" to omit the time.
	TimeFormat string
}

// PrettyHandler is a line-oriented slog.Handler.
type PrettyHandler struct {
	opts   Options
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
	out    io.Writer
}

// New returns a PrettyHandler writing to w. A nil opts logs at info level
// without colour.
func New(w io.Writer, opts *Options) *PrettyHandler {
	h := &PrettyHandler{mu: &sync.Mutex{}, out: w}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	if h.opts.TimeFormat == "" {
		h.opts.TimeFormat = "15:04:05"
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	if h.opts.Colorize {
		buf = append(buf, levelColor(r.Level)...)
	}
	if !r.Time.IsZero() && h.opts.TimeFormat != "-" {
		buf = append(buf, r.Time.Format(h.opts.TimeFormat)...)
		buf = append(buf, ' ')
	}
	buf = fmt.Appendf(buf, "%-5s %s", r.Level, r.Message)
	for _, a := range h.attrs {
		buf = appendAttr(buf, a, nil)
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, a, h.groups)
		return true
	})
	if h.opts.Colorize {
		buf = append(buf, Reset...)
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		if len(h.groups) > 0 {
			a.Key = strings.Join(h.groups, ".") + "." + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(slices.Clone(h.groups), name)
	return &h2
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return Red
	case l >= slog.LevelWarn:
		return Yellow
	case l < slog.LevelInfo:
		return Cyan
	}
	return White
}

func appendAttr(buf []byte, a slog.Attr, groups []string) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			groups = append(slices.Clone(groups), a.Key)
		}
		for _, ga := range a.Value.Group() {
			buf = appendAttr(buf, ga, groups)
		}
		return buf
	}
	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	buf = append(buf, ' ')
	buf = appendMaybeQuoted(buf, key)
	buf = append(buf, '=')
	if a.Value.Kind() == slog.KindTime {
		return a.Value.Time().AppendFormat(buf, time.RFC3339Nano)
	}
	return appendMaybeQuoted(buf, a.Value.String())
}

func appendMaybeQuoted(buf []byte, s string) []byte {
	if needsQuoting(s) {
		return fmt.Appendf(buf, "%q", s)
	}
	return append(buf, s...)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}
