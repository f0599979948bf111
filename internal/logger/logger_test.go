package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(New(&buf, &Options{TimeFormat: "-"}))
	l.Info("parsed", "file", "a b.json", "bytes", 12)
	if got := buf.String(); got != "INFO  parsed file=\"a b.json\" bytes=12\n" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestPrettyHandler_LevelAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(New(&buf, &Options{TimeFormat: "-", Level: slog.LevelWarn}))
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level: %q", buf.String())
	}
	l.With("cmd", "format").WithGroup("opt").Warn("slow", "indent", 2)
	if got := buf.String(); got != "WARN  slow cmd=format opt.indent=2\n" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestPrettyHandler_Colorize(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(New(&buf, &Options{TimeFormat: "-", Colorize: true}))
	l.Error("boom")
	s := buf.String()
	if !strings.HasPrefix(s, Red) || !strings.HasSuffix(s, Reset+"\n") {
		t.Fatalf("expected red line, got %q", s)
	}
}
