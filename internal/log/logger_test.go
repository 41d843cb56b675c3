package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, slog.LevelInfo, ComponentForm)
	l.Info("rendered", FieldUsername, "alice")
	l.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "component=form") || !strings.Contains(out, "username=alice") {
		t.Fatalf("missing fields: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record written at info level: %q", out)
	}
	if l.WithComponent(ComponentSheets).Component() != ComponentSheets {
		t.Fatal("WithComponent did not switch component")
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithComponent(ComponentForm).
		WithOperation(OpParse).
		WithError(errors.New("boom")).
		WithReimbursement("alice", "", "Food")
	if f[FieldError] != "boom" || f[FieldPurpose] != "Food" || f[FieldUsername] != "alice" {
		t.Fatalf("unexpected fields: %v", f)
	}
	if _, ok := f[FieldEvent]; ok {
		t.Fatal("empty event should be omitted")
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("slice length: %d", len(f.ToSlice()))
	}
	if len(NewFields().WithError(nil)) != 0 {
		t.Fatal("nil error should add nothing")
	}
}
