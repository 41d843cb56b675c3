package delivery

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"reimburse/internal/core"
)

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"alice":         "alice.txt",
		"a.b-c_d":       "a.b-c_d.txt",
		"../etc/passwd": "_etc_passwd.txt",
		"bob smith":     "bob_smith.txt",
		"":              "unknown.txt",
		"..":            "unknown.txt",
	}
	for in, want := range cases {
		if got := FileName(in); got != want {
			t.Errorf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDirDeliver(t *testing.T) {
	out := filepath.Join(t.TempDir(), "forms")
	d, err := NewDir(out)
	if err != nil {
		t.Fatalf("new dir: %v", err)
	}
	if err := d.Deliver(context.Background(), core.RenderedForm{Username: "alice", Body: "form body"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, "alice.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "form body\n" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestWriterDeliver(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	ctx := context.Background()
	_ = w.Deliver(ctx, core.RenderedForm{Username: "a", Body: "one"})
	_ = w.Deliver(ctx, core.RenderedForm{Username: "b", Body: "two"})
	if buf.String() != "one\n\ntwo\n\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
