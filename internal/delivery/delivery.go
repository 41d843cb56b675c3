// Package delivery writes rendered forms to local outputs.
package delivery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"reimburse/internal/core"
)

// Dir writes each form to <dir>/<username>.txt, replacing older output.
type Dir struct {
	path string
}

func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Deliver(ctx context.Context, f core.RenderedForm) error {
	name := FileName(f.Username)
	target := filepath.Join(d.path, name)
	if err := os.WriteFile(target, []byte(f.Body+"\n"), 0o644); err != nil {
		return fmt.Errorf("write form %s: %w", name, err)
	}
	slog.InfoContext(ctx, "Wrote reimbursement form", "path", target, "username", f.Username)
	return nil
}

// FileName maps a username to a safe file name.
func FileName(username string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, strings.TrimSpace(username))
	clean = strings.Trim(clean, ".")
	if clean == "" {
		clean = "unknown"
	}
	return clean + ".txt"
}

// Writer prints forms one after another, separated by a blank line.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Deliver(_ context.Context, f core.RenderedForm) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := fmt.Fprintf(w.w, "%s\n\n", f.Body); err != nil {
		return fmt.Errorf("print form for %s: %w", f.Username, err)
	}
	return nil
}
