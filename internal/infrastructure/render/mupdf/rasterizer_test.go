package mupdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderPageMissingFile(t *testing.T) {
	r := New()
	out := filepath.Join(t.TempDir(), "page.png")
	if err := r.RenderPage(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), 0, 150, out); err == nil {
		t.Fatalf("expected error for missing pdf")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("no image should be written, stat err = %v", err)
	}
}

func TestRenderPageHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().PageCount(ctx, "whatever.pdf"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
