package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/smartname/internal/config"
)

func TestNewWiresUseCases(t *testing.T) {
	cfg := config.Defaults()
	cfg.ScratchDir = t.TempDir()
	cfg.OCRScratchDir = t.TempDir()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "smartname.prom")

	app, err := New(context.Background(), cfg, "smartname")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if app.Organizer == nil || app.Analyzer == nil || app.Transcriber == nil || app.Logger == nil {
		t.Fatalf("app not fully wired: %+v", app)
	}

	app.Close()
	if _, err := os.Stat(cfg.MetricsFile); err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.CaseStyle = "shouting"
	if _, err := New(context.Background(), cfg, "smartname"); err == nil {
		t.Fatalf("expected config validation error")
	}
}
