package pdftext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/smartname/internal/core/domain"
)

func TestExtractTextRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("definitely not a pdf"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := NewExtractor().ExtractText(context.Background(), domain.SupportedFile{Path: path, Kind: domain.KindPDF}, 100)
	if err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
}

func TestDiagnosticsDoNotReachStdout(t *testing.T) {
	capture, err := os.Create(filepath.Join(t.TempDir(), "stdout"))
	if err != nil {
		t.Fatalf("create capture: %v", err)
	}
	defer capture.Close()
	saved := os.Stdout
	os.Stdout = capture
	defer func() { os.Stdout = saved }()

	withStdoutDiscarded(func() {
		fmt.Println("DEBUG: bad content stream")
	})
	if os.Stdout != capture {
		t.Fatalf("stdout not restored")
	}
	fmt.Fprint(os.Stdout, "report")

	raw, err := os.ReadFile(capture.Name())
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	if string(raw) != "report" {
		t.Fatalf("stdout got %q", raw)
	}
}
