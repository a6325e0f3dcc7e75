package extractor

import (
	"context"
	"testing"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/ports"
)

type staticExtractor string

func (s staticExtractor) ExtractText(context.Context, domain.SupportedFile, int) (string, error) {
	return string(s), nil
}

func TestRouterDispatchesByKind(t *testing.T) {
	router := NewRouter(map[domain.FileKind]ports.TextExtractor{
		domain.KindText: staticExtractor("text"),
		domain.KindPDF:  staticExtractor("pdf"),
	})

	got, err := router.ExtractText(context.Background(), domain.SupportedFile{Path: "a.pdf", Kind: domain.KindPDF}, 10)
	if err != nil || got != "pdf" {
		t.Fatalf("ExtractText() = %q, %v", got, err)
	}

	_, err = router.ExtractText(context.Background(), domain.SupportedFile{Path: "a.mov", Kind: domain.KindVideo}, 10)
	if !domain.IsKind(err, domain.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
