// Package extractor routes text extraction to the reader for each file kind.
package extractor

import (
	"context"
	"fmt"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/ports"
)

type Router struct {
	byKind map[domain.FileKind]ports.TextExtractor
}

func NewRouter(byKind map[domain.FileKind]ports.TextExtractor) *Router {
	return &Router{byKind: byKind}
}

func (r *Router) ExtractText(ctx context.Context, file domain.SupportedFile, maxChars int) (string, error) {
	extractor, ok := r.byKind[file.Kind]
	if !ok || extractor == nil {
		return "", domain.WrapError(domain.ErrUnsupported, "extract text", fmt.Errorf("no text reader for %s files", file.Kind))
	}
	return extractor.ExtractText(ctx, file, maxChars)
}
