// Package pdftext reads the embedded text layer of a PDF.
package pdftext

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/smartname/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText concatenates page text until maxChars characters are collected.
// Scanned documents without a text layer yield "".
func (e *Extractor) ExtractText(ctx context.Context, file domain.SupportedFile, maxChars int) (string, error) {
	var (
		text string
		err  error
	)
	withStdoutDiscarded(func() {
		text, err = e.extract(ctx, file, maxChars)
	})
	return text, err
}

func (e *Extractor) extract(ctx context.Context, file domain.SupportedFile, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = domain.DefaultMaxSnippetChars
	}
	f, reader, err := pdf.Open(file.Path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d text: %w", i, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
		if utf8.RuneCountInString(b.String()) > maxChars {
			break
		}
	}
	return domain.Snippet(strings.TrimSpace(b.String()), maxChars), nil
}

var stdoutMu sync.Mutex

// withStdoutDiscarded runs fn with os.Stdout pointed at the null device. The
// pdf reader prints parser diagnostics to stdout, which carries the rename
// report and the MCP stdio stream.
func withStdoutDiscarded(fn func()) {
	stdoutMu.Lock()
	defer stdoutMu.Unlock()

	null, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		fn()
		return
	}
	saved := os.Stdout
	os.Stdout = null
	defer func() {
		os.Stdout = saved
		_ = null.Close()
	}()
	fn()
}
