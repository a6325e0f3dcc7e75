// Package mupdf rasterizes PDF pages with the MuPDF bindings.
package mupdf

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

type Rasterizer struct{}

func New() *Rasterizer {
	return &Rasterizer{}
}

func (r *Rasterizer) PageCount(ctx context.Context, pdfPath string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", pdfPath, err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// RenderPage writes the zero-based page as a PNG at the given DPI.
func (r *Rasterizer) RenderPage(ctx context.Context, pdfPath string, pageIndex, dpi int, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return fmt.Errorf("open pdf %s: %w", pdfPath, err)
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return fmt.Errorf("page %d out of range (document has %d pages)", pageIndex+1, doc.NumPage())
	}
	img, err := doc.ImageDPI(pageIndex, float64(dpi))
	if err != nil {
		return fmt.Errorf("render page %d: %w", pageIndex+1, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode page %d: %w", pageIndex+1, err)
	}
	return f.Close()
}
