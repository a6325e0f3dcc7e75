package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/ports"
)

const (
	DefaultOCRModel  = "benhaotang/Nanonets-OCR-s:latest"
	DefaultOCRPrompt = "<image>\nPlease transcribe this page preserving layout in markdown."
	DefaultOCRDPI    = 220
	pagePlaceholder  = "{page}"
)

// Transcriber renders PDF pages and transcribes each one with a vision model.
type Transcriber struct {
	rasterizer ports.Rasterizer
	client     ports.InferenceClient
	store      ports.ObjectStorage
	scratch    ports.ScratchSpace
	logger     *slog.Logger
}

func NewTranscriber(
	rasterizer ports.Rasterizer,
	client ports.InferenceClient,
	store ports.ObjectStorage,
	scratch ports.ScratchSpace,
	logger *slog.Logger,
) *Transcriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transcriber{rasterizer: rasterizer, client: client, store: store, scratch: scratch, logger: logger}
}

func (uc *Transcriber) Transcribe(ctx context.Context, req domain.TranscribeRequest) (domain.TranscribeResult, error) {
	if strings.TrimSpace(req.PDFPath) == "" || strings.TrimSpace(req.OutputPath) == "" {
		return domain.TranscribeResult{}, domain.WrapError(domain.ErrInvalidInput, "transcribe", errors.New("pdf path and output path are required"))
	}
	req = withTranscribeDefaults(req)

	total, err := uc.rasterizer.PageCount(ctx, req.PDFPath)
	if err != nil {
		return domain.TranscribeResult{}, fmt.Errorf("count pages: %w", err)
	}
	pages := pageRange(total, req.StartPage, req.EndPage, req.MaxPages)
	if len(pages) == 0 {
		return domain.TranscribeResult{}, domain.WrapError(domain.ErrInvalidInput, "select pages",
			fmt.Errorf("no pages in range for a %d-page document", total))
	}

	stem := strings.TrimSuffix(filepath.Base(req.PDFPath), filepath.Ext(req.PDFPath))
	result := domain.TranscribeResult{OutputPath: req.OutputPath, Pages: pages}
	sections := make([]string, 0, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		imagePath, err := uc.scratch.Path(filepath.Join(stem, fmt.Sprintf("page_%04d.png", page)))
		if err != nil {
			return result, fmt.Errorf("prepare scratch path: %w", err)
		}
		if err := uc.rasterizer.RenderPage(ctx, req.PDFPath, page-1, req.DPI, imagePath); err != nil {
			return result, fmt.Errorf("render page %d: %w", page, err)
		}
		result.ImagePaths = append(result.ImagePaths, imagePath)

		text, err := uc.client.Generate(ctx, domain.InferenceRequest{
			Model:  req.Model,
			Prompt: pagePrompt(req.Prompt, page),
			Images: []string{imagePath},
			JSON:   req.JSON,
		})
		if err != nil {
			return result, fmt.Errorf("transcribe page %d: %w", page, err)
		}
		uc.logger.Info("page_transcribed", "pdf", req.PDFPath, "page", page, "chars", len(text))
		sections = append(sections, fmt.Sprintf("# Page %d\n%s\n", page, text))
	}

	if err := uc.store.Save(ctx, req.OutputPath, bytes.NewBufferString(strings.Join(sections, "\n"))); err != nil {
		return result, fmt.Errorf("write transcript: %w", err)
	}
	return result, nil
}

func withTranscribeDefaults(req domain.TranscribeRequest) domain.TranscribeRequest {
	if strings.TrimSpace(req.Model) == "" {
		req.Model = DefaultOCRModel
	}
	if strings.TrimSpace(req.Prompt) == "" {
		req.Prompt = DefaultOCRPrompt
	}
	if req.DPI <= 0 {
		req.DPI = DefaultOCRDPI
	}
	return req
}

// pageRange returns 1-based page numbers in [start, end] clamped to the
// document, capped at maxPages. Zero bounds are open.
func pageRange(total, start, end, maxPages int) []int {
	if start < 1 {
		start = 1
	}
	if end <= 0 || end > total {
		end = total
	}
	var pages []int
	for page := start; page <= end; page++ {
		if maxPages > 0 && len(pages) >= maxPages {
			break
		}
		pages = append(pages, page)
	}
	return pages
}

func pagePrompt(template string, page int) string {
	if !strings.Contains(template, pagePlaceholder) {
		template += "\n(Page " + pagePlaceholder + ")"
	}
	return strings.ReplaceAll(template, pagePlaceholder, strconv.Itoa(page))
}
