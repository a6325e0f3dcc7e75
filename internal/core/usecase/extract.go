package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/ports"
)

const (
	DefaultRenderDPI = 150
	frameOffset      = time.Second
)

type extractFunc func(ctx context.Context, file domain.SupportedFile) (domain.Artifact, error)

// strategy bundles everything the pipeline needs to know about one file kind.
type strategy struct {
	extract  extractFunc
	prompts  kindPrompts
	fallback string
}

type ContentExtractorConfig struct {
	RenderDPI       int
	MaxSnippetChars int
}

// ContentExtractor turns a supported file into an inference-ready artifact.
// Artifacts are produced fresh on every call.
type ContentExtractor struct {
	rasterizer ports.Rasterizer
	converter  ports.Converter
	text       ports.TextExtractor
	scratch    ports.ScratchSpace
	logger     *slog.Logger
	cfg        ContentExtractorConfig
	strategies map[domain.FileKind]strategy
}

func NewContentExtractor(
	rasterizer ports.Rasterizer,
	converter ports.Converter,
	text ports.TextExtractor,
	scratch ports.ScratchSpace,
	logger *slog.Logger,
	cfg ContentExtractorConfig,
) *ContentExtractor {
	if cfg.RenderDPI <= 0 {
		cfg.RenderDPI = DefaultRenderDPI
	}
	if cfg.MaxSnippetChars <= 0 {
		cfg.MaxSnippetChars = domain.DefaultMaxSnippetChars
	}
	if logger == nil {
		logger = slog.Default()
	}
	uc := &ContentExtractor{
		rasterizer: rasterizer,
		converter:  converter,
		text:       text,
		scratch:    scratch,
		logger:     logger,
		cfg:        cfg,
	}
	uc.strategies = map[domain.FileKind]strategy{
		domain.KindImage:       {extract: uc.extractImage, fallback: domain.OtherCategory},
		domain.KindPDF:         {extract: uc.extractPDF, fallback: domain.OtherCategory},
		domain.KindDocument:    {extract: uc.extractOffice, fallback: "documents"},
		domain.KindSlides:      {extract: uc.extractOffice, fallback: "presentations"},
		domain.KindSpreadsheet: {extract: uc.extractOffice, fallback: "documents"},
		domain.KindVideo:       {extract: uc.extractVideo, fallback: domain.OtherCategory},
		domain.KindText:        {extract: uc.extractText, fallback: "code"},
	}
	for kind, s := range uc.strategies {
		s.prompts = promptsByKind[kind]
		uc.strategies[kind] = s
	}
	return uc
}

func (uc *ContentExtractor) strategyFor(file domain.SupportedFile) (strategy, error) {
	s, ok := uc.strategies[file.Kind]
	if !ok {
		return strategy{}, domain.WrapError(domain.ErrUnsupported, "select strategy", fmt.Errorf("%s", file.Path))
	}
	return s, nil
}

// Extract returns an artifact with exactly one of image or text populated,
// or an error wrapping domain.ErrNoArtifact when every path failed.
func (uc *ContentExtractor) Extract(ctx context.Context, file domain.SupportedFile) (domain.Artifact, error) {
	s, err := uc.strategyFor(file)
	if err != nil {
		return domain.Artifact{}, err
	}
	art, err := s.extract(ctx, file)
	if err != nil {
		return domain.Artifact{}, err
	}
	if art.Empty() {
		return domain.Artifact{}, domain.WrapError(domain.ErrNoArtifact, "extract "+string(file.Kind), errors.New("empty artifact"))
	}
	return art, nil
}

func (uc *ContentExtractor) extractImage(_ context.Context, file domain.SupportedFile) (domain.Artifact, error) {
	return domain.ImageArtifact(file.Path), nil
}

func (uc *ContentExtractor) extractPDF(ctx context.Context, file domain.SupportedFile) (domain.Artifact, error) {
	imagePath, renderErr := uc.renderFirstPage(ctx, file.Path, file.Stem())
	if renderErr == nil {
		return domain.ImageArtifact(imagePath), nil
	}
	uc.logger.Warn("render_failed", "path", file.Path, "error", renderErr)
	return uc.textFallback(ctx, file, renderErr)
}

func (uc *ContentExtractor) extractOffice(ctx context.Context, file domain.SupportedFile) (domain.Artifact, error) {
	dir, err := uc.scratch.Dir()
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("prepare scratch dir: %w", err)
	}
	pdfPath, convErr := uc.converter.ConvertToPDF(ctx, file.Path, dir)
	if convErr == nil {
		imagePath, renderErr := uc.renderFirstPage(ctx, pdfPath, file.Stem())
		if renderErr == nil {
			return domain.ImageArtifact(imagePath), nil
		}
		convErr = renderErr
	}
	uc.logger.Warn("convert_failed", "path", file.Path, "error", convErr)
	return uc.textFallback(ctx, file, convErr)
}

func (uc *ContentExtractor) extractVideo(ctx context.Context, file domain.SupportedFile) (domain.Artifact, error) {
	out, err := uc.scratch.Path(file.Stem() + "_frame.jpg")
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("prepare scratch path: %w", err)
	}
	if err := uc.converter.ExtractFrame(ctx, file.Path, frameOffset, out); err != nil {
		uc.logger.Warn("frame_extract_failed", "path", file.Path, "error", err)
		return domain.Artifact{}, domain.WrapError(domain.ErrNoArtifact, "extract video frame", err)
	}
	return domain.ImageArtifact(out), nil
}

func (uc *ContentExtractor) extractText(ctx context.Context, file domain.SupportedFile) (domain.Artifact, error) {
	return uc.textFallback(ctx, file, nil)
}

func (uc *ContentExtractor) renderFirstPage(ctx context.Context, pdfPath, stem string) (string, error) {
	out, err := uc.scratch.Path(stem + "_page1.png")
	if err != nil {
		return "", fmt.Errorf("prepare scratch path: %w", err)
	}
	if err := uc.rasterizer.RenderPage(ctx, pdfPath, 0, uc.cfg.RenderDPI, out); err != nil {
		return "", domain.WrapError(domain.ErrConversion, "render first page", err)
	}
	return out, nil
}

func (uc *ContentExtractor) textFallback(ctx context.Context, file domain.SupportedFile, cause error) (domain.Artifact, error) {
	text, err := uc.text.ExtractText(ctx, file, uc.cfg.MaxSnippetChars)
	if err != nil {
		if cause != nil {
			err = fmt.Errorf("%w; text fallback: %v", cause, err)
		}
		return domain.Artifact{}, domain.WrapError(domain.ErrNoArtifact, "extract "+string(file.Kind), err)
	}
	art := domain.TextArtifact(text)
	if !art.HasText() {
		if cause == nil {
			cause = errors.New("no text content")
		}
		return domain.Artifact{}, domain.WrapError(domain.ErrNoArtifact, "extract "+string(file.Kind), cause)
	}
	return art, nil
}
