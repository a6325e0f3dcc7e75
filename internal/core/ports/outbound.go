package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/smartname/internal/core/domain"
)

// InferenceClient issues one blocking, non-streaming generation call.
type InferenceClient interface {
	Generate(ctx context.Context, req domain.InferenceRequest) (string, error)
}

// Rasterizer renders PDF pages to raster images.
type Rasterizer interface {
	PageCount(ctx context.Context, pdfPath string) (int, error)
	RenderPage(ctx context.Context, pdfPath string, pageIndex, dpi int, outPath string) error
}

// Converter wraps the external office and video tools.
type Converter interface {
	ConvertToPDF(ctx context.Context, srcPath, outDir string) (string, error)
	ExtractFrame(ctx context.Context, videoPath string, at time.Duration, outPath string) error
}

// TextExtractor pulls bounded text out of a file's native structure.
type TextExtractor interface {
	ExtractText(ctx context.Context, file domain.SupportedFile, maxChars int) (string, error)
}

// ObjectStorage reads and writes files by key.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// FileStore is the filesystem surface the orchestrator plans and executes against.
type FileStore interface {
	ObjectStorage
	ListFiles(ctx context.Context, dir string) ([]string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Move(ctx context.Context, src, dst string) error
}

// ScratchSpace hands out paths inside a disposable working directory.
type ScratchSpace interface {
	Dir() (string, error)
	Path(name string) (string, error)
}

// Reporter receives the user-visible progress of a run.
type Reporter interface {
	Start(info domain.RunInfo)
	Analyzed(file domain.SupportedFile, outcome string)
	FileFailed(failure domain.FileFailure)
	PlanReady(plan domain.Plan)
	Moved(result domain.MoveResult)
	Finish(report domain.RunReport)
}

// RunRecorder receives per-file and per-move outcomes for metrics.
type RunRecorder interface {
	FileAnalyzed(mode string, err error)
	FileMoved(err error)
}
