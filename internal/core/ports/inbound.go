package ports

import (
	"context"

	"github.com/kirillkom/smartname/internal/core/domain"
)

// FileOrganizer is the inbound contract for directory rename/organize passes.
type FileOrganizer interface {
	Run(ctx context.Context, req domain.RunRequest, reporter Reporter) (domain.RunReport, error)
}

// FileAnalyzer answers single-file questions without touching the filesystem.
type FileAnalyzer interface {
	SuggestName(ctx context.Context, path, caseStyle string) (string, error)
	Categorize(ctx context.Context, path string, categories []string) (string, error)
}

// PDFTranscriber is the inbound contract for OCR transcription.
type PDFTranscriber interface {
	Transcribe(ctx context.Context, req domain.TranscribeRequest) (domain.TranscribeResult, error)
}
