package usecase

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/naming"
	"github.com/kirillkom/smartname/internal/core/ports"
)

var echoedExtension = regexp.MustCompile(`(?i)\.(txt|pdf|png|jpe?g|mov|mp4|ipynb|py|js|json|md|docx|pptx|xlsx|html?)$`)

// FilenameSuggester asks the model for a descriptive name and normalizes the reply.
type FilenameSuggester struct {
	extractor     *ContentExtractor
	client        ports.InferenceClient
	model         string
	maxNameLength int
	logger        *slog.Logger
}

func NewFilenameSuggester(
	extractor *ContentExtractor,
	client ports.InferenceClient,
	model string,
	maxNameLength int,
	logger *slog.Logger,
) *FilenameSuggester {
	if maxNameLength <= 0 {
		maxNameLength = naming.DefaultMaxLength
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FilenameSuggester{
		extractor:     extractor,
		client:        client,
		model:         model,
		maxNameLength: maxNameLength,
		logger:        logger,
	}
}

// Suggest returns a sanitized base name without extension. When nothing
// usable can be extracted the original stem is returned and the model is
// not called.
func (uc *FilenameSuggester) Suggest(ctx context.Context, file domain.SupportedFile, style naming.CaseStyle) (string, error) {
	s, err := uc.extractor.strategyFor(file)
	if err != nil {
		return "", err
	}
	art, err := uc.extractor.Extract(ctx, file)
	if err != nil {
		if domain.IsKind(err, domain.ErrNoArtifact) {
			uc.logger.Info("suggest_skipped", "path", file.Path, "reason", err.Error())
			return file.Stem(), nil
		}
		return "", err
	}

	reply, err := uc.client.Generate(ctx, inferenceRequest(uc.model, s.prompts.name(file, art), art))
	if err != nil {
		return "", err
	}
	return naming.Sanitize(cleanSuggestion(reply), uc.maxNameLength, style), nil
}

func cleanSuggestion(reply string) string {
	name := strings.TrimSpace(reply)
	name = strings.Trim(name, "\"'`")
	name = echoedExtension.ReplaceAllString(strings.TrimSpace(name), "")
	return strings.TrimSpace(name)
}

func inferenceRequest(model, prompt string, art domain.Artifact) domain.InferenceRequest {
	req := domain.InferenceRequest{Model: model, Prompt: prompt}
	if art.HasImage() {
		req.Images = []string{art.ImagePath}
	}
	return req
}
