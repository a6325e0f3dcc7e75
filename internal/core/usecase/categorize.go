package usecase

import (
	"context"
	"log/slog"

	"github.com/kirillkom/smartname/internal/core/category"
	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/ports"
)

// Categorizer maps a file onto one label of the configured set.
type Categorizer struct {
	extractor *ContentExtractor
	client    ports.InferenceClient
	model     string
	logger    *slog.Logger
}

func NewCategorizer(extractor *ContentExtractor, client ports.InferenceClient, model string, logger *slog.Logger) *Categorizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Categorizer{extractor: extractor, client: client, model: model, logger: logger}
}

// Categorize always returns a member of the normalized label set. Files
// without a usable artifact get their kind's fallback label.
func (uc *Categorizer) Categorize(ctx context.Context, file domain.SupportedFile, labels []string) (string, error) {
	labels = category.Normalize(labels)
	s, err := uc.extractor.strategyFor(file)
	if err != nil {
		return "", err
	}
	art, err := uc.extractor.Extract(ctx, file)
	if err != nil {
		if domain.IsKind(err, domain.ErrNoArtifact) {
			label := category.Fallback(s.fallback, labels)
			uc.logger.Info("categorize_fallback", "path", file.Path, "category", label, "reason", err.Error())
			return label, nil
		}
		return "", err
	}

	reply, err := uc.client.Generate(ctx, inferenceRequest(uc.model, s.prompts.category(file, art, labels), art))
	if err != nil {
		return "", err
	}
	label := category.Resolve(reply, labels)
	uc.logger.Debug("category_resolved", "path", file.Path, "reply", reply, "category", label)
	return label, nil
}
