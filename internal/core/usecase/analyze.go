package usecase

import (
	"context"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/naming"
)

// Analyzer answers single-file questions by path. It never moves files.
type Analyzer struct {
	suggester   *FilenameSuggester
	categorizer *Categorizer
}

func NewAnalyzer(suggester *FilenameSuggester, categorizer *Categorizer) *Analyzer {
	return &Analyzer{suggester: suggester, categorizer: categorizer}
}

func (uc *Analyzer) SuggestName(ctx context.Context, path, caseStyle string) (string, error) {
	style, err := naming.ParseCaseStyle(caseStyle)
	if err != nil {
		return "", domain.WrapError(domain.ErrInvalidInput, "parse case style", err)
	}
	file, err := domain.NewSupportedFile(path)
	if err != nil {
		return "", err
	}
	name, err := uc.suggester.Suggest(ctx, file, style)
	if err != nil {
		return "", err
	}
	return name + file.Ext(), nil
}

func (uc *Analyzer) Categorize(ctx context.Context, path string, categories []string) (string, error) {
	file, err := domain.NewSupportedFile(path)
	if err != nil {
		return "", err
	}
	return uc.categorizer.Categorize(ctx, file, categories)
}
