package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/smartname/internal/core/category"
	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/naming"
	"github.com/kirillkom/smartname/internal/core/ports"
)

const (
	stageSuggest    = "suggest"
	stageCategorize = "categorize"
)

// Orchestrator runs one rename or organize pass over a directory:
// scan, analyze, plan, report and, only when asked, execute.
type Orchestrator struct {
	store       ports.FileStore
	suggester   *FilenameSuggester
	categorizer *Categorizer
	recorder    ports.RunRecorder
	logger      *slog.Logger
	model       string
	now         func() time.Time
}

func NewOrchestrator(
	store ports.FileStore,
	suggester *FilenameSuggester,
	categorizer *Categorizer,
	recorder ports.RunRecorder,
	logger *slog.Logger,
	model string,
) *Orchestrator {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		store:       store,
		suggester:   suggester,
		categorizer: categorizer,
		recorder:    recorder,
		logger:      logger,
		model:       model,
		now:         time.Now,
	}
}

func (uc *Orchestrator) Run(ctx context.Context, req domain.RunRequest, reporter ports.Reporter) (domain.RunReport, error) {
	started := uc.now()
	if reporter == nil {
		reporter = noopReporter{}
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		return domain.RunReport{}, err
	}
	style, err := naming.ParseCaseStyle(req.CaseStyle)
	if err != nil {
		return domain.RunReport{}, domain.WrapError(domain.ErrInvalidInput, "parse case style", err)
	}
	if err := category.Validate(req.Categories); err != nil {
		return domain.RunReport{}, domain.WrapError(domain.ErrInvalidInput, "validate categories", err)
	}
	labels := category.Normalize(req.Categories)
	renameInFolders := mode == domain.ModeOrganize && req.RenameInFolders

	report := domain.RunReport{RunID: uuid.NewString(), Executed: req.Execute}
	logger := uc.logger.With("run_id", report.RunID, "mode", string(mode))

	files, err := uc.scan(ctx, req.Directory)
	if err != nil {
		return domain.RunReport{}, err
	}
	report.Scanned = len(files)
	logger.Info("scan_completed", "directory", req.Directory, "files", len(files))

	reporter.Start(domain.RunInfo{
		RunID:           report.RunID,
		Directory:       req.Directory,
		Mode:            mode,
		Files:           len(files),
		Model:           uc.model,
		CaseStyle:       string(style),
		Categories:      labels,
		RenameInFolders: renameInFolders,
		Execute:         req.Execute,
	})

	items := make([]analysis, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("analyze files: %w", err)
		}
		item, failures := uc.analyze(ctx, file, mode, style, labels, renameInFolders)
		for _, failure := range failures {
			logger.Warn("file_failed", "path", failure.Path, "stage", failure.Stage, "error", failure.Reason)
			reporter.FileFailed(failure)
		}
		report.Failures = append(report.Failures, failures...)
		uc.recorder.FileAnalyzed(string(mode), failureErr(failures))
		reporter.Analyzed(file, item.outcome())
		items = append(items, item)
	}

	plan, err := newPlanBuilder(uc.store).build(ctx, req.Directory, mode, items)
	if err != nil {
		return report, fmt.Errorf("build plan: %w", err)
	}
	report.Plan = plan
	reporter.PlanReady(plan)
	logger.Info("plan_ready", "entries", len(plan.Entries), "failures", len(report.Failures))

	if req.Execute {
		report.Moves = uc.execute(ctx, logger, plan, reporter)
	}

	report.Duration = uc.now().Sub(started)
	reporter.Finish(report)
	logger.Info("run_completed", "executed", req.Execute, "moves", len(report.Moves),
		"move_failures", report.MoveFailures(), "duration_ms", report.Duration.Milliseconds())
	return report, nil
}

func (uc *Orchestrator) scan(ctx context.Context, dir string) ([]domain.SupportedFile, error) {
	paths, err := uc.store.ListFiles(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	files := make([]domain.SupportedFile, 0, len(paths))
	for _, path := range paths {
		file, err := domain.NewSupportedFile(path)
		if err != nil {
			continue
		}
		files = append(files, file)
	}
	return files, nil
}

// analyze never fails: per-file errors become failures and the file keeps
// its original name or lands in the catch-all.
func (uc *Orchestrator) analyze(
	ctx context.Context,
	file domain.SupportedFile,
	mode domain.Mode,
	style naming.CaseStyle,
	labels []string,
	renameInFolders bool,
) (analysis, []domain.FileFailure) {
	item := analysis{file: file}
	var failures []domain.FileFailure

	if mode == domain.ModeOrganize {
		label, err := uc.categorizer.Categorize(ctx, file, labels)
		if err != nil {
			failures = append(failures, fileFailure(file, stageCategorize, err))
			label = domain.OtherCategory
		}
		item.category = label
		if !renameInFolders {
			return item, failures
		}
	}

	name, err := uc.suggester.Suggest(ctx, file, style)
	if err != nil {
		failures = append(failures, fileFailure(file, stageSuggest, err))
		name = file.Stem()
	}
	item.name = name
	return item, failures
}

func (uc *Orchestrator) execute(ctx context.Context, logger *slog.Logger, plan domain.Plan, reporter ports.Reporter) []domain.MoveResult {
	entries := plan.Entries
	if plan.Mode == domain.ModeOrganize {
		keys, groups := plan.ByCategory()
		entries = make([]domain.PlanEntry, 0, len(plan.Entries))
		for _, key := range keys {
			entries = append(entries, groups[key]...)
		}
	}

	results := make([]domain.MoveResult, 0, len(entries))
	for _, entry := range entries {
		err := uc.store.Move(ctx, entry.Source, entry.Destination)
		if err != nil {
			logger.Error("move_failed", "source", entry.Source, "destination", entry.Destination, "error", err)
		} else {
			logger.Debug("file_moved", "source", entry.Source, "destination", entry.Destination)
		}
		uc.recorder.FileMoved(err)
		result := domain.MoveResult{Entry: entry, Err: err}
		reporter.Moved(result)
		results = append(results, result)
	}
	return results
}

func (a analysis) outcome() string {
	switch {
	case a.category != "" && a.name != "":
		return a.category + "/" + a.name + a.file.Ext()
	case a.category != "":
		return a.category
	default:
		return a.name + a.file.Ext()
	}
}

func parseMode(mode domain.Mode) (domain.Mode, error) {
	switch mode {
	case "", domain.ModeRename:
		return domain.ModeRename, nil
	case domain.ModeOrganize:
		return domain.ModeOrganize, nil
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "parse mode", fmt.Errorf("unknown mode %q", mode))
	}
}

func fileFailure(file domain.SupportedFile, stage string, err error) domain.FileFailure {
	return domain.FileFailure{Path: file.Path, Stage: stage, Reason: err.Error()}
}

func failureErr(failures []domain.FileFailure) error {
	if len(failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failures))
	for _, failure := range failures {
		errs = append(errs, fmt.Errorf("%s: %s", failure.Stage, failure.Reason))
	}
	return errors.Join(errs...)
}

type noopReporter struct{}

func (noopReporter) Start(domain.RunInfo) {}
func (noopReporter) Analyzed(domain.SupportedFile, string) {}
func (noopReporter) FileFailed(domain.FileFailure) {}
func (noopReporter) PlanReady(domain.Plan) {}
func (noopReporter) Moved(domain.MoveResult) {}
func (noopReporter) Finish(domain.RunReport) {}

type noopRecorder struct{}

func (noopRecorder) FileAnalyzed(string, error) {}
func (noopRecorder) FileMoved(error) {}
