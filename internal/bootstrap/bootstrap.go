package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/smartname/internal/config"
	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/ports"
	"github.com/kirillkom/smartname/internal/core/usecase"
	"github.com/kirillkom/smartname/internal/infrastructure/extractor"
	"github.com/kirillkom/smartname/internal/infrastructure/extractor/office"
	"github.com/kirillkom/smartname/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/smartname/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/smartname/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/smartname/internal/infrastructure/process"
	"github.com/kirillkom/smartname/internal/infrastructure/render/mupdf"
	"github.com/kirillkom/smartname/internal/infrastructure/resilience"
	"github.com/kirillkom/smartname/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/smartname/internal/observability/logging"
	"github.com/kirillkom/smartname/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.RunMetrics

	Organizer   ports.FileOrganizer
	Analyzer    ports.FileAnalyzer
	Transcriber ports.PDFTranscriber

	closeFn func()
}

func New(_ context.Context, cfg config.Config, service string) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := logging.NewLogger(service, cfg.LogLevel, cfg.LogFormat)
	runMetrics := metrics.NewRunMetrics(service)

	store, err := localfs.New("")
	if err != nil {
		return nil, fmt.Errorf("init file store: %w", err)
	}

	retry := resilience.DefaultConfig()
	retry.RetryMaxAttempts = cfg.InferenceRetryAttempts
	retry.BreakerEnabled = cfg.BreakerEnabled
	client := ollama.New(cfg.OllamaURL, ollama.Options{
		Timeout:  time.Duration(cfg.InferenceTimeoutSeconds) * time.Second,
		RPS:      cfg.InferenceRPS,
		Executor: resilience.NewExecutor(retry, logger),
		Observer: runMetrics,
		Logger:   logger,
	})

	rasterizer := mupdf.New()
	tools := process.NewTools(process.ExecRunner{}, process.Config{
		SofficeBin:     cfg.SofficeBin,
		FFmpegBin:      cfg.FFmpegBin,
		ConvertTimeout: time.Duration(cfg.ConvertTimeoutSeconds) * time.Second,
	}, runMetrics, logger)

	officeText := office.NewExtractor()
	text := extractor.NewRouter(map[domain.FileKind]ports.TextExtractor{
		domain.KindPDF:         pdftext.NewExtractor(),
		domain.KindDocument:    officeText,
		domain.KindSlides:      officeText,
		domain.KindSpreadsheet: officeText,
		domain.KindText:        plaintext.NewExtractor(store),
	})

	contentExtractor := usecase.NewContentExtractor(rasterizer, tools, text, localfs.NewScratch(cfg.ScratchDir), logger,
		usecase.ContentExtractorConfig{RenderDPI: cfg.RenderDPI, MaxSnippetChars: cfg.MaxSnippetChars})
	suggester := usecase.NewFilenameSuggester(contentExtractor, client, cfg.Model, cfg.MaxNameLength, logger)
	categorizer := usecase.NewCategorizer(contentExtractor, client, cfg.Model, logger)

	organizer := usecase.NewOrchestrator(store, suggester, categorizer, runMetrics, logger, cfg.Model)
	analyzer := usecase.NewAnalyzer(suggester, categorizer)
	transcriber := usecase.NewTranscriber(rasterizer, client, store, localfs.NewScratch(cfg.OCRScratchDir), logger)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: runMetrics,

		Organizer:   organizer,
		Analyzer:    analyzer,
		Transcriber: transcriber,

		closeFn: func() {
			if err := runMetrics.WriteTextfile(cfg.MetricsFile); err != nil {
				logger.Error("metrics_write_failed", "path", cfg.MetricsFile, "error", err)
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
