package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirillkom/smartname/internal/core/domain"
)

type ocrFlags struct {
	commonFlags
	prompt    string
	tempDir   string
	startPage int
	endPage   int
	maxPages  int
	json      bool
}

// NewOCRCommand builds the pdfocr root command. A nil factory uses
// bootstrap.New.
func NewOCRCommand(factory AppFactory) *cobra.Command {
	factory = defaultFactory(factory)
	f := &ocrFlags{}

	cmd := &cobra.Command{
		Use:           "pdfocr PDF_PATH OUTPUT_TEXT",
		Short:         "Transcribe a PDF page by page with an Ollama vision model",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("model") {
				cfg.OCRModel = f.model
			}
			if flags.Changed("dpi") {
				cfg.OCRDPI = f.dpi
			}
			if flags.Changed("prompt") {
				cfg.OCRPrompt = f.prompt
			}
			if flags.Changed("temp-dir") {
				cfg.OCRScratchDir = f.tempDir
			}

			app, err := factory(cmd.Context(), cfg, "pdfocr")
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.Transcriber.Transcribe(cmd.Context(), domain.TranscribeRequest{
				PDFPath:    args[0],
				OutputPath: args[1],
				Model:      cfg.OCRModel,
				Prompt:     cfg.OCRPrompt,
				DPI:        cfg.OCRDPI,
				StartPage:  f.startPage,
				EndPage:    f.endPage,
				MaxPages:   f.maxPages,
				JSON:       f.json,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OCR output written to '%s'.\n", result.OutputPath)
			return nil
		},
	}

	f.register(cmd, "benhaotang/Nanonets-OCR-s:latest", 220)
	flags := cmd.Flags()
	flags.StringVar(&f.prompt, "prompt", "", "prompt sent with every page image")
	flags.StringVar(&f.tempDir, "temp-dir", "", "directory for rendered page images")
	flags.IntVar(&f.startPage, "start-page", 0, "first page to process (1-based)")
	flags.IntVar(&f.endPage, "end-page", 0, "last page to process (inclusive)")
	flags.IntVar(&f.maxPages, "max-pages", 0, "maximum number of pages to process")
	flags.BoolVar(&f.json, "json", false, "ask the model for JSON output and pretty-print it")
	return cmd
}
