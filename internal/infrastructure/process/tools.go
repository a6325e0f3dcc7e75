// Package process drives the office and video command-line converters.
package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kirillkom/smartname/internal/core/domain"
)

const (
	DefaultSofficeBin     = "soffice"
	DefaultFFmpegBin      = "ffmpeg"
	DefaultConvertTimeout = 30 * time.Second
)

// Observer receives one outcome per converter invocation.
type Observer interface {
	ObserveConversion(tool, status string)
}

type Config struct {
	SofficeBin     string
	FFmpegBin      string
	ConvertTimeout time.Duration
}

// Tools converts office documents to PDF and grabs video frames.
type Tools struct {
	runner   Runner
	cfg      Config
	observer Observer
	logger   *slog.Logger
}

func NewTools(runner Runner, cfg Config, observer Observer, logger *slog.Logger) *Tools {
	if runner == nil {
		runner = ExecRunner{}
	}
	if cfg.SofficeBin == "" {
		cfg.SofficeBin = DefaultSofficeBin
	}
	if cfg.FFmpegBin == "" {
		cfg.FFmpegBin = DefaultFFmpegBin
	}
	if cfg.ConvertTimeout <= 0 {
		cfg.ConvertTimeout = DefaultConvertTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tools{runner: runner, cfg: cfg, observer: observer, logger: logger}
}

// ConvertToPDF runs a headless office conversion into outDir and returns
// the path of the produced <stem>.pdf.
func (t *Tools) ConvertToPDF(ctx context.Context, srcPath, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, t.cfg.ConvertTimeout)
	defer cancel()

	_, stderr, err := t.runner.Run(ctx, t.cfg.SofficeBin, t.logger,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, srcPath)
	base := filepath.Base(srcPath)
	pdfPath := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
	if err == nil {
		err = requireOutput(pdfPath)
	}
	if err != nil {
		err = t.failure(ctx, "soffice", err, stderr)
		return "", domain.WrapError(domain.ErrConversion, "convert to pdf", err)
	}
	t.observe("soffice", "ok")
	return pdfPath, nil
}

// ExtractFrame writes the frame at offset at to outPath.
func (t *Tools) ExtractFrame(ctx context.Context, videoPath string, at time.Duration, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	_, stderr, err := t.runner.Run(ctx, t.cfg.FFmpegBin, t.logger,
		"-i", videoPath, "-ss", timestamp(at), "-vframes", "1", "-y", outPath)
	if err == nil {
		err = requireOutput(outPath)
	}
	if err != nil {
		err = t.failure(ctx, "ffmpeg", err, stderr)
		return domain.WrapError(domain.ErrConversion, "extract frame", err)
	}
	t.observe("ffmpeg", "ok")
	return nil
}

func (t *Tools) failure(ctx context.Context, tool string, err error, stderr []byte) error {
	status := "error"
	switch {
	case errors.Is(err, exec.ErrNotFound):
		status = "missing"
		err = fmt.Errorf("%s not installed: %w", tool, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		status = "timeout"
		err = domain.WrapError(domain.ErrTimeout, tool, err)
	default:
		if msg := strings.TrimSpace(truncate(string(stderr), 512)); msg != "" {
			err = fmt.Errorf("%s: %w: %s", tool, err, msg)
		} else {
			err = fmt.Errorf("%s: %w", tool, err)
		}
	}
	t.observe(tool, status)
	return err
}

func (t *Tools) observe(tool, status string) {
	if t.observer != nil {
		t.observer.ObserveConversion(tool, status)
	}
}

var errNoOutput = errors.New("no output produced")

func requireOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %s", errNoOutput, path)
	}
	return nil
}

// timestamp formats d as HH:MM:SS.
func timestamp(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
