package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/smartname/internal/core/category"
	"github.com/kirillkom/smartname/internal/core/naming"
)

// EnvConfigFile names an optional YAML file applied before the environment.
const EnvConfigFile = "SMARTNAME_CONFIG"

type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	OllamaURL string `yaml:"ollama_url"`
	Model     string `yaml:"model"`
	OCRModel  string `yaml:"ocr_model"`
	OCRPrompt string `yaml:"ocr_prompt"`

	ScratchDir    string `yaml:"scratch_dir"`
	OCRScratchDir string `yaml:"ocr_scratch_dir"`

	RenderDPI       int      `yaml:"render_dpi"`
	OCRDPI          int      `yaml:"ocr_dpi"`
	MaxSnippetChars int      `yaml:"max_snippet_chars"`
	MaxNameLength   int      `yaml:"max_name_length"`
	CaseStyle       string   `yaml:"case_style"`
	Categories      []string `yaml:"categories"`

	SofficeBin            string `yaml:"soffice_bin"`
	FFmpegBin             string `yaml:"ffmpeg_bin"`
	ConvertTimeoutSeconds int    `yaml:"convert_timeout_seconds"`

	InferenceTimeoutSeconds int     `yaml:"inference_timeout_seconds"`
	InferenceRPS            float64 `yaml:"inference_rps"`
	InferenceRetryAttempts  int     `yaml:"inference_retry_attempts"`
	BreakerEnabled          bool    `yaml:"breaker_enabled"`

	MetricsFile string `yaml:"metrics_file"`
}

func Defaults() Config {
	tmp := os.TempDir()
	return Config{
		LogLevel:  "info",
		LogFormat: "json",

		OllamaURL: "http://127.0.0.1:11434",
		Model:     "llava:latest",
		OCRModel:  "benhaotang/Nanonets-OCR-s:latest",
		OCRPrompt: "<image>\nPlease transcribe this page preserving layout in markdown.",

		ScratchDir:    filepath.Join(tmp, "smartname"),
		OCRScratchDir: filepath.Join(tmp, "ollama_pdf"),

		RenderDPI:       150,
		OCRDPI:          220,
		MaxSnippetChars: 2000,
		MaxNameLength:   100,
		CaseStyle:       string(naming.Snake),

		SofficeBin:            "soffice",
		FFmpegBin:             "ffmpeg",
		ConvertTimeoutSeconds: 30,

		InferenceTimeoutSeconds: 600,
		InferenceRetryAttempts:  2,
		BreakerEnabled:          true,
	}
}

// LoadWithFile layers defaults, the YAML file at path (or $SMARTNAME_CONFIG
// when path is empty) and the environment, in that order.
func LoadWithFile(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadFile overlays keys present in the YAML file onto cfg.
func LoadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.LogLevel = mustEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = mustEnv("LOG_FORMAT", cfg.LogFormat)

	cfg.OllamaURL = mustEnv("OLLAMA_URL", cfg.OllamaURL)
	cfg.Model = mustEnv("OLLAMA_MODEL", cfg.Model)
	cfg.OCRModel = mustEnv("OCR_MODEL", cfg.OCRModel)
	cfg.OCRPrompt = mustEnv("OCR_PROMPT", cfg.OCRPrompt)

	cfg.ScratchDir = mustEnv("SCRATCH_DIR", cfg.ScratchDir)
	cfg.OCRScratchDir = mustEnv("OCR_SCRATCH_DIR", cfg.OCRScratchDir)

	cfg.RenderDPI = mustEnvInt("RENDER_DPI", cfg.RenderDPI)
	cfg.OCRDPI = mustEnvInt("OCR_DPI", cfg.OCRDPI)
	cfg.MaxSnippetChars = mustEnvInt("MAX_SNIPPET_CHARS", cfg.MaxSnippetChars)
	cfg.MaxNameLength = mustEnvInt("MAX_NAME_LENGTH", cfg.MaxNameLength)
	cfg.CaseStyle = mustEnv("CASE_STYLE", cfg.CaseStyle)
	cfg.Categories = mustEnvList("CATEGORIES", cfg.Categories)

	cfg.SofficeBin = mustEnv("SOFFICE_BIN", cfg.SofficeBin)
	cfg.FFmpegBin = mustEnv("FFMPEG_BIN", cfg.FFmpegBin)
	cfg.ConvertTimeoutSeconds = mustEnvInt("CONVERT_TIMEOUT_SECONDS", cfg.ConvertTimeoutSeconds)

	cfg.InferenceTimeoutSeconds = mustEnvInt("INFERENCE_TIMEOUT_SECONDS", cfg.InferenceTimeoutSeconds)
	cfg.InferenceRPS = mustEnvFloat("INFERENCE_RPS", cfg.InferenceRPS)
	cfg.InferenceRetryAttempts = mustEnvInt("INFERENCE_RETRY_ATTEMPTS", cfg.InferenceRetryAttempts)
	cfg.BreakerEnabled = mustEnvBool("BREAKER_ENABLED", cfg.BreakerEnabled)

	cfg.MetricsFile = mustEnv("METRICS_FILE", cfg.MetricsFile)
}

func (c Config) Validate() error {
	var errs []error
	if c.RenderDPI <= 0 || c.OCRDPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi must be positive (render=%d, ocr=%d)", c.RenderDPI, c.OCRDPI))
	}
	if c.MaxNameLength <= 0 {
		errs = append(errs, fmt.Errorf("max name length must be positive, got %d", c.MaxNameLength))
	}
	if c.MaxSnippetChars <= 0 {
		errs = append(errs, fmt.Errorf("max snippet chars must be positive, got %d", c.MaxSnippetChars))
	}
	if _, err := naming.ParseCaseStyle(c.CaseStyle); err != nil {
		errs = append(errs, err)
	}
	if err := category.Validate(c.Categories); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.LogFormat))
	}
	if strings.TrimSpace(c.OllamaURL) == "" {
		errs = append(errs, errors.New("ollama url is required"))
	}
	return errors.Join(errs...)
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
