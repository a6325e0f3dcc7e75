package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirillkom/smartname/internal/bootstrap"
	"github.com/kirillkom/smartname/internal/config"
)

// AppFactory builds the application graph from a resolved config.
type AppFactory func(ctx context.Context, cfg config.Config, service string) (*bootstrap.App, error)

// commonFlags are shared by every command: config file, logging and the
// inference endpoint.
type commonFlags struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsFile string
	ollamaURL   string
	model       string
	dpi         int
}

func (f *commonFlags) register(cmd *cobra.Command, defaultModel string, defaultDPI int) {
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "YAML config file (defaults to $"+config.EnvConfigFile+")")
	flags.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&f.logFormat, "log-format", "", "log format: json or text")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")
	flags.StringVar(&f.ollamaURL, "ollama-url", "", "Ollama API base URL (default http://127.0.0.1:11434)")
	flags.StringVar(&f.model, "model", "", "Ollama model to use (default "+defaultModel+")")
	flags.IntVar(&f.dpi, "dpi", 0, fmt.Sprintf("DPI for rendering PDF pages (default %d)", defaultDPI))
}

// load resolves defaults, file and environment, then lets explicitly set
// flags win.
func (f *commonFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadWithFile(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if flags.Changed("ollama-url") {
		cfg.OllamaURL = f.ollamaURL
	}
	return cfg, nil
}

func defaultFactory(factory AppFactory) AppFactory {
	if factory != nil {
		return factory
	}
	return bootstrap.New
}
