package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/infrastructure/resilience"
)

const (
	DefaultTimeout = 600 * time.Second
	generatePath   = "/api/generate"
)

// Observer receives the outcome of every generate call.
type Observer interface {
	ObserveInference(shape, status string, elapsed time.Duration)
}

type Options struct {
	Timeout    time.Duration
	RPS        float64
	Executor   *resilience.Executor
	Observer   Observer
	Logger     *slog.Logger
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
	limiter    *rate.Limiter
	observer   Observer
	logger     *slog.Logger
}

func New(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var limiter *rate.Limiter
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), 1)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		executor:   opts.Executor,
		limiter:    limiter,
		observer:   opts.Observer,
		logger:     logger,
	}
}

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
	Format string   `json:"format,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Vision sends a prompt together with the images at imagePaths.
func (c *Client) Vision(ctx context.Context, model, prompt string, imagePaths []string, asJSON bool) (string, error) {
	return c.Generate(ctx, domain.InferenceRequest{Model: model, Prompt: prompt, Images: imagePaths, JSON: asJSON})
}

func (c *Client) Text(ctx context.Context, model, prompt string, asJSON bool) (string, error) {
	return c.Generate(ctx, domain.InferenceRequest{Model: model, Prompt: prompt, JSON: asJSON})
}

// Generate performs one non-streaming call. The reply is trimmed; in JSON
// mode valid JSON is re-indented and anything else is returned as is.
func (c *Client) Generate(ctx context.Context, req domain.InferenceRequest) (string, error) {
	payload := generateRequest{Model: req.Model, Prompt: req.Prompt, Stream: false}
	if req.JSON {
		payload.Format = "json"
	}
	for _, path := range req.Images {
		encoded, err := encodeImage(path)
		if err != nil {
			return "", err
		}
		payload.Images = append(payload.Images, encoded)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("ollama rate limit: %w", err)
		}
	}

	reqID := uuid.NewString()
	shape := req.Shape()
	logger := c.logger.With("req_id", reqID, "model", req.Model, "shape", shape)
	logger.Debug("inference_request", "images", len(req.Images), "prompt_chars", len(req.Prompt))

	started := time.Now()
	resp, err := resilience.Do(ctx, c.executor, "ollama_generate", func(ctx context.Context) (generateResponse, error) {
		var out generateResponse
		err := c.postJSON(ctx, generatePath, payload, &out, "generate")
		return out, err
	}, classifyOllamaError)
	elapsed := time.Since(started)
	if err != nil {
		err = wrapOllamaError("ollama generate", err)
		c.observe(shape, errorStatus(err), elapsed)
		logger.Warn("inference_failed", "duration_ms", elapsed.Milliseconds(), "error", err)
		return "", err
	}
	c.observe(shape, "ok", elapsed)
	logger.Info("inference_completed", "duration_ms", elapsed.Milliseconds(), "reply_chars", len(resp.Response))

	text := strings.TrimSpace(resp.Response)
	if req.JSON {
		return formatJSON(text), nil
	}
	return text, nil
}

func (c *Client) observe(shape, status string, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveInference(shape, status, elapsed)
	}
}

func encodeImage(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// formatJSON indents valid JSON without re-decoding it, so numbers and key
// order survive as the model wrote them. Anything else is returned as is.
func formatJSON(text string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
		return text
	}
	return buf.String()
}
