package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/greenpromise/emissions-tracker/internal/llm"
)

// Config for the Gemini client.
type Config struct {
	APIKey string // if empty, the SDK falls back to env GEMINI_API_KEY
	Model  string // e.g. "gemini-2.0-flash"
}

type Client struct {
	cfg Config
	log *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, log: logger}
}

func (c *Client) Name() string { return "gemini" }

// Generate implements llm.Provider. The system instruction rides as the
// leading text part of the user turn; image bytes go inline as a blob.
func (c *Client) Generate(ctx context.Context, req llm.Request) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.generate.start",
		"req_id", rid,
		"provider", "gemini",
		"model", c.cfg.Model,
		"text_len", len(req.Text),
		"image_bytes", len(req.ImageData),
	)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      c.cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	parts := []*genai.Part{{Text: req.System + "\n\n" + req.Text}}
	if len(req.ImageData) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.ImageMIME,
				Data:     req.ImageData,
			},
		})
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, contents, nil)
	if err != nil {
		c.log.Error("llm.generate.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	out := resp.Text()
	if out == "" {
		c.log.Error("llm.generate.empty",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("empty response from gemini")
	}

	c.log.Info("llm.generate.ok",
		"req_id", rid,
		"out_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
