package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpromise/emissions-tracker/internal/llm"
)

func TestGenerateText(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"[{\"index\":1}]"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"}, nil)
	out, err := c.Generate(context.Background(), llm.Request{System: "sys", Text: "user text"})
	require.NoError(t, err)

	assert.Equal(t, `[{"index":1}]`, out)
	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "test-model", gotBody["model"])
	assert.Equal(t, "sys", gotBody["system"])

	msgs := gotBody["messages"].([]any)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "user text", msg["content"])
}

func TestGenerateImageBlocks(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Generate(context.Background(), llm.Request{
		System:    "sys",
		Text:      "describe",
		ImageData: []byte{0xFF, 0xD8},
		ImageMIME: "image/jpeg",
	})
	require.NoError(t, err)

	content := gotBody["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)

	imgBlock := content[0].(map[string]any)
	assert.Equal(t, "image", imgBlock["type"])
	source := imgBlock["source"].(map[string]any)
	assert.Equal(t, "base64", source["type"])
	assert.Equal(t, "image/jpeg", source["media_type"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8}), source["data"])

	textBlock := content[1].(map[string]any)
	assert.Equal(t, "text", textBlock["type"])
}

func TestGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Generate(context.Background(), llm.Request{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestGenerateEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Generate(context.Background(), llm.Request{Text: "x"})
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, nil)
	assert.Equal(t, "https://api.anthropic.com", c.cfg.BaseURL)
	assert.Equal(t, "claude-3-5-haiku-20241022", c.cfg.Model)
	assert.Equal(t, 2048, c.cfg.MaxTokens)
	assert.NotNil(t, c.http)
}
