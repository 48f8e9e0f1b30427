package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Store     StoreConfig
	Doc       DocConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Watch     WatchConfig
}

// StoreConfig holds the durable key-value store settings.
type StoreConfig struct {
	DBPath string
}

// DocConfig holds document text extraction settings.
type DocConfig struct {
	Pdftotext string // binary name or absolute path
}

// AnthropicConfig holds the primary inference provider settings.
type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// GeminiConfig holds the secondary inference provider settings.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// WatchConfig holds drop-directory watch mode settings.
type WatchConfig struct {
	Debounce time.Duration
}

// fileConfig is the optional YAML overlay; env vars win over file values.
type fileConfig struct {
	DBPath    string `yaml:"db_path"`
	Pdftotext string `yaml:"pdftotext"`
	Anthropic struct {
		BaseURL   string `yaml:"base_url"`
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"max_tokens"`
	} `yaml:"anthropic"`
	Gemini struct {
		Model string `yaml:"model"`
	} `yaml:"gemini"`
	Watch struct {
		DebounceMS int `yaml:"debounce_ms"`
	} `yaml:"watch"`
}

// LoadConfig reads the optional YAML file at path (ignored when absent),
// then applies environment variables and defaults on top.
func LoadConfig(path string) (*Config, error) {
	var fc fileConfig
	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &fc); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Store: StoreConfig{
			DBPath: getEnv("DB_PATH", firstNonEmpty(fc.DBPath, "emissions.db")),
		},
		Doc: DocConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", firstNonEmpty(fc.Pdftotext, "pdftotext")),
		},
		Anthropic: AnthropicConfig{
			APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
			BaseURL:   getEnv("ANTHROPIC_BASE_URL", firstNonEmpty(fc.Anthropic.BaseURL, "https://api.anthropic.com")),
			Model:     getEnv("ANTHROPIC_MODEL", firstNonEmpty(fc.Anthropic.Model, "claude-3-5-haiku-20241022")),
			MaxTokens: getEnvAsInt("ANTHROPIC_MAX_TOKENS", firstPositive(fc.Anthropic.MaxTokens, 2048)),
			Timeout:   getEnvAsDuration("ANTHROPIC_TIMEOUT", 45*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", firstNonEmpty(fc.Gemini.Model, "gemini-2.0-flash")),
		},
		Watch: WatchConfig{
			Debounce: time.Duration(firstPositive(fc.Watch.DebounceMS, 500)) * time.Millisecond,
		},
	}
	return cfg, nil
}

// Validate checks the loaded configuration. Provider keys are optional: the
// pipeline degrades to rules-only behavior without them.
func (c *Config) Validate() error {
	if c.Store.DBPath == "" {
		return fmt.Errorf("db path is required: %w", ErrConfiguration)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
