package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/review-relay/internal/logger"
)

const (
	BackendSDK  = "sdk"
	BackendREST = "rest"
)

// Config holds the application's configuration values.
type Config struct {
	Server  ServerConfig
	Logging logger.Config
	AI      AIConfig
	Retry   RetryConfig
}

type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// AIConfig selects and authenticates the remote model.
type AIConfig struct {
	GeminiAPIKey string
	Model        string
	Backend      string
	BaseURL      string
}

// RetryConfig tunes the resilient invoker.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates the result. A missing API key is only
// a warning: the failure surfaces on the first model call instead.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", 2*time.Minute)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("LLM_BACKEND", BackendSDK)
	v.SetDefault("GEMINI_BASE_URL", "")
	v.SetDefault("RETRY_MAX_ATTEMPTS", 5)
	v.SetDefault("RETRY_BASE_DELAY", 600*time.Millisecond)
	v.SetDefault("RETRY_MAX_DELAY", 8*time.Second)

	if err := v.BindEnv("GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_GEMINI_KEY", "Google_gemini_key"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "error", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
			Output: strings.ToLower(v.GetString("LOG_OUTPUT")),
		},
		AI: AIConfig{
			GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
			Model:        v.GetString("GEMINI_MODEL"),
			Backend:      strings.ToLower(v.GetString("LLM_BACKEND")),
			BaseURL:      v.GetString("GEMINI_BASE_URL"),
		},
		Retry: RetryConfig{
			MaxAttempts: v.GetInt("RETRY_MAX_ATTEMPTS"),
			BaseDelay:   v.GetDuration("RETRY_BASE_DELAY"),
			MaxDelay:    v.GetDuration("RETRY_MAX_DELAY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.AI.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; AI calls will fail until the key is provided")
	}
	return cfg, nil
}

// Validate checks ranges that would make the service misbehave at runtime.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT must be set")
	}
	if c.AI.Model == "" {
		return fmt.Errorf("GEMINI_MODEL must be set")
	}
	if c.AI.Backend != BackendSDK && c.AI.Backend != BackendREST {
		return fmt.Errorf("LLM_BACKEND must be %q or %q, got %q", BackendSDK, BackendREST, c.AI.Backend)
	}
	return c.Retry.Validate()
}

func (r RetryConfig) Validate() error {
	if r.MaxAttempts < 1 || r.MaxAttempts > 20 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be between 1 and 20, got %d", r.MaxAttempts)
	}
	if r.BaseDelay <= 0 {
		return fmt.Errorf("RETRY_BASE_DELAY must be positive, got %s", r.BaseDelay)
	}
	if r.MaxDelay < r.BaseDelay {
		return fmt.Errorf("RETRY_MAX_DELAY (%s) must not be below RETRY_BASE_DELAY (%s)", r.MaxDelay, r.BaseDelay)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
