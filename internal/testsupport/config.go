package testsupport

import (
	"path/filepath"
	"testing"

	"stash/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.BcryptCost = 4

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithGroqKey sets the summarizer credential on the test config.
func WithGroqKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Groq.APIKey = key
	}
}

// WithYouTubeBaseURL points the transcript client at a test server.
func WithYouTubeBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.YouTube.BaseURL = url
	}
}
