package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stash/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("STASH_JWT_SECRET", "test-secret")
	t.Setenv("GROQ_API_KEY", "")

	path := writeConfig(t, "")
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if cfg.Paths.APIBind != "127.0.0.1:8080" {
		t.Fatalf("unexpected api bind: %s", cfg.Paths.APIBind)
	}
	if cfg.Groq.Model != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected groq model: %s", cfg.Groq.Model)
	}
	if cfg.Groq.MaxTranscriptChars != 4000 {
		t.Fatalf("unexpected transcript cap: %d", cfg.Groq.MaxTranscriptChars)
	}
	if !strings.HasSuffix(cfg.DatabasePath(), "stash.db") {
		t.Fatalf("unexpected database path: %s", cfg.DatabasePath())
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("STASH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	path := writeConfig(t, "")
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error when jwt secret missing")
	}
}

func TestLoadReadsFileValues(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = "file-secret"
token_ttl_minutes = 60

[groq]
api_key = "gsk-test"
max_transcript_chars = 2000

[logging]
format = "json"
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Fatalf("unexpected secret: %s", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTLMinutes != 60 {
		t.Fatalf("unexpected ttl: %d", cfg.Auth.TokenTTLMinutes)
	}
	if !cfg.SummarizerConfigured() {
		t.Fatal("expected summarizer to be configured")
	}
	if cfg.Groq.MaxTranscriptChars != 2000 {
		t.Fatalf("unexpected transcript cap: %d", cfg.Groq.MaxTranscriptChars)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %s", cfg.Logging.Format)
	}
}

func TestLoadEnvFallbackForGroqKey(t *testing.T) {
	t.Setenv("STASH_JWT_SECRET", "test-secret")
	t.Setenv("GROQ_API_KEY", "gsk-env")

	path := writeConfig(t, "")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Groq.APIKey != "gsk-env" {
		t.Fatalf("expected env fallback for groq key, got %q", cfg.Groq.APIKey)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = "s"

[logging]
format = "xml"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestSampleConfigParses(t *testing.T) {
	t.Setenv("STASH_JWT_SECRET", "test-secret")

	path := writeConfig(t, config.SampleConfig())
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
}
