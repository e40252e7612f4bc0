package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
	APIBind string `toml:"api_bind"`
}

// Auth contains token signing and password hashing settings.
type Auth struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	BcryptCost      int    `toml:"bcrypt_cost"`
}

// YouTube contains configuration for the transcript provider client.
type YouTube struct {
	BaseURL           string   `toml:"base_url"`
	TimeoutSeconds    int      `toml:"timeout_seconds"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Languages         []string `toml:"languages"`
}

// Groq contains configuration for the optional AI summarizer.
type Groq struct {
	APIKey             string  `toml:"api_key"`
	BaseURL            string  `toml:"base_url"`
	Model              string  `toml:"model"`
	TimeoutSeconds     int     `toml:"timeout_seconds"`
	MaxTranscriptChars int     `toml:"max_transcript_chars"`
	MaxTokens          int     `toml:"max_tokens"`
	Temperature        float32 `toml:"temperature"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Stash.
//
// Configuration sections by subsystem:
//   - Paths: data directory, log directory, and API bind address
//   - Auth: JWT signing secret and password hashing cost
//   - YouTube: transcript provider endpoint, timeout, and rate limit
//   - Groq: optional summarizer credential and generation settings
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Auth    Auth    `toml:"auth"`
	YouTube YouTube `toml:"youtube"`
	Groq    Groq    `toml:"groq"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/stash/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("stash.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories required for server operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "stash.db")
}

// LockPath returns the location of the data directory lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "stash.lock")
}

// SummarizerConfigured reports whether a summarizer credential is present.
// Presence of the credential does not guarantee the capability resolves.
func (c *Config) SummarizerConfigured() bool {
	return strings.TrimSpace(c.Groq.APIKey) != ""
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
