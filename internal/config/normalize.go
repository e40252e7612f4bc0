package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAuth()
	c.normalizeYouTube()
	c.normalizeGroq()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeAuth() {
	if c.Auth.JWTSecret == "" {
		if value, ok := os.LookupEnv("STASH_JWT_SECRET"); ok {
			c.Auth.JWTSecret = value
		} else if value, ok := os.LookupEnv("JWT_SECRET"); ok {
			c.Auth.JWTSecret = value
		}
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		c.Auth.TokenTTLMinutes = defaultTokenTTLMinutes
	}
	if c.Auth.BcryptCost <= 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}
}

func (c *Config) normalizeYouTube() {
	c.YouTube.BaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.BaseURL), "/")
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	if c.YouTube.TimeoutSeconds <= 0 {
		c.YouTube.TimeoutSeconds = defaultYouTubeTimeout
	}
	if c.YouTube.RequestsPerMinute <= 0 {
		c.YouTube.RequestsPerMinute = defaultYouTubeRPM
	}
	if len(c.YouTube.Languages) == 0 {
		c.YouTube.Languages = []string{"en"}
	}
}

func (c *Config) normalizeGroq() {
	if c.Groq.APIKey == "" {
		if value, ok := os.LookupEnv("GROQ_API_KEY"); ok {
			c.Groq.APIKey = value
		}
	}
	c.Groq.BaseURL = strings.TrimRight(strings.TrimSpace(c.Groq.BaseURL), "/")
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = defaultGroqBaseURL
	}
	c.Groq.Model = strings.TrimSpace(c.Groq.Model)
	if c.Groq.Model == "" {
		c.Groq.Model = defaultGroqModel
	}
	if c.Groq.TimeoutSeconds <= 0 {
		c.Groq.TimeoutSeconds = defaultGroqTimeout
	}
	if c.Groq.MaxTranscriptChars <= 0 {
		c.Groq.MaxTranscriptChars = defaultMaxTranscriptChars
	}
	if c.Groq.MaxTokens <= 0 {
		c.Groq.MaxTokens = defaultGroqMaxTokens
	}
	if c.Groq.Temperature <= 0 {
		c.Groq.Temperature = defaultGroqTemperature
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
