package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateGroq(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAuth() error {
	if c.Auth.JWTSecret == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/stash/config.toml"
		}
		return fmt.Errorf("auth.jwt_secret is required. Set STASH_JWT_SECRET env var or edit %s (create with 'stash config init')", defaultPath)
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return errors.New("auth.token_ttl_minutes must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return errors.New("auth.bcrypt_cost must be between 4 and 31")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.BaseURL == "" {
		return errors.New("youtube.base_url must be set")
	}
	if c.YouTube.RequestsPerMinute <= 0 {
		return errors.New("youtube.requests_per_minute must be positive")
	}
	return nil
}

func (c *Config) validateGroq() error {
	// The API key is optional: absence disables the summarizer capability.
	if c.Groq.BaseURL == "" {
		return errors.New("groq.base_url must be set")
	}
	if c.Groq.MaxTranscriptChars <= 0 {
		return errors.New("groq.max_transcript_chars must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
