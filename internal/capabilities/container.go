// Package capabilities resolves the service dependencies of the ingestion
// API exactly once at startup. Required capabilities fail construction;
// optional ones degrade to an absent marker with a recorded reason, so a
// missing summarizer credential never prevents the service from starting.
package capabilities

import (
	"log/slog"

	"stash/internal/auth"
	"stash/internal/config"
	"stash/internal/ingest"
	"stash/internal/logging"
	"stash/internal/metrics"
	"stash/internal/services/groq"
	"stash/internal/services/youtube"
	"stash/internal/store"
)

// Container holds the resolved capabilities for one service process.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Store    *store.Store
	Fetcher  ingest.TranscriptFetcher
	Auth     *auth.Authenticator
	Metrics  *metrics.Metrics
	Pipeline *ingest.Pipeline

	// Summarizer is nil when the capability is absent; SummarizerAbsence
	// then records why.
	Summarizer        ingest.Summarizer
	SummarizerAbsence string
}

// Build resolves all capabilities from configuration. The store is required;
// the summarizer is optional and its construction failure is downgraded to
// an absence.
func Build(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	container := &Container{
		Config:  cfg,
		Logger:  logger,
		Store:   st,
		Fetcher: youtube.NewClient(cfg.YouTube),
		Auth:    auth.New(st, cfg.Auth),
		Metrics: metrics.New(),
	}

	summarizer, err := groq.NewSummarizer(cfg.Groq)
	if err != nil {
		container.SummarizerAbsence = "summarizer not configured"
		logger.Warn("summarizer capability absent, saves will proceed without summaries",
			logging.Error(err))
	} else {
		container.Summarizer = summarizer
	}

	container.Pipeline = ingest.NewPipeline(
		container.Fetcher,
		container.Summarizer,
		container.SummarizerAbsence,
		st,
		logger,
	)
	return container, nil
}

// SummarizerAvailable reports whether the optional summarizer capability was
// resolved.
func (c *Container) SummarizerAvailable() bool {
	return c.Summarizer != nil
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
