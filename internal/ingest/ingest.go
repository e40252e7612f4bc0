// Package ingest orchestrates the save pipeline: URL validation, transcript
// retrieval, optional summarization and dedup-safe persistence. The pipeline
// treats the store's natural key as the only concurrency control; races
// between identical submissions resolve to the first writer's record.
package ingest

import (
	"context"
	"errors"
	"log/slog"

	"stash/internal/logging"
	"stash/internal/services"
	"stash/internal/services/youtube"
	"stash/internal/store"
)

// TranscriptFetcher retrieves and normalizes a transcript for a video URL.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, url string) (*youtube.FetchResult, error)
}

// Summarizer produces adaptive notes from a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// VideoStore is the slice of persistence the pipeline needs.
type VideoStore interface {
	FindByNaturalKey(ctx context.Context, ownerID int64, videoID string) (*store.SavedVideo, error)
	CreateVideo(ctx context.Context, video *store.SavedVideo) (*store.SavedVideo, error)
}

// Result reports the outcome of a save. AlreadySaved marks both the
// pre-check hit and the lost-race path; Video is populated either way.
type Result struct {
	Video            *store.SavedVideo
	AlreadySaved     bool
	SummaryAvailable bool
	SummaryNote      string
}

// Pipeline wires the save stages together.
type Pipeline struct {
	fetcher            TranscriptFetcher
	summarizer         Summarizer
	summarizerAbsence  string
	store              VideoStore
	logger             *slog.Logger
}

// NewPipeline builds a pipeline. A nil summarizer marks the capability
// absent; absenceReason explains why in outcome notes.
func NewPipeline(fetcher TranscriptFetcher, summarizer Summarizer, absenceReason string, videos VideoStore, logger *slog.Logger) *Pipeline {
	if summarizer == nil && absenceReason == "" {
		absenceReason = "summarizer not configured"
	}
	return &Pipeline{
		fetcher:           fetcher,
		summarizer:        summarizer,
		summarizerAbsence: absenceReason,
		store:             videos,
		logger:            logging.NewComponentLogger(logger, "ingest"),
	}
}

// SaveVideo runs the full pipeline for one submitted URL on behalf of an
// owner. Provider failures never persist anything; summarization failures
// degrade to a record without a summary.
func (p *Pipeline) SaveVideo(ctx context.Context, ownerID int64, rawURL string) (*Result, error) {
	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	logger := p.requestLogger(ctx).With(logging.String("video_id", videoID))

	// Dedup pre-check keeps repeat saves cheap: no provider call at all.
	existing, err := p.store.FindByNaturalKey(ctx, ownerID, videoID)
	if err != nil {
		return nil, services.Wrap(nil, "ingest", "dedup check", videoID, err)
	}
	if existing != nil {
		logger.Info("video already saved", logging.Int64("saved_id", existing.ID))
		return &Result{
			Video:            existing,
			AlreadySaved:     true,
			SummaryAvailable: existing.HasSummary(),
		}, nil
	}

	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		logger.Warn("transcript fetch failed", logging.Error(err))
		return nil, err
	}

	summary, summaryNote := p.summarize(ctx, logger, fetched.Transcript.Text)

	record := &store.SavedVideo{
		OwnerID:       ownerID,
		URL:           rawURL,
		VideoID:       fetched.VideoID,
		Platform:      store.PlatformYouTube,
		Title:         fetched.Title,
		RawTranscript: fetched.Transcript.Text,
		Summary:       summary,
		Language:      fetched.Transcript.Language,
		IsGenerated:   fetched.Transcript.IsGenerated,
		SegmentsCount: len(fetched.Transcript.Segments),
	}

	saved, err := p.store.CreateVideo(ctx, record)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			// Lost the insert race; the winner's record is the outcome.
			return p.recoverConflict(ctx, logger, ownerID, videoID, err)
		}
		return nil, services.Wrap(nil, "ingest", "persist", videoID, err)
	}

	logger.Info("video saved",
		logging.Int64("saved_id", saved.ID),
		logging.Bool("summary", saved.HasSummary()),
		logging.Int("segments", saved.SegmentsCount))
	return &Result{
		Video:            saved,
		SummaryAvailable: saved.HasSummary(),
		SummaryNote:      summaryNote,
	}, nil
}

// summarize returns the summary text and, when empty, a note explaining its
// absence. Summarization is strictly best-effort.
func (p *Pipeline) summarize(ctx context.Context, logger *slog.Logger, transcript string) (string, string) {
	if p.summarizer == nil {
		return "", p.summarizerAbsence
	}
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		logger.Warn("summarization failed, saving without summary", logging.Error(err))
		return "", summaryFailureNote(err)
	}
	return summary, ""
}

// summaryFailureNote names the failed stage for the outcome payload. Timeouts
// get an explicit reason; other failures carry their tag unless it would just
// repeat the prefix.
func summaryFailureNote(err error) string {
	if errors.Is(err, services.ErrTimeout) {
		return "summarization failed: timeout"
	}
	if tag := services.Tag(err); tag != "" && tag != "summarization_failed" {
		return "summarization failed: " + tag
	}
	return "summarization failed"
}

func (p *Pipeline) recoverConflict(ctx context.Context, logger *slog.Logger, ownerID int64, videoID string, cause error) (*Result, error) {
	existing, err := p.store.FindByNaturalKey(ctx, ownerID, videoID)
	if err != nil {
		return nil, services.Wrap(nil, "ingest", "conflict recovery", videoID, err)
	}
	if existing == nil {
		// Conflict without a surviving row means the winner was deleted
		// mid-flight; surface the conflict rather than retry.
		return nil, cause
	}
	logger.Info("concurrent save resolved to existing record", logging.Int64("saved_id", existing.ID))
	return &Result{
		Video:            existing,
		AlreadySaved:     true,
		SummaryAvailable: existing.HasSummary(),
	}, nil
}

func (p *Pipeline) requestLogger(ctx context.Context) *slog.Logger {
	if id, ok := services.RequestIDFromContext(ctx); ok {
		return p.logger.With(logging.String(logging.FieldRequestID, id))
	}
	return p.logger
}
