package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"stash/internal/config"
	"stash/internal/services"
)

const (
	defaultBaseURL     = "https://www.youtube.com"
	defaultHTTPTimeout = 15 * time.Second

	// The watch page is large; cap reads so a hostile response cannot
	// exhaust memory.
	maxWatchPageBytes  = 4 << 20
	maxTranscriptBytes = 8 << 20
)

// FetchResult bundles a normalized transcript with the provider metadata
// ingestion persists alongside it.
type FetchResult struct {
	VideoID    string
	Title      string
	Transcript TranscriptResult
}

// Client retrieves caption transcripts from YouTube's public endpoints.
type Client struct {
	baseURL    string
	languages  []string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLimiter overrides the outbound rate limiter.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// NewClient constructs a transcript client from configuration.
func NewClient(cfg config.YouTube, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	client := &Client{
		baseURL:    baseURL,
		languages:  languages,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 2),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// captionTrack mirrors the track descriptors embedded in the watch page.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

func (t captionTrack) autoGenerated() bool {
	return t.Kind == "asr"
}

var (
	captionTracksPattern = regexp.MustCompile(`"captionTracks":(\[.*?\])`)
	videoTitlePattern    = regexp.MustCompile(`"videoDetails":\{[^{]*?"title":"((?:[^"\\]|\\.)*)"`)
	unavailablePattern   = regexp.MustCompile(`"status":"(ERROR|UNPLAYABLE|LOGIN_REQUIRED)"`)
)

// Fetch retrieves and normalizes the transcript for a submitted video URL.
// Failures carry a provider sub-reason (no_captions, video_unavailable,
// network_error) and always match services.ErrUnavailable; invalid URLs match
// services.ErrInvalidURL. This layer performs no retries.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	page, err := c.get(ctx, c.baseURL+"/watch?v="+videoID, maxWatchPageBytes)
	if err != nil {
		return nil, providerFailure("fetch watch page", "network_error", err)
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		if unavailablePattern.Match(page) {
			return nil, providerFailure("fetch watch page", "video_unavailable", err)
		}
		return nil, providerFailure("fetch watch page", "no_captions", err)
	}

	track := c.selectTrack(tracks)
	payload, err := c.get(ctx, trackURL(track), maxTranscriptBytes)
	if err != nil {
		return nil, providerFailure("fetch transcript", "network_error", err)
	}

	events, err := decodeTranscriptPayload(payload)
	if err != nil {
		return nil, err
	}
	result, err := Normalize(events)
	if err != nil {
		return nil, err
	}
	result.Language = CanonicalLanguage(track.LanguageCode)
	result.IsGenerated = track.autoGenerated()

	return &FetchResult{
		VideoID:    videoID,
		Title:      parseTitle(page),
		Transcript: *result,
	}, nil
}

func (c *Client) get(ctx context.Context, url string, maxBytes int64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", strings.Join(c.languages, ","))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// selectTrack prefers a manually authored track in a configured language,
// then any track in a configured language, then the first track offered.
func (c *Client) selectTrack(tracks []captionTrack) captionTrack {
	for _, lang := range c.languages {
		for _, track := range tracks {
			if strings.EqualFold(track.LanguageCode, lang) && !track.autoGenerated() {
				return track
			}
		}
	}
	for _, lang := range c.languages {
		for _, track := range tracks {
			if strings.EqualFold(track.LanguageCode, lang) {
				return track
			}
		}
	}
	return tracks[0]
}

func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	match := captionTracksPattern.FindSubmatch(page)
	if match == nil {
		return nil, errors.New("no caption tracks in watch page")
	}
	var tracks []captionTrack
	if err := json.Unmarshal(match[1], &tracks); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, errors.New("caption track list is empty")
	}
	return tracks, nil
}

func parseTitle(page []byte) string {
	match := videoTitlePattern.FindSubmatch(page)
	if match == nil {
		return ""
	}
	var title string
	if err := json.Unmarshal([]byte(`"`+string(match[1])+`"`), &title); err != nil {
		return ""
	}
	return strings.TrimSpace(title)
}

func trackURL(track captionTrack) string {
	url := track.BaseURL
	if strings.Contains(url, "?") {
		return url + "&fmt=json3"
	}
	return url + "?fmt=json3"
}

// decodeTranscriptPayload turns the caption endpoint's json3 body into the
// generic event list the normalizer understands.
func decodeTranscriptPayload(payload []byte) (any, error) {
	var decoded struct {
		Events []map[string]any `json:"events"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, providerFailure("decode transcript", "invalid_transcript", err)
	}

	events := make([]any, 0, len(decoded.Events))
	for _, event := range decoded.Events {
		segs, ok := event["segs"].([]any)
		if !ok {
			continue
		}
		var text strings.Builder
		for _, seg := range segs {
			record, ok := seg.(map[string]any)
			if !ok {
				continue
			}
			if fragment, ok := record["utf8"].(string); ok {
				text.WriteString(fragment)
			}
		}
		entry := map[string]any{"text": text.String()}
		if start, ok := event["tStartMs"].(float64); ok {
			entry["start"] = start / 1000
		}
		if duration, ok := event["dDurationMs"].(float64); ok {
			entry["duration"] = duration / 1000
		}
		events = append(events, entry)
	}
	return events, nil
}

func providerFailure(operation, reason string, err error) error {
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		return services.Wrap(services.ErrTimeout, "youtube", operation, reason, err)
	}
	return services.Wrap(services.ErrUnavailable, "youtube", operation, "",
		&services.ProviderError{Reason: reason, Err: err})
}
