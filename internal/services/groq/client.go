package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"stash/internal/config"
	"stash/internal/services"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"

	defaultMaxTranscriptChars = 4000
	defaultMaxTokens          = 1000
	defaultTemperature        = 0.4
	defaultTimeout            = 60 * time.Second
)

// Summarizer turns transcripts into adaptive notes through Groq's
// OpenAI-compatible chat completion endpoint.
type Summarizer struct {
	client             *openai.Client
	model              string
	maxTranscriptChars int
	maxTokens          int
	temperature        float32
}

// Option customizes the summarizer.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// NewSummarizer constructs a summarizer from configuration. A missing API key
// is a construction failure so callers can record the capability as absent.
func NewSummarizer(cfg config.Groq, opts ...Option) (*Summarizer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrCapabilityAbsent, "groq", "init", "api key not configured", nil)
	}

	var applied options
	for _, opt := range opts {
		opt(&applied)
	}

	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL
	if applied.httpClient != nil {
		clientConfig.HTTPClient = applied.httpClient
	} else {
		clientConfig.HTTPClient = &http.Client{Timeout: timeout}
	}

	summarizer := &Summarizer{
		client:             openai.NewClientWithConfig(clientConfig),
		model:              cfg.Model,
		maxTranscriptChars: cfg.MaxTranscriptChars,
		maxTokens:          cfg.MaxTokens,
		temperature:        float32(cfg.Temperature),
	}
	if summarizer.model == "" {
		summarizer.model = defaultModel
	}
	if summarizer.maxTranscriptChars <= 0 {
		summarizer.maxTranscriptChars = defaultMaxTranscriptChars
	}
	if summarizer.maxTokens <= 0 {
		summarizer.maxTokens = defaultMaxTokens
	}
	if summarizer.temperature <= 0 {
		summarizer.temperature = defaultTemperature
	}
	return summarizer, nil
}

// Summarize produces adaptive notes for a transcript. The transcript is
// truncated to the configured character budget before it is sent; failures
// are tagged so ingestion can continue without a summary.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", services.Wrap(services.ErrSummarization, "groq", "summarize", "empty transcript", nil)
	}
	transcript = truncate(transcript, s.maxTranscriptChars)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPromptPrefix + transcript + userPromptSuffix,
			},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			// Keep the timeout sentinel but classify the failure as a
			// summarization one; the transcript stage already succeeded.
			return "", services.Wrap(services.ErrSummarization, "groq", "summarize", "request timed out",
				fmt.Errorf("%w: %w", services.ErrTimeout, err))
		}
		return "", services.Wrap(services.ErrSummarization, "groq", "summarize", "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", services.Wrap(services.ErrSummarization, "groq", "summarize", "no choices returned", nil)
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", services.Wrap(services.ErrSummarization, "groq", "summarize", "empty completion", nil)
	}
	return summary, nil
}

// truncate keeps the leading portion of the transcript without splitting a
// UTF-8 sequence at the boundary.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
