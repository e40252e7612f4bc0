package youtube

import (
	"strings"

	"golang.org/x/text/language"

	"stash/internal/services"
)

// Segment is a single timed caption line.
type Segment struct {
	Start    float64
	Duration float64
	Text     string
}

// TranscriptResult is the canonical transcript shape produced by
// normalization. Text is always the ordered concatenation of segment texts.
type TranscriptResult struct {
	Text        string
	Language    string
	IsGenerated bool
	Segments    []Segment
}

// Field-name aliases seen across transcript provider payload versions.
var (
	textKeys     = []string{"text", "utf8", "content", "caption"}
	startKeys    = []string{"start", "offset", "tStartMs", "begin", "at"}
	durationKeys = []string{"duration", "dur", "dDurationMs", "length"}
)

// Normalize converts a decoded provider payload into a TranscriptResult.
// Three shapes are recognized and tried in order, first type-match winning:
// an ordered sequence of segment records, a plain string, and an object
// exposing a text field. Anything else, or an empty transcript, is a provider
// failure rather than an empty success.
func Normalize(payload any) (*TranscriptResult, error) {
	switch value := payload.(type) {
	case []any:
		return normalizeSegments(value)
	case []map[string]any:
		generic := make([]any, len(value))
		for i, entry := range value {
			generic[i] = entry
		}
		return normalizeSegments(generic)
	case string:
		return normalizeText(value)
	case map[string]any:
		// Object payloads either wrap a segment list or expose plain text.
		for _, key := range []string{"segments", "snippets", "events", "entries"} {
			if inner, ok := value[key].([]any); ok {
				return normalizeSegments(inner)
			}
		}
		if text, ok := lookupString(value, append([]string{"transcript"}, textKeys...)); ok {
			return normalizeText(text)
		}
	}
	return nil, normalizationError("unrecognized payload shape")
}

func normalizeSegments(entries []any) (*TranscriptResult, error) {
	segments := make([]Segment, 0, len(entries))
	var builder strings.Builder
	for _, entry := range entries {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, normalizationError("segment entry is not a record")
		}
		text, ok := lookupString(record, textKeys)
		if !ok {
			// Some provider versions emit bookkeeping events with no text.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		segment := Segment{Text: text}
		if start, ok := lookupFloat(record, startKeys); ok {
			segment.Start = start
		}
		if duration, ok := lookupFloat(record, durationKeys); ok {
			segment.Duration = duration
		}
		segments = append(segments, segment)
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(text)
	}

	text := builder.String()
	if text == "" {
		return nil, normalizationError("empty transcript")
	}
	return &TranscriptResult{Text: text, Segments: segments}, nil
}

func normalizeText(text string) (*TranscriptResult, error) {
	joined := strings.Join(strings.Fields(text), " ")
	if joined == "" {
		return nil, normalizationError("empty transcript")
	}
	return &TranscriptResult{Text: joined, Segments: []Segment{{Text: joined}}}, nil
}

func normalizationError(reason string) error {
	return services.Wrap(services.ErrUnavailable, "youtube", "normalize", reason,
		&services.ProviderError{Reason: "invalid_transcript"})
}

func lookupString(record map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if raw, ok := record[key]; ok {
			if str, ok := raw.(string); ok {
				return str, true
			}
		}
	}
	return "", false
}

func lookupFloat(record map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		raw, ok := record[key]
		if !ok {
			continue
		}
		switch value := raw.(type) {
		case float64:
			// Millisecond-based keys are converted to seconds.
			if strings.HasSuffix(key, "Ms") {
				return value / 1000, true
			}
			return value, true
		case int:
			if strings.HasSuffix(key, "Ms") {
				return float64(value) / 1000, true
			}
			return float64(value), true
		}
	}
	return 0, false
}

// CanonicalLanguage normalizes a provider language code to its BCP 47
// canonical form, falling back to the raw value when unparseable.
func CanonicalLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return tag.String()
	}
	return base.String()
}
