package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stash/internal/services"
	"stash/internal/store"
)

func TestStatusForTag(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"invalid_url", http.StatusBadRequest},
		{"validation_error", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"not_found", http.StatusNotFound},
		{"conflict", http.StatusConflict},
		{"transcript_unavailable", http.StatusBadGateway},
		{"no_captions", http.StatusBadGateway},
		{"video_unavailable", http.StatusBadGateway},
		{"summarization_failed", http.StatusServiceUnavailable},
		{"capability_absent", http.StatusServiceUnavailable},
		{"internal_error", http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := StatusForTag(tc.tag); got != tc.want {
			t.Fatalf("StatusForTag(%q) = %d, want %d", tc.tag, got, tc.want)
		}
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, services.Wrap(services.ErrInvalidURL, "youtube", "extract id", "empty url", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Success {
		t.Fatal("failure envelope marked success")
	}
	if envelope.ErrorType != "invalid_url" {
		t.Fatalf("error_type = %q", envelope.ErrorType)
	}
	if envelope.Message == "" {
		t.Fatal("empty message")
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, services.Wrap(nil, "store", "query", "disk corrupted at /var/lib", nil))

	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.ErrorType != "internal_error" {
		t.Fatalf("error_type = %q", envelope.ErrorType)
	}
	if envelope.Message != "internal error" {
		t.Fatalf("internal detail leaked: %q", envelope.Message)
	}
}

func TestFromVideo(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	record := &store.SavedVideo{
		ID:            5,
		OwnerID:       1,
		URL:           "https://youtu.be/abc123xyz",
		VideoID:       "abc123xyz",
		Platform:      store.PlatformYouTube,
		Title:         "Title",
		RawTranscript: "the transcript",
		Summary:       "notes",
		Language:      "en",
		SegmentsCount: 4,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	full := FromVideo(record)
	if full.Transcript != "the transcript" {
		t.Fatalf("transcript = %q", full.Transcript)
	}
	if full.CreatedAt != "2026-08-01T12:00:00Z" {
		t.Fatalf("created_at = %q", full.CreatedAt)
	}

	summary := FromVideoSummary(record)
	if summary.Transcript != "" {
		t.Fatal("list form carries transcript body")
	}
	if summary.Summary != "notes" || summary.SegmentsCount != 4 {
		t.Fatalf("unexpected summary form: %+v", summary)
	}
}
