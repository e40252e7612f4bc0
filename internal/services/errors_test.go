package services_test

import (
	"errors"
	"fmt"
	"testing"

	"stash/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("connection refused")
	err := services.Wrap(services.ErrUnavailable, "youtube", "fetch", "transcript request", base)

	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected wrapped error to match marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to preserve cause, got %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "store", "create", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected nil marker to default to transient, got %v", err)
	}
}

func TestTagClassifications(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"invalid url", services.ErrInvalidURL, "invalid_url"},
		{"unavailable", services.ErrUnavailable, "transcript_unavailable"},
		{"timeout maps to unavailable", services.ErrTimeout, "transcript_unavailable"},
		{"summarization", services.ErrSummarization, "summarization_failed"},
		{"summarizer timeout stays summarization",
			services.Wrap(services.ErrSummarization, "groq", "summarize", "request timed out", services.ErrTimeout),
			"summarization_failed"},
		{"conflict", services.ErrConflict, "conflict"},
		{"validation", services.ErrValidation, "validation_error"},
		{"not found", services.ErrNotFound, "not_found"},
		{"unauthorized", services.ErrUnauthorized, "unauthorized"},
		{"unknown", errors.New("boom"), "internal_error"},
		{"wrapped", fmt.Errorf("outer: %w", services.ErrInvalidURL), "invalid_url"},
	}
	for _, tc := range cases {
		if got := services.Tag(tc.err); got != tc.want {
			t.Errorf("%s: Tag = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestProviderErrorSubReason(t *testing.T) {
	err := &services.ProviderError{Reason: "no_captions", Err: errors.New("captions disabled")}

	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatal("provider error should match ErrUnavailable")
	}
	if got := services.Tag(err); got != "no_captions" {
		t.Fatalf("Tag = %q, want no_captions", got)
	}

	wrapped := services.Wrap(services.ErrUnavailable, "youtube", "fetch", "", err)
	if got := services.Tag(wrapped); got != "no_captions" {
		t.Fatalf("Tag through wrap = %q, want no_captions", got)
	}
}

func TestTagNil(t *testing.T) {
	if got := services.Tag(nil); got != "" {
		t.Fatalf("Tag(nil) = %q, want empty", got)
	}
}
