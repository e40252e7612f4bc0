package main

import (
	"strings"
	"testing"
	"time"

	"stash/internal/store"
)

func TestRenderVideoTable(t *testing.T) {
	saved := time.Date(2026, 8, 20, 9, 30, 0, 0, time.Local)
	videos := []*store.SavedVideo{
		{
			ID:            12,
			VideoID:       "dQw4w9WgXcQ",
			Title:         "Short title",
			Language:      "en",
			Summary:       "notes",
			SegmentsCount: 42,
			CreatedAt:     saved,
		},
		{
			ID:        3,
			VideoID:   "abc123xyz",
			Title:     strings.Repeat("é", titleColumnWidth+10),
			Language:  "de",
			CreatedAt: saved,
		},
	}

	rendered := renderVideoTable(videos)

	for _, want := range []string{"ID", "Video", "Title", "Lang", "Summary", "Segments", "Saved"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("missing header %q in:\n%s", want, rendered)
		}
	}
	for _, want := range []string{"dQw4w9WgXcQ", "Short title", "42", "yes", "2026-08-20 09:30"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("missing cell %q in:\n%s", want, rendered)
		}
	}

	// Long titles are cut at the column budget with an ellipsis, counted in
	// runes so multi-byte text never splits.
	truncated := strings.Repeat("é", titleColumnWidth-1) + "…"
	if !strings.Contains(rendered, truncated) {
		t.Fatalf("missing truncated title in:\n%s", rendered)
	}
	if strings.Contains(rendered, strings.Repeat("é", titleColumnWidth)) {
		t.Fatalf("title not truncated in:\n%s", rendered)
	}

	// A record without a summary renders the negative marker.
	if !strings.Contains(rendered, "no") {
		t.Fatalf("missing summary marker in:\n%s", rendered)
	}
}
