package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stash/internal/config"
	"stash/internal/services"
)

const transcriptJSON = `{"events":[` +
	`{"tStartMs":0,"dDurationMs":2000,"segs":[{"utf8":"hello"}]},` +
	`{"tStartMs":2000,"dDurationMs":2000,"segs":[{"utf8":"world"}]},` +
	`{"tStartMs":4000}` +
	`]}`

// newTranscriptServer serves a watch page whose caption track points back at
// the same server's transcript endpoint.
func newTranscriptServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		page := fmt.Sprintf(`<html><script>var ytInitialPlayerResponse = {`+
			`"captionTracks":[`+
			`{"baseUrl":"%s/api/timedtext?v=%s&lang=de","languageCode":"de","kind":"asr"},`+
			`{"baseUrl":"%s/api/timedtext?v=%s&lang=en","languageCode":"en","name":{"simpleText":"English"}}`+
			`],`+
			`"videoDetails":{"videoId":"%s","title":"Test Video – Part 1"}`+
			`};</script></html>`,
			srv.URL, r.URL.Query().Get("v"), srv.URL, r.URL.Query().Get("v"), r.URL.Query().Get("v"))
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fmt") != "json3" {
			http.Error(w, "unexpected format", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, transcriptJSON)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.YouTube{
		BaseURL:           baseURL,
		TimeoutSeconds:    5,
		RequestsPerMinute: 6000,
		Languages:         []string{"en"},
	})
}

func TestClientFetch(t *testing.T) {
	srv := newTranscriptServer(t)
	client := newTestClient(srv.URL)

	result, err := client.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("video id = %q", result.VideoID)
	}
	if result.Title != "Test Video – Part 1" {
		t.Fatalf("title = %q", result.Title)
	}
	if result.Transcript.Text != "hello world" {
		t.Fatalf("text = %q, want %q", result.Transcript.Text, "hello world")
	}
	if result.Transcript.Language != "en" {
		t.Fatalf("language = %q, want en", result.Transcript.Language)
	}
	if result.Transcript.IsGenerated {
		t.Fatal("manual track reported as generated")
	}
	if len(result.Transcript.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Transcript.Segments))
	}
	if result.Transcript.Segments[1].Start != 2.0 {
		t.Fatalf("second segment start = %v", result.Transcript.Segments[1].Start)
	}
}

func TestClientFetchPrefersConfiguredLanguage(t *testing.T) {
	srv := newTranscriptServer(t)
	client := NewClient(config.YouTube{
		BaseURL:           srv.URL,
		TimeoutSeconds:    5,
		RequestsPerMinute: 6000,
		Languages:         []string{"de"},
	})

	result, err := client.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.Transcript.Language != "de" {
		t.Fatalf("language = %q, want de", result.Transcript.Language)
	}
	if !result.Transcript.IsGenerated {
		t.Fatal("asr track not reported as generated")
	}
}

func TestClientFetchNoCaptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><script>var ytInitialPlayerResponse = {"videoDetails":{"title":"No Captions"}};</script></html>`)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if tag := services.Tag(err); tag != "no_captions" {
		t.Fatalf("tag = %q, want no_captions", tag)
	}
}

func TestClientFetchVideoUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><script>var x = {"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}};</script></html>`)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if tag := services.Tag(err); tag != "video_unavailable" {
		t.Fatalf("tag = %q, want video_unavailable", tag)
	}
}

func TestClientFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv.URL).Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if tag := services.Tag(err); tag != "network_error" {
		t.Fatalf("tag = %q, want network_error", tag)
	}
}

func TestClientFetchInvalidURL(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0")
	if _, err := client.Fetch(context.Background(), "https://example.com/watch?v=abc"); !errors.Is(err, services.ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}
