package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"stash/internal/services"
)

// videoIDPattern matches the platform's canonical identifier format.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,64}$`)

// ExtractVideoID pulls the canonical video identifier out of a submitted URL.
// Supported shapes, tried in order with the first match winning:
//
//	https://www.youtube.com/watch?v=<id>
//	https://youtu.be/<id>
//	https://www.youtube.com/embed/<id>
//	https://www.youtube.com/shorts/<id>
//
// Anything else fails with services.ErrInvalidURL.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", services.Wrap(services.ErrInvalidURL, "youtube", "extract id", "empty url", nil)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidURL, "youtube", "extract id", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", services.Wrap(services.ErrInvalidURL, "youtube", "extract id", "unsupported scheme", nil)
	}

	host := strings.ToLower(parsed.Hostname())
	switch host {
	case "youtube.com", "www.youtube.com", "m.youtube.com", "music.youtube.com":
		if id := extractFromYouTubeHost(parsed); id != "" {
			return id, nil
		}
	case "youtu.be":
		if id := firstPathSegment(parsed.Path); validVideoID(id) {
			return id, nil
		}
	}

	return "", services.Wrap(services.ErrInvalidURL, "youtube", "extract id", "unrecognized url shape: "+raw, nil)
}

func extractFromYouTubeHost(parsed *url.URL) string {
	path := strings.Trim(parsed.Path, "/")
	segments := strings.Split(path, "/")

	// Watch URLs carry the identifier in the query string.
	if segments[0] == "watch" {
		if id := parsed.Query().Get("v"); validVideoID(id) {
			return id
		}
		return ""
	}

	if len(segments) >= 2 {
		switch segments[0] {
		case "embed", "shorts", "live", "v":
			if validVideoID(segments[1]) {
				return segments[1]
			}
		}
	}
	return ""
}

func firstPathSegment(path string) string {
	path = strings.Trim(path, "/")
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func validVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}
