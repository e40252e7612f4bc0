// Package api defines the wire types of the HTTP interface and the mapping
// from internal models and errors onto them. Every response is wrapped in the
// outcome envelope: {"success": true, ...data} or
// {"success": false, "error_type": ..., "message": ...}.
package api

import (
	"time"

	"stash/internal/store"
)

// VideoRequest is the save-video request body.
type VideoRequest struct {
	URL string `json:"url"`
}

// VideoUpdateRequest carries the mutable fields of a saved video. Absent
// fields leave the stored value untouched.
type VideoUpdateRequest struct {
	Title   *string `json:"title"`
	Summary *string `json:"summary"`
}

// CredentialsRequest is the signup and login request body.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Video is the wire form of a saved video record.
type Video struct {
	ID            int64  `json:"id"`
	URL           string `json:"url"`
	VideoID       string `json:"video_id"`
	Platform      string `json:"platform"`
	Title         string `json:"title,omitempty"`
	Transcript    string `json:"transcript,omitempty"`
	Summary       string `json:"summary,omitempty"`
	Language      string `json:"language,omitempty"`
	IsGenerated   bool   `json:"is_generated"`
	SegmentsCount int    `json:"segments_count"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// SaveVideoResponse is the save-video success payload.
type SaveVideoResponse struct {
	Video            Video  `json:"video"`
	AlreadySaved     bool   `json:"already_saved"`
	SummaryAvailable bool   `json:"summary_available"`
	SummaryNote      string `json:"summary_note,omitempty"`
}

// VideoListResponse is the list-videos success payload.
type VideoListResponse struct {
	Videos []Video `json:"videos"`
	Count  int     `json:"count"`
}

// TokenResponse is the signup and login success payload. Signup signs the
// new user in, so both endpoints share the shape.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// HealthResponse is the health endpoint payload. It is served without the
// envelope so probes stay trivial.
type HealthResponse struct {
	Status              string `json:"status"`
	Service             string `json:"service"`
	Version             string `json:"version"`
	SummarizerAvailable bool   `json:"summarizer_available"`
}

// FromVideo converts a stored record to its wire form. The transcript is
// included; list handlers use FromVideoSummary to keep payloads small.
func FromVideo(v *store.SavedVideo) Video {
	wire := FromVideoSummary(v)
	wire.Transcript = v.RawTranscript
	return wire
}

// FromVideoSummary converts a stored record without the transcript body.
func FromVideoSummary(v *store.SavedVideo) Video {
	return Video{
		ID:            v.ID,
		URL:           v.URL,
		VideoID:       v.VideoID,
		Platform:      v.Platform,
		Title:         v.Title,
		Summary:       v.Summary,
		Language:      v.Language,
		IsGenerated:   v.IsGenerated,
		SegmentsCount: v.SegmentsCount,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromVideoList converts stored records to their list wire form.
func FromVideoList(videos []*store.SavedVideo) []Video {
	out := make([]Video, 0, len(videos))
	for _, v := range videos {
		out = append(out, FromVideoSummary(v))
	}
	return out
}
