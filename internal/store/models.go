package store

import "time"

// PlatformYouTube is the only platform tag currently produced by ingestion.
const PlatformYouTube = "youtube"

// SavedVideo is a persisted transcript record. The natural key is
// (OwnerID, VideoID); VideoID is the platform's canonical identifier
// extracted from the submitted URL, not the raw URL.
type SavedVideo struct {
	ID            int64
	OwnerID       int64
	URL           string
	VideoID       string
	Platform      string
	Title         string
	RawTranscript string
	Summary       string
	Language      string
	IsGenerated   bool
	SegmentsCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasSummary reports whether an AI summary was stored for the record.
func (v SavedVideo) HasSummary() bool {
	return v.Summary != ""
}

// VideoUpdate carries the mutable fields of a saved video. Nil pointers leave
// the stored value untouched.
type VideoUpdate struct {
	Title   *string
	Summary *string
}

// User is a registered account that owns saved videos.
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	CreatedAt      time.Time
}
