package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stash/internal/services"
)

const videoColumns = "id, owner_id, url, video_id, platform, title, raw_transcript, ai_summary, language, is_generated, segments_count, created_at, updated_at"

// CreateVideo inserts a new saved video. A unique-constraint failure on the
// (owner, video id) natural key returns an error matching services.ErrConflict
// so callers can recover with a re-read instead of surfacing a duplicate.
func (s *Store) CreateVideo(ctx context.Context, video *SavedVideo) (*SavedVideo, error) {
	if video == nil {
		return nil, errors.New("video is nil")
	}
	if video.OwnerID == 0 {
		return nil, errors.New("video owner required")
	}
	if strings.TrimSpace(video.VideoID) == "" {
		return nil, errors.New("video id required")
	}
	platform := video.Platform
	if platform == "" {
		platform = PlatformYouTube
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO saved_videos (
            owner_id, url, video_id, platform, title, raw_transcript,
            ai_summary, language, is_generated, segments_count, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		video.OwnerID,
		video.URL,
		video.VideoID,
		platform,
		nullableString(video.Title),
		video.RawTranscript,
		nullableString(video.Summary),
		nullableString(video.Language),
		boolToInt(video.IsGenerated),
		video.SegmentsCount,
		timestamp,
		timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, services.Wrap(services.ErrConflict, "store", "create video", video.VideoID, err)
		}
		return nil, fmt.Errorf("insert video: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.videoRow(ctx, `SELECT `+videoColumns+` FROM saved_videos WHERE id = ?`, id)
}

// FindByNaturalKey returns the saved video for an owner and platform video id,
// or nil when no such record exists.
func (s *Store) FindByNaturalKey(ctx context.Context, ownerID int64, videoID string) (*SavedVideo, error) {
	return s.videoRow(
		ctx,
		`SELECT `+videoColumns+` FROM saved_videos WHERE owner_id = ? AND video_id = ?`,
		ownerID, videoID,
	)
}

// VideoByID fetches a saved video by row identifier scoped to its owner.
func (s *Store) VideoByID(ctx context.Context, ownerID, id int64) (*SavedVideo, error) {
	return s.videoRow(
		ctx,
		`SELECT `+videoColumns+` FROM saved_videos WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
}

// VideosByOwner returns all of an owner's saved videos, newest first.
func (s *Store) VideosByOwner(ctx context.Context, ownerID int64) ([]*SavedVideo, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+videoColumns+` FROM saved_videos WHERE owner_id = ? ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []*SavedVideo
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

// UpdateVideo mutates the title and/or summary of an owner's saved video and
// returns the updated record. Missing rows match services.ErrNotFound.
func (s *Store) UpdateVideo(ctx context.Context, ownerID, id int64, update VideoUpdate) (*SavedVideo, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, nullableString(*update.Title))
	}
	if update.Summary != nil {
		sets = append(sets, "ai_summary = ?")
		args = append(args, nullableString(*update.Summary))
	}
	if len(sets) == 0 {
		return nil, services.Wrap(services.ErrValidation, "store", "update video", "no fields to update", nil)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano), id, ownerID)

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE saved_videos SET `+strings.Join(sets, ", ")+` WHERE id = ? AND owner_id = ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, services.Wrap(services.ErrNotFound, "store", "update video", "video not found", nil)
	}
	return s.VideoByID(ctx, ownerID, id)
}

// DeleteVideo removes an owner's saved video by row identifier.
func (s *Store) DeleteVideo(ctx context.Context, ownerID, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_videos WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// CountVideos returns the number of records stored for an owner.
func (s *Store) CountVideos(ctx context.Context, ownerID int64) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM saved_videos WHERE owner_id = ?`, ownerID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return count, nil
}

func (s *Store) videoRow(ctx context.Context, query string, args ...any) (*SavedVideo, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*SavedVideo, error) {
	var (
		id            int64
		ownerID       int64
		url           string
		videoID       string
		platform      string
		title         sql.NullString
		rawTranscript string
		summary       sql.NullString
		language      sql.NullString
		isGenerated   sql.NullInt64
		segmentsCount int
		createdRaw    string
		updatedRaw    string
	)

	if err := scanner.Scan(
		&id,
		&ownerID,
		&url,
		&videoID,
		&platform,
		&title,
		&rawTranscript,
		&summary,
		&language,
		&isGenerated,
		&segmentsCount,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	video := &SavedVideo{
		ID:            id,
		OwnerID:       ownerID,
		URL:           url,
		VideoID:       videoID,
		Platform:      platform,
		Title:         title.String,
		RawTranscript: rawTranscript,
		Summary:       summary.String,
		Language:      language.String,
		IsGenerated:   isGenerated.Valid && isGenerated.Int64 != 0,
		SegmentsCount: segmentsCount,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		video.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		video.UpdatedAt = updated
	}
	return video, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
