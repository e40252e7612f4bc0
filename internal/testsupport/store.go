package testsupport

import (
	"context"
	"testing"

	"stash/internal/config"
	"stash/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustCreateUser inserts an account for tests using the provided store.
func MustCreateUser(t testing.TB, st *store.Store, username string) *store.User {
	t.Helper()

	user, err := st.CreateUser(context.Background(), username, "bcrypt-hash-for-tests")
	if err != nil {
		t.Fatalf("store.CreateUser: %v", err)
	}
	return user
}

// MustCreateVideo inserts a saved video for tests using the provided store.
func MustCreateVideo(t testing.TB, st *store.Store, ownerID int64, videoID string) *store.SavedVideo {
	t.Helper()

	video, err := st.CreateVideo(context.Background(), &store.SavedVideo{
		OwnerID:       ownerID,
		URL:           "https://www.youtube.com/watch?v=" + videoID,
		VideoID:       videoID,
		RawTranscript: "hello world",
		Language:      "en",
		SegmentsCount: 2,
	})
	if err != nil {
		t.Fatalf("store.CreateVideo: %v", err)
	}
	return video
}
