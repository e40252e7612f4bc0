package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"stash/internal/services"
	"stash/internal/store"
	"stash/internal/testsupport"
)

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	user := testsupport.MustCreateUser(t, st, "alice")
	if user.ID == 0 {
		t.Fatal("expected user ID to be assigned")
	}

	video := testsupport.MustCreateVideo(t, st, user.ID, "abc123")
	if video.ID == 0 {
		t.Fatal("expected video ID to be assigned")
	}
	if video.Platform != store.PlatformYouTube {
		t.Fatalf("expected platform default, got %q", video.Platform)
	}
	if video.CreatedAt.IsZero() || video.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set: %#v", video)
	}

	found, err := st.FindByNaturalKey(ctx, user.ID, "abc123")
	if err != nil {
		t.Fatalf("FindByNaturalKey failed: %v", err)
	}
	if found == nil || found.ID != video.ID {
		t.Fatalf("expected to find inserted video, got %#v", found)
	}
}

func TestFindByNaturalKeyMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	found, err := st.FindByNaturalKey(context.Background(), 1, "missing")
	if err != nil {
		t.Fatalf("FindByNaturalKey failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for unknown key, got %#v", found)
	}
}

func TestCreateVideoConflictOnNaturalKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	user := testsupport.MustCreateUser(t, st, "alice")
	testsupport.MustCreateVideo(t, st, user.ID, "abc123")

	_, err := st.CreateVideo(context.Background(), &store.SavedVideo{
		OwnerID:       user.ID,
		URL:           "https://youtu.be/abc123",
		VideoID:       "abc123",
		RawTranscript: "duplicate",
	})
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateVideoDistinctOwnersShareVideoID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	alice := testsupport.MustCreateUser(t, st, "alice")
	bob := testsupport.MustCreateUser(t, st, "bob")

	testsupport.MustCreateVideo(t, st, alice.ID, "abc123")
	testsupport.MustCreateVideo(t, st, bob.ID, "abc123")

	count, err := st.CountVideos(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("CountVideos failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected bob to own one video, got %d", count)
	}
}

func TestConcurrentCreateYieldsSingleRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	user := testsupport.MustCreateUser(t, st, "alice")
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = st.CreateVideo(ctx, &store.SavedVideo{
				OwnerID:       user.ID,
				URL:           "https://www.youtube.com/watch?v=race01",
				VideoID:       "race01",
				RawTranscript: "racing",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, services.ErrConflict):
		default:
			t.Fatalf("unexpected error from racing insert: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one successful insert, got %d", winners)
	}

	count, err := st.CountVideos(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountVideos failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one persisted record, got %d", count)
	}
}

func TestVideosByOwnerOrdering(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	user := testsupport.MustCreateUser(t, st, "alice")
	first := testsupport.MustCreateVideo(t, st, user.ID, "first1")
	second := testsupport.MustCreateVideo(t, st, user.ID, "second")

	videos, err := st.VideosByOwner(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("VideosByOwner failed: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected two videos, got %d", len(videos))
	}
	if videos[0].ID != second.ID || videos[1].ID != first.ID {
		t.Fatalf("expected newest first, got %d then %d", videos[0].ID, videos[1].ID)
	}
}

func TestUpdateVideoFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	user := testsupport.MustCreateUser(t, st, "alice")
	video := testsupport.MustCreateVideo(t, st, user.ID, "abc123")

	title := "Adaptive Notes"
	summary := "## Key points"
	updated, err := st.UpdateVideo(context.Background(), user.ID, video.ID, store.VideoUpdate{
		Title:   &title,
		Summary: &summary,
	})
	if err != nil {
		t.Fatalf("UpdateVideo failed: %v", err)
	}
	if updated.Title != title || updated.Summary != summary {
		t.Fatalf("unexpected updated record: %#v", updated)
	}
	if !updated.HasSummary() {
		t.Fatal("expected summary to be reported present")
	}
}

func TestUpdateVideoRejectsEmptyUpdate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	user := testsupport.MustCreateUser(t, st, "alice")
	video := testsupport.MustCreateVideo(t, st, user.ID, "abc123")

	_, err := st.UpdateVideo(context.Background(), user.ID, video.ID, store.VideoUpdate{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateVideoWrongOwner(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	alice := testsupport.MustCreateUser(t, st, "alice")
	bob := testsupport.MustCreateUser(t, st, "bob")
	video := testsupport.MustCreateVideo(t, st, alice.ID, "abc123")

	title := "hijack"
	_, err := st.UpdateVideo(context.Background(), bob.ID, video.ID, store.VideoUpdate{Title: &title})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
}

func TestDeleteVideoScopedToOwner(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	alice := testsupport.MustCreateUser(t, st, "alice")
	bob := testsupport.MustCreateUser(t, st, "bob")
	video := testsupport.MustCreateVideo(t, st, alice.ID, "abc123")

	ctx := context.Background()
	removed, err := st.DeleteVideo(ctx, bob.ID, video.ID)
	if err != nil {
		t.Fatalf("DeleteVideo failed: %v", err)
	}
	if removed {
		t.Fatal("bob should not be able to delete alice's video")
	}

	removed, err = st.DeleteVideo(ctx, alice.ID, video.ID)
	if err != nil {
		t.Fatalf("DeleteVideo failed: %v", err)
	}
	if !removed {
		t.Fatal("expected owner delete to succeed")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	testsupport.MustCreateUser(t, st, "alice")
	_, err := st.CreateUser(context.Background(), "alice", "hash")
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}
}

func TestUserLookups(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	created := testsupport.MustCreateUser(t, st, "alice")

	byName, err := st.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("UserByUsername failed: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Fatalf("unexpected lookup result: %#v", byName)
	}

	missing, err := st.UserByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("UserByUsername failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown user, got %#v", missing)
	}
}
