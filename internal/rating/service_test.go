package rating_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/internal/rating"
	"github.com/shelfmark/shelfmark/pkg/pointer"
)

// fakeRepository is an in-memory Repository keyed by (user, book).
type fakeRepository struct {
	mu           sync.Mutex
	ratings      map[string]*rating.Rating
	fingerprints map[int]*rating.Fingerprint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		ratings:      make(map[string]*rating.Rating),
		fingerprints: make(map[int]*rating.Fingerprint),
	}
}

func key(userID string, bookID int) string {
	return fmt.Sprintf("%s/%d", userID, bookID)
}

func (f *fakeRepository) Upsert(_ context.Context, r *rating.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *r
	f.ratings[key(r.UserID, r.BookID)] = &clone
	return nil
}

func (f *fakeRepository) GetByUserBook(_ context.Context, userID string, bookID int) (*rating.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.ratings[key(userID, bookID)]; ok {
		return r, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) ListByBook(_ context.Context, bookID int) ([]*rating.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*rating.Rating
	for _, r := range f.ratings {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepository) Delete(_ context.Context, userID string, bookID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(userID, bookID)
	if _, ok := f.ratings[k]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.ratings, k)
	return nil
}

func (f *fakeRepository) SaveFingerprint(_ context.Context, fp *rating.Fingerprint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fingerprints[fp.BookID] = fp
	return nil
}

func (f *fakeRepository) GetFingerprint(_ context.Context, bookID int) (*rating.Fingerprint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fingerprints[bookID], nil
}

func (f *fakeRepository) GetFingerprints(_ context.Context, bookIDs []int) (map[int]*rating.Fingerprint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]*rating.Fingerprint)
	for _, id := range bookIDs {
		if fp, ok := f.fingerprints[id]; ok {
			out[id] = fp
		}
	}
	return out, nil
}

// noopCache discards everything and always misses.
type noopCache struct{}

func (noopCache) GetFingerprint(context.Context, int) (*rating.Fingerprint, error) { return nil, nil }
func (noopCache) SetFingerprint(context.Context, *rating.Fingerprint) error        { return nil }
func (noopCache) Invalidate(context.Context, int) error                            { return nil }

func newTestService(repo *fakeRepository) *rating.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return rating.NewService(repo, noopCache{}, logger)
}

/*
TestService_UpsertRating_RecomputesFingerprint verifies that a write
immediately persists a fresh fingerprint built from all current ratings.
*/
func TestService_UpsertRating_RecomputesFingerprint(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	first, err := service.UpsertRating(ctx, &rating.Rating{
		UserID: "user-a", BookID: 1, Pace: pointer.To(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalRatings)
	require.NotNil(t, first.StarEquivalent)
	assert.InDelta(t, 4.0, *first.StarEquivalent, 1e-9)

	second, err := service.UpsertRating(ctx, &rating.Rating{
		UserID: "user-b", BookID: 1, Pace: pointer.To(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.TotalRatings)
	assert.InDelta(t, 3.0, *second.StarEquivalent, 1e-9)

	// The persisted copy matches the returned one.
	stored, err := repo.GetFingerprint(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second, stored)
}

/*
TestService_UpsertRating_ReplacesNotAppends verifies upsert semantics: a
second write by the same user replaces the first rating instead of adding a
new contributor.
*/
func TestService_UpsertRating_ReplacesNotAppends(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.UpsertRating(ctx, &rating.Rating{
		UserID: "user-a", BookID: 1, Pace: pointer.To(1),
	})
	require.NoError(t, err)

	fingerprint, err := service.UpsertRating(ctx, &rating.Rating{
		UserID: "user-a", BookID: 1, Pace: pointer.To(5),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fingerprint.TotalRatings)
	assert.InDelta(t, 5.0, *fingerprint.StarEquivalent, 1e-9)
}

/*
TestService_UpsertRating_Validation verifies that out-of-range scores and
empty rating sets are rejected before touching storage.
*/
func TestService_UpsertRating_Validation(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	tests := []struct {
		name   string
		rating *rating.Rating
	}{
		{"score above range", &rating.Rating{UserID: "u", BookID: 1, Pace: pointer.To(6)}},
		{"score below range", &rating.Rating{UserID: "u", BookID: 1, Originality: pointer.To(0)}},
		{"no dimension set", &rating.Rating{UserID: "u", BookID: 1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := service.UpsertRating(ctx, test.rating)
			require.Error(t, err)
			assert.True(t, apperr.IsAppError(err))
			assert.Empty(t, repo.ratings)
		})
	}
}

/*
TestService_DeleteRating_RefreshesFingerprint verifies that deleting the last
rating leaves an empty fingerprint rather than a stale one.
*/
func TestService_DeleteRating_RefreshesFingerprint(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.UpsertRating(ctx, &rating.Rating{
		UserID: "user-a", BookID: 1, Pace: pointer.To(4),
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteRating(ctx, "user-a", 1))

	fingerprint, err := service.GetFingerprint(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, fingerprint.TotalRatings)
	assert.False(t, fingerprint.HasRatings)
	assert.Nil(t, fingerprint.StarEquivalent)
}

/*
TestService_GetFingerprint_NeverRated verifies that an unknown book resolves
to an empty fingerprint rather than an error.
*/
func TestService_GetFingerprint_NeverRated(t *testing.T) {
	service := newTestService(newFakeRepository())

	fingerprint, err := service.GetFingerprint(context.Background(), 999)

	require.NoError(t, err)
	require.NotNil(t, fingerprint)
	assert.Equal(t, 999, fingerprint.BookID)
	assert.False(t, fingerprint.HasRatings)
}
