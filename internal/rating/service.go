package rating

import (
	"context"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/kmutex"
)

// Service orchestrates rating writes and fingerprint recomputation.
//
// # Concurrency
//
// A fingerprint is a full fold over a book's rating set, so writes to the
// same book serialize on a keyed mutex. Writes to different books proceed in
// parallel. Reads take no lock: the fingerprint row is replaced atomically,
// so a reader sees either the previous or the next complete fingerprint.
type Service struct {
	repo   Repository
	cache  CacheRepository
	locks  *kmutex.KMutex[int]
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, cache CacheRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		locks:  kmutex.New[int](),
		logger: logger,
		now:    time.Now,
	}
}

// UpsertRating validates and stores a rating, then refreshes the book's
// fingerprint. It returns the fresh fingerprint so clients can render the
// new aggregate without a second round trip.
func (service *Service) UpsertRating(context context.Context, rating *Rating) (*Fingerprint, error) {
	if err := service.validateRating(rating); err != nil {
		return nil, err
	}

	service.locks.Lock(rating.BookID)
	defer service.locks.Unlock(rating.BookID)

	if err := service.repo.Upsert(context, rating); err != nil {
		return nil, err
	}

	fingerprint, err := service.recompute(context, rating.BookID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("rating_upserted",
		slog.Int("book_id", rating.BookID),
		slog.Int("total_ratings", fingerprint.TotalRatings),
	)

	return fingerprint, nil
}

// DeleteRating removes a reader's rating and refreshes the fingerprint.
func (service *Service) DeleteRating(context context.Context, userID string, bookID int) error {
	service.locks.Lock(bookID)
	defer service.locks.Unlock(bookID)

	if err := service.repo.Delete(context, userID, bookID); err != nil {
		return err
	}

	if _, err := service.recompute(context, bookID); err != nil {
		return err
	}

	service.logger.Info("rating_deleted", slog.Int("book_id", bookID))
	return nil
}

// GetRating returns a single reader's rating for a book.
func (service *Service) GetRating(context context.Context, userID string, bookID int) (*Rating, error) {
	return service.repo.GetByUserBook(context, userID, bookID)
}

// GetFingerprint returns the current fingerprint for a book, preferring the
// cache. A never-rated book yields a fingerprint with HasRatings == false
// rather than an error.
func (service *Service) GetFingerprint(context context.Context, bookID int) (*Fingerprint, error) {
	cached, err := service.cache.GetFingerprint(context, bookID)
	if err != nil {
		// Cache trouble must not break reads; fall through to storage.
		service.logger.Warn("fingerprint_cache_read_failed",
			slog.Int("book_id", bookID),
			slog.Any("error", err),
		)
	}
	if cached != nil {
		return cached, nil
	}

	fingerprint, err := service.repo.GetFingerprint(context, bookID)
	if err != nil {
		return nil, err
	}
	if fingerprint == nil {
		fingerprint = BuildFingerprint(bookID, nil, service.now())
	}

	if err := service.cache.SetFingerprint(context, fingerprint); err != nil {
		service.logger.Warn("fingerprint_cache_write_failed",
			slog.Int("book_id", bookID),
			slog.Any("error", err),
		)
	}

	return fingerprint, nil
}

// FingerprintsFor returns stored fingerprints for many books in one storage
// round trip. Books nobody has rated are absent from the map.
func (service *Service) FingerprintsFor(context context.Context, bookIDs []int) (map[int]*Fingerprint, error) {
	return service.repo.GetFingerprints(context, bookIDs)
}

// recompute rebuilds, persists, and caches the fingerprint for a book.
// Callers must hold the book's lock.
func (service *Service) recompute(context context.Context, bookID int) (*Fingerprint, error) {
	ratings, err := service.repo.ListByBook(context, bookID)
	if err != nil {
		return nil, err
	}

	fingerprint := BuildFingerprint(bookID, ratings, service.now())

	if err := service.repo.SaveFingerprint(context, fingerprint); err != nil {
		return nil, err
	}

	if err := service.cache.SetFingerprint(context, fingerprint); err != nil {
		service.logger.Warn("fingerprint_cache_write_failed",
			slog.Int("book_id", bookID),
			slog.Any("error", err),
		)
	}

	return fingerprint, nil
}

// validateRating rejects out-of-domain scores and empty rating sets before
// they can reach storage or the aggregator.
func (service *Service) validateRating(rating *Rating) error {
	validator := &validate.Validator{}

	validator.
		RangeOptional(FieldPace, rating.Pace, MinScore, MaxScore).
		RangeOptional(FieldEmotionalImpact, rating.EmotionalImpact, MinScore, MaxScore).
		RangeOptional(FieldComplexity, rating.Complexity, MinScore, MaxScore).
		RangeOptional(FieldCharacterDevelopment, rating.CharacterDevelopment, MinScore, MaxScore).
		RangeOptional(FieldPlotQuality, rating.PlotQuality, MinScore, MaxScore).
		RangeOptional(FieldProseStyle, rating.ProseStyle, MinScore, MaxScore).
		RangeOptional(FieldOriginality, rating.Originality, MinScore, MaxScore)

	anySet := false
	for _, dimension := range Dimensions {
		if rating.ScoreFor(dimension) != nil {
			anySet = true
			break
		}
	}
	validator.Custom("rating", !anySet, "At least one dimension must be scored")

	return validator.Err()
}
