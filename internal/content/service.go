package content

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/kmutex"
)

// Service orchestrates submission writes and aggregate recomputation.
//
// # Concurrency
//
// Recomputation is read-then-write over the full submission set of a book, so
// it is serialized per book via a keyed mutex. Different books recompute in
// parallel. Reads (GetAggregate) take no lock: they see either the previous
// or the next complete aggregate, never a partial one.
type Service struct {
	repo      Repository
	cache     CacheRepository
	locks     *kmutex.KMutex[int]
	tagPolicy TagPolicy
	logger    *slog.Logger
}

func NewService(repo Repository, cache CacheRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		locks:     kmutex.New[int](),
		tagPolicy: CommonTags,
		logger:    logger,
	}
}

// UpsertSubmission validates and stores a submission, then refreshes the
// book's aggregate.
func (service *Service) UpsertSubmission(context context.Context, submission *Submission) (*Aggregate, error) {
	if err := service.validateSubmission(submission); err != nil {
		return nil, err
	}

	if submission.Source == "" {
		submission.Source = SourceUser
	}

	service.locks.Lock(submission.BookID)
	defer service.locks.Unlock(submission.BookID)

	if err := service.repo.Upsert(context, submission); err != nil {
		return nil, err
	}

	aggregate, err := service.recompute(context, submission.BookID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("content_submission_upserted",
		slog.Int("book_id", submission.BookID),
		slog.String("source", string(submission.Source)),
		slog.Int("submission_count", aggregate.Count),
	)

	return aggregate, nil
}

// DeleteSubmission removes a reader's submission and refreshes the aggregate.
func (service *Service) DeleteSubmission(context context.Context, userID string, bookID int) error {
	service.locks.Lock(bookID)
	defer service.locks.Unlock(bookID)

	if err := service.repo.Delete(context, userID, bookID); err != nil {
		return err
	}

	if _, err := service.recompute(context, bookID); err != nil {
		return err
	}

	service.logger.Info("content_submission_deleted", slog.Int("book_id", bookID))
	return nil
}

// GetSubmission returns a single reader's submission for a book.
func (service *Service) GetSubmission(context context.Context, userID string, bookID int) (*Submission, error) {
	return service.repo.GetByUserBook(context, userID, bookID)
}

// GetAggregate returns the current aggregate for a book, preferring the cache.
//
// A book with zero submissions yields an aggregate with Count == 0, which the
// filter engine treats as vacuously passing every content threshold.
func (service *Service) GetAggregate(context context.Context, bookID int) (*Aggregate, error) {
	cached, err := service.cache.GetAggregate(context, bookID)
	if err != nil {
		// Cache trouble must not break reads; fall through to storage.
		service.logger.Warn("content_aggregate_cache_read_failed",
			slog.Int("book_id", bookID),
			slog.Any("error", err),
		)
	}
	if cached != nil {
		return cached, nil
	}

	submissions, err := service.repo.ListByBook(context, bookID)
	if err != nil {
		return nil, err
	}

	aggregate := BuildAggregate(bookID, submissions, service.tagPolicy)

	if err := service.cache.SetAggregate(context, aggregate); err != nil {
		service.logger.Warn("content_aggregate_cache_write_failed",
			slog.Int("book_id", bookID),
			slog.Any("error", err),
		)
	}

	return aggregate, nil
}

// AggregatesFor computes aggregates for many books in one storage round trip.
// Used by the catalog filter, which needs a consistent snapshot for a page
// of candidate books.
func (service *Service) AggregatesFor(context context.Context, bookIDs []int) (map[int]*Aggregate, error) {
	byBook, err := service.repo.ListByBooks(context, bookIDs)
	if err != nil {
		return nil, err
	}

	aggregates := make(map[int]*Aggregate, len(byBook))
	for bookID, submissions := range byBook {
		aggregates[bookID] = BuildAggregate(bookID, submissions, service.tagPolicy)
	}

	return aggregates, nil
}

// recompute rebuilds and caches the aggregate for a book.
// Callers must hold the book's lock.
func (service *Service) recompute(context context.Context, bookID int) (*Aggregate, error) {
	submissions, err := service.repo.ListByBook(context, bookID)
	if err != nil {
		return nil, err
	}

	aggregate := BuildAggregate(bookID, submissions, service.tagPolicy)

	if err := service.cache.SetAggregate(context, aggregate); err != nil {
		service.logger.Warn("content_aggregate_cache_write_failed",
			slog.Int("book_id", bookID),
			slog.Any("error", err),
		)
	}

	return aggregate, nil
}

// validateSubmission rejects out-of-domain levels and oversized tags before
// they can reach storage or the aggregator.
func (service *Service) validateSubmission(submission *Submission) error {
	validator := &validate.Validator{}

	validator.
		Custom(FieldViolence, !submission.Violence.Valid(), "Must be between 0 and 4").
		Custom(FieldLanguage, !submission.Language.Valid(), "Must be between 0 and 4").
		Custom(FieldSexualContent, !submission.SexualContent.Valid(), "Must be between 0 and 4").
		Custom(FieldSubstanceUse, !submission.SubstanceUse.Valid(), "Must be between 0 and 4").
		Custom(FieldTags, len(submission.Tags) > MaxTagsPerSubmission, "Too many tags")

	for _, tag := range submission.Tags {
		validator.MaxLen(FieldTags, tag, MaxTagLength)
	}

	return validator.Err()
}
