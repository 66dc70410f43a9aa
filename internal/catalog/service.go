package catalog

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark/internal/content"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/internal/rating"
	"github.com/shelfmark/shelfmark/pkg/pagination"
	"github.com/shelfmark/shelfmark/pkg/slice"
	"github.com/shelfmark/shelfmark/pkg/slug"
)

// ContentAggregator supplies per-book content aggregates for threshold
// filtering and detail hydration.
type ContentAggregator interface {
	GetAggregate(context context.Context, bookID int) (*content.Aggregate, error)
	AggregatesFor(context context.Context, bookIDs []int) (map[int]*content.Aggregate, error)
}

// FingerprintProvider supplies per-book fingerprints for detail hydration.
type FingerprintProvider interface {
	GetFingerprint(context context.Context, bookID int) (*rating.Fingerprint, error)
}

// Service orchestrates catalogue reads, writes, and faceted discovery.
type Service struct {
	repo         Repository
	aggregates   ContentAggregator
	fingerprints FingerprintProvider
	logger       *slog.Logger
}

func NewService(repo Repository, aggregates ContentAggregator, fingerprints FingerprintProvider, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		aggregates:   aggregates,
		fingerprints: fingerprints,
		logger:       logger,
	}
}

// ListBooks runs the faceted discovery query and paginates the result.
//
// The filter needs post-aggregation facts (rounded content levels), so it
// runs in memory over a catalogue snapshot; pagination applies after
// filtering so page numbers stay stable for a given query.
func (service *Service) ListBooks(context context.Context, query Query, params pagination.Params) ([]*Book, pagination.Meta, error) {
	books, err := service.repo.ListBooks(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	var aggregates map[int]*content.Aggregate
	if queryHasThresholds(query) {
		ids := slice.Map(books, func(book *Book) int { return book.ID })
		aggregates, err = service.aggregates.AggregatesFor(context, ids)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
	}

	filtered := FilterBooks(books, aggregates, query)

	meta := pagination.NewMeta(params.Page, params.Limit, len(filtered))
	from, to := params.Slice(len(filtered))

	return filtered[from:to], meta, nil
}

// GetBookDetail returns one book hydrated with both derived aggregates.
func (service *Service) GetBookDetail(context context.Context, bookID int) (*BookDetail, error) {
	book, err := service.repo.GetBook(context, bookID)
	if err != nil {
		return nil, err
	}

	fingerprint, err := service.fingerprints.GetFingerprint(context, bookID)
	if err != nil {
		return nil, err
	}

	aggregate, err := service.aggregates.GetAggregate(context, bookID)
	if err != nil {
		return nil, err
	}

	return &BookDetail{
		Book:        book,
		Fingerprint: fingerprint,
		Content:     aggregate,
	}, nil
}

// GetBooks resolves catalogue records by ID. Used by the enrichment pipeline
// to turn book IDs into lookup tasks.
func (service *Service) GetBooks(context context.Context, bookIDs []int) (map[int]*Book, error) {
	return service.repo.GetBooks(context, bookIDs)
}

// CreateBook validates and inserts a catalogue record.
func (service *Service) CreateBook(context context.Context, book *Book, genreIDs []int) (*Book, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, book.Title).
		MaxLen(FieldTitle, book.Title, MaxTitleLength).
		Required(FieldAuthor, book.Author).
		MaxLen(FieldAuthor, book.Author, MaxAuthorLength).
		MaxLen(FieldISBN, book.ISBN, MaxISBNLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.CreateBook(context, book, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.Int("book_id", book.ID),
		slog.String("title", book.Title),
	)

	return book, nil
}

// ListGenres returns all facet genres.
func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.ListGenres(context)
}

// CreateGenre validates, slugs, and inserts a genre.
func (service *Service) CreateGenre(context context.Context, genre *Genre) (*Genre, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	genre.Slug = slug.From(genre.Name)

	if err := service.repo.CreateGenre(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return genre, nil
}

func queryHasThresholds(query Query) bool {
	for _, threshold := range query.Thresholds() {
		if threshold != nil {
			return true
		}
	}
	return false
}
