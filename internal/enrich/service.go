package enrich

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/content"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
)

// BookResolver turns book IDs into catalogue records for task building.
type BookResolver interface {
	GetBooks(context context.Context, bookIDs []int) (map[int]*catalog.Book, error)
}

// SubmissionWriter stores converted reviews as content submissions. The
// writer recomputes the book's aggregate as part of the upsert.
type SubmissionWriter interface {
	UpsertSubmission(context context.Context, submission *content.Submission) (*content.Aggregate, error)
}

// BookReport is the per-book outcome of an enrichment run.
type BookReport struct {
	BookID int    `json:"book_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Per-book report statuses.
const (
	StatusEnriched  = "enriched"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusUnknown   = "unknown_book"
)

// RunReport summarizes one enrichment run.
type RunReport struct {
	Requested int          `json:"requested"`
	Enriched  int          `json:"enriched"`
	Failed    int          `json:"failed"`
	Books     []BookReport `json:"books"`
}

// Service drives enrichment runs end to end: resolve books, fetch reviews,
// store submissions under the reserved enrichment actor.
type Service struct {
	books   BookResolver
	writer  SubmissionWriter
	fetcher *Fetcher
	logger  *slog.Logger
}

func NewService(books BookResolver, writer SubmissionWriter, fetcher *Fetcher, logger *slog.Logger) *Service {
	return &Service{
		books:   books,
		writer:  writer,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Run enriches the given books and returns a per-book report.
//
// Failures stay per book: an unknown ID, a failed lookup, or a rejected
// submission marks that book failed and the run keeps going. Existing
// aggregates are only ever replaced by freshly recomputed ones, so a failed
// book's aggregate is left exactly as it was.
func (service *Service) Run(context context.Context, bookIDs []int, opts Options) (*RunReport, error) {
	validator := &validate.Validator{}
	validator.
		Custom("book_ids", len(bookIDs) == 0, "At least one book ID is required").
		Custom("book_ids", len(bookIDs) > constants.EnrichMaxBatch, "Too many books in one run")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	books, err := service.books.GetBooks(context, bookIDs)
	if err != nil {
		return nil, err
	}

	report := &RunReport{Requested: len(bookIDs)}

	tasks := make([]Task, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		book, ok := books[bookID]
		if !ok {
			report.Books = append(report.Books, BookReport{BookID: bookID, Status: StatusUnknown})
			report.Failed++
			continue
		}
		tasks = append(tasks, Task{BookID: book.ID, Title: book.Title, Author: book.Author})
	}

	results := service.fetcher.Run(context, tasks, opts)

	for i := range results {
		report.Books = append(report.Books, service.settle(context, &results[i]))
		if report.Books[len(report.Books)-1].Status == StatusEnriched {
			report.Enriched++
		} else {
			report.Failed++
		}
	}

	service.logger.Info("enrich_run_report",
		slog.Int("requested", report.Requested),
		slog.Int("enriched", report.Enriched),
		slog.Int("failed", report.Failed),
	)

	return report, nil
}

// settle stores one successful result as an external submission, or maps the
// failure onto the report.
func (service *Service) settle(context context.Context, result *Result) BookReport {
	report := BookReport{BookID: result.Task.BookID}

	switch {
	case errors.Is(result.Err, ErrCancelled):
		report.Status = StatusCancelled
		report.Error = result.Err.Error()
		return report
	case result.Failed():
		report.Status = StatusFailed
		report.Error = result.Err.Error()
		return report
	}

	_, err := service.writer.UpsertSubmission(context, &content.Submission{
		BookID:        result.Task.BookID,
		UserID:        constants.EnrichActorID,
		Source:        content.SourceExternal,
		Violence:      result.Review.Violence,
		Language:      result.Review.Language,
		SexualContent: result.Review.SexualContent,
		SubstanceUse:  result.Review.SubstanceUse,
		Tags:          result.Review.Tags,
	})
	if err != nil {
		report.Status = StatusFailed
		report.Error = err.Error()
		service.logger.Warn("enrich_store_failed",
			slog.Int("book_id", result.Task.BookID),
			slog.Any("error", err),
		)
		return report
	}

	report.Status = StatusEnriched
	return report
}
