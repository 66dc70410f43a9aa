package content

import "context"

// Repository persists content submissions.
type Repository interface {
	// Upsert inserts the submission or, when the (user, book) pair already
	// has one, replaces it. Replacement keeps the original CreatedAt.
	Upsert(context context.Context, submission *Submission) error

	// GetByUserBook returns the submission for a (user, book) pair.
	GetByUserBook(context context.Context, userID string, bookID int) (*Submission, error)

	// ListByBook returns every current submission for the book.
	ListByBook(context context.Context, bookID int) ([]*Submission, error)

	// ListByBooks returns current submissions for many books, keyed by book ID.
	// Books without submissions are absent from the map.
	ListByBooks(context context.Context, bookIDs []int) (map[int][]*Submission, error)

	// Delete removes the (user, book) submission.
	Delete(context context.Context, userID string, bookID int) error
}

// CacheRepository is the volatile cache for derived aggregates.
type CacheRepository interface {
	// GetAggregate returns the cached aggregate, or (nil, nil) on a miss.
	GetAggregate(context context.Context, bookID int) (*Aggregate, error)

	// SetAggregate stores a freshly computed aggregate.
	SetAggregate(context context.Context, aggregate *Aggregate) error

	// Invalidate drops the cached aggregate for a book.
	Invalidate(context context.Context, bookID int) error
}
