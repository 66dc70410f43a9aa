package rating

import "context"

// Repository persists ratings and the materialized fingerprint.
type Repository interface {
	// Upsert inserts the rating or, when the (user, book) pair already has
	// one, replaces it. Replacement keeps the original CreatedAt.
	Upsert(context context.Context, rating *Rating) error

	// GetByUserBook returns the rating for a (user, book) pair.
	GetByUserBook(context context.Context, userID string, bookID int) (*Rating, error)

	// ListByBook returns every current rating for the book.
	ListByBook(context context.Context, bookID int) ([]*Rating, error)

	// Delete removes the (user, book) rating.
	Delete(context context.Context, userID string, bookID int) error

	// SaveFingerprint stores the recomputed fingerprint, replacing any
	// previous row for the book.
	SaveFingerprint(context context.Context, fingerprint *Fingerprint) error

	// GetFingerprint returns the stored fingerprint, or (nil, nil) when the
	// book has never been rated.
	GetFingerprint(context context.Context, bookID int) (*Fingerprint, error)

	// GetFingerprints returns stored fingerprints for many books, keyed by
	// book ID. Books without fingerprints are absent from the map.
	GetFingerprints(context context.Context, bookIDs []int) (map[int]*Fingerprint, error)
}

// CacheRepository is the volatile cache for fingerprints.
type CacheRepository interface {
	// GetFingerprint returns the cached fingerprint, or (nil, nil) on a miss.
	GetFingerprint(context context.Context, bookID int) (*Fingerprint, error)

	// SetFingerprint stores a freshly computed fingerprint.
	SetFingerprint(context context.Context, fingerprint *Fingerprint) error

	// Invalidate drops the cached fingerprint for a book.
	Invalidate(context context.Context, bookID int) error
}
