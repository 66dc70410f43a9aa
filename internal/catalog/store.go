package catalog

import "context"

// Repository persists books and genres.
type Repository interface {
	// CreateBook inserts a book and attaches the given genre IDs.
	CreateBook(context context.Context, book *Book, genreIDs []int) error

	// GetBook returns one book with its genres.
	GetBook(context context.Context, bookID int) (*Book, error)

	// GetBooks returns books by ID with their genres, keyed by book ID.
	// Unknown IDs are absent from the map.
	GetBooks(context context.Context, bookIDs []int) (map[int]*Book, error)

	// ListBooks returns the whole catalogue with genres, ordered by ID.
	ListBooks(context context.Context) ([]*Book, error)

	// ListGenres returns all genres ordered by name.
	ListGenres(context context.Context) ([]*Genre, error)

	// CreateGenre inserts a genre with a unique slug.
	CreateGenre(context context.Context, genre *Genre) error
}
