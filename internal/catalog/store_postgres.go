package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func bookColumns() string {
	s := schema.CatalogBook
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		s.ID, s.Title, s.Author, s.ISBN, s.Description, s.CoverURL, s.PublicationDate, s.CreatedAt,
	)
}

func scanBook(row pgx.Row) (*Book, error) {
	book := &Book{Genres: []Genre{}}
	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.ISBN,
		&book.Description, &book.CoverURL, &book.PublicationDate, &book.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (repository *PostgresRepository) CreateBook(context context.Context, book *Book, genreIDs []int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_book")
	}
	defer func() { _ = transaction.Rollback(context) }()

	s := schema.CatalogBook
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s, %s
	`,
		s.Table, s.Title, s.Author, s.ISBN, s.Description, s.CoverURL, s.PublicationDate, s.CreatedAt,
		s.ID, s.CreatedAt,
	)

	err = transaction.QueryRow(context, query,
		book.Title, book.Author, book.ISBN, book.Description, book.CoverURL, book.PublicationDate,
	).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_book")
	}

	join := schema.CatalogBookGenre
	for _, genreID := range genreIDs {
		insertJoin := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			join.Table, join.BookID, join.GenreID,
		)
		if _, err := transaction.Exec(context, insertJoin, book.ID, genreID); err != nil {
			return dberr.Wrap(err, "insert_book_genre")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_book")
	}

	return nil
}

func (repository *PostgresRepository) GetBook(context context.Context, bookID int) (*Book, error) {
	s := schema.CatalogBook
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, bookColumns(), s.Table, s.ID)

	book, err := scanBook(repository.db.QueryRow(context, query, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}

	if err := repository.attachGenres(context, map[int]*Book{book.ID: book}); err != nil {
		return nil, err
	}

	return book, nil
}

func (repository *PostgresRepository) GetBooks(context context.Context, bookIDs []int) (map[int]*Book, error) {
	if len(bookIDs) == 0 {
		return map[int]*Book{}, nil
	}

	s := schema.CatalogBook
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`, bookColumns(), s.Table, s.ID)

	rows, err := repository.db.Query(context, query, bookIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "get_books")
	}
	defer rows.Close()

	books := make(map[int]*Book)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books[book.ID] = book
	}

	if err := repository.attachGenres(context, books); err != nil {
		return nil, err
	}

	return books, nil
}

func (repository *PostgresRepository) ListBooks(context context.Context) ([]*Book, error) {
	s := schema.CatalogBook
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`, bookColumns(), s.Table, s.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	byID := make(map[int]*Book)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
		byID[book.ID] = book
	}

	if err := repository.attachGenres(context, byID); err != nil {
		return nil, err
	}

	return books, nil
}

// attachGenres hydrates the Genres slice of every book in the map with one
// join query.
func (repository *PostgresRepository) attachGenres(context context.Context, books map[int]*Book) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]int, 0, len(books))
	for id := range books {
		ids = append(ids, id)
	}

	g := schema.CatalogGenre
	join := schema.CatalogBookGenre
	query := fmt.Sprintf(`
		SELECT bg.%s, g.%s, g.%s, g.%s, g.%s
		FROM %s bg
		JOIN %s g ON g.%s = bg.%s
		WHERE bg.%s = ANY($1)
		ORDER BY g.%s ASC
	`,
		join.BookID, g.ID, g.Name, g.Slug, g.CreatedAt,
		join.Table, g.Table, g.ID, join.GenreID, join.BookID, g.Name,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "attach_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int
		genre := Genre{}
		if err := rows.Scan(&bookID, &genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return dberr.Wrap(err, "scan_book_genre")
		}
		if book, ok := books[bookID]; ok {
			book.Genres = append(book.Genres, genre)
		}
	}

	return nil
}

func (repository *PostgresRepository) ListGenres(context context.Context) ([]*Genre, error) {
	g := schema.CatalogGenre
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		g.ID, g.Name, g.Slug, g.CreatedAt, g.Table, g.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	var genres []*Genre
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, genre)
	}

	return genres, nil
}

func (repository *PostgresRepository) CreateGenre(context context.Context, genre *Genre) error {
	g := schema.CatalogGenre
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, NOW())
		RETURNING %s, %s
	`,
		g.Table, g.Name, g.Slug, g.CreatedAt,
		g.ID, g.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID, &genre.CreatedAt)
	return dberr.Wrap(err, "insert_genre")
}
