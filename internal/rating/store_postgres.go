package rating

import (
	"context"
	"errors"
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

func ratingColumns() string {
	s := schema.SocialRating
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		s.ID, s.UserID, s.BookID,
		s.Pace, s.EmotionalImpact, s.Complexity, s.CharacterDevelopment,
		s.PlotQuality, s.ProseStyle, s.Originality,
		s.CreatedAt, s.UpdatedAt,
	)
}

func scanRating(row pgx.Row) (*Rating, error) {
	rating := &Rating{}
	err := row.Scan(
		&rating.ID, &rating.UserID, &rating.BookID,
		&rating.Pace, &rating.EmotionalImpact, &rating.Complexity, &rating.CharacterDevelopment,
		&rating.PlotQuality, &rating.ProseStyle, &rating.Originality,
		&rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rating, nil
}

func (repository *PostgresRepository) Upsert(context context.Context, rating *Rating) error {
	s := schema.SocialRating
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = NOW()
		RETURNING %s, %s, %s
	`,
		s.Table, s.UserID, s.BookID,
		s.Pace, s.EmotionalImpact, s.Complexity, s.CharacterDevelopment,
		s.PlotQuality, s.ProseStyle, s.Originality,
		s.CreatedAt, s.UpdatedAt,
		s.UserID, s.BookID,
		s.Pace, s.Pace,
		s.EmotionalImpact, s.EmotionalImpact,
		s.Complexity, s.Complexity,
		s.CharacterDevelopment, s.CharacterDevelopment,
		s.PlotQuality, s.PlotQuality,
		s.ProseStyle, s.ProseStyle,
		s.Originality, s.Originality,
		s.UpdatedAt,
		s.ID, s.CreatedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		rating.UserID, rating.BookID,
		rating.Pace, rating.EmotionalImpact, rating.Complexity, rating.CharacterDevelopment,
		rating.PlotQuality, rating.ProseStyle, rating.Originality,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)

	return dberr.Wrap(err, "upsert_rating")
}

func (repository *PostgresRepository) GetByUserBook(context context.Context, userID string, bookID int) (*Rating, error) {
	s := schema.SocialRating
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		ratingColumns(), s.Table, s.UserID, s.BookID,
	)

	rating, err := scanRating(repository.db.QueryRow(context, query, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_rating")
	}

	return rating, nil
}

func (repository *PostgresRepository) ListByBook(context context.Context, bookID int) ([]*Rating, error) {
	s := schema.SocialRating
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		ratingColumns(), s.Table, s.BookID, s.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_ratings")
	}
	defer rows.Close()

	var ratings []*Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_rating")
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}

func (repository *PostgresRepository) Delete(context context.Context, userID string, bookID int) error {
	s := schema.SocialRating
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		s.Table, s.UserID, s.BookID,
	)

	cmd, err := repository.db.Exec(context, query, userID, bookID)
	if err != nil {
		return dberr.Wrap(err, "delete_rating")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Fingerprint Persistence
//
// The dimension stats live in a single JSONB column. pgx marshals the map on
// write and unmarshals it on read, so the persisted fingerprint round-trips
// without losing per-dimension counts.

func (repository *PostgresRepository) SaveFingerprint(context context.Context, fingerprint *Fingerprint) error {
	s := schema.SocialFingerprint
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s
	`,
		s.Table, s.BookID, s.Dimensions, s.StarEquivalent, s.TotalRatings, s.UpdatedAt,
		s.BookID,
		s.Dimensions, s.Dimensions,
		s.StarEquivalent, s.StarEquivalent,
		s.TotalRatings, s.TotalRatings,
		s.UpdatedAt, s.UpdatedAt,
	)

	_, err := repository.db.Exec(context, query,
		fingerprint.BookID, fingerprint.Dimensions,
		fingerprint.StarEquivalent, fingerprint.TotalRatings, fingerprint.UpdatedAt,
	)

	return dberr.Wrap(err, "save_fingerprint")
}

func (repository *PostgresRepository) GetFingerprint(context context.Context, bookID int) (*Fingerprint, error) {
	s := schema.SocialFingerprint
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		s.BookID, s.Dimensions, s.StarEquivalent, s.TotalRatings, s.UpdatedAt,
		s.Table, s.BookID,
	)

	fingerprint, err := scanFingerprint(repository.db.QueryRow(context, query, bookID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_fingerprint")
	}

	return fingerprint, nil
}

func (repository *PostgresRepository) GetFingerprints(context context.Context, bookIDs []int) (map[int]*Fingerprint, error) {
	if len(bookIDs) == 0 {
		return map[int]*Fingerprint{}, nil
	}

	s := schema.SocialFingerprint
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		s.BookID, s.Dimensions, s.StarEquivalent, s.TotalRatings, s.UpdatedAt,
		s.Table, s.BookID,
	)

	rows, err := repository.db.Query(context, query, bookIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "list_fingerprints")
	}
	defer rows.Close()

	fingerprints := make(map[int]*Fingerprint)
	for rows.Next() {
		fingerprint, err := scanFingerprint(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_fingerprint")
		}
		fingerprints[fingerprint.BookID] = fingerprint
	}

	return fingerprints, nil
}

func scanFingerprint(row pgx.Row) (*Fingerprint, error) {
	fingerprint := &Fingerprint{}
	err := row.Scan(
		&fingerprint.BookID, &fingerprint.Dimensions,
		&fingerprint.StarEquivalent, &fingerprint.TotalRatings, &fingerprint.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	fingerprint.HasRatings = fingerprint.StarEquivalent != nil
	return fingerprint, nil
}
