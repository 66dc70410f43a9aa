package content

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

// submissionColumns is the canonical SELECT column list.
func submissionColumns() string {
	s := schema.SocialContentSubmission
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		s.ID, s.UserID, s.BookID, s.Source,
		s.Violence, s.Language, s.SexualContent, s.SubstanceUse,
		s.Tags, s.CreatedAt, s.UpdatedAt,
	)
}

func scanSubmission(row pgx.Row) (*Submission, error) {
	submission := &Submission{}
	err := row.Scan(
		&submission.ID, &submission.UserID, &submission.BookID, &submission.Source,
		&submission.Violence, &submission.Language, &submission.SexualContent, &submission.SubstanceUse,
		&submission.Tags, &submission.CreatedAt, &submission.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if submission.Tags == nil {
		submission.Tags = []string{}
	}
	return submission, nil
}

func (repository *PostgresRepository) Upsert(context context.Context, submission *Submission) error {
	s := schema.SocialContentSubmission
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = NOW()
		RETURNING %s, %s, %s
	`,
		s.Table, s.UserID, s.BookID, s.Source,
		s.Violence, s.Language, s.SexualContent, s.SubstanceUse, s.Tags,
		s.CreatedAt, s.UpdatedAt,
		s.UserID, s.BookID,
		s.Source, s.Source,
		s.Violence, s.Violence,
		s.Language, s.Language,
		s.SexualContent, s.SexualContent,
		s.SubstanceUse, s.SubstanceUse,
		s.Tags, s.Tags,
		s.UpdatedAt,
		s.ID, s.CreatedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		submission.UserID, submission.BookID, submission.Source,
		submission.Violence, submission.Language, submission.SexualContent, submission.SubstanceUse,
		submission.Tags,
	).Scan(&submission.ID, &submission.CreatedAt, &submission.UpdatedAt)

	return dberr.Wrap(err, "upsert_content_submission")
}

func (repository *PostgresRepository) GetByUserBook(context context.Context, userID string, bookID int) (*Submission, error) {
	s := schema.SocialContentSubmission
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		submissionColumns(), s.Table, s.UserID, s.BookID,
	)

	submission, err := scanSubmission(repository.db.QueryRow(context, query, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_content_submission")
	}

	return submission, nil
}

func (repository *PostgresRepository) ListByBook(context context.Context, bookID int) ([]*Submission, error) {
	s := schema.SocialContentSubmission
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		submissionColumns(), s.Table, s.BookID, s.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_content_submissions")
	}
	defer rows.Close()

	var submissions []*Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_content_submission")
		}
		submissions = append(submissions, submission)
	}

	return submissions, nil
}

func (repository *PostgresRepository) ListByBooks(context context.Context, bookIDs []int) (map[int][]*Submission, error) {
	if len(bookIDs) == 0 {
		return map[int][]*Submission{}, nil
	}

	s := schema.SocialContentSubmission
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s, %s ASC`,
		submissionColumns(), s.Table, s.BookID, s.BookID, s.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, bookIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "list_content_submissions_bulk")
	}
	defer rows.Close()

	byBook := make(map[int][]*Submission)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_content_submission")
		}
		byBook[submission.BookID] = append(byBook[submission.BookID], submission)
	}

	return byBook, nil
}

func (repository *PostgresRepository) Delete(context context.Context, userID string, bookID int) error {
	s := schema.SocialContentSubmission
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		s.Table, s.UserID, s.BookID,
	)

	cmd, err := repository.db.Exec(context, query, userID, bookID)
	if err != nil {
		return dberr.Wrap(err, "delete_content_submission")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
