package auth

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

func accountColumns() string {
	s := schema.UsersAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		s.ID, s.Username, s.Email, s.PasswordHash, s.DisplayName, s.CreatedAt, s.UpdatedAt,
	)
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	s := schema.UsersAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		s.Table, s.ID, s.Username, s.Email, s.PasswordHash, s.DisplayName, s.CreatedAt, s.UpdatedAt,
		s.CreatedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresRepository) FindByID(context context.Context, userID string) (*User, error) {
	s := schema.UsersAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, accountColumns(), s.Table, s.ID)

	user, err := scanUser(repository.db.QueryRow(context, query, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

func (repository *PostgresRepository) FindByLogin(context context.Context, login string) (*User, error) {
	s := schema.UsersAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR %s = LOWER($1)`,
		accountColumns(), s.Table, s.Username, s.Email,
	)

	user, err := scanUser(repository.db.QueryRow(context, query, login))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_login")
	}
	return user, nil
}
