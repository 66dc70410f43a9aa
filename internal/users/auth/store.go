package auth

import "context"

// Repository persists user accounts.
type Repository interface {
	// Create inserts a new account.
	Create(context context.Context, user *User) error

	// FindByID returns the account with the given ID.
	FindByID(context context.Context, userID string) (*User, error)

	// FindByLogin returns the account whose username or email matches.
	FindByLogin(context context.Context, login string) (*User, error)
}
