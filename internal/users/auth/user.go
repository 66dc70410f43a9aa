/*
Package auth implements user identity: registration, login, and profile
lookup.

Sessions are stateless: a login issues a single HS256 access token carrying
the user's identity, verified by the authentication middleware on every
request. There is no refresh flow; tokens simply expire.
*/
package auth

import "time"

// User represents a registered Shelfmark reader.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Global field names for validation in the authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
)

// Credential bounds.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 128
)
