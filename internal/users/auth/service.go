package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/uuidv7"
)

// TokenProvider issues access tokens for authenticated users.
type TokenProvider interface {
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// Service implements registration, login, and profile lookup.
type Service struct {
	repo   Repository
	tokens TokenProvider
	logger *slog.Logger
}

func NewService(repo Repository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

// RegisterInput holds the data required to enroll a new reader.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// Register validates, hashes, and persists a new account.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldPassword, input.Password, MaxPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Never store plain text. Default bcrypt cost balances security against
	// CPU load during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		// Time-sortable IDs keep the primary key index append-friendly.
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
	}

	if err := service.repo.Create(context, user); err != nil {
		var appError *apperr.AppError
		if errors.As(err, &appError) && appError.Code == "CONFLICT" {
			return nil, apperr.Conflict("Username or email is already registered")
		}
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// LoginInput defines the credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Username or email.
	Password string
}

// LoginSession is a successfully issued access token plus its owner.
type LoginSession struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user"`
}

// Login verifies credentials and issues an access token.
//
// Unknown logins and wrong passwords produce the same error so the endpoint
// cannot be used to probe which accounts exist.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	invalidCredentials := apperr.Unauthorized("Invalid credentials")

	user, err := service.repo.FindByLogin(context, input.Login)
	if err != nil {
		return nil, invalidCredentials
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, invalidCredentials
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return &LoginSession{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(constants.AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}

// GetProfile returns the account for an authenticated user ID.
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return user, nil
}
