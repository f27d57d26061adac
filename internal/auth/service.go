package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/models"
)

// UserStore is the slice of the persistence layer the identity service needs.
type UserStore interface {
	Create(ctx context.Context, u models.User) error
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type Service struct {
	Users  UserStore
	Tokens *TokenIssuer
	Log    zerolog.Logger
}

// Register creates a user for a previously unseen email and issues a session
// token. Emails are lowercased before storage and lookup.
func (s *Service) Register(ctx context.Context, email, password string) (string, models.UserView, error) {
	if email == "" || password == "" {
		return "", models.UserView{}, models.Invalid("email and password are required")
	}
	email = strings.ToLower(email)

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return "", models.UserView{}, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrNotFound) {
		return "", models.UserView{}, err
	}

	salt, err := GenerateSalt()
	if err != nil {
		return "", models.UserView{}, err
	}
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
		CreatedAt:    time.Now(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// Two concurrent registrations can both pass the lookup; the unique
		// index decides and the loser surfaces the same conflict.
		return "", models.UserView{}, err
	}

	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", models.UserView{}, err
	}
	return token, u.View(), nil
}

// Login verifies credentials and issues a fresh token. The failure is the
// same generic error whether the user is missing or the password is wrong.
func (s *Service) Login(ctx context.Context, email, password string) (string, models.UserView, error) {
	if email == "" || password == "" {
		return "", models.UserView{}, models.Invalid("email and password are required")
	}
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.UserView{}, models.ErrInvalidCredentials
		}
		return "", models.UserView{}, err
	}
	computed := HashPassword(password, u.Salt)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(u.PasswordHash)) != 1 {
		return "", models.UserView{}, models.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", models.UserView{}, err
	}
	return token, u.View(), nil
}

// Me resolves the subject of a verified token to its public view.
func (s *Service) Me(ctx context.Context, subjectID string) (models.UserView, error) {
	u, err := s.Users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.UserView{}, models.ErrUnauthorized
		}
		return models.UserView{}, err
	}
	return u.View(), nil
}

// SeedAdmin creates the configured admin account at startup. A blank config
// or an already present account is a no-op; failures are logged, not fatal.
func (s *Service) SeedAdmin(ctx context.Context, email, password string) {
	if email == "" || password == "" {
		return
	}
	email = strings.ToLower(email)
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		s.Log.Warn().Err(err).Msg("admin seed lookup failed")
		return
	}
	salt, err := GenerateSalt()
	if err != nil {
		s.Log.Warn().Err(err).Msg("admin seed failed")
		return
	}
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		s.Log.Warn().Err(err).Msg("admin seed failed")
		return
	}
	s.Log.Info().Str("email", email).Msg("admin user created")
}
