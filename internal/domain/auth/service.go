package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Service struct {
	store  CredentialStore
	secret string
	ttl    time.Duration
}

func NewService(store CredentialStore, secret string, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl}
}

// Authenticate exchanges a username and password for a signed bearer token.
// Unknown users, wrong passwords and disabled accounts all fail the same way.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Token, error) {
	user, err := s.store.FindUser(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return Token{}, err
	}
	if user.Disabled || CheckPassword(user.PasswordHash, password) != nil {
		return Token{}, ErrInvalidCredentials
	}

	signed, err := GenerateToken(s.secret, user.Username, s.ttl)
	if err != nil {
		return Token{}, err
	}
	slog.InfoContext(ctx, "access token issued", "username", user.Username)
	return Token{AccessToken: signed, TokenType: TokenTypeBearer}, nil
}

// Verify resolves a bearer token to the account it was issued for.
func (s *Service) Verify(ctx context.Context, token string) (User, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return User{}, ErrUnauthorized
	}
	user, err := s.store.FindUser(ctx, claims.Subject)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrUnauthorized
	}
	if err != nil {
		return User{}, err
	}
	if user.Disabled {
		return User{}, ErrUnauthorized
	}
	return user, nil
}
