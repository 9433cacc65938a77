package auth

import "context"

type CredentialStore interface {
	FindUser(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, user User) error
}
