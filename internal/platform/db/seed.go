package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"empdir/internal/domain/auth"
	"empdir/internal/platform/config"
)

// Seed makes sure the configured admin account exists. Existing accounts are left untouched.
func Seed(ctx context.Context, users auth.CredentialStore, cfg config.Config) error {
	return ensureAdminUser(ctx, users, cfg.SeedAdminUsername, cfg.SeedAdminPassword)
}

func ensureAdminUser(ctx context.Context, users auth.CredentialStore, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	_, err := users.FindUser(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = users.CreateUser(ctx, auth.User{Username: username, FullName: username, PasswordHash: hash})
	if errors.Is(err, auth.ErrUserExists) {
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("seed admin created", "username", username)
	return nil
}
