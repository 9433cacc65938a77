package db

import (
	"context"
	"testing"

	"empdir/internal/domain/auth"
	"empdir/internal/platform/config"
)

func TestSeedCreatesAdminOnce(t *testing.T) {
	ctx := context.Background()
	users := auth.NewMemoryStore()
	cfg := config.Config{SeedAdminUsername: "admin", SeedAdminPassword: "admin123"}

	if err := Seed(ctx, users, cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	first, err := users.FindUser(ctx, "admin")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := auth.CheckPassword(first.PasswordHash, "admin123"); err != nil {
		t.Fatalf("seeded password does not match: %v", err)
	}

	cfg.SeedAdminPassword = "other"
	if err := Seed(ctx, users, cfg); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	second, _ := users.FindUser(ctx, "admin")
	if second.PasswordHash != first.PasswordHash {
		t.Fatal("existing admin must not be overwritten")
	}
}

func TestSeedSkipsBlankCredentials(t *testing.T) {
	users := auth.NewMemoryStore()
	if err := Seed(context.Background(), users, config.Config{SeedAdminUsername: "admin"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := users.FindUser(context.Background(), "admin"); err == nil {
		t.Fatal("expected no user without a password")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected up and down migration, got %d files", len(entries))
	}
}
