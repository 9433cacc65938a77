package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "admin", time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.Subject != "admin" {
		t.Fatalf("subject mismatch: %+v", parsed)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("s", "admin", -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("s", token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken("s", signed); err == nil {
		t.Fatal("expected HS512 token to be rejected")
	}

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}).SignedString([]byte("s"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken("s", noSubject); err == nil {
		t.Fatal("expected token without subject to be rejected")
	}
}
