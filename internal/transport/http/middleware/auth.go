package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"empdir/internal/domain/auth"
	"empdir/internal/requestctx"
	"empdir/internal/transport/http/api"
)

// Verifier resolves a bearer token to an account.
type Verifier interface {
	Verify(ctx context.Context, token string) (auth.User, error)
}

// RequireBearer rejects requests without a valid bearer token before they reach next.
func RequireBearer(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "Not authenticated")
				return
			}

			user, err := verifier.Verify(r.Context(), token)
			if errors.Is(err, auth.ErrUnauthorized) {
				unauthorized(w, "Could not validate credentials")
				return
			}
			if err != nil {
				api.InternalError(w, r, err)
				return
			}

			ctx := requestctx.WithUsername(r.Context(), user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	api.Fail(w, http.StatusUnauthorized, detail)
}
