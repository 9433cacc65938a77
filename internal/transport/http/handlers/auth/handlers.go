package authhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"empdir/internal/domain/auth"
	"empdir/internal/transport/http/api"
	"empdir/internal/transport/http/shared"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (auth.Token, error)
}

type Handler struct {
	Auth Authenticator
}

func NewHandler(authenticator Authenticator) *Handler {
	return &Handler{Auth: authenticator}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/token", h.HandleToken)
}

// HandleToken implements the OAuth2 password grant form: username and password fields, url-encoded.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		shared.FailValidation(w, []shared.ValidationIssue{{Field: "body", Reason: "must be a valid form"}})
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	v := shared.NewValidator()
	v.Required("username", username, "field required")
	v.Required("password", password, "field required")
	if v.Reject(w) {
		return
	}

	token, err := h.Auth.Authenticate(r.Context(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		api.Fail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	if err != nil {
		api.InternalError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	api.Success(w, token)
}
