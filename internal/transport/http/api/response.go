package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the shape of every error response. Detail is a message, or a list of field issues on 422.
type ErrorBody struct {
	Detail any `json:"detail"`
}

type Message struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

func Fail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, ErrorBody{Detail: detail})
}

func FailValidation(w http.ResponseWriter, issues any) {
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorBody{Detail: issues})
}

// InternalError logs err and answers with a generic 500.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	Fail(w, http.StatusInternalServerError, "Internal Server Error")
}
