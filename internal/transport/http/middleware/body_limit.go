package middleware

import (
	"net/http"

	"empdir/internal/transport/http/api"
)

const bodyTooLarge = "Request body too large"

// BodyLimit caps request bodies. A declared Content-Length over the cap is refused before the
// handler runs; chunked bodies are cut off by the reader instead.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes <= 0 || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				api.Fail(w, http.StatusRequestEntityTooLarge, bodyTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
