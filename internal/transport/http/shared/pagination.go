package shared

import (
	"net/http"
	"strconv"
	"strings"
)

// QueryInt reads an optional integer query parameter and checks it against [min, max].
// A max of zero means no upper bound. Problems are recorded on v.
func QueryInt(r *http.Request, v *Validator, key string, fallback, min, max int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(key, "must be an integer")
		return fallback
	}
	if value < min {
		v.Add(key, "must be greater than or equal to "+strconv.Itoa(min))
		return fallback
	}
	if max > 0 && value > max {
		v.Add(key, "must be less than or equal to "+strconv.Itoa(max))
		return fallback
	}
	return value
}
