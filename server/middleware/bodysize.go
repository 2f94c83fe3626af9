package middleware

import (
	"net/http"

	"github.com/kbukum/transcribealpha/util"
)

// DefaultMaxBodySize applies when the configured size cannot be parsed.
const DefaultMaxBodySize = 2 << 30

// BodySizeLimit restricts request bodies to maxSize (e.g. "512MB", "2GB").
// Handlers see *http.MaxBytesError when reading past the limit.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, DefaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
