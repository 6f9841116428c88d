package http

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware answers CORS preflight requests and decorates responses for
// the allowed origins. It returns next unchanged when no origin is allowed.
func CORSMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		return next
	}

	//nolint:exhaustruct
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Authorization", TraceIDHeader},
		ExposedHeaders: []string{TraceIDHeader},
		MaxAge:         600,
	}).Handler(next)
}
