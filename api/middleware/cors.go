package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173", // vite dev server
	"http://localhost:3000",
}

// CORS applies the storefront origin policy. An empty list falls back to
// the local dev origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", IdempotencyKeyHeader, CartSessionHeader, types.RequestIDHeader},
		ExposedHeaders:   []string{CartSessionHeader, types.RequestIDHeader, IdempotentReplayHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
