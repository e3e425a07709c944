package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS разрешает браузерному клиенту обращаться к API с указанных origin
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", OperatorKeyHeader},
		MaxAge:         600,
	})
	return c.Handler
}
