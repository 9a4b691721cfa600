package transport

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/muhammadheryan/contacts/constant"
)

// CORSMiddleware allows the configured browser origins to call the API.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constant.RequestIDHeader},
		ExposedHeaders:   []string{constant.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
