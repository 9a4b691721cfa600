package transport

import (
	"crypto/subtle"
	"net/http"

	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/utils/errors"
)

// InternalMiddleware checks for static API key in header. An empty key locks the routes.
func InternalMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			want := []byte("Bearer " + apiKey)
			if apiKey == "" || subtle.ConstantTimeCompare(got, want) != 1 {
				writeError(w, errors.SetCustomError(constant.ErrForbidden), false)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
