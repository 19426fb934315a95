package middleware

import (
	"net/http"

	"github.com/denmor86/dessert-shop/internal/helpers"
	"github.com/denmor86/dessert-shop/internal/logger"
)

// AdminOnly — пропускает только пользователей с признаком администратора
// в JWT claims
func AdminOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !helpers.IsAdmin(r.Context()) {
			username, _ := helpers.GetUsername(r.Context())
			logger.Warn("Forbidden admin request", username, r.RequestURI)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		h.ServeHTTP(w, r)
	})
}
