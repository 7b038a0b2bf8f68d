package middleware

import (
	"net/http"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/google/uuid"
)

// Admin lets through only callers listed in admins. It reads the identity
// stored by Identity and answers 401 when there is none.
func Admin(log logger.Logger, admins []uuid.UUID) func(http.Handler) http.Handler {
	allowed := make(map[uuid.UUID]struct{}, len(admins))
	for _, id := range admins {
		allowed[id] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing or invalid X-User-ID header")
				return
			}
			if _, ok := allowed[userID]; !ok {
				log.Warn("Admin route denied",
					logger.StringField("path", r.URL.Path),
					logger.StringField("user_id", userID.String()))
				writeError(w, http.StatusForbidden, "admin privileges required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin chains Identity and Admin.
func RequireAdmin(log logger.Logger, admins []uuid.UUID) func(http.Handler) http.Handler {
	identity, admin := Identity(log), Admin(log, admins)
	return func(next http.Handler) http.Handler {
		return identity(admin(next))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
