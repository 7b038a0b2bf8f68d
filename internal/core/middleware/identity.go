package middleware

import (
	"context"
	"net/http"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/google/uuid"
)

// UserIDHeader carries the caller identity set by the upstream gateway.
const UserIDHeader = "X-User-ID"

type userIDKey struct{}

// Identity rejects requests without a valid X-User-ID and stores the parsed
// id in the request context.
func Identity(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			userID, err := uuid.Parse(raw)
			if err != nil || userID == uuid.Nil {
				log.Warn("Missing or invalid user id",
					logger.StringField("path", r.URL.Path),
					logger.StringField("header", raw))
				writeError(w, http.StatusUnauthorized, "missing or invalid X-User-ID header")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}
