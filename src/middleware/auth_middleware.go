package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"finance-tracker/src/apperr"
	"finance-tracker/src/auth"
	"finance-tracker/src/logger"

	"github.com/rs/zerolog"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	emailKey  contextKey = "email"
)

// TokenFromRequest returns the bearer token from the Authorization header,
// or "" when the header is absent or uses another scheme.
func TokenFromRequest(r *http.Request) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// JWTAuthMiddleware answers 401 when no token is sent and 403 when the token
// does not verify. Verified requests carry the user id and email in their
// context.
func JWTAuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.Verify(TokenFromRequest(r))
			if err != nil {
				status := http.StatusForbidden
				if apperr.Is(err, apperr.KindUnauthorized) {
					status = http.StatusUnauthorized
				}
				zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejected token")
				writeError(w, status, apperr.Message(err))
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Email)
			l := zerolog.Ctx(ctx).With().Int64(logger.FieldUserID, claims.UserID).Logger()
			ctx = l.WithContext(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's id, or 0 outside JWTAuthMiddleware.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

func Email(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

func WithUser(ctx context.Context, userID int64, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, emailKey, email)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
