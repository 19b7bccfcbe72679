package handlers

import (
	"net/http"

	"finance-tracker/src/auth"
	"finance-tracker/src/logger"
	"finance-tracker/src/middleware"

	"github.com/rs/zerolog"
)

func GetCurrentUser(credentials *auth.Credentials) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := credentials.Lookup(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			handleError(w, r, err, "failed to get user")
			return
		}
		writeJSON(w, http.StatusOK, user.Public())
	}
}

// DeleteUser deletes the caller's account along with all of their
// transactions. Tokens already issued stop resolving to a user but remain
// valid until they expire.
func DeleteUser(credentials *auth.Credentials) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := credentials.Delete(r.Context(), middleware.UserID(r.Context())); err != nil {
			handleError(w, r, err, "failed to delete user")
			return
		}
		zerolog.Ctx(r.Context()).Info().Str(logger.FieldEmail, middleware.Email(r.Context())).Msg("user deleted")
		writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
	}
}
