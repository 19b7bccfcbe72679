package handlers

import (
	"net/http"

	"finance-tracker/src/apperr"
	"finance-tracker/src/auth"
	"finance-tracker/src/logger"
	"finance-tracker/src/models"

	"github.com/rs/zerolog"
)

func Register(credentials *auth.Credentials, tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err, "failed to decode register request body")
			return
		}

		user, err := credentials.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			handleError(w, r, err, "registration failed")
			return
		}

		token, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Int64(logger.FieldUserID, user.ID).Msg("failed to generate token")
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64(logger.FieldUserID, user.ID).Msg("user registered")
		writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user.Public()})
	}
}

func Login(credentials *auth.Credentials, tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err, "failed to decode login request body")
			return
		}

		user, err := credentials.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			if apperr.Is(err, apperr.KindTooManyRequests) {
				zerolog.Ctx(r.Context()).Warn().Str(logger.FieldEmail, req.Email).Msg("login locked out")
			}
			handleError(w, r, err, "login failed")
			return
		}

		token, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Int64(logger.FieldUserID, user.ID).Msg("failed to generate token")
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64(logger.FieldUserID, user.ID).Msg("user logged in")
		writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user.Public()})
	}
}
