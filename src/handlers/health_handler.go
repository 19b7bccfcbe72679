package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Ready reports whether the store answers a ping within two seconds.
func Ready(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("store ping failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "UNAVAILABLE"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}
}
