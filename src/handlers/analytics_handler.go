package handlers

import (
	"net/http"

	"finance-tracker/src/ledger"
	"finance-tracker/src/middleware"
)

func GetAnalytics(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := l.Analytics(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			handleError(w, r, err, "failed to compute analytics")
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func GetSummary(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := l.Summary(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			handleError(w, r, err, "failed to compute summary")
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}
