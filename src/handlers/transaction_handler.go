package handlers

import (
	"net/http"
	"strconv"

	"finance-tracker/src/apperr"
	"finance-tracker/src/ledger"
	"finance-tracker/src/logger"
	"finance-tracker/src/middleware"
	"finance-tracker/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func transactionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid transaction id")
	}
	return id, nil
}

func GetTransactions(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txns, err := l.List(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			handleError(w, r, err, "failed to list transactions")
			return
		}
		writeJSON(w, http.StatusOK, txns)
	}
}

func GetTransaction(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionID(r)
		if err != nil {
			handleError(w, r, err, "bad transaction id")
			return
		}

		txn, err := l.Get(r.Context(), middleware.UserID(r.Context()), id)
		if err != nil {
			handleError(w, r, err, "failed to get transaction")
			return
		}
		writeJSON(w, http.StatusOK, txn)
	}
}

func CreateTransaction(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.TransactionInput
		if err := decodeJSON(w, r, &in); err != nil {
			handleError(w, r, err, "failed to decode transaction body")
			return
		}

		txn, err := l.Create(r.Context(), middleware.UserID(r.Context()), in)
		if err != nil {
			handleError(w, r, err, "failed to create transaction")
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64(logger.FieldTransactionID, txn.ID).Msg("transaction created")
		writeJSON(w, http.StatusCreated, txn)
	}
}

func UpdateTransaction(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionID(r)
		if err != nil {
			handleError(w, r, err, "bad transaction id")
			return
		}

		var in models.TransactionInput
		if err := decodeJSON(w, r, &in); err != nil {
			handleError(w, r, err, "failed to decode transaction body")
			return
		}

		txn, err := l.Update(r.Context(), middleware.UserID(r.Context()), id, in)
		if err != nil {
			handleError(w, r, err, "failed to update transaction")
			return
		}
		writeJSON(w, http.StatusOK, txn)
	}
}

func DeleteTransaction(l *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionID(r)
		if err != nil {
			handleError(w, r, err, "bad transaction id")
			return
		}

		if err := l.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
			handleError(w, r, err, "failed to delete transaction")
			return
		}

		zerolog.Ctx(r.Context()).Info().Int64(logger.FieldTransactionID, id).Msg("transaction deleted")
		writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted successfully"})
	}
}
