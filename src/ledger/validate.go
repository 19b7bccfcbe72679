package ledger

import (
	"strings"
	"unicode/utf8"

	"finance-tracker/src/apperr"
	"finance-tracker/src/models"
	"finance-tracker/src/util"

	"github.com/shopspring/decimal"
)

// maxAmount is the largest value numeric(10,2) holds.
var maxAmount = decimal.RequireFromString("99999999.99")

// Normalize trims the text fields, rounds the amount to cents and rejects
// anything the stores would not accept.
func Normalize(in models.TransactionInput) (models.TransactionInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Type = strings.TrimSpace(in.Type)
	in.Date = strings.TrimSpace(in.Date)
	in.Amount = in.Amount.Round(2)

	switch {
	case in.Description == "" || in.Category == "" || in.Type == "" || in.Date == "" || in.Amount.IsZero():
		return in, apperr.Validation("all fields are required")
	case utf8.RuneCountInString(in.Description) > 255:
		return in, apperr.Validation("description must be at most 255 characters")
	case utf8.RuneCountInString(in.Category) > 50:
		return in, apperr.Validation("category must be at most 50 characters")
	case in.Type != models.TransactionTypeIncome && in.Type != models.TransactionTypeExpense:
		return in, apperr.Validation("type must be 'income' or 'expense'")
	case in.Amount.IsNegative():
		return in, apperr.Validation("amount must be positive")
	case in.Amount.GreaterThan(maxAmount):
		return in, apperr.Validation("amount is too large")
	case !util.ValidateDate(models.DateLayout, in.Date):
		return in, apperr.Validation("date must be formatted YYYY-MM-DD")
	}

	return in, nil
}
