package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	// DateLayout is the wire and storage format of Transaction.Date.
	DateLayout = "2006-01-02"
)

func init() {
	// The dashboard adds amounts together, so they go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionInput is the body of create and update requests. It has no
// user id: the owner always comes from the authenticated token.
type TransactionInput struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
}
