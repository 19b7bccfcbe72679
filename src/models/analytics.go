package models

import "github.com/shopspring/decimal"

type AnalyticsRow struct {
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Month    string          `json:"month"` // YYYY-MM
}

type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Count   int64           `json:"count"`
}
