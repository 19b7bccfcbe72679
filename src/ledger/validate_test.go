package ledger

import (
	"strings"
	"testing"

	"finance-tracker/src/apperr"
	"finance-tracker/src/models"

	"github.com/shopspring/decimal"
)

func validInput() models.TransactionInput {
	return models.TransactionInput{
		Description: "Coffee",
		Amount:      decimal.RequireFromString("3.50"),
		Category:    "Food",
		Type:        models.TransactionTypeExpense,
		Date:        "2024-01-05",
	}
}

func TestNormalize(t *testing.T) {
	in := models.TransactionInput{
		Description: "  Coffee ",
		Amount:      decimal.RequireFromString("3.456"),
		Category:    " Food",
		Type:        "expense ",
		Date:        " 2024-01-05",
	}
	got, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.Description != "Coffee" || got.Category != "Food" || got.Type != "expense" || got.Date != "2024-01-05" {
		t.Errorf("not trimmed: %+v", got)
	}
	if !got.Amount.Equal(decimal.RequireFromString("3.46")) {
		t.Errorf("amount = %s, want 3.46", got.Amount)
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.TransactionInput)
		msg    string
	}{
		{"missing description", func(in *models.TransactionInput) { in.Description = " " }, "all fields are required"},
		{"missing category", func(in *models.TransactionInput) { in.Category = "" }, "all fields are required"},
		{"missing type", func(in *models.TransactionInput) { in.Type = "" }, "all fields are required"},
		{"missing date", func(in *models.TransactionInput) { in.Date = "" }, "all fields are required"},
		{"zero amount", func(in *models.TransactionInput) { in.Amount = decimal.Zero }, "all fields are required"},
		{"rounds to zero", func(in *models.TransactionInput) { in.Amount = decimal.RequireFromString("0.001") }, "all fields are required"},
		{"long description", func(in *models.TransactionInput) { in.Description = strings.Repeat("d", 256) }, "description must be at most 255 characters"},
		{"long category", func(in *models.TransactionInput) { in.Category = strings.Repeat("c", 51) }, "category must be at most 50 characters"},
		{"bad type", func(in *models.TransactionInput) { in.Type = "transfer" }, "type must be 'income' or 'expense'"},
		{"negative amount", func(in *models.TransactionInput) { in.Amount = decimal.RequireFromString("-1") }, "amount must be positive"},
		{"too large", func(in *models.TransactionInput) { in.Amount = decimal.RequireFromString("100000000") }, "amount is too large"},
		{"bad date", func(in *models.TransactionInput) { in.Date = "05/01/2024" }, "date must be formatted YYYY-MM-DD"},
		{"impossible date", func(in *models.TransactionInput) { in.Date = "2024-02-30" }, "date must be formatted YYYY-MM-DD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)
			_, err := Normalize(in)
			if !apperr.Is(err, apperr.KindValidation) || apperr.Message(err) != tt.msg {
				t.Errorf("Normalize() error = %v, want %q", err, tt.msg)
			}
		})
	}
}

func TestNormalizeBoundaries(t *testing.T) {
	in := validInput()
	in.Description = strings.Repeat("d", 255)
	in.Category = strings.Repeat("c", 50)
	in.Amount = decimal.RequireFromString("99999999.99")
	if _, err := Normalize(in); err != nil {
		t.Errorf("Normalize at limits: %v", err)
	}
}

func TestNormalizeCountsCharacters(t *testing.T) {
	in := validInput()
	in.Description = strings.Repeat("ж", 255)
	in.Category = strings.Repeat("é", 50)
	if _, err := Normalize(in); err != nil {
		t.Errorf("Normalize with multi-byte text at limits: %v", err)
	}

	in.Description = strings.Repeat("ж", 256)
	if _, err := Normalize(in); apperr.Message(err) != "description must be at most 255 characters" {
		t.Errorf("256 characters error = %v", err)
	}
}
