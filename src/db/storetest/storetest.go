// Package storetest holds the behaviour every store implementation must
// share. The sqlite and Postgres store tests both call Run.
package storetest

import (
	"context"
	"testing"

	"finance-tracker/src/apperr"
	"finance-tracker/src/auth"
	"finance-tracker/src/ledger"
	"finance-tracker/src/models"

	"github.com/shopspring/decimal"
)

type Store interface {
	auth.UserStore
	ledger.Store
}

// Run executes the shared cases. newStore must return an empty store for
// each call.
func Run(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
	t.Run("ownership", func(t *testing.T) { testOwnership(t, newStore(t)) })
	t.Run("ordering", func(t *testing.T) { testOrdering(t, newStore(t)) })
	t.Run("aggregates", func(t *testing.T) { testAggregates(t, newStore(t)) })
	t.Run("cascade", func(t *testing.T) { testCascade(t, newStore(t)) })
}

func mustUser(t *testing.T, s Store, email string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), "User", email, "hash")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

func mustCreate(t *testing.T, s Store, userID int64, desc, amount, typ, date string) *models.Transaction {
	t.Helper()
	txn, err := s.CreateTransaction(context.Background(), userID, models.TransactionInput{
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Category:    "General",
		Type:        typ,
		Date:        date,
	})
	if err != nil {
		t.Fatalf("CreateTransaction(%s): %v", desc, err)
	}
	return txn
}

func testUsers(t *testing.T, s Store) {
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "A", "a@x.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID <= 0 || u.Name != "A" || u.Email != "a@x.com" || u.PasswordHash != "hash" {
		t.Fatalf("created user = %+v", u)
	}
	if u.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	if _, err := s.CreateUser(ctx, "B", "a@x.com", "other"); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("duplicate email error = %v, want conflict", err)
	}

	byEmail, err := s.GetUserByEmail(ctx, "a@x.com")
	if err != nil || byEmail.ID != u.ID {
		t.Errorf("GetUserByEmail = %+v, %v", byEmail, err)
	}
	byID, err := s.GetUserByID(ctx, u.ID)
	if err != nil || byID.Email != "a@x.com" {
		t.Errorf("GetUserByID = %+v, %v", byID, err)
	}

	if _, err := s.GetUserByEmail(ctx, "nobody@x.com"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing email error = %v, want not found", err)
	}
	if _, err := s.GetUserByID(ctx, u.ID+1000); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing id error = %v, want not found", err)
	}

	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := s.DeleteUser(ctx, u.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("second delete error = %v, want not found", err)
	}
}

func testTransactions(t *testing.T, s Store) {
	ctx := context.Background()
	u := mustUser(t, s, "a@x.com")

	created := mustCreate(t, s, u.ID, "Coffee", "3.50", models.TransactionTypeExpense, "2024-01-05")
	if created.ID <= 0 || created.UserID != u.ID {
		t.Fatalf("created = %+v", created)
	}
	if !created.Amount.Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("amount = %s, want 3.50", created.Amount)
	}
	if created.Date != "2024-01-05" {
		t.Errorf("date = %q", created.Date)
	}

	got, err := s.GetTransaction(ctx, u.ID, created.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Description != "Coffee" || got.Category != "General" || got.Type != models.TransactionTypeExpense {
		t.Errorf("got = %+v", got)
	}

	updated, err := s.UpdateTransaction(ctx, u.ID, created.ID, models.TransactionInput{
		Description: "Salary",
		Amount:      decimal.RequireFromString("1000.25"),
		Category:    "Work",
		Type:        models.TransactionTypeIncome,
		Date:        "2024-02-01",
	})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if updated.ID != created.ID || updated.Description != "Salary" || updated.Type != models.TransactionTypeIncome {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.Amount.Equal(decimal.RequireFromString("1000.25")) || updated.Date != "2024-02-01" {
		t.Errorf("updated amount/date = %s %s", updated.Amount, updated.Date)
	}

	if err := s.DeleteTransaction(ctx, u.ID, created.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, err := s.GetTransaction(ctx, u.ID, created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("get after delete error = %v, want not found", err)
	}
	if err := s.DeleteTransaction(ctx, u.ID, created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("second delete error = %v, want not found", err)
	}

	list, err := s.ListTransactions(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("list after delete = %#v, want empty non-nil", list)
	}
}

func testOwnership(t *testing.T, s Store) {
	ctx := context.Background()
	a := mustUser(t, s, "a@x.com")
	b := mustUser(t, s, "b@x.com")

	txn := mustCreate(t, s, a.ID, "Rent", "800", models.TransactionTypeExpense, "2024-03-01")
	in := models.TransactionInput{
		Description: "Stolen",
		Amount:      decimal.NewFromInt(1),
		Category:    "X",
		Type:        models.TransactionTypeIncome,
		Date:        "2024-03-02",
	}

	if _, err := s.GetTransaction(ctx, b.ID, txn.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("foreign get error = %v, want not found", err)
	}
	if _, err := s.UpdateTransaction(ctx, b.ID, txn.ID, in); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("foreign update error = %v, want not found", err)
	}
	if err := s.DeleteTransaction(ctx, b.ID, txn.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("foreign delete error = %v, want not found", err)
	}

	list, err := s.ListTransactions(ctx, b.ID)
	if err != nil || len(list) != 0 {
		t.Errorf("b's list = %v, %v", list, err)
	}

	got, err := s.GetTransaction(ctx, a.ID, txn.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Description != "Rent" {
		t.Errorf("row changed by another user: %+v", got)
	}
}

func testOrdering(t *testing.T, s Store) {
	ctx := context.Background()
	u := mustUser(t, s, "a@x.com")

	first := mustCreate(t, s, u.ID, "old", "1", models.TransactionTypeExpense, "2024-01-01")
	second := mustCreate(t, s, u.ID, "new-a", "1", models.TransactionTypeExpense, "2024-05-01")
	third := mustCreate(t, s, u.ID, "new-b", "1", models.TransactionTypeExpense, "2024-05-01")
	fourth := mustCreate(t, s, u.ID, "middle", "1", models.TransactionTypeExpense, "2024-03-15")

	list, err := s.ListTransactions(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	want := []int64{third.ID, second.ID, fourth.ID, first.ID}
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d] = %d (%s), want %d", i, list[i].ID, list[i].Description, id)
		}
	}
}

func testAggregates(t *testing.T, s Store) {
	ctx := context.Background()
	u := mustUser(t, s, "a@x.com")

	mustCreate(t, s, u.ID, "pay", "2000.00", models.TransactionTypeIncome, "2024-01-31")
	mustCreate(t, s, u.ID, "coffee", "3.50", models.TransactionTypeExpense, "2024-01-05")
	mustCreate(t, s, u.ID, "coffee", "4.25", models.TransactionTypeExpense, "2024-01-20")
	mustCreate(t, s, u.ID, "coffee", "0.10", models.TransactionTypeExpense, "2024-02-02")
	mustCreate(t, s, u.ID, "coffee", "0.20", models.TransactionTypeExpense, "2024-02-03")

	rows, err := s.Analytics(ctx, u.ID)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}

	want := []struct {
		month, typ, total string
	}{
		{"2024-02", models.TransactionTypeExpense, "0.30"},
		{"2024-01", models.TransactionTypeExpense, "7.75"},
		{"2024-01", models.TransactionTypeIncome, "2000.00"},
	}
	if len(rows) != len(want) {
		t.Fatalf("analytics rows = %+v", rows)
	}
	for i, w := range want {
		r := rows[i]
		if r.Month != w.month || r.Type != w.typ || r.Category != "General" || !r.Total.Equal(decimal.RequireFromString(w.total)) {
			t.Errorf("row %d = %+v, want %+v", i, r, w)
		}
	}

	list, err := s.ListTransactions(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	var listSum, analyticsSum decimal.Decimal
	for _, txn := range list {
		listSum = listSum.Add(txn.Amount)
	}
	for _, r := range rows {
		analyticsSum = analyticsSum.Add(r.Total)
	}
	if !listSum.Equal(analyticsSum) {
		t.Errorf("analytics total %s != list total %s", analyticsSum, listSum)
	}

	sum, err := s.Summary(ctx, u.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !sum.Income.Equal(decimal.RequireFromString("2000")) ||
		!sum.Expense.Equal(decimal.RequireFromString("8.05")) ||
		!sum.Balance.Equal(decimal.RequireFromString("1991.95")) ||
		sum.Count != 5 {
		t.Errorf("summary = %+v", sum)
	}

	empty := mustUser(t, s, "empty@x.com")
	sum, err = s.Summary(ctx, empty.ID)
	if err != nil {
		t.Fatalf("empty Summary: %v", err)
	}
	if !sum.Income.IsZero() || !sum.Expense.IsZero() || !sum.Balance.IsZero() || sum.Count != 0 {
		t.Errorf("empty summary = %+v", sum)
	}
}

func testCascade(t *testing.T, s Store) {
	ctx := context.Background()
	u := mustUser(t, s, "a@x.com")
	other := mustUser(t, s, "b@x.com")

	txn := mustCreate(t, s, u.ID, "gone", "5", models.TransactionTypeExpense, "2024-01-01")
	kept := mustCreate(t, s, other.ID, "kept", "5", models.TransactionTypeExpense, "2024-01-01")

	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := s.GetTransaction(ctx, u.ID, txn.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("transaction survived its owner: %v", err)
	}
	if _, err := s.GetTransaction(ctx, other.ID, kept.ID); err != nil {
		t.Errorf("other user's transaction removed: %v", err)
	}
}
