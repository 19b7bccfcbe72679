// Package ledger holds the transaction rules that sit above the stores:
// input validation, normalization and the ownership-scoped operations.
//
// Every method takes the owner's id explicitly. Stores filter on it in the
// same statement that reads or writes, so a transaction that belongs to
// another user is indistinguishable from one that does not exist.
package ledger

import (
	"context"

	"finance-tracker/src/models"
)

// Store is implemented by the Postgres and SQLite stores. Update and Delete
// return an apperr NotFound error when no row matches both id and userID.
type Store interface {
	ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id int64) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, userID int64, in models.TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id int64, in models.TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id int64) error
	Analytics(ctx context.Context, userID int64) ([]models.AnalyticsRow, error)
	Summary(ctx context.Context, userID int64) (*models.Summary, error)
}

type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// List is ordered by date descending, newest id first within a date.
func (l *Ledger) List(ctx context.Context, userID int64) ([]models.Transaction, error) {
	txns, err := l.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return txns, nil
}

func (l *Ledger) Get(ctx context.Context, userID, id int64) (*models.Transaction, error) {
	return l.store.GetTransaction(ctx, userID, id)
}

func (l *Ledger) Create(ctx context.Context, userID int64, in models.TransactionInput) (*models.Transaction, error) {
	in, err := Normalize(in)
	if err != nil {
		return nil, err
	}
	return l.store.CreateTransaction(ctx, userID, in)
}

// Update overwrites all five mutable fields. There is no version check: the
// last write wins.
func (l *Ledger) Update(ctx context.Context, userID, id int64, in models.TransactionInput) (*models.Transaction, error) {
	in, err := Normalize(in)
	if err != nil {
		return nil, err
	}
	return l.store.UpdateTransaction(ctx, userID, id, in)
}

func (l *Ledger) Delete(ctx context.Context, userID, id int64) error {
	return l.store.DeleteTransaction(ctx, userID, id)
}

// Analytics is derived from the current rows on every call.
func (l *Ledger) Analytics(ctx context.Context, userID int64) ([]models.AnalyticsRow, error) {
	rows, err := l.store.Analytics(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.AnalyticsRow{}
	}
	return rows, nil
}

func (l *Ledger) Summary(ctx context.Context, userID int64) (*models.Summary, error) {
	return l.store.Summary(ctx, userID)
}
