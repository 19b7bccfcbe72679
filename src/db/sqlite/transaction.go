package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"finance-tracker/src/apperr"
	"finance-tracker/src/models"

	"github.com/shopspring/decimal"
)

const transactionColumns = `id, user_id, description, amount, category, type, date, created_at`

type scanner interface {
	Scan(dest ...any) error
}

// SQLite stores NUMERIC as REAL, so amounts are rounded back to cents on the
// way out.
func scanTransaction(row scanner) (*models.Transaction, error) {
	var t models.Transaction
	if err := row.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &t.Category, &t.Type, &t.Date, (*timestamp)(&t.CreatedAt)); err != nil {
		return nil, err
	}
	t.Amount = t.Amount.Round(2)
	return &t, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperr.Store("list transactions", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperr.Store("scan transaction", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list transactions", err)
	}
	return transactions, nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ? AND user_id = ?`
	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, notFoundOrStore("get transaction", err)
	}
	return t, nil
}

func (s *Store) CreateTransaction(ctx context.Context, userID int64, in models.TransactionInput) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, description, amount, category, type, date)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + transactionColumns
	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, userID, in.Description, in.Amount.StringFixed(2), in.Category, in.Type, in.Date))
	if err != nil {
		return nil, apperr.Store("create transaction", err)
	}
	return t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, userID, id int64, in models.TransactionInput) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET description = ?, amount = ?, category = ?, type = ?, date = ?
		WHERE id = ? AND user_id = ?
		RETURNING ` + transactionColumns
	t, err := scanTransaction(s.db.QueryRowContext(ctx, query, in.Description, in.Amount.StringFixed(2), in.Category, in.Type, in.Date, id, userID))
	if err != nil {
		return nil, notFoundOrStore("update transaction", err)
	}
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return apperr.Store("delete transaction", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperr.Store("delete transaction", err)
	} else if n == 0 {
		return apperr.NotFound("transaction not found")
	}
	return nil
}

func (s *Store) Analytics(ctx context.Context, userID int64) ([]models.AnalyticsRow, error) {
	query := `
		SELECT type, category, SUM(amount) AS total, strftime('%Y-%m', date) AS month
		FROM transactions
		WHERE user_id = ?
		GROUP BY type, category, month
		ORDER BY month DESC, type, category
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperr.Store("analytics", err)
	}
	defer rows.Close()

	result := []models.AnalyticsRow{}
	for rows.Next() {
		var r models.AnalyticsRow
		if err := rows.Scan(&r.Type, &r.Category, &r.Total, &r.Month); err != nil {
			return nil, apperr.Store("scan analytics row", err)
		}
		r.Total = r.Total.Round(2)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("analytics", err)
	}
	return result, nil
}

func (s *Store) Summary(ctx context.Context, userID int64) (*models.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0),
			COUNT(*)
		FROM transactions
		WHERE user_id = ?
	`
	var income, expense decimal.Decimal
	var count int64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&income, &expense, &count); err != nil {
		return nil, apperr.Store("summary", err)
	}
	income, expense = income.Round(2), expense.Round(2)
	return &models.Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
		Count:   count,
	}, nil
}

func notFoundOrStore(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("transaction not found")
	}
	return apperr.Store(op, err)
}
