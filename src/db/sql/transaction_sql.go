package db

import (
	"context"
	"errors"
	"time"

	"finance-tracker/src/apperr"
	"finance-tracker/src/models"

	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, user_id, description, amount, category, type, date, created_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	var date time.Time
	err := row.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &t.Category, &t.Type, &date, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Date = date.Format(models.DateLayout)
	return &t, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`
	rows, err := s.pool.Query(ctx, query, userID)
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
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`
	t, err := scanTransaction(s.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, notFoundOrStore("get transaction", err)
	}
	return t, nil
}

func (s *Store) CreateTransaction(ctx context.Context, userID int64, in models.TransactionInput) (*models.Transaction, error) {
	date, err := time.Parse(models.DateLayout, in.Date)
	if err != nil {
		return nil, apperr.Validation("date must be formatted YYYY-MM-DD")
	}
	query := `
		INSERT INTO transactions (user_id, description, amount, category, type, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + transactionColumns
	t, err := scanTransaction(s.pool.QueryRow(ctx, query, userID, in.Description, in.Amount, in.Category, in.Type, date))
	if err != nil {
		return nil, apperr.Store("create transaction", err)
	}
	return t, nil
}

// UpdateTransaction matches on id and owner in the same statement that
// writes, so a row owned by someone else is reported as not found.
func (s *Store) UpdateTransaction(ctx context.Context, userID, id int64, in models.TransactionInput) (*models.Transaction, error) {
	date, err := time.Parse(models.DateLayout, in.Date)
	if err != nil {
		return nil, apperr.Validation("date must be formatted YYYY-MM-DD")
	}
	query := `
		UPDATE transactions
		SET description = $1, amount = $2, category = $3, type = $4, date = $5
		WHERE id = $6 AND user_id = $7
		RETURNING ` + transactionColumns
	t, err := scanTransaction(s.pool.QueryRow(ctx, query, in.Description, in.Amount, in.Category, in.Type, date, id, userID))
	if err != nil {
		return nil, notFoundOrStore("update transaction", err)
	}
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	cmd, err := s.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return apperr.Store("delete transaction", err)
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("transaction not found")
	}
	return nil
}

func (s *Store) Analytics(ctx context.Context, userID int64) ([]models.AnalyticsRow, error) {
	query := `
		SELECT type, category, SUM(amount) AS total, to_char(date_trunc('month', date), 'YYYY-MM') AS month
		FROM transactions
		WHERE user_id = $1
		GROUP BY type, category, month
		ORDER BY month DESC, type, category
	`
	rows, err := s.pool.Query(ctx, query, userID)
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
		WHERE user_id = $1
	`
	var sum models.Summary
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&sum.Income, &sum.Expense, &sum.Count); err != nil {
		return nil, apperr.Store("summary", err)
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	return &sum, nil
}

func notFoundOrStore(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("transaction not found")
	}
	return apperr.Store(op, err)
}
