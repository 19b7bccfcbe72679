// Package sqlite is an embedded implementation of the user and transaction
// stores, used for local development (DB_DRIVER=sqlite) and in tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker/src/apperr"
	"finance-tracker/src/db"
	"finance-tracker/src/models"
)

type Store struct {
	db *sql.DB
}

// Open opens the database at path (":memory:" allowed) with migrations
// applied.
func Open(path string) (*Store, error) {
	sqlDB, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: sqlDB}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES (?, ?, ?)
		RETURNING id, name, email, password_hash, created_at
	`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, name, email, passwordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("user already exists")
		}
		return nil, apperr.Store("create user", err)
	}
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`
	return s.getUser(ctx, query, email)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`
	return s.getUser(ctx, query, id)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Store("get user", err)
	}
	return user, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return apperr.Store("delete user", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperr.Store("delete user", err)
	} else if n == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, (*timestamp)(&u.CreatedAt)); err != nil {
		return nil, err
	}
	return &u, nil
}

// timestamp scans CURRENT_TIMESTAMP columns. The driver only converts them to
// time.Time when it can see the declared column type, which RETURNING hides.
type timestamp time.Time

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestamp(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return fmt.Errorf("cannot scan %T into timestamp", src)
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
