package auth

import (
	"context"
	"errors"
	"strings"

	"finance-tracker/src/apperr"
	"finance-tracker/src/models"
	"finance-tracker/src/util"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence the credential flows need. GetUserByEmail and
// GetUserByID return an apperr NotFound error when no row matches, and
// CreateUser returns apperr Conflict for a duplicate email.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

var errInvalidCredentials = apperr.Validation("invalid credentials")

type Credentials struct {
	users    UserStore
	throttle *Throttle
}

// NewCredentials accepts a nil throttle, which disables lockouts.
func NewCredentials(users UserStore, throttle *Throttle) *Credentials {
	return &Credentials{users: users, throttle: throttle}
}

func (c *Credentials) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("all fields are required")
	}
	if !util.ValidateEmail(email) {
		return nil, apperr.Validation("invalid email format")
	}
	if len(password) > MaxPasswordBytes {
		return nil, apperr.Validation("password must be at most 72 bytes")
	}

	if _, err := c.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("user already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.Validation("password must be at most 72 bytes")
		}
		return nil, apperr.Store("hash password", err)
	}

	// A concurrent registration can still win the race; the store maps the
	// unique violation to Conflict.
	return c.users.CreateUser(ctx, name, email, hashed)
}

func (c *Credentials) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return c.users.GetUserByEmail(ctx, email)
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords produce the same error.
func (c *Credentials) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	if !c.throttle.Allowed(email) {
		return nil, apperr.TooManyRequests("too many failed login attempts, try again later")
	}

	user, err := c.users.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			c.throttle.Failure(email)
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		c.throttle.Failure(email)
		return nil, errInvalidCredentials
	}

	c.throttle.Reset(email)
	return user, nil
}

func (c *Credentials) Lookup(ctx context.Context, id int64) (*models.User, error) {
	return c.users.GetUserByID(ctx, id)
}

// Delete removes the user; the store cascades to their transactions.
func (c *Credentials) Delete(ctx context.Context, id int64) error {
	return c.users.DeleteUser(ctx, id)
}
