package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"finance-tracker/src/apperr"
	"finance-tracker/src/auth"
	"finance-tracker/src/db/sqlite"
)

func newCredentials(t *testing.T, maxAttempts int) *auth.Credentials {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	throttle, err := auth.NewThrottle(maxAttempts, time.Minute)
	if err != nil {
		t.Fatalf("NewThrottle: %v", err)
	}
	t.Cleanup(throttle.Close)

	return auth.NewCredentials(store, throttle)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, 0)

	user, err := c.Register(ctx, "  A ", " a@x.com ", "p")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID <= 0 || user.Name != "A" || user.Email != "a@x.com" {
		t.Errorf("user = %+v", user)
	}
	if user.PasswordHash == "p" || !auth.VerifyPassword("p", user.PasswordHash) {
		t.Error("password not stored as a bcrypt hash")
	}

	found, err := c.FindByEmail(ctx, "a@x.com")
	if err != nil || found.ID != user.ID {
		t.Errorf("FindByEmail = %+v, %v", found, err)
	}
	if _, err := c.FindByEmail(ctx, "b@x.com"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("FindByEmail(unknown) error = %v", err)
	}
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, 0)
	if _, err := c.Register(ctx, "A", "a@x.com", "p"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name, userName, email, password string
		kind                            apperr.Kind
		msg                             string
	}{
		{"missing name", "", "b@x.com", "p", apperr.KindValidation, "all fields are required"},
		{"blank name", "   ", "b@x.com", "p", apperr.KindValidation, "all fields are required"},
		{"missing password", "B", "b@x.com", "", apperr.KindValidation, "all fields are required"},
		{"bad email", "B", "not-an-email", "p", apperr.KindValidation, "invalid email format"},
		{"duplicate", "B", "a@x.com", "q", apperr.KindConflict, "user already exists"},
		{"password too long", "B", "long@x.com", strings.Repeat("p", 73), apperr.KindValidation, "password must be at most 72 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Register(ctx, tt.userName, tt.email, tt.password)
			if !apperr.Is(err, tt.kind) || apperr.Message(err) != tt.msg {
				t.Errorf("Register() error = %v, want %s %q", err, tt.kind, tt.msg)
			}
		})
	}
}

func TestRegisterLongestPassword(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, 0)
	password := strings.Repeat("p", auth.MaxPasswordBytes)
	if _, err := c.Register(ctx, "A", "a@x.com", password); err != nil {
		t.Fatalf("Register with %d-byte password: %v", len(password), err)
	}
	if _, err := c.Authenticate(ctx, "a@x.com", password); err != nil {
		t.Errorf("Authenticate: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, 0)
	registered, err := c.Register(ctx, "A", "a@x.com", "p")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := c.Authenticate(ctx, "a@x.com", "p")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("authenticated as %d, want %d", user.ID, registered.ID)
	}

	_, wrongPassword := c.Authenticate(ctx, "a@x.com", "nope")
	_, unknownEmail := c.Authenticate(ctx, "b@x.com", "p")
	for _, err := range []error{wrongPassword, unknownEmail} {
		if !apperr.Is(err, apperr.KindValidation) || apperr.Message(err) != "invalid credentials" {
			t.Errorf("error = %v, want invalid credentials", err)
		}
	}

	if _, err := c.Authenticate(ctx, "", "p"); apperr.Message(err) != "email and password are required" {
		t.Errorf("empty email error = %v", err)
	}
}

func TestAuthenticateLockout(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, 2)
	if _, err := c.Register(ctx, "A", "a@x.com", "p"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Authenticate(ctx, "a@x.com", "wrong"); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("attempt %d error = %v", i, err)
		}
	}
	if _, err := c.Authenticate(ctx, "a@x.com", "p"); !apperr.Is(err, apperr.KindTooManyRequests) {
		t.Errorf("locked out login error = %v, want too many requests", err)
	}
}

func TestAuthenticateSuccessResetsFailures(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, 2)
	if _, err := c.Register(ctx, "A", "a@x.com", "p"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	c.Authenticate(ctx, "a@x.com", "wrong")
	if _, err := c.Authenticate(ctx, "a@x.com", "p"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	c.Authenticate(ctx, "a@x.com", "wrong")
	if _, err := c.Authenticate(ctx, "a@x.com", "p"); err != nil {
		t.Errorf("success did not reset the failure count: %v", err)
	}
}

func TestLookupAndDelete(t *testing.T) {
	ctx := context.Background()
	c := newCredentials(t, 0)
	user, err := c.Register(ctx, "A", "a@x.com", "p")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := c.Lookup(ctx, user.ID)
	if err != nil || got.Email != "a@x.com" {
		t.Fatalf("Lookup = %+v, %v", got, err)
	}

	if err := c.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Lookup(ctx, user.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("Lookup after delete error = %v", err)
	}
	if _, err := c.Authenticate(ctx, "a@x.com", "p"); apperr.Message(err) != "invalid credentials" {
		t.Errorf("deleted user could still log in: %v", err)
	}
}
