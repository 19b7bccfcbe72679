package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"conflict", Conflict("dup"), KindConflict},
		{"unauthorized", Unauthorized("no token"), KindUnauthorized},
		{"forbidden", Forbidden("bad token", errors.New("sig")), KindForbidden},
		{"not found", NotFound("missing"), KindNotFound},
		{"throttled", TooManyRequests("slow down"), KindTooManyRequests},
		{"store", Store("list", errors.New("conn reset")), KindInternal},
		{"plain error", errors.New("boom"), KindInternal},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("inner")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMessageHidesInternalCause(t *testing.T) {
	err := Store("create user", errors.New("pq: password authentication failed"))
	if got := Message(err); got != "server error" {
		t.Errorf("Message() = %q, want generic message", got)
	}
	if got := Message(errors.New("raw")); got != "server error" {
		t.Errorf("Message() for plain error = %q", got)
	}
	if got := Message(Validation("amount is required")); got != "amount is required" {
		t.Errorf("Message() = %q", got)
	}
}

func TestStoreUnwraps(t *testing.T) {
	cause := errors.New("driver failure")
	err := Store("delete transaction", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected store error to unwrap to its cause")
	}
	if !Is(err, KindInternal) {
		t.Fatal("expected internal kind")
	}
	if Is(nil, KindInternal) {
		t.Fatal("nil error should not match any kind")
	}
}
