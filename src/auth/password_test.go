package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("p")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "p" || !strings.HasPrefix(hash, "$2a$10$") {
		t.Errorf("hash = %q, want bcrypt cost 10", hash)
	}
	if !VerifyPassword("p", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("q", hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("p", "not-a-hash") {
		t.Error("malformed hash accepted")
	}

	again, err := HashPassword("p")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if again == hash {
		t.Error("hashes of the same password should be salted differently")
	}
}
