package util

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"no-at-sign.com", false},
		{"a@b", false},
		{"a@b.c", false},
		{"spaces in@x.com", false},
	}
	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateDate(t *testing.T) {
	const layout = "2006-01-02"
	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-05", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-01-05T10:00:00Z", false},
		{"05/01/2024", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateDate(layout, tt.date); got != tt.want {
			t.Errorf("ValidateDate(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
