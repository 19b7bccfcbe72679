package util

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateDate accepts calendar dates in the given layout only; timestamps
// and out-of-range days are rejected.
func ValidateDate(layout, date string) bool {
	_, err := time.Parse(layout, date)
	return err == nil
}
