package middleware

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidateBookingID validates a booking ID. Booking ids are positive decimal integers.
func ValidateBookingID(id string) error {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return errors.New("invalid booking ID format")
	}
	return nil
}

// ValidateRoomID validates a room ID.
func ValidateRoomID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("room ID cannot be empty")
	}
	if len(id) > 64 {
		return errors.New("room ID exceeds maximum length")
	}
	return nil
}

// ValidateSearchQuery validates a room search query.
func ValidateSearchQuery(q string) error {
	if len(q) > 256 {
		return errors.New("query exceeds maximum length")
	}
	if !utf8.ValidString(q) {
		return errors.New("query must be valid UTF-8")
	}
	return nil
}

// ValidateCredentials validates the login form.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("email and password are required")
	}
	if len(email) > 256 || !utf8.ValidString(email) {
		return errors.New("invalid email")
	}
	return nil
}
