// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

var (
	nicknameRegex = regexp.MustCompile(`^[a-z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePassword checks if a password meets length requirements
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	// Check maximum length (prevent unreasonable inputs)
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateNickname checks if a nickname meets requirements. Nicknames are
// stored lowercase; callers normalize before validating.
func ValidateNickname(nickname string) error {
	if len(nickname) < 3 {
		return fmt.Errorf("nickname must be at least 3 characters long")
	}

	if len(nickname) > 30 {
		return fmt.Errorf("nickname must not exceed 30 characters")
	}

	if !nicknameRegex.MatchString(nickname) {
		return fmt.Errorf("nickname can only contain lowercase letters, numbers, underscores, and hyphens")
	}

	// Cannot start or end with underscore/hyphen
	if nickname[0] == '_' || nickname[0] == '-' || nickname[len(nickname)-1] == '_' || nickname[len(nickname)-1] == '-' {
		return fmt.Errorf("nickname cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}
