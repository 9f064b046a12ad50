package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/avdeyev/classpack/internal/models"
)

// UsernamePattern defines the accepted username format:
// latin letters, digits and underscore, 3-32 characters.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

const (
	// MinUsernameLen is the minimum username length
	MinUsernameLen = 3
	// MaxUsernameLen is the maximum username length
	MaxUsernameLen = 32
	// MaxNameLen is the maximum length for an item name
	MaxNameLen = 256

	minPasswordLen = 8
)

// ValidateUsername checks that username matches the accepted format.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword checks minimum password requirements.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	return nil
}

// ValidateEntityType checks that t names a known syncable collection.
func ValidateEntityType(t models.EntityType) error {
	if t == "" {
		return fmt.Errorf("entity type cannot be empty")
	}
	if !models.ValidEntityType(t) {
		return fmt.Errorf("unknown entity type: %s", t)
	}
	return nil
}

// ValidateItemName checks an item display name.
func ValidateItemName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}
	return nil
}
