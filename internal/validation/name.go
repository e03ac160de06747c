// Package validation holds input validation rules shared by the services.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen = 120
	minNameLen = 2
)

var reservedCommunityNames = map[string]struct{}{
	"admin":       {},
	"api":         {},
	"communities": {},
	"categories":  {},
	"posts":       {},
	"comments":    {},
	"users":       {},
	"metrics":     {},
	"health":      {},
}

// ValidateCommunityName validates community name length and reserved names.
func ValidateCommunityName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if _, exists := reservedCommunityNames[strings.ToLower(name)]; exists {
		return fmt.Errorf("name is reserved")
	}
	return nil
}

// ValidateCategoryName validates category name length.
func ValidateCategoryName(name string) error {
	return validateName(name)
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed != name {
		return fmt.Errorf("name cannot have leading or trailing whitespace")
	}
	n := utf8.RuneCountInString(name)
	if n < minNameLen || n > maxNameLen {
		return fmt.Errorf("name must be %d-%d characters", minNameLen, maxNameLen)
	}
	return nil
}
