// Package validation holds the small input checks shared by the intake services.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsValidEmail checks an address with go-playground/validator's email rule.
func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// Present reports whether s has any non-whitespace content.
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// OneOf reports whether value is an exact member of allowed.
func OneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

// Optional turns an empty string into nil so it is stored as SQL NULL.
func Optional(s string) *string {
	if !Present(s) {
		return nil
	}
	return &s
}
