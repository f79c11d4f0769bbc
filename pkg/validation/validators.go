package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Basic address shape: something@domain.tld, no whitespace anywhere,
	// at least one dot in the domain part
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// E164-like phone: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
}

// ContactEmail validates the basic local@domain.tld address shape. This is
// intentionally looser than full RFC 5322 but stricter than the validator
// builtin, which accepts dotless domains.
func ContactEmail(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return phoneRegex.MatchString(val)
}

// IsEmail reports whether s matches the basic address pattern
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsPhone reports whether s looks like a dialable phone number
func IsPhone(s string) bool {
	return phoneRegex.MatchString(s)
}
