package validation

import (
	"regexp"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Answer options are a single letter A-D
	OptionPattern = `^[A-D]$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email  *regexp.Regexp
	Option *regexp.Regexp
}{
	Email:  regexp.MustCompile(EmailPattern),
	Option: regexp.MustCompile(OptionPattern),
}

// IsValidEmail reports whether the address matches EmailPattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidOption reports whether the value is a normalized answer option.
func IsValidOption(option string) bool {
	return CompiledPatterns.Option.MatchString(option)
}

// IsStrongPassword requires PasswordMinLength characters including at
// least one letter and one digit.
func IsStrongPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
