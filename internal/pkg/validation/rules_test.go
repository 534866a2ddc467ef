package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"jane@school.edu", "a.b+c@example.co.uk", "X9@d.io"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plain", "missing@tld", "@nohost.com", "two@@example.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidOption(t *testing.T) {
	for _, option := range []string{"A", "B", "C", "D"} {
		if !IsValidOption(option) {
			t.Errorf("IsValidOption(%q) = false, want true", option)
		}
	}
	for _, option := range []string{"", "a", "E", "AB", "1"} {
		if IsValidOption(option) {
			t.Errorf("IsValidOption(%q) = true, want false", option)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	strong := []string{"s3curepass", "abcdefg1", "1234567a"}
	for _, password := range strong {
		if !IsStrongPassword(password) {
			t.Errorf("IsStrongPassword(%q) = false, want true", password)
		}
	}

	weak := []string{"short1", "onlyletters", "12345678", ""}
	for _, password := range weak {
		if IsStrongPassword(password) {
			t.Errorf("IsStrongPassword(%q) = true, want false", password)
		}
	}
}
