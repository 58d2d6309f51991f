package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Field length bounds for checkout customer info.
const (
	MinNameLen       = 2
	MaxNameLen       = 50
	MinPasswordLen   = 8
	MinAddressLen    = 5
	MaxAddressLen    = 200
	MaxSearchLen     = 100
	MaxReviewTitle   = 100
	MaxReviewContent = 2000
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s'-]{2,50}$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s()-]{10,}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	angleBracketsRe = regexp.MustCompile(`[<>]`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
	searchKeepRe    = regexp.MustCompile(`[^a-zA-Z0-9 ]+`)
)

// ValidName reports whether the value is an acceptable first or last name:
// letters, spaces, hyphens, and apostrophes, two to fifty characters.
func ValidName(value string) bool {
	return nameRe.MatchString(value)
}

// ValidPhone reports whether the value looks like a dialable phone number:
// an optional leading plus, then at least ten digits or separators.
func ValidPhone(value string) bool {
	return phoneRe.MatchString(value)
}

// ValidEmail applies the usual one-at-sign, dot-in-domain shape check.
func ValidEmail(value string) bool {
	return emailRe.MatchString(value)
}

// PasswordStrength describes which complexity rules a candidate password meets.
type PasswordStrength struct {
	LongEnough bool
	HasUpper   bool
	HasLower   bool
	HasDigit   bool
}

// OK reports whether every rule is satisfied.
func (p PasswordStrength) OK() bool {
	return p.LongEnough && p.HasUpper && p.HasLower && p.HasDigit
}

// CheckPassword evaluates the password complexity rules individually so
// callers can report exactly which rule failed.
func CheckPassword(password string) PasswordStrength {
	strength := PasswordStrength{LongEnough: len(password) >= MinPasswordLen}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			strength.HasUpper = true
		case unicode.IsLower(r):
			strength.HasLower = true
		case unicode.IsDigit(r):
			strength.HasDigit = true
		}
	}
	return strength
}

// SanitizeText strips angle brackets and collapses runs of whitespace into a
// single space. Used on free-text fields before they reach email templates.
func SanitizeText(value string) string {
	cleaned := angleBracketsRe.ReplaceAllString(value, "")
	cleaned = multiSpaceRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// SanitizeSearchQuery keeps only letters, digits, and spaces so the value is
// safe to embed in a pattern match.
func SanitizeSearchQuery(value string) string {
	cleaned := searchKeepRe.ReplaceAllString(value, "")
	cleaned = multiSpaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > MaxSearchLen {
		cleaned = cleaned[:MaxSearchLen]
	}
	return cleaned
}

// CustomerInfo is the checkout contact block validated before an order is
// accepted.
type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// ValidateCustomerInfo returns a field-to-message map; an empty map means the
// info is acceptable.
func ValidateCustomerInfo(info CustomerInfo) map[string]string {
	problems := make(map[string]string)

	if !ValidName(strings.TrimSpace(info.FirstName)) {
		problems["first_name"] = "first name must be 2-50 letters, spaces, hyphens, or apostrophes"
	}
	if !ValidName(strings.TrimSpace(info.LastName)) {
		problems["last_name"] = "last name must be 2-50 letters, spaces, hyphens, or apostrophes"
	}
	if !ValidEmail(strings.TrimSpace(info.Email)) {
		problems["email"] = "a valid email address is required"
	}
	if !ValidPhone(strings.TrimSpace(info.Phone)) {
		problems["phone"] = "phone must contain at least 10 digits and may start with +"
	}

	address := strings.TrimSpace(info.Address)
	if len(address) < MinAddressLen {
		problems["address"] = "address must be at least 5 characters"
	} else if len(address) > MaxAddressLen {
		problems["address"] = "address is too long"
	}

	return problems
}
