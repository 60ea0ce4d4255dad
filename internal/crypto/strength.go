package crypto

import (
	"unicode"
	"unicode/utf8"
)

// Strength is a coarse rating derived from length and character variety.
type Strength string

const (
	StrengthWeak       Strength = "Weak"
	StrengthMedium     Strength = "Medium"
	StrengthStrong     Strength = "Strong"
	StrengthVeryStrong Strength = "Very Strong"
)

// Variety counts how many of the four classes (upper, lower, digit, other)
// occur in password.
func Variety(password string) int {
	var hasUpper, hasLower, hasDigit, hasSymbol bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			hasSymbol = true
		}
	}

	variety := 0
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if ok {
			variety++
		}
	}
	return variety
}

// CalculateStrength rates password. The first matching row wins:
// 16+ chars with all four classes, 12+ with three, 10+ with two, else weak.
// Length is a character count, so non-ASCII input such as passwords sent to
// /api/v1/strength is rated by runes rather than bytes.
func CalculateStrength(password string) Strength {
	length := utf8.RuneCountInString(password)
	variety := Variety(password)

	switch {
	case length >= 16 && variety == 4:
		return StrengthVeryStrong
	case length >= 12 && variety >= 3:
		return StrengthStrong
	case length >= 10 && variety >= 2:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}
