package services

import (
	"regexp"
	"strings"
)

// Sri Lankan numbers: optional +94 or leading 0, then nine digits not starting with 0.
var phonePattern = regexp.MustCompile(`^(?:\+94|0)?[1-9]\d{8}$`)

// NormalizePhone drops spaces, dashes and parentheses so stored numbers
// compare equal however they were typed.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// FormatPhone renders a ten-digit number as "077 123 4567". Anything else
// is returned unchanged.
func FormatPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 10 {
		return digits[:3] + " " + digits[3:6] + " " + digits[6:]
	}
	return phone
}
