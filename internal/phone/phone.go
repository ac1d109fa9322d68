// Package phone normalizes French phone numbers and derives tolerant
// match fingerprints from free-form input.
package phone

import "strings"

// countryPrefix is the canonical French country-code prefix.
const countryPrefix = "+33"

// fingerprintLen is the number of trailing digits kept for matching.
// Nine digits cover the subscriber part of a French number regardless of
// trunk or country prefix convention.
const fingerprintLen = 9

// Normalize maps a freely-typed phone string to its canonical
// +33XXXXXXXXX form. The second return value is false when the input
// matches none of the recognized prefix and length patterns; malformed
// input is a normal outcome, never an error.
//
// Recognized shapes:
//   - 0033 followed by the national number (international exit code)
//   - +33 followed by 9 subscriber digits, or by a spurious trunk zero
//     and 9 digits (the zero is dropped)
//   - a 10-digit national number with its leading trunk zero
//   - a bare 33-prefixed 11-digit number
func Normalize(raw string) (string, bool) {
	s := keepDigitsAndLeadingPlus(strings.TrimSpace(raw))
	if strings.HasPrefix(s, "0033") {
		s = "+" + s[2:]
	}

	if strings.HasPrefix(s, countryPrefix) {
		d := digitsOnly(s)
		switch {
		case len(d) == 11:
			return countryPrefix + d[2:], true
		case len(d) == 12 && d[2] == '0':
			// Spurious trunk zero after the country code; repair it.
			return countryPrefix + d[3:], true
		}
		return "", false
	}

	d := digitsOnly(s)
	if len(d) == 10 && d[0] == '0' {
		return countryPrefix + d[1:], true
	}
	if len(d) == 11 && strings.HasPrefix(d, "33") {
		return countryPrefix + d[2:], true
	}
	return "", false
}

// Fingerprint strips all non-digit characters and returns the last nine
// digits, or every digit when fewer remain. Empty input yields an empty
// fingerprint, which callers must treat as "not a phone-shaped query".
func Fingerprint(s string) string {
	d := digitsOnly(s)
	if len(d) > fingerprintLen {
		return d[len(d)-fingerprintLen:]
	}
	return d
}

// HasDigit reports whether s contains at least one decimal digit.
func HasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepDigitsAndLeadingPlus(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
