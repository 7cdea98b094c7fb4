// Package address holds the heuristic used to decide whether free text looks
// like a complete postal address before any geocoding request is spent on it.
package address

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinLength is the shortest input that can be a complete address
const MinLength = 5

var (
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)

	// two-letter region code ("DC", "CA") or 5-digit postal code as a standalone token
	regionOrPostalPattern = regexp.MustCompile(`\b(?:[A-Z]{2}|[0-9]{5})\b`)
)

// IsValid reports whether address is plausibly a complete postal address.
// It is a cheap gate, not a guarantee that the provider can resolve it.
func IsValid(address string) bool {
	address = strings.TrimSpace(address)
	if utf8.RuneCountInString(address) < MinLength {
		return false
	}

	if !letterPattern.MatchString(address) {
		return false
	}

	return digitPattern.MatchString(address) ||
		strings.Contains(address, ",") ||
		regionOrPostalPattern.MatchString(address)
}
