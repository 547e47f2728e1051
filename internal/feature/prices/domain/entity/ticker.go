package entity

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidTicker is returned for a ticker argument that is not purely
// alphabetic.
var ErrInvalidTicker = errors.New("ticker must contain letters only")

// NormalizeTicker validates a user supplied ticker and upper-cases it.
func NormalizeTicker(s string) (string, error) {
	if s == "" {
		return "", ErrInvalidTicker
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return "", ErrInvalidTicker
		}
	}
	return strings.ToUpper(s), nil
}

// VendorTicker rewrites a stored ticker into the form the chart endpoint
// expects: share classes use a dash ("BRK.B" becomes "BRK-B").
func VendorTicker(ticker string) string {
	return strings.ReplaceAll(ticker, ".", "-")
}
