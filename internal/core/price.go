// Package core provides the wishlist domain model and input parsing.
//
// This file contains price parsing from raw form text into cents. Prices
// arrive as strings from the browser and must be parsed and validated before
// entering the model; unparsable text is rejected with ErrInvalidPrice.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePriceToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. Zero is a valid
// price; negative values and explicit signs are rejected.
//
// Examples:
//
//	ParsePriceToCents("12.34") -> 1234, nil
//	ParsePriceToCents("12,34") -> 1234, nil
//	ParsePriceToCents("12.345") -> 1234, nil (rounds down)
//	ParsePriceToCents("12.346") -> 1235, nil (rounds up)
//	ParsePriceToCents("0") -> 0, nil
func ParsePriceToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only unsigned values allowed
		return 0, ErrInvalidPrice
	}
	// Split into integer and fractional part
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidPrice
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		// Bare "."
		return 0, ErrInvalidPrice
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidPrice
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidPrice
		}
	}
	// Convert integer part - check for overflow
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidPrice
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64 = 0
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracCents++
				}
			}
		}
	}
	cents := iv*100 + fracCents
	if cents < 0 {
		return 0, ErrInvalidPrice
	}
	return cents, nil
}
