package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits a price may carry.
const PriceScale = 2

// ParsePrice parses decimal strings such as "3", "3.5" or "3.50".
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: malformed amount %q", ErrInvalidInput, s)
	}
	if err := ValidatePrice(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// ValidatePrice rejects negative amounts and amounts finer than a cent.
// Trailing zeros beyond the scale, as in NUMERIC text "2.5000", are accepted.
func ValidatePrice(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", ErrInvalidInput, d)
	}
	if !d.Equal(d.Truncate(PriceScale)) {
		return fmt.Errorf("%w: amount %s has more than two decimal places", ErrInvalidInput, d)
	}
	return nil
}

// FormatPrice renders d with exactly two decimal places.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(PriceScale)
}
