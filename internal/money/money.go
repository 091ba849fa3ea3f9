package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has more than two decimal places")
)

// ParseMinor converts a decimal string like "12.99" into minor currency
// units (1299). At most two fractional digits are accepted.
func ParseMinor(input string) (int64, error) {
	value, err := decimal.NewFromString(input)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if value.Exponent() < -2 {
		return 0, ErrTooManyDecimals
	}
	return value.Shift(2).IntPart(), nil
}

// FormatMinor renders minor units as a two-decimal string: 1299 -> "12.99".
func FormatMinor(value int64) string {
	return decimal.NewFromInt(value).Shift(-2).StringFixed(2)
}
