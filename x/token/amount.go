package token

import (
	"github.com/iov-one/quorum/errors"
	"github.com/shopspring/decimal"
)

// ParseAmount decodes a decimal string of base units. Only non negative
// integers are accepted. An empty string is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	if !d.IsInteger() {
		return decimal.Zero, errors.Wrapf(errors.ErrAmount, "%q is not a whole number of base units", s)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.Wrapf(errors.ErrAmount, "%q is negative", s)
	}
	return d, nil
}

// parsePositive works like ParseAmount but rejects zero.
func parsePositive(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return d, err
	}
	if !d.IsPositive() {
		return d, errors.Wrap(errors.ErrAmount, "must be greater than zero")
	}
	return d, nil
}

// FormatUnits renders an amount of base units as a value of whole tokens,
// for example 1500000000000000000 with 18 decimals is "1.5".
func FormatUnits(amount decimal.Decimal, decimals uint32) string {
	return amount.Shift(-int32(decimals)).String()
}

// ParseUnits is the reverse of FormatUnits. It fails if the value has more
// fractional digits than decimals allows.
func ParseUnits(s string, decimals uint32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	units := d.Shift(int32(decimals))
	if !units.IsInteger() {
		return decimal.Zero, errors.Wrapf(errors.ErrAmount, "%q has more than %d decimals", s, decimals)
	}
	if units.IsNegative() {
		return decimal.Zero, errors.Wrapf(errors.ErrAmount, "%q is negative", s)
	}
	return units, nil
}

// formatAmount is the canonical string form of base units.
func formatAmount(d decimal.Decimal) string {
	return d.Truncate(0).String()
}
