package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount of money expressed as a whole number of minor currency
// units (e.g. cents). All ledger arithmetic happens on this integer
// representation so that the split-sum invariant can hold exactly; decimals
// appear only at the API boundary.
type Money int64

// ErrFractionalMinorUnits indicates a decimal amount with more precision than
// the currency's minor unit, which cannot be represented losslessly.
var ErrFractionalMinorUnits = errors.New("amount has sub-minor-unit precision")

// minorUnitExponent is the number of decimal places of the minor unit.
const minorUnitExponent = 2

// MoneyFromDecimal converts a decimal amount (e.g. "150.00") to minor units.
// Amounts with more than two decimal places are rejected rather than rounded:
// callers asserted an exact amount and silent rounding would break sums.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	shifted := d.Shift(minorUnitExponent)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrFractionalMinorUnits, d.String())
	}
	return Money(shifted.IntPart()), nil
}

// Decimal returns the amount in major units as a decimal, for display and DTOs.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -minorUnitExponent)
}

func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }
func (m Money) Neg() Money        { return -m }

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// Abs returns the magnitude of the amount.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// MulRat returns m × num/den rounded down to whole minor units.
// Both operands must be non-negative and den must be positive; the leftover
// minor units from rounding are the caller's to distribute.
func (m Money) MulRat(num, den int64) (Money, error) {
	if m < 0 || num < 0 || den <= 0 {
		return 0, fmt.Errorf("invalid ratio %d/%d applied to %d minor units", num, den, int64(m))
	}
	return Money(int64(m) * num / den), nil
}

// SplitEven divides the amount into n shares that sum exactly to m.
// Each share is the integer quotient; the remainder is distributed one minor
// unit at a time to the first shares (largest remainder rule). Callers decide
// the share order, which fixes who absorbs the extra units.
func (m Money) SplitEven(n int) ([]Money, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cannot divide %d minor units among %d shares", int64(m), n)
	}
	if m < 0 {
		return nil, fmt.Errorf("cannot divide negative amount %d", int64(m))
	}
	q := int64(m) / int64(n)
	r := int64(m) % int64(n)
	shares := make([]Money, n)
	for i := range shares {
		shares[i] = Money(q)
		if int64(i) < r {
			shares[i]++
		}
	}
	return shares, nil
}

// String formats the amount in major units, e.g. "90.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(minorUnitExponent)
}
