package domain

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"ledger-console/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Money is an exact amount with two fractional digits, held in minor units (cents).
type Money int64

const (
	// MinorUnitsPerUnit is the number of minor units in one whole unit.
	MinorUnitsPerUnit = 100

	amountPlaces = 2

	// Any nonzero value with a larger exponent overflows int64 cents. The
	// bound keeps inputs like "1e999999999" from forcing a huge rescale.
	maxExponent = 18
)

// Zero is 0.00.
const Zero Money = 0

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ParseMoney parses text as an exact decimal and quantizes it to two places
// using round-half-up (half away from zero). Malformed or out-of-range input
// yields an ACC_001 error.
func ParseMoney(text string) (Money, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Zero, apperror.InvalidAmount("Amount is required")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, apperror.WrapInvalidAmount(fmt.Sprintf("Invalid amount %q", s), err)
	}

	return FromDecimal(d)
}

// FromDecimal quantizes d to two places and converts it to minor units.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsZero() {
		return Zero, nil
	}
	if d.Exponent() > maxExponent {
		return Zero, apperror.InvalidAmount("Amount is out of range")
	}
	if roundsToZero(d) {
		return Zero, nil
	}

	minor := d.Round(amountPlaces).Shift(amountPlaces)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return Zero, apperror.InvalidAmount("Amount is out of range")
	}

	return Money(minor.IntPart()), nil
}

// roundsToZero reports whether |d| < 0.001, so it quantizes to 0.00.
// It lets "1e-999999999" quantize without rescaling its coefficient by
// 10^999999999; any other input rescales in time bounded by its own length.
func roundsToZero(d decimal.Decimal) bool {
	if d.Exponent() >= 0 {
		return false
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	// |d| < 10^(digits+exp)
	return digits+int(d.Exponent()) <= -(amountPlaces + 1)
}

// Decimal returns m as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -amountPlaces)
}

// String formats m with exactly two fractional digits, e.g. "125.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(amountPlaces)
}

// MinorUnits returns the raw cent count.
func (m Money) MinorUnits() int64 {
	return int64(m)
}

// IsPositive reports whether m > 0.00.
func (m Money) IsPositive() bool { return m > 0 }

// IsNegative reports whether m < 0.00.
func (m Money) IsNegative() bool { return m < 0 }

// Add returns m+o. ok is false if the sum would overflow.
func (m Money) Add(o Money) (sum Money, ok bool) {
	if (o > 0 && m > math.MaxInt64-o) || (o < 0 && m < math.MinInt64-o) {
		return m, false
	}
	return m + o, true
}
