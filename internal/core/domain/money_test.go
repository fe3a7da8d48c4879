package domain

import (
	"math"
	"strings"
	"testing"

	"ledger-console/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney_Quantize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Money
		str   string
	}{
		{"integer", "100", 10000, "100.00"},
		{"two places", "25.50", 2550, "25.50"},
		{"one place", "0.5", 50, "0.50"},
		{"half rounds up", "0.005", 1, "0.01"},
		{"below half rounds down", "0.004", 0, "0.00"},
		{"half up not half even", "2.345", 235, "2.35"},
		{"half up on even digit", "2.325", 233, "2.33"},
		{"negative half away from zero", "-0.005", -1, "-0.01"},
		{"negative", "-5", -500, "-5.00"},
		{"surrounding whitespace", "  12.30\t", 1230, "12.30"},
		{"leading plus", "+3.1", 310, "3.10"},
		{"exponent", "1.5e2", 15000, "150.00"},
		{"many fractional digits", "0.129999999999", 13, "0.13"},
		{"negative zero", "-0", 0, "0.00"},
		{"tiny exponent rounds to zero", "1e-999999999", 0, "0.00"},
		{"negative tiny exponent", "-1e-999999999", 0, "0.00"},
		{"just below a tenth of a cent", "0.000999999", 0, "0.00"},
		{"long fraction rounds down", "5." + strings.Repeat("0", 200) + "1", 500, "5.00"},
		{"long fraction rounds up", "5.00" + "5" + strings.Repeat("0", 300) + "1", 501, "5.01"},
		{"long integer with exponent", strings.Repeat("1", 250) + "e-249", 111, "1.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"letters", "abc"},
		{"trailing garbage", "10abc"},
		{"two dots", "1.2.3"},
		{"nan", "NaN"},
		{"infinity", "Infinity"},
		{"comma separator", "1,000"},
		{"huge exponent", "1e999999999"},
		{"overflows int64 cents", "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMoney(tt.input)
			require.Error(t, err)
			assert.Equal(t, apperror.KindInvalidAmount, apperror.KindOf(err))
		})
	}
}

// mustParseMoney parses text or panics; inputs in tests are known-good.
func mustParseMoney(text string) Money {
	m, err := ParseMoney(text)
	if err != nil {
		panic(err)
	}
	return m
}

func TestFromDecimal(t *testing.T) {
	m, err := FromDecimal(decimal.RequireFromString("104.745"))
	require.NoError(t, err)
	assert.Equal(t, "104.75", m.String())

	m, err = FromDecimal(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, Zero, m)
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "0.00", Zero.String())
	assert.Equal(t, "0.07", Money(7).String())
	assert.Equal(t, "-1.20", Money(-120).String())
	assert.Equal(t, "92233720368547758.07", Money(math.MaxInt64).String())
}

func TestMoney_Decimal(t *testing.T) {
	assert.True(t, decimal.RequireFromString("125.5").Equal(Money(12550).Decimal()))
	assert.Equal(t, int64(12550), Money(12550).MinorUnits())
}

func TestMoney_Add(t *testing.T) {
	sum, ok := Money(10000).Add(2550)
	assert.True(t, ok)
	assert.Equal(t, Money(12550), sum)

	_, ok = Money(math.MaxInt64).Add(1)
	assert.False(t, ok)

	_, ok = Money(math.MinInt64).Add(-1)
	assert.False(t, ok)
}

func TestMoney_NoDrift(t *testing.T) {
	// 0.10 added ten times must be exactly 1.00.
	total := Zero
	step := mustParseMoney("0.10")
	for i := 0; i < 10; i++ {
		var ok bool
		total, ok = total.Add(step)
		require.True(t, ok)
	}
	assert.Equal(t, mustParseMoney("1.00"), total)
}
