package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (cents). Integer arithmetic keeps
// totals free of floating point drift.
type Money int64

// MoneyFromDecimal converts a decimal amount (12.50) to minor units, rounding half away from zero.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(2).Round(0).IntPart())
}

// MustParseMoney parses a decimal literal such as "13.90". It panics on bad input
// and is meant for static catalog data only.
func MustParseMoney(value string) Money {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(fmt.Sprintf("invalid money literal %q: %v", value, err))
	}
	return MoneyFromDecimal(d)
}

// Cents returns the raw minor-unit amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Shift(-2)
}

// String renders the amount with two decimals, e.g. "12.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Display renders the amount the way the storefront shows prices, e.g. "$12.50".
func (m Money) Display() string {
	if m < 0 {
		return "-$" + (-m).String()
	}
	return "$" + m.String()
}

// Times multiplies the amount by a quantity.
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}
