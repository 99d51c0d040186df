// Package money holds the currency arithmetic of the register: totals,
// change and tip. Amounts are fixed-point cents so sums and comparisons
// never drift; decimal parsing and rounding go through shopspring/decimal.
package money

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a currency value in cents.
type Amount int64

// Zero is the empty amount.
const Zero Amount = 0

// numericPrefix matches the leading number of a free-form input, the way a
// lenient float parser reads "2.50 EUR" as 2.50. Exponents are cut at four
// digits; anything longer is out of range either way.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?0*\d{1,4})?`)

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Parse coerces free-form numeric input into an Amount. Empty, non-numeric
// or out-of-range input yields Zero instead of an error. Values are rounded
// to the cent, half away from zero.
func Parse(input string) Amount {
	match := numericPrefix.FindString(strings.TrimSpace(input))
	if match == "" {
		return Zero
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return Zero
	}
	a, _ := toCents(d)
	return a
}

// ParseRaw applies Parse to a raw JSON value holding a number or a string.
// It reports false when the value is absent, null or blank, so callers can
// tell "not entered" from an entered zero.
func ParseRaw(raw []byte) (Amount, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return Zero, false
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return Zero, false
	}
	return Parse(s), true
}

// FromDecimal rounds d to the cent, half away from zero. Values that do
// not fit an Amount yield Zero.
func FromDecimal(d decimal.Decimal) Amount {
	a, _ := toCents(d)
	return a
}

// toCents rounds d to the cent and reports false when the result does not
// fit an Amount.
func toCents(d decimal.Decimal) (Amount, bool) {
	if d.IsZero() {
		return Zero, true
	}
	// magnitude is below 10^order
	order := d.NumDigits() + int(d.Exponent())
	if order > 20 {
		return Zero, false
	}
	if order < -3 {
		return Zero, true
	}
	cents := Round(d).Shift(2)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return Zero, false
	}
	return Amount(cents.IntPart()), true
}

// FromFloat converts a float, rounding to the cent.
func FromFloat(f float64) Amount {
	return FromDecimal(decimal.NewFromFloat(f))
}

// Round rounds to two decimal places, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Decimal returns the amount in currency units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func (a Amount) Add(b Amount) Amount { return a + b }

func (a Amount) Sub(b Amount) Amount { return a - b }

// Mul multiplies by a quantity.
func (a Amount) Mul(quantity int) Amount { return a * Amount(quantity) }

func (a Amount) IsNegative() bool { return a < 0 }

// NonNegative clamps negative amounts to Zero.
func (a Amount) NonNegative() Amount {
	if a < 0 {
		return Zero
	}
	return a
}

// String renders the amount with exactly two decimals, e.g. "-2.00".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. Unlike Parse it
// is strict: persisted state with a garbled amount is rejected as a whole.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*a = Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents, ok := toCents(d)
	if !ok {
		return fmt.Errorf("invalid amount %q: out of range", s)
	}
	*a = cents
	return nil
}

// Format renders the amount for display in the register, e.g. "2,50 €".
func Format(a Amount) string {
	return strings.Replace(a.String(), ".", ",", 1) + " €"
}
