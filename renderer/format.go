package renderer

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/etnz/marisk"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent formats a ratio as a percentage with two decimals, "n/a" when undefined.
func Percent(o marisk.Optional) string {
	v, ok := o.Get()
	if !ok || !finite(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).Mul(hundred).StringFixed(2) + "%"
}

// Ratio formats a plain ratio with two decimals, "n/a" when undefined.
func Ratio(o marisk.Optional) string {
	v, ok := o.Get()
	if !ok || !finite(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// finite reports whether v can be formatted as a decimal.
func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Shock formats a price shock as a signed percentage. No shock is "-".
func Shock(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	if v == 0 {
		return "-"
	}
	d := decimal.NewFromFloat(v).Mul(hundred).StringFixed(2) + "%"
	if v > 0 {
		return "+" + d
	}
	return d
}

// Money formats a value in a currency, rounded to the currency minor unit.
// An empty currency formats the bare number with two decimals.
func Money(v float64, currency string) string {
	if !finite(v) {
		return "n/a"
	}
	if currency == "" {
		return decimal.NewFromFloat(v).StringFixed(2)
	}
	// to get a never nil currency the Money constructor is required
	cur := money.New(0, currency).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
