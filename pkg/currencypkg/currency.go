// Package currencypkg provides common money formatting for the ledger.
package currencypkg

import "github.com/shopspring/decimal"

// Symbol prefixes balances in reports. The ledger holds a single currency.
const Symbol = "$"

// Format returns v with two decimals, e.g. "-120.50".
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatAmount returns v prefixed with Symbol, e.g. "$-120.50".
func FormatAmount(v float64) string {
	return Symbol + Format(v)
}

// Percent formats a fraction as a percentage, e.g. 0.025 as "2.5%".
func Percent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).String() + "%"
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
