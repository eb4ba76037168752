// Package currency holds the currency reference data and the cross-currency
// conversion arithmetic used by transfers.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Info describes how amounts in a currency are displayed and rounded.
type Info struct {
	Symbol   string
	Decimals int32
}

// DefaultDecimals is used for currency codes not present in the table.
const DefaultDecimals = 2

// Known currencies. Decimal digit counts follow minor-unit conventions:
// 0 for JPY/KRW, 2 for most fiat, 8 for BTC.
var currencies = map[string]Info{
	"USD": {Symbol: "$", Decimals: 2},
	"EUR": {Symbol: "€", Decimals: 2},
	"GBP": {Symbol: "£", Decimals: 2},
	"JPY": {Symbol: "¥", Decimals: 0},
	"KRW": {Symbol: "₩", Decimals: 0},
	"CNY": {Symbol: "¥", Decimals: 2},
	"CHF": {Symbol: "CHF", Decimals: 2},
	"CAD": {Symbol: "CA$", Decimals: 2},
	"AUD": {Symbol: "A$", Decimals: 2},
	"SEK": {Symbol: "kr", Decimals: 2},
	"NOK": {Symbol: "kr", Decimals: 2},
	"INR": {Symbol: "₹", Decimals: 2},
	"BRL": {Symbol: "R$", Decimals: 2},
	"RUB": {Symbol: "₽", Decimals: 2},
	"UAH": {Symbol: "₴", Decimals: 2},
	"TRY": {Symbol: "₺", Decimals: 2},
	"BHD": {Symbol: "BD", Decimals: 3},
	"KWD": {Symbol: "KD", Decimals: 3},
	"BTC": {Symbol: "BTC", Decimals: 8},
	"ETH": {Symbol: "ETH", Decimals: 8},
}

// Lookup returns display info for a currency code. Unknown codes default to
// 2 decimal digits with the code itself as the symbol.
func Lookup(code string) Info {
	if info, ok := currencies[strings.ToUpper(code)]; ok {
		return info
	}

	return Info{Symbol: strings.ToUpper(code), Decimals: DefaultDecimals}
}

// Decimals returns the minor-unit digit count for a currency code.
func Decimals(code string) int32 {
	return Lookup(code).Decimals
}

// Known reports whether the code is present in the reference table.
func Known(code string) bool {
	_, ok := currencies[strings.ToUpper(code)]
	return ok
}

// Round rounds an amount to the currency's minor-unit precision,
// half away from zero.
func Round(code string, d decimal.Decimal) decimal.Decimal {
	return d.Round(Decimals(code))
}

// Format renders an amount with the currency's precision and display symbol,
// e.g. "0.12345679 BTC" or "$12.50".
func Format(code string, d decimal.Decimal) string {
	info := Lookup(code)
	s := d.Round(info.Decimals).StringFixed(info.Decimals)

	switch strings.ToUpper(code) {
	case "USD", "EUR", "GBP", "JPY", "KRW", "CNY", "INR", "BRL", "RUB", "UAH", "TRY", "CAD", "AUD":
		return info.Symbol + s
	default:
		return s + " " + info.Symbol
	}
}
