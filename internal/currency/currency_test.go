package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/moneta-app/moneta/internal/currency"
)

func TestDecimals(t *testing.T) {
	assert.Equal(t, int32(2), currency.Decimals("USD"))
	assert.Equal(t, int32(0), currency.Decimals("JPY"))
	assert.Equal(t, int32(3), currency.Decimals("BHD"))
	assert.Equal(t, int32(8), currency.Decimals("BTC"))
	assert.Equal(t, int32(2), currency.Decimals("XYZ")) // unknown defaults to 2
	assert.Equal(t, int32(2), currency.Decimals("usd")) // case-insensitive
}

func TestKnown(t *testing.T) {
	assert.True(t, currency.Known("EUR"))
	assert.True(t, currency.Known("eth"))
	assert.False(t, currency.Known("XYZ"))
}

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		amount string
		want   string
	}{
		{"fiat two places half up", "USD", "12.345", "12.35"},
		{"fiat half away from zero", "USD", "-12.345", "-12.35"},
		{"zero-decimal currency", "JPY", "1234.5", "1235"},
		{"crypto eight places", "BTC", "0.123456785", "0.12345679"},
		{"three-decimal currency", "KWD", "1.23456", "1.235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := currency.Round(tt.code, decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		amount string
		want   string
	}{
		{"dollar prefix", "USD", "12.5", "$12.50"},
		{"euro prefix", "EUR", "85", "€85.00"},
		{"yen no decimals", "JPY", "1200", "¥1200"},
		{"btc suffix with full precision", "BTC", "0.123456785", "0.12345679 BTC"},
		{"franc suffix", "CHF", "9.9", "9.90 CHF"},
		{"unknown code suffix", "XYZ", "3.14159", "3.14 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, currency.Format(tt.code, decimal.RequireFromString(tt.amount)))
		})
	}
}
