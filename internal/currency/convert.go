package currency

import (
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
)

// RateDecimals is the stored precision of exchange rates.
const RateDecimals = 6

// rateEpsilon is the smallest rate delta worth persisting; recomputations
// within it keep the previously stored rate to avoid flicker from rounding
// noise during rapid bidirectional edits.
var rateEpsilon = decimal.New(1, -6)

// Field names the transfer leg the user last edited. The solver recomputes
// the dependent field from the other two; tracking which field changed most
// recently is caller state, not conversion logic.
type Field int

const (
	FieldAmount Field = iota
	FieldRate
	FieldToAmount
)

// Leg is the cross-currency transfer triple: source amount, exchange rate,
// destination amount.
type Leg struct {
	Amount   decimal.Decimal
	Rate     decimal.Decimal
	ToAmount decimal.Decimal
}

// DeriveThird solves the transfer triple after one field was edited.
//
// Same-currency pairs bypass derivation: the destination amount mirrors the
// source amount and the rate is cleared. Otherwise editing the destination
// amount recomputes the rate (guarding amount > 0), and editing amount or
// rate recomputes the destination amount rounded to the destination
// currency's precision.
func DeriveThird(leg Leg, edited Field, src, dst string) (Leg, error) {
	if src == dst {
		leg.ToAmount = leg.Amount
		leg.Rate = decimal.Zero
		return leg, nil
	}

	switch edited {
	case FieldToAmount:
		if leg.Amount.LessThanOrEqual(decimal.Zero) {
			return leg, domain.ErrInvalidAmount
		}

		newRate := leg.ToAmount.DivRound(leg.Amount, RateDecimals)
		if newRate.Sub(leg.Rate).Abs().GreaterThan(rateEpsilon) {
			leg.Rate = newRate
		}

	case FieldAmount, FieldRate:
		leg.ToAmount = Round(dst, leg.Amount.Mul(leg.Rate))
	}

	return leg, nil
}

// Reconciles reports whether the triple is internally consistent:
// round(amount × rate, dstDecimals) equals the destination amount within one
// minor unit of the destination currency.
func Reconciles(leg Leg, dst string) bool {
	expected := Round(dst, leg.Amount.Mul(leg.Rate))
	tolerance := decimal.New(1, -Decimals(dst))

	return expected.Sub(leg.ToAmount).Abs().LessThanOrEqual(tolerance)
}
