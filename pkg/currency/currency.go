// Package currency converts amounts between US dollars and bolivares.
//
// Rates are expressed as Bs per 1 USD. Every result is rounded to two
// decimal places, half away from zero.
package currency

import (
	"github.com/shopspring/decimal"
	"github.com/sangkips/bodega-api/pkg/apperror"
)

// Places is the number of fractional digits kept on monetary amounts.
const Places int32 = 2

// Round rounds a monetary amount to two places, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// ValidateRate returns apperror.ErrInvalidRate unless rate > 0.
func ValidateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return apperror.ErrInvalidRate
	}
	return nil
}

// ToBs converts a USD amount to bolivares.
func ToBs(usd, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	return Round(usd.Mul(rate)), nil
}

// ToUSD converts a bolivar amount to USD.
func ToUSD(bs, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	// DivRound keeps enough precision before the final rounding step.
	return Round(bs.DivRound(rate, 16)), nil
}
