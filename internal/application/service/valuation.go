package service

import (
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/currency"
	"github.com/shopspring/decimal"
)

// LineValuation is one line item valued in both currencies at a fixed rate.
// Each currency's line total is rounded once from the exact product, so the
// Bs total never inherits rounding from the USD total.
type LineValuation struct {
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceUSD decimal.Decimal `json:"unit_price_usd"`
	UnitPriceBs  decimal.Decimal `json:"unit_price_bs"`
	LineTotalUSD decimal.Decimal `json:"line_total_usd"`
	LineTotalBs  decimal.Decimal `json:"line_total_bs"`
}

// Totals are the per-currency sums of a set of lines
type Totals struct {
	TotalUSD decimal.Decimal `json:"total_usd"`
	TotalBs  decimal.Decimal `json:"total_bs"`
}

// PriceLineItem values quantity units of product at rate, using the bulk
// price once the quantity reaches the bulk threshold.
func PriceLineItem(product *entity.Product, quantity, rate decimal.Decimal) (LineValuation, error) {
	if err := ValidateQuantity(product, quantity); err != nil {
		return LineValuation{}, err
	}
	return valueLine(quantity, product.PriceUSDForQuantity(quantity), rate)
}

// valueLine computes unit and line amounts for a USD unit price
func valueLine(quantity, unitPriceUSD, rate decimal.Decimal) (LineValuation, error) {
	unitPriceBs, err := currency.ToBs(unitPriceUSD, rate)
	if err != nil {
		return LineValuation{}, err
	}

	exactUSD := quantity.Mul(unitPriceUSD)
	lineTotalBs, err := currency.ToBs(exactUSD, rate)
	if err != nil {
		return LineValuation{}, err
	}

	return LineValuation{
		Quantity:     quantity,
		UnitPriceUSD: unitPriceUSD,
		UnitPriceBs:  unitPriceBs,
		LineTotalUSD: currency.Round(exactUSD),
		LineTotalBs:  lineTotalBs,
	}, nil
}

// SumLines adds line totals in each currency independently
func SumLines(lines []LineValuation) Totals {
	totals := Totals{TotalUSD: decimal.Zero, TotalBs: decimal.Zero}
	for _, line := range lines {
		totals.TotalUSD = totals.TotalUSD.Add(line.LineTotalUSD)
		totals.TotalBs = totals.TotalBs.Add(line.LineTotalBs)
	}
	return totals
}

// ValidateQuantity rejects non-positive quantities, and fractional ones for
// products sold by the unit.
func ValidateQuantity(product *entity.Product, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "Quantity must be greater than zero"},
		})
	}
	if !product.UnitType.AllowsFraction() && !quantity.Equal(quantity.Truncate(0)) {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: product.Name + " is sold by the unit and needs a whole quantity"},
		})
	}
	return nil
}
