// Package money holds the line-item calculation shared by quotes and invoices.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/fault"
)

var hundred = decimal.NewFromInt(100)

// LineAmounts is the result of pricing a single line item. All three values
// are rounded to 2 fraction digits.
type LineAmounts struct {
	Amount    decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// CalculateLine computes amount, tax and total for one line item:
//
//	amount     = round(quantity * rate, 2)
//	tax_amount = round(amount * taxRate / 100, 2)
//	total      = amount + tax_amount
//
// Rounding is half away from zero (decimal.Round). Quantity must be positive,
// rate non-negative, taxRate a percentage in [0, 100].
func CalculateLine(quantity, rate, taxRate decimal.Decimal) (LineAmounts, error) {
	if quantity.Sign() <= 0 {
		return LineAmounts{}, fault.Invalid("quantity must be greater than zero")
	}

	if rate.Sign() < 0 {
		return LineAmounts{}, fault.Invalid("rate cannot be negative")
	}

	if taxRate.Sign() < 0 || taxRate.GreaterThan(hundred) {
		return LineAmounts{}, fault.Invalid("tax rate must be between 0 and 100")
	}

	amount := quantity.Mul(rate).Round(2)
	taxAmount := amount.Mul(taxRate).Div(hundred).Round(2)

	return LineAmounts{
		Amount:    amount,
		TaxAmount: taxAmount,
		Total:     amount.Add(taxAmount),
	}, nil
}
