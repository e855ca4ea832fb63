package utils

import (
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"github.com/shopspring/decimal"
)

// Round2 rounds an amount to two decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// LineTotal is price multiplied by the quantity or the feet measurement,
// depending on the item's calculation basis.
func LineTotal(item models.LineItem) float64 {
	basis := item.Qty
	if item.CalcBy == models.CalcByFeet {
		basis = item.Feet
	}
	f, _ := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromFloat(basis)).Round(2).Float64()
	return f
}

// FillLineTotals computes totals for items sent without one.
func FillLineTotals(items []models.LineItem) {
	for i := range items {
		if items[i].Total == 0 {
			items[i].Total = LineTotal(items[i])
		}
	}
}

// Sum adds amounts without accumulating float error.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Round(2).Float64()
	return f
}
