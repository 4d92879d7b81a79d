// Package calculator computes per-person breakdowns of a shared bill.
//
// The pipeline is: subtotal, bill tip, per-person shares, reconciliation.
// Every step works on exact decimals and rounds to one fractional digit
// half away from zero. Divisions are rounded from their exact quotient, so
// results do not depend on float or precision behaviour near .05 boundaries.
package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNoPersons is returned when a bill has money to hand out but no
// personal item names anyone to hand it to.
var ErrNoPersons = errors.New("bill has no persons to split between")

// amountPlaces is the number of fractional digits every share is rounded to.
const amountPlaces = 1

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Split is the outcome of splitting a bill, with how reconciliation went.
type Split struct {
	Output         models.BillOutput
	Reconciliation Reconciliation

	// Difference is totalAmount minus the sum of the rounded shares.
	Difference decimal.Decimal
	// Adjustment is what was added to every share.
	Adjustment decimal.Decimal
	// FinalDifference is what was then added to the first person.
	FinalDifference decimal.Decimal
}

// SplitBill computes the per-person breakdown of a bill.
//
// Algorithm:
//   - subTotal = sum of all item prices
//   - tip = round1(subTotal × tipPercentage / 100), totalAmount = subTotal + tip
//   - each person pays shared items / persons + own items, plus their own tip
//   - shares are reconciled so they sum exactly to totalAmount
func SplitBill(input models.BillInput) (models.BillOutput, error) {
	split, err := Calculate(input)
	if err != nil {
		return models.BillOutput{}, err
	}
	return split.Output, nil
}

// Calculate is SplitBill that also reports which reconciliation step, if
// any, was needed to make the shares add up.
func Calculate(input models.BillInput) (*Split, error) {
	subTotal := CalculateSubTotal(input.Items)
	tip := CalculateTip(subTotal, input.TipPercentage)
	totalAmount := subTotal.Add(tip)

	items := CalculateItems(input.Items, input.TipPercentage)
	if len(items) == 0 && !totalAmount.IsZero() {
		return nil, fmt.Errorf("split %s of %d items: %w", totalAmount, len(input.Items), ErrNoPersons)
	}

	items, r := reconcile(totalAmount, items)

	return &Split{
		Output: models.BillOutput{
			Date:        FormatDate(input.Date),
			Location:    input.Location,
			SubTotal:    subTotal,
			Tip:         tip,
			TotalAmount: totalAmount,
			Items:       items,
		},
		Reconciliation:  r.kind,
		Difference:      r.difference,
		Adjustment:      r.adjustment,
		FinalDifference: r.finalDifference,
	}, nil
}

// CalculateSubTotal sums the price of every item, shared and personal.
func CalculateSubTotal(items []models.BillItem) decimal.Decimal {
	subTotal := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(item.Price)
	}
	return subTotal
}

// CalculateTip returns subTotal × tipPercentage / 100 rounded to one
// fractional digit.
func CalculateTip(subTotal, tipPercentage decimal.Decimal) decimal.Decimal {
	return roundDiv(subTotal.Mul(tipPercentage), hundred)
}

// roundDiv returns numerator / denominator rounded half away from zero to
// amountPlaces. The quotient is never cut short first: the remainder of the
// truncated division decides the rounding, so a quotient of exactly .x5 is
// always rounded up in magnitude, however many digits the inputs carry.
func roundDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	q, r := numerator.QuoRem(denominator, amountPlaces)
	// q is truncated toward zero and |r| / |denominator| is what was cut off.
	if r.Abs().Mul(two).GreaterThanOrEqual(denominator.Abs().Shift(-amountPlaces)) {
		step := decimal.New(1, -amountPlaces)
		if numerator.Sign()*denominator.Sign() < 0 {
			return q.Sub(step)
		}
		return q.Add(step)
	}
	return q
}
