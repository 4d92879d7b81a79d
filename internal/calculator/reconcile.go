package calculator

import (
	"github.com/mmynk/splitbill/internal/models"
	"github.com/shopspring/decimal"
)

// Reconciliation describes how far Reconcile had to go to make the shares
// sum to the bill total.
type Reconciliation int

const (
	// ReconcileNone means the rounded shares already matched the total.
	ReconcileNone Reconciliation = iota
	// ReconcileDistributed means an equal adjustment to every share was enough.
	ReconcileDistributed
	// ReconcileFirstPerson means a remainder was left on the first person.
	ReconcileFirstPerson
)

func (r Reconciliation) String() string {
	switch r {
	case ReconcileNone:
		return "none"
	case ReconcileDistributed:
		return "distributed"
	case ReconcileFirstPerson:
		return "first_person"
	default:
		return "unknown"
	}
}

// AdjustAmounts returns a copy of items whose amounts sum exactly to
// totalAmount.
func AdjustAmounts(totalAmount decimal.Decimal, items []models.PersonItem) []models.PersonItem {
	adjusted, _ := Reconcile(totalAmount, items)
	return adjusted
}

// Reconcile forces the shares in items to sum to totalAmount.
//
// Algorithm:
//   - difference = totalAmount - sum(amounts); zero means nothing to do
//   - adjustment = round1(difference / len(items)) is added to every share,
//     each share rounded again to one fractional digit
//   - whatever difference is left goes, in full, to the first person
//
// The first person absorbs the remainder, so the order of items matters.
// items itself is not modified; an empty list is returned as is.
func Reconcile(totalAmount decimal.Decimal, items []models.PersonItem) ([]models.PersonItem, Reconciliation) {
	adjusted, r := reconcile(totalAmount, items)
	return adjusted, r.kind
}

type reconciliation struct {
	kind            Reconciliation
	difference      decimal.Decimal
	adjustment      decimal.Decimal
	finalDifference decimal.Decimal
}

func reconcile(totalAmount decimal.Decimal, items []models.PersonItem) ([]models.PersonItem, reconciliation) {
	r := reconciliation{
		kind:            ReconcileNone,
		difference:      decimal.Zero,
		adjustment:      decimal.Zero,
		finalDifference: decimal.Zero,
	}
	adjusted := make([]models.PersonItem, len(items))
	copy(adjusted, items)
	if len(adjusted) == 0 {
		return adjusted, r
	}

	r.difference = totalAmount.Sub(sumAmounts(adjusted))
	if r.difference.IsZero() {
		return adjusted, r
	}

	r.adjustment = roundDiv(r.difference, decimal.NewFromInt(int64(len(adjusted))))
	for i := range adjusted {
		adjusted[i].Amount = adjusted[i].Amount.Add(r.adjustment).Round(amountPlaces)
	}

	r.finalDifference = totalAmount.Sub(sumAmounts(adjusted))
	if r.finalDifference.IsZero() {
		r.kind = ReconcileDistributed
		return adjusted, r
	}

	// Not rounded: the remainder must land exactly for the sum to match.
	adjusted[0].Amount = adjusted[0].Amount.Add(r.finalDifference)
	r.kind = ReconcileFirstPerson
	return adjusted, r
}

func sumAmounts(items []models.PersonItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
