package calculator

import (
	"github.com/mmynk/splitbill/internal/models"
	"github.com/shopspring/decimal"
)

// ScanPersons returns the distinct owners of personal items in the order
// they first appear. Names are compared exactly, case included.
func ScanPersons(items []models.BillItem) []string {
	seen := make(map[string]bool)
	var names []string
	for _, item := range items {
		if item.IsShared || seen[item.Person] {
			continue
		}
		seen[item.Person] = true
		names = append(names, item.Person)
	}
	return names
}

// CalculateItems computes each person's rounded share before reconciliation.
//
// A person pays an equal part of every shared item plus all of their own
// items, then a tip of tipPercentage on that amount. The tip is taken on the
// person's own amount, not as a slice of the bill tip, so the shares may not
// add up to the bill total; Reconcile closes that gap.
//
// With no persons the result is empty and shared items are not divided.
func CalculateItems(items []models.BillItem, tipPercentage decimal.Decimal) []models.PersonItem {
	names := ScanPersons(items)
	if len(names) == 0 {
		return []models.PersonItem{}
	}

	shared := decimal.Zero
	own := make(map[string]decimal.Decimal, len(names))
	for _, item := range items {
		if item.IsShared {
			shared = shared.Add(item.Price)
			continue
		}
		own[item.Person] = own[item.Person].Add(item.Price)
	}

	persons := decimal.NewFromInt(int64(len(names)))
	result := make([]models.PersonItem, len(names))
	for i, name := range names {
		result[i] = models.PersonItem{
			Name:   name,
			Amount: personAmount(shared, own[name], persons, tipPercentage),
		}
	}
	return result
}

// personAmount is round1((shared/persons + own) * (100+tip) / 100), taken
// as one exact fraction so that a share sitting on a .x5 boundary rounds
// the same way the exact value does.
func personAmount(shared, own, persons, tipPercentage decimal.Decimal) decimal.Decimal {
	numerator := shared.Add(own.Mul(persons)).Mul(hundred.Add(tipPercentage))
	return roundDiv(numerator, hundred.Mul(persons))
}
