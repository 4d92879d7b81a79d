package models

import "github.com/shopspring/decimal"

// BillInput represents a bill to be split among the persons named on it.
type BillInput struct {
	// Date is the bill date in ISO-8601 form ("YYYY-MM-DD").
	Date string `json:"date"`

	// Location is where the bill was incurred (restaurant name, city...).
	Location string `json:"location"`

	// TipPercentage is the tip rate, conceptually 0-100.
	TipPercentage decimal.Decimal `json:"tipPercentage"`

	// Items are the line items on the bill, in the order they were entered.
	// The order matters: persons are listed in the order their first
	// personal item appears.
	Items []BillItem `json:"items"`
}

// BillItem represents a single line item on a bill.
//
// It is a tagged union discriminated by IsShared: a shared item is split
// evenly across every person on the bill, a personal item belongs to Person.
// Person is ignored for shared items.
type BillItem struct {
	// Price is the pre-tip price of the item.
	Price decimal.Decimal `json:"price"`

	// Name is the description of the item (e.g., "Pizza", "Beer").
	Name string `json:"name"`

	// IsShared marks an item that every person pays an equal share of.
	IsShared bool `json:"isShared"`

	// Person is the owner of a personal item.
	Person string `json:"person,omitempty"`
}

// SharedItem returns an item split evenly across all persons.
func SharedItem(name string, price decimal.Decimal) BillItem {
	return BillItem{Name: name, Price: price, IsShared: true}
}

// PersonalItem returns an item paid for entirely by person.
func PersonalItem(name, person string, price decimal.Decimal) BillItem {
	return BillItem{Name: name, Price: price, Person: person}
}

// PersonItem represents one person's calculated share of a bill.
type PersonItem struct {
	// Name is the person's name as it appears on their personal items.
	Name string `json:"name"`

	// Amount is what this person owes, tip included, rounded to one
	// fractional digit and reconciled against the bill total.
	Amount decimal.Decimal `json:"amount"`
}

// BillOutput is the result of splitting a bill.
type BillOutput struct {
	// Date is the display form of the bill date, e.g. "2024年3月5日".
	Date string `json:"date"`

	Location string `json:"location"`

	// SubTotal is the sum of all item prices, shared and personal.
	SubTotal decimal.Decimal `json:"subTotal"`

	// Tip is SubTotal × TipPercentage / 100, rounded to one fractional digit.
	Tip decimal.Decimal `json:"tip"`

	// TotalAmount is SubTotal + Tip.
	TotalAmount decimal.Decimal `json:"totalAmount"`

	// Items holds one entry per distinct person, in first-seen order.
	// Their amounts always sum to TotalAmount.
	Items []PersonItem `json:"items"`
}
