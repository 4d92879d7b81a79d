// Package models defines the core domain models for splitbill.
//
// # Models
//
//   - BillInput: a bill as entered, with its line items and tip percentage
//   - BillItem: one line item, either shared by everyone or owned by one person
//   - BillOutput: the computed breakdown returned to callers
//   - PersonItem: one person's final share of the bill
//
// Persons are identified by name strings. The set of persons on a bill is
// the set of distinct names on its personal items; there are no accounts.
//
// # Money
//
// Every amount is a decimal.Decimal. Amounts encode to JSON as strings
// ("12.5") and decode from either strings or bare numbers, so clients can
// send plain JSON numbers without losing precision on the way in.
package models
