package calculator

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitbill/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func assertAmounts(t *testing.T, want map[string]string, order []string, got []models.PersonItem) {
	t.Helper()
	require.Len(t, got, len(order))
	for i, name := range order {
		assert.Equal(t, name, got[i].Name, "person %d", i)
		assertDecimal(t, want[name], got[i].Amount, name)
	}
}

func TestSplitBill(t *testing.T) {
	tests := []struct {
		name          string
		input         models.BillInput
		wantSubTotal  string
		wantTip       string
		wantTotal     string
		wantOrder     []string
		wantAmounts   map[string]string
		wantReconcile Reconciliation
	}{
		{
			name: "single person with shared and personal item",
			input: models.BillInput{
				Date:          "2024-03-05",
				Location:      "Taipei",
				TipPercentage: d("10"),
				Items: []models.BillItem{
					models.SharedItem("food", d("100")),
					models.PersonalItem("drink", "Alice", d("20")),
				},
			},
			wantSubTotal:  "120",
			wantTip:       "12",
			wantTotal:     "132",
			wantOrder:     []string{"Alice"},
			wantAmounts:   map[string]string{"Alice": "132"},
			wantReconcile: ReconcileNone,
		},
		{
			name: "two persons split a shared item evenly",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("0"),
				Items: []models.BillItem{
					models.SharedItem("pizza", d("10")),
					models.PersonalItem("water", "Alice", d("0")),
					models.PersonalItem("water", "Bob", d("0")),
				},
			},
			wantSubTotal:  "10",
			wantTip:       "0",
			wantTotal:     "10",
			wantOrder:     []string{"Alice", "Bob"},
			wantAmounts:   map[string]string{"Alice": "5", "Bob": "5"},
			wantReconcile: ReconcileNone,
		},
		{
			name: "three-way split leaves the missing 0.1 on the first person",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("0"),
				Items: []models.BillItem{
					models.SharedItem("cake", d("10")),
					models.PersonalItem("tea", "Carol", d("0")),
					models.PersonalItem("tea", "Alice", d("0")),
					models.PersonalItem("tea", "Bob", d("0")),
				},
			},
			// 10 / 3 = 3.333... rounds to 3.3 each, 9.9 in total.
			// round1(0.1 / 3) = 0, so Carol takes the whole 0.1.
			wantSubTotal:  "10",
			wantTip:       "0",
			wantTotal:     "10",
			wantOrder:     []string{"Carol", "Alice", "Bob"},
			wantAmounts:   map[string]string{"Carol": "3.4", "Alice": "3.3", "Bob": "3.3"},
			wantReconcile: ReconcileFirstPerson,
		},
		{
			name: "three-way split with tip takes the excess from the first person",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("10"),
				Items: []models.BillItem{
					models.SharedItem("cake", d("10")),
					models.PersonalItem("tea", "Alice", d("0")),
					models.PersonalItem("tea", "Bob", d("0")),
					models.PersonalItem("tea", "Carol", d("0")),
				},
			},
			// 3.333... * 1.1 = 3.666... rounds to 3.7 each, 11.1 in total.
			wantSubTotal:  "10",
			wantTip:       "1",
			wantTotal:     "11",
			wantOrder:     []string{"Alice", "Bob", "Carol"},
			wantAmounts:   map[string]string{"Alice": "3.6", "Bob": "3.7", "Carol": "3.7"},
			wantReconcile: ReconcileFirstPerson,
		},
		{
			name: "adjustment is distributed then the remainder goes to the first person",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("10"),
				Items: []models.BillItem{
					models.PersonalItem("coffee", "Alice", d("0.5")),
					models.PersonalItem("coffee", "Bob", d("0.5")),
				},
			},
			// Each share is 0.55 -> 0.6, sum 1.2 against a total of 1.1.
			// round1(-0.1 / 2) = -0.1 takes both to 0.5, then Alice gets 0.1 back.
			wantSubTotal:  "1",
			wantTip:       "0.1",
			wantTotal:     "1.1",
			wantOrder:     []string{"Alice", "Bob"},
			wantAmounts:   map[string]string{"Alice": "0.6", "Bob": "0.5"},
			wantReconcile: ReconcileFirstPerson,
		},
		{
			name: "tip is taken on each person's own amount",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("15"),
				Items: []models.BillItem{
					models.SharedItem("nachos", d("12")),
					models.PersonalItem("steak", "Alice", d("30")),
					models.PersonalItem("salad", "Bob", d("8")),
					models.PersonalItem("wine", "Alice", d("10")),
				},
			},
			// Alice: (6 + 40) * 1.15 = 52.9, Bob: (6 + 8) * 1.15 = 16.1.
			wantSubTotal:  "60",
			wantTip:       "9",
			wantTotal:     "69",
			wantOrder:     []string{"Alice", "Bob"},
			wantAmounts:   map[string]string{"Alice": "52.9", "Bob": "16.1"},
			wantReconcile: ReconcileNone,
		},
		{
			name: "two-digit prices still sum exactly to the total",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("0"),
				Items: []models.BillItem{
					models.PersonalItem("gum", "Alice", d("1.04")),
				},
			},
			wantSubTotal:  "1.04",
			wantTip:       "0",
			wantTotal:     "1.04",
			wantOrder:     []string{"Alice"},
			wantAmounts:   map[string]string{"Alice": "1.04"},
			wantReconcile: ReconcileFirstPerson,
		},
		{
			name: "names are case sensitive",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("0"),
				Items: []models.BillItem{
					models.PersonalItem("soup", "alice", d("4")),
					models.PersonalItem("soup", "Alice", d("6")),
				},
			},
			wantSubTotal:  "10",
			wantTip:       "0",
			wantTotal:     "10",
			wantOrder:     []string{"alice", "Alice"},
			wantAmounts:   map[string]string{"alice": "4", "Alice": "6"},
			wantReconcile: ReconcileNone,
		},
		{
			name: "shared items dividing to exactly .05 round up",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("0"),
				Items: []models.BillItem{
					models.SharedItem("mint", d("0.01")),
					models.SharedItem("mint", d("0.01")),
					models.SharedItem("bread", d("0.13")),
					models.PersonalItem("water", "Alice", d("0")),
					models.PersonalItem("water", "Bob", d("0")),
					models.PersonalItem("water", "Carol", d("0")),
				},
			},
			// 0.15 / 3 = 0.05 -> 0.1 each, 0.3 against 0.15.
			// round1(-0.15 / 3) = -0.1 takes all to 0, Alice gets 0.15 back.
			wantSubTotal:  "0.15",
			wantTip:       "0",
			wantTotal:     "0.15",
			wantOrder:     []string{"Alice", "Bob", "Carol"},
			wantAmounts:   map[string]string{"Alice": "0.15", "Bob": "0", "Carol": "0"},
			wantReconcile: ReconcileFirstPerson,
		},
		{
			name: "tip on a third of a shared item lands exactly on .05",
			input: models.BillInput{
				Date:          "2024-01-01",
				TipPercentage: d("50"),
				Items: []models.BillItem{
					models.SharedItem("candy", d("0.1")),
					models.PersonalItem("water", "Alice", d("0")),
					models.PersonalItem("water", "Bob", d("0")),
					models.PersonalItem("water", "Carol", d("0")),
				},
			},
			// 0.1 / 3 * 1.5 = 0.05 -> 0.1 each, 0.3 against 0.1 + round1(0.05) = 0.2.
			wantSubTotal:  "0.1",
			wantTip:       "0.1",
			wantTotal:     "0.2",
			wantOrder:     []string{"Alice", "Bob", "Carol"},
			wantAmounts:   map[string]string{"Alice": "0", "Bob": "0.1", "Carol": "0.1"},
			wantReconcile: ReconcileFirstPerson,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := Calculate(tt.input)
			require.NoError(t, err)

			out := split.Output
			assert.Equal(t, tt.input.Location, out.Location)
			assertDecimal(t, tt.wantSubTotal, out.SubTotal, "subTotal")
			assertDecimal(t, tt.wantTip, out.Tip, "tip")
			assertDecimal(t, tt.wantTotal, out.TotalAmount, "totalAmount")
			assertAmounts(t, tt.wantAmounts, tt.wantOrder, out.Items)
			assert.Equal(t, tt.wantReconcile, split.Reconciliation)
			assertDecimal(t, tt.wantTotal, sumAmounts(out.Items), "sum of shares")
			for _, person := range out.Items {
				assert.False(t, person.Amount.IsNegative(), "%s owes %s", person.Name, person.Amount)
			}

			plain, err := SplitBill(tt.input)
			require.NoError(t, err)
			assert.Equal(t, out, plain)
		})
	}
}

func TestSplitBill_NoPersons(t *testing.T) {
	t.Run("shared items with nobody to pay them", func(t *testing.T) {
		_, err := SplitBill(models.BillInput{
			Date:          "2024-01-01",
			TipPercentage: d("10"),
			Items:         []models.BillItem{models.SharedItem("pizza", d("30"))},
		})
		assert.ErrorIs(t, err, ErrNoPersons)
	})

	t.Run("empty bill", func(t *testing.T) {
		out, err := SplitBill(models.BillInput{Date: "2024-01-01", TipPercentage: d("10")})
		require.NoError(t, err)
		assert.Empty(t, out.Items)
		assert.True(t, out.TotalAmount.IsZero())
		assert.Equal(t, "2024年1月1日", out.Date)
	})

	t.Run("free shared items", func(t *testing.T) {
		out, err := SplitBill(models.BillInput{
			Date:  "2024-01-01",
			Items: []models.BillItem{models.SharedItem("water", d("0"))},
		})
		require.NoError(t, err)
		assert.Empty(t, out.Items)
	})
}

// round1Rat rounds an exact fraction half away from zero to one digit.
func round1Rat(x *big.Rat) decimal.Decimal {
	scaled := new(big.Rat).Mul(x, big.NewRat(10, 1))
	abs := new(big.Rat).Abs(scaled)
	abs.Add(abs, big.NewRat(1, 2))
	q := new(big.Int).Quo(abs.Num(), abs.Denom())
	if scaled.Sign() < 0 {
		q.Neg(q)
	}
	return decimal.NewFromBigInt(q, -1)
}

func rat(v decimal.Decimal) *big.Rat {
	r, ok := new(big.Rat).SetString(v.String())
	if !ok {
		panic("bad decimal " + v.String())
	}
	return r
}

// exactShares computes round1((shared / persons + own) * (100 + tip) / 100)
// per person with exact fractions.
func exactShares(items []models.BillItem, tipPercentage decimal.Decimal) map[string]decimal.Decimal {
	names := ScanPersons(items)
	shared := new(big.Rat)
	own := make(map[string]*big.Rat)
	for _, name := range names {
		own[name] = new(big.Rat)
	}
	for _, item := range items {
		if item.IsShared {
			shared.Add(shared, rat(item.Price))
		} else {
			own[item.Person].Add(own[item.Person], rat(item.Price))
		}
	}

	tipFactor := new(big.Rat).Add(big.NewRat(1, 1), new(big.Rat).Quo(rat(tipPercentage), big.NewRat(100, 1)))
	perPerson := new(big.Rat).Quo(shared, big.NewRat(int64(len(names)), 1))

	shares := make(map[string]decimal.Decimal, len(names))
	for _, name := range names {
		raw := new(big.Rat).Add(perPerson, own[name])
		raw.Mul(raw, tipFactor)
		shares[name] = round1Rat(raw)
	}
	return shares
}

// Every generated bill must come out with shares summing to the total,
// whatever the mix of shared and personal items, and each share before
// reconciliation must be the exact raw amount rounded once.
func TestSplitBill_SharesSumToTotal(t *testing.T) {
	r := rand.New(rand.NewPCG(6, 28))
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace"}

	for n := 0; n < 500; n++ {
		var items []models.BillItem
		for i := 0; i < 1+r.IntN(12); i++ {
			price := decimal.New(int64(r.IntN(5000)), -1)
			if r.IntN(2) == 0 {
				price = decimal.New(int64(r.IntN(500)), -2)
			}
			if r.IntN(2) == 0 {
				items = append(items, models.SharedItem("shared", price))
				continue
			}
			items = append(items, models.PersonalItem("own", names[r.IntN(len(names))], price))
		}
		if ScanPersons(items) == nil {
			items = append(items, models.PersonalItem("own", "Alice", decimal.New(int64(r.IntN(100)), -1)))
		}
		input := models.BillInput{
			Date:          "2024-06-30",
			TipPercentage: decimal.New(int64(r.IntN(1001)), -1),
			Items:         items,
		}

		exact := exactShares(items, input.TipPercentage)
		for _, person := range CalculateItems(items, input.TipPercentage) {
			require.Truef(t, exact[person.Name].Equal(person.Amount),
				"bill %d: %s raw share rounds to %s, got %s", n, person.Name, exact[person.Name], person.Amount)
		}

		out, err := SplitBill(input)
		require.NoError(t, err)
		require.Truef(t, out.TotalAmount.Equal(sumAmounts(out.Items)),
			"bill %d: shares sum to %s, total is %s", n, sumAmounts(out.Items), out.TotalAmount)
		require.True(t, out.SubTotal.Equal(CalculateSubTotal(items)))
		require.True(t, out.TotalAmount.Equal(out.SubTotal.Add(out.Tip)))

		again, err := SplitBill(input)
		require.NoError(t, err)
		require.Equal(t, out, again)
	}
}

func TestCalculate_ReportsAdjustments(t *testing.T) {
	split, err := Calculate(models.BillInput{
		Date: "2024-01-01",
		Items: []models.BillItem{
			models.PersonalItem("coffee", "Alice", d("0.5")),
			models.PersonalItem("coffee", "Bob", d("0.5")),
		},
		TipPercentage: d("10"),
	})
	require.NoError(t, err)

	assert.Equal(t, ReconcileFirstPerson, split.Reconciliation)
	assertDecimal(t, "-0.1", split.Difference, "difference")
	assertDecimal(t, "-0.1", split.Adjustment, "adjustment")
	assertDecimal(t, "0.1", split.FinalDifference, "final difference")

	balanced, err := Calculate(models.BillInput{
		Items: []models.BillItem{models.PersonalItem("tea", "Alice", d("3"))},
	})
	require.NoError(t, err)
	assert.Equal(t, ReconcileNone, balanced.Reconciliation)
	assert.True(t, balanced.Difference.IsZero())
	assert.True(t, balanced.Adjustment.IsZero())
	assert.True(t, balanced.FinalDifference.IsZero())
}

func TestRoundDiv(t *testing.T) {
	tests := []struct {
		numerator   string
		denominator string
		want        string
	}{
		{"15", "300", "0.1"},   // 0.05
		{"-15", "300", "-0.1"}, // -0.05
		{"15", "-300", "-0.1"},
		{"-15", "-300", "0.1"},
		{"14.99", "300", "0"},
		{"1000", "300", "3.3"},
		{"0.1", "3", "0"},
		{"-0.1", "2", "-0.1"},
		{"4.1", "2", "2.1"},
		{"0", "7", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.numerator+"/"+tt.denominator, func(t *testing.T) {
			assertDecimal(t, tt.want, roundDiv(d(tt.numerator), d(tt.denominator)))
		})
	}
}

func TestCalculateSubTotal(t *testing.T) {
	items := []models.BillItem{
		models.SharedItem("a", d("10.25")),
		models.PersonalItem("b", "Alice", d("4.5")),
		models.SharedItem("c", d("0.05")),
	}
	assertDecimal(t, "14.8", CalculateSubTotal(items))

	reversed := []models.BillItem{items[2], items[1], items[0]}
	assertDecimal(t, "14.8", CalculateSubTotal(reversed))

	assertDecimal(t, "0", CalculateSubTotal(nil))
}

func TestCalculateTip(t *testing.T) {
	tests := []struct {
		subTotal string
		percent  string
		want     string
	}{
		{"120", "10", "12"},
		{"100", "0", "0"},
		{"33.3", "15", "5"},     // 4.995
		{"10.5", "10", "1.1"},   // 1.05 rounds away from zero
		{"0.5", "10", "0.1"},    // 0.05
		{"0.4", "10", "0"},      // 0.04
		{"87.65", "12.5", "11"}, // 10.95625
		{"0.33333333333333333", "15", "0"},   // 0.0499999999999999995
		{"0.33333333333333334", "15", "0.1"}, // 0.050000000000000001
	}

	for _, tt := range tests {
		t.Run(tt.subTotal+"@"+tt.percent, func(t *testing.T) {
			assertDecimal(t, tt.want, CalculateTip(d(tt.subTotal), d(tt.percent)))
		})
	}
}
