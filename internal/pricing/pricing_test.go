package pricing_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/shopspring/decimal"

	"github.com/go-ports/bizdesk/internal/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLooseTotal(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name     string
		qty      string
		price    string
		wantText string
	}{
		{"whole numbers", "10", "250", "2500.00"},
		{"fractional quantity", "12.5", "180", "2250.00"},
		{"rounds half up to cents", "0.333", "10.05", "3.35"},
		{"zero quantity", "0", "99", "0.00"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			got := pricing.LooseTotal(dec(tc.qty), dec(tc.price))
			c.Assert(got.StringFixed(2), qt.Equals, tc.wantText)
		})
	}
}

func TestReady_HappyPath(t *testing.T) {
	c := qt.New(t)

	// 12 pieces × 25 g × 800 / 1000 = 240 per dozen of goods,
	// + 10 packing = 250 per dozen, × 5 dozens = 1250 per box, × 4 boxes = 5000.
	// 12 × 25 × 4 / 1000 = 1.2 kg shipped, so 5000 / 1.2 = 4166.6667 per kg.
	q := pricing.Ready(pricing.ReadyInput{
		Pieces:        dec("12"),
		GramsPerPiece: dec("25"),
		RatePerGram:   dec("800"),
		PackingCost:   dec("10"),
		DozensPerBox:  dec("5"),
		TotalBoxes:    dec("4"),
	})

	c.Assert(q.Weight.StringFixed(2), qt.Equals, "240.00")
	c.Assert(q.PerDozen.StringFixed(2), qt.Equals, "250.00")
	c.Assert(q.BoxPrice.StringFixed(2), qt.Equals, "1250.00")
	c.Assert(q.TotalPrice.StringFixed(2), qt.Equals, "5000.00")
	c.Assert(q.Quantity.String(), qt.Equals, "1.2")
	c.Assert(q.PricePerKg.String(), qt.Equals, "4166.6667")
	c.Assert(q.DozenQuantity.String(), qt.Equals, "20")
	c.Assert(q.PricePerGram.String(), qt.Equals, "800")
	c.Assert(q.PricePerCarton.StringFixed(2), qt.Equals, "1250.00")
}

func TestReady_ZeroWeightYieldsZeroPricePerKg(t *testing.T) {
	c := qt.New(t)

	q := pricing.Ready(pricing.ReadyInput{
		PackingCost:  dec("15"),
		DozensPerBox: dec("2"),
		TotalBoxes:   dec("3"),
	})
	c.Assert(q.Weight.IsZero(), qt.IsTrue)
	c.Assert(q.TotalPrice.StringFixed(2), qt.Equals, "90.00")
	c.Assert(q.Quantity.IsZero(), qt.IsTrue)
	c.Assert(q.PricePerKg.IsZero(), qt.IsTrue)
}

func TestReady_EmptyInputIsAllZero(t *testing.T) {
	c := qt.New(t)

	q := pricing.Ready(pricing.ReadyInput{})
	c.Assert(q.TotalPrice.IsZero(), qt.IsTrue)
	c.Assert(q.PricePerKg.IsZero(), qt.IsTrue)
}
