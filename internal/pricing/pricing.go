// Package pricing computes sale and purchase totals.
//
// Two schemes exist. Loose goods are priced by weight: quantity (kg) times
// price per kg. Ready (packaged) goods are priced per box from piece count,
// grams per piece, rate per gram and packing cost; the resulting total is
// also expressed as an equivalent quantity and price per kg, plus the dozen
// count, price per gram and carton price the backend stores for ready rows.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places totals are rounded to.
const Places = 2

// GramsPerDozen is the fixed dozen weight recorded with every ready sale.
const GramsPerDozen = 300

var thousand = decimal.NewFromInt(1000)

// LooseTotal returns quantity × pricePerKg rounded to Places.
func LooseTotal(quantity, pricePerKg decimal.Decimal) decimal.Decimal {
	return quantity.Mul(pricePerKg).Round(Places)
}

// ReadyInput holds the packaged-goods form values. Zero means "not entered".
type ReadyInput struct {
	Pieces        decimal.Decimal // pieces per dozen pack
	GramsPerPiece decimal.Decimal
	RatePerGram   decimal.Decimal
	PackingCost   decimal.Decimal // per dozen
	DozensPerBox  decimal.Decimal
	TotalBoxes    decimal.Decimal
}

// ReadyQuote is the breakdown of a ready sale.
type ReadyQuote struct {
	Weight     decimal.Decimal // value of the goods in one dozen
	PerDozen   decimal.Decimal // Weight + packing cost
	BoxPrice   decimal.Decimal // PerDozen × dozens per box
	TotalPrice decimal.Decimal // BoxPrice × total boxes
	Quantity   decimal.Decimal // total kilograms shipped
	PricePerKg decimal.Decimal // TotalPrice / Quantity, zero when Quantity is zero

	DozenQuantity  decimal.Decimal // dozens per box × total boxes
	PricePerGram   decimal.Decimal
	PricePerCarton decimal.Decimal // same as BoxPrice
}

// Ready computes the quote for in. The displayed figures (weight, per dozen,
// box price, total) are rounded to Places; the chain itself is evaluated on
// unrounded intermediates so rounding does not compound.
func Ready(in ReadyInput) ReadyQuote {
	weight := in.Pieces.Mul(in.GramsPerPiece).Mul(in.RatePerGram).Div(thousand)
	perDozen := weight.Add(in.PackingCost)
	boxPrice := in.DozensPerBox.Mul(perDozen)
	total := boxPrice.Mul(in.TotalBoxes)
	totalKg := in.Pieces.Mul(in.GramsPerPiece).Mul(in.TotalBoxes).Div(thousand)

	pricePerKg := decimal.Zero
	if !totalKg.IsZero() {
		pricePerKg = total.DivRound(totalKg, 4)
	}

	return ReadyQuote{
		Weight:     weight.Round(Places),
		PerDozen:   perDozen.Round(Places),
		BoxPrice:   boxPrice.Round(Places),
		TotalPrice: total.Round(Places),
		Quantity:   totalKg,
		PricePerKg: pricePerKg,

		DozenQuantity:  in.DozensPerBox.Mul(in.TotalBoxes),
		PricePerGram:   in.RatePerGram,
		PricePerCarton: boxPrice.Round(Places),
	}
}
