// Package quotecmd implements the `bizdesk quote` command.
package quotecmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/service"
)

// Command implements `bizdesk quote`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	in models.SaleInput
}

// New creates the quote command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "quote [loose|ready]",
		Short: "Price a sale without booking it",
		Long: `Price a sale without booking it.

Loose sales: total = quantity × price per kg.
Ready sales: goods per dozen = pieces × grams per piece × rate per gram / 1000,
per dozen = goods + packing cost, box price = per dozen × dozens per box,
total = box price × total boxes.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(models.ProductLoose), string(models.ProductReady)},
		RunE:      c.run,
	}

	f := c.cmd.Flags()
	shared.AmountVar(f, &c.in.Quantity, "quantity", "Loose: kilograms")
	shared.AmountVar(f, &c.in.PricePerKg, "price-per-kg", "Loose: price per kilogram")
	shared.OptionalAmountVar(f, &c.in.Pieces, "pieces", "Ready: pieces per dozen pack")
	shared.OptionalAmountVar(f, &c.in.GramsPerPiece, "grams-per-piece", "Ready: grams per piece")
	shared.OptionalAmountVar(f, &c.in.RatePerGram, "rate-per-gram", "Ready: rate per gram")
	shared.OptionalAmountVar(f, &c.in.PackingCost, "packing-cost", "Ready: packing cost per dozen")
	shared.OptionalAmountVar(f, &c.in.DozensPerBox, "dozens-per-box", "Ready: dozens per box")
	shared.OptionalAmountVar(f, &c.in.TotalBoxes, "total-boxes", "Ready: number of boxes")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		c.in.ProductType = models.ProductType(args[0])
	}
	q, err := service.Quote(&c.in)
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(q, func() *shared.Table {
		t := shared.NewTable("FIGURE", "VALUE").Row("Type", string(q.ProductType))
		if q.Weight != nil {
			t.Row("Goods per dozen", shared.Money(*q.Weight))
		}
		if q.PerDozen != nil {
			t.Row("Per dozen", shared.Money(*q.PerDozen))
		}
		if q.BoxPrice != nil {
			t.Row("Box price", shared.Money(*q.BoxPrice))
		}
		return t.
			Row("Quantity (kg)", shared.Qty(q.Quantity)).
			Row("Price per kg", shared.Money(q.PricePerKg)).
			Row("Total", shared.Money(q.TotalPrice))
	})
}
