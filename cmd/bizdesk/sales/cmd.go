// Package salescmd implements the `bizdesk sales` command group.
package salescmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk sales`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	r api.DateRange
}

// New creates the sales command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "sales",
		Aliases: []string{"sale"},
		Short:   "List and book sales",
		RunE:    c.runList,
	}
	list := &cobra.Command{Use: "list", Short: "List sales", Args: cobra.NoArgs, RunE: c.runList}
	bindRange(c.cmd.Flags(), &c.r)
	bindRange(list.Flags(), &c.r)

	c.cmd.AddCommand(list, newAdd(ctx), newUpdate(ctx), newDelete(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func bindRange(f *pflag.FlagSet, r *api.DateRange) {
	f.StringVar(&r.From, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&r.To, "to", "", "End date (YYYY-MM-DD)")
}

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	sales, err := svc.ListSales(cmd.Context(), c.r)
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(sales, func() *shared.Table {
		t := shared.NewTable("ID", "DATE", "CLIENT", "PRODUCT", "TYPE", "QTY (KG)", "PRICE/KG", "TOTAL")
		for _, s := range sales {
			t.Row(s.Key().String(), shared.Day(s.CreatedAt), s.ClientName, s.ProductName,
				shared.OrDash(string(s.ProductType)), shared.Qty(s.Quantity), shared.Money(s.PricePerKg),
				shared.Money(s.TotalPrice))
		}
		return t
	})
}

// ---------------------------------------------------------------------------
// add / update / delete
// ---------------------------------------------------------------------------

// bindInput registers the sale form. Loose sales take --quantity and
// --price-per-kg; ready sales take the packaging flags and derive the rest.
func bindInput(cmd *cobra.Command, in *models.SaleInput) {
	f := cmd.Flags()
	shared.IDVar(f, &in.ClientID, "client-id", "Client (required)")
	shared.IDVar(f, &in.ProductID, "product-id", "Product (required)")
	f.StringVar((*string)(&in.ProductType), "type", string(models.ProductLoose), "loose or ready")
	f.StringVar(&in.Packing, "packing", "", "Packing note")

	shared.AmountVar(f, &in.Quantity, "quantity", "Loose: kilograms")
	shared.AmountVar(f, &in.PricePerKg, "price-per-kg", "Loose: price per kilogram")

	shared.OptionalAmountVar(f, &in.Pieces, "pieces", "Ready: pieces per dozen pack")
	shared.OptionalAmountVar(f, &in.GramsPerPiece, "grams-per-piece", "Ready: grams per piece")
	shared.OptionalAmountVar(f, &in.RatePerGram, "rate-per-gram", "Ready: rate per gram")
	shared.OptionalAmountVar(f, &in.PackingCost, "packing-cost", "Ready: packing cost per dozen")
	shared.OptionalAmountVar(f, &in.DozensPerBox, "dozens-per-box", "Ready: dozens per box")
	shared.OptionalAmountVar(f, &in.TotalBoxes, "total-boxes", "Ready: number of boxes")
}

func ackLabel(verb string, in *models.SaleInput) string {
	return verb + " sale: " + shared.Qty(in.Quantity) + "kg of " + shared.OrDash(in.ProductName) +
		" to " + shared.OrDash(in.ClientName) + " for " + shared.Money(in.TotalPrice)
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.SaleInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a sale (checks stock before posting)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddSale(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack(ackLabel("Booked", &in), ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var in models.SaleInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a sale (every field is sent, as the edit form does)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.UpdateSale(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack(ackLabel("Updated", &in), ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newDelete(ctx *shared.Context) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shared.RequireYes(yes, "sale "+args[0]); err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.DeleteSale(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Deleted sale "+args[0], ack)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
