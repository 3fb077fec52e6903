// Package purchasescmd implements the `bizdesk purchases` command group.
package purchasescmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk purchases`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the purchases command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "purchases",
		Aliases: []string{"purchase", "orders"},
		Short:   "List and place purchase orders",
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List purchase orders", Args: cobra.NoArgs, RunE: c.runList},
		newAdd(ctx),
		newUpdate(ctx),
		newDelete(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	orders, err := svc.ListPurchases(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(orders, func() *shared.Table {
		t := shared.NewTable("ID", "DATE", "VENDOR", "PRODUCT", "QTY (KG)", "PRICE/KG", "TOTAL")
		for _, o := range orders {
			t.Row(o.ID.String(), shared.Day(o.CreatedAt), shared.OrDash(o.VendorName), shared.OrDash(o.ProductName),
				shared.Qty(o.Quantity), shared.Money(o.PricePerKg), shared.Money(o.TotalPrice))
		}
		return t
	})
}

func bindInput(cmd *cobra.Command, in *models.PurchaseInput) {
	f := cmd.Flags()
	shared.IDVar(f, &in.VendorID, "vendor-id", "Vendor (required)")
	shared.IDVar(f, &in.ProductID, "product-id", "Product (required)")
	shared.AmountVar(f, &in.Quantity, "quantity", "Kilograms (required)")
	shared.AmountVar(f, &in.PricePerKg, "price-per-kg", "Price per kilogram (required)")
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.PurchaseInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Place a purchase order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddPurchase(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Placed purchase order for "+shared.Money(in.TotalPrice), ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var in models.PurchaseInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a purchase order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.UpdatePurchase(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Updated purchase order "+args[0], ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newDelete(ctx *shared.Context) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a purchase order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shared.RequireYes(yes, "purchase order "+args[0]); err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.DeletePurchase(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Deleted purchase order "+args[0], ack)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
