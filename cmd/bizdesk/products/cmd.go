// Package productscmd implements the `bizdesk products` command group.
package productscmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk products`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the products command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "stock"},
		Short:   "List and manage products and stock",
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List products with stock on hand", Args: cobra.NoArgs, RunE: c.runList},
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

	products, err := svc.ListProducts(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(products, func() *shared.Table {
		t := shared.NewTable("ID", "NAME", "STOCK (KG)", "WEIGHT")
		for _, pr := range products {
			t.Row(pr.ID.String(), pr.Name, shared.Qty(pr.Quantity), shared.Qty(pr.Weight))
		}
		return t
	})
}

func bindInput(cmd *cobra.Command, in *models.ProductInput) {
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Product name (required)")
	shared.AmountVar(f, &in.Weight, "weight", "Unit weight (required)")
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.ProductInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddProduct(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Added product "+in.Name, ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var in models.ProductInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a product or change its weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.UpdateProduct(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Updated product "+args[0], ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newDelete(ctx *shared.Context) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shared.RequireYes(yes, "product "+args[0]); err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.DeleteProduct(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Deleted product "+args[0], ack)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
