// Package vendorscmd implements the `bizdesk vendors` command group.
package vendorscmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk vendors`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the vendors command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "vendors",
		Aliases: []string{"vendor"},
		Short:   "List and manage vendors",
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List vendors", Args: cobra.NoArgs, RunE: c.runList},
		newShow(ctx),
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

	vendors, err := svc.ListVendors(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(vendors, func() *shared.Table {
		t := shared.NewTable("ID", "NAME", "FIRM", "CONTACT", "OPENING", "ADDRESS")
		for _, v := range vendors {
			t.Row(v.ID.String(), v.Name, shared.OrDash(v.FirmName), shared.OrDash(v.Contact),
				shared.Money(v.OpeningBalance), shared.OrDash(v.Address))
		}
		return t
	})
}

func newShow(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a vendor with its purchases, payments and what is still owed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			v, err := svc.VendorDetails(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(v, func() *shared.Table {
				t := shared.NewTable("DATE", "ENTRY", "DETAIL", "OWED", "PAID")
				for _, o := range v.Purchases {
					t.Row(shared.Day(o.CreatedAt), "purchase #"+o.ID.String(),
						o.ProductName+" "+shared.Qty(o.Quantity)+"kg", shared.Money(o.TotalPrice), "")
				}
				for _, pm := range v.Payments {
					t.Row(shared.Day(pm.CreatedAt), "payment #"+pm.ID.String(),
						shared.OrDash(pm.BankName), "", shared.Money(pm.Amount))
				}
				t.Footer = []string{"", v.Vendor.Name, "remaining " + shared.Money(v.Totals.Remaining),
					shared.Money(v.Totals.TotalPurchases), shared.Money(v.Totals.Paid)}
				return t
			})
		},
	}
}

// ---------------------------------------------------------------------------
// add / update / delete
// ---------------------------------------------------------------------------

func bindInput(cmd *cobra.Command, in *models.VendorInput) {
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Vendor name (required)")
	f.StringVar(&in.FirmName, "firm", "", "Firm name")
	f.StringVar(&in.Contact, "contact", "", "Contact number")
	shared.AmountVar(f, &in.OpeningBalance, "opening-balance", "Opening balance")
	f.StringVar(&in.Address, "address", "", "Address")
	f.StringVar(&in.Description, "description", "", "Notes")
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.VendorInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddVendor(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Added vendor "+in.Name, ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var in models.VendorInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a vendor (every field is sent, as the edit form does)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.UpdateVendor(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Updated vendor "+args[0], ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newDelete(ctx *shared.Context) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shared.RequireYes(yes, "vendor "+args[0]); err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.DeleteVendor(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Deleted vendor "+args[0], ack)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
