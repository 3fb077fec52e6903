// Package paymentscmd implements the `bizdesk payments` command group.
package paymentscmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk payments`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	vendorID models.ID
}

// New creates the payments command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "payments",
		Aliases: []string{"payment"},
		Short:   "List and record payments to vendors",
		RunE:    c.runList,
	}
	list := &cobra.Command{Use: "list", Short: "List vendor payments", Args: cobra.NoArgs, RunE: c.runList}
	shared.IDVar(c.cmd.Flags(), &c.vendorID, "vendor-id", "Only payments to this vendor")
	shared.IDVar(list.Flags(), &c.vendorID, "vendor-id", "Only payments to this vendor")

	c.cmd.AddCommand(list, newAdd(ctx))
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

	payments, err := svc.ListPayments(cmd.Context(), c.vendorID)
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(payments, func() *shared.Table {
		t := shared.NewTable("ID", "DATE", "VENDOR", "BANK", "AMOUNT", "DESCRIPTION")
		for _, pm := range payments {
			t.Row(pm.ID.String(), shared.Day(pm.CreatedAt), shared.OrDash(pm.VendorName), shared.OrDash(pm.BankName),
				shared.Money(pm.Amount), shared.OrDash(pm.Description))
		}
		return t
	})
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.PaymentInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment to a vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddPayment(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Paid "+shared.Money(in.Amount)+" to vendor "+in.VendorID.String(), ack)
		},
	}
	f := cmd.Flags()
	shared.IDVar(f, &in.VendorID, "vendor-id", "Vendor (required)")
	shared.IDVar(f, &in.BankID, "bank-id", "Bank the money leaves from (required)")
	shared.AmountVar(f, &in.Amount, "amount", "Amount (required)")
	f.StringVar(&in.Description, "description", "", "Note")
	return cmd
}
