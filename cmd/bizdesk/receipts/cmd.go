// Package receiptscmd implements the `bizdesk receipts` command group.
package receiptscmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk receipts`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	clientID models.ID
}

// New creates the receipts command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "receipts",
		Aliases: []string{"receipt", "receives"},
		Short:   "List and record money received from clients",
		RunE:    c.runList,
	}
	list := &cobra.Command{Use: "list", Short: "List client receipts", Args: cobra.NoArgs, RunE: c.runList}
	shared.IDVar(c.cmd.Flags(), &c.clientID, "client-id", "Only receipts from this client")
	shared.IDVar(list.Flags(), &c.clientID, "client-id", "Only receipts from this client")

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

	receipts, err := svc.ListReceipts(cmd.Context(), c.clientID)
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(receipts, func() *shared.Table {
		t := shared.NewTable("ID", "DATE", "CLIENT", "BANK", "AMOUNT", "DESCRIPTION")
		for _, r := range receipts {
			t.Row(r.ID.String(), shared.Day(r.CreatedAt), shared.OrDash(r.ClientName), shared.OrDash(r.BankName),
				shared.Money(r.Amount), shared.OrDash(r.Description))
		}
		return t
	})
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.ReceiptInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record money received from a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddReceipt(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Received "+shared.Money(in.Amount)+" from client "+in.ClientID.String(), ack)
		},
	}
	f := cmd.Flags()
	shared.IDVar(f, &in.ClientID, "client-id", "Client (required)")
	shared.IDVar(f, &in.BankID, "bank-id", "Bank the money goes into (required)")
	shared.AmountVar(f, &in.Amount, "amount", "Amount (required)")
	f.StringVar(&in.Description, "description", "", "Note")
	return cmd
}
