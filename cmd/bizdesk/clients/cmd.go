// Package clientscmd implements the `bizdesk clients` command group.
package clientscmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk clients`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the clients command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "List and manage clients",
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List clients", Args: cobra.NoArgs, RunE: c.runList},
		newAdd(ctx),
		newUpdate(ctx),
		newDelete(ctx),
		newStatement(ctx),
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

	clients, err := svc.ListClients(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(clients, func() *shared.Table {
		t := shared.NewTable("ID", "NAME", "FIRM", "CONTACT", "OPENING", "ADDRESS")
		for _, cl := range clients {
			t.Row(cl.ID.String(), cl.Name, shared.OrDash(cl.FirmName), shared.OrDash(cl.Contact),
				shared.Money(cl.OpeningBalance), shared.OrDash(cl.Address))
		}
		return t
	})
}

// ---------------------------------------------------------------------------
// add / update
// ---------------------------------------------------------------------------

func bindInput(cmd *cobra.Command, in *models.ClientInput) {
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Client name (required)")
	f.StringVar(&in.FirmName, "firm", "", "Firm name")
	f.StringVar(&in.Contact, "contact", "", "Contact number")
	shared.AmountVar(f, &in.OpeningBalance, "opening-balance", "Opening balance")
	f.StringVar(&in.Address, "address", "", "Address")
	f.StringVar(&in.Description, "description", "", "Notes")
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.ClientInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddClient(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Added client "+in.Name, ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var in models.ClientInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a client (every field is sent, as the edit form does)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.UpdateClient(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Updated client "+args[0], ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newDelete(ctx *shared.Context) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shared.RequireYes(yes, "client "+args[0]); err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.DeleteClient(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Deleted client "+args[0], ack)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

// ---------------------------------------------------------------------------
// statement
// ---------------------------------------------------------------------------

func newStatement(ctx *shared.Context) *cobra.Command {
	var r api.DateRange
	cmd := &cobra.Command{
		Use:   "statement <id>",
		Short: "Show a client's sales, receipts and remaining balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			st, err := svc.ClientStatement(cmd.Context(), models.ID(args[0]), r)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(st, func() *shared.Table {
				t := shared.NewTable("DATE", "ENTRY", "DETAIL", "DEBIT", "CREDIT")
				for _, s := range st.Sales {
					t.Row(shared.Day(s.CreatedAt), "sale #"+s.Key().String(),
						s.ProductName+" "+shared.Qty(s.Quantity)+"kg", shared.Money(s.TotalPrice), "")
				}
				for _, rc := range st.Receipts {
					t.Row(shared.Day(rc.CreatedAt), "receipt #"+rc.ID.String(),
						shared.OrDash(rc.BankName), "", shared.Money(rc.Amount))
				}
				t.Footer = []string{"", st.Client.Name, "remaining " + shared.Money(st.Totals.Remaining),
					shared.Money(st.Totals.TotalSales), shared.Money(st.Totals.Received)}
				return t
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&r.From, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&r.To, "to", "", "End date (YYYY-MM-DD)")
	return cmd
}
