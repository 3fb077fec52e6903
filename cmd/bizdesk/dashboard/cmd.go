// Package dashboardcmd implements the `bizdesk dashboard` command.
package dashboardcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
)

// Command implements `bizdesk dashboard`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the dashboard command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Show received, paid, stock, expenses, salaries and the balance",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	d, err := svc.Dashboard(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(d, func() *shared.Table {
		return shared.NewTable("FIGURE", "VALUE").
			Row("Received from clients", shared.Money(d.Received)).
			Row("Paid to vendors", shared.Money(d.Paid)).
			Row("Stock on hand (kg)", shared.Qty(d.Stock)).
			Row("Expenses", shared.Money(d.Expenses)).
			Row("Salaries", shared.Money(d.Salaries)).
			Row("Balance", shared.Money(d.Balance))
	})
}
