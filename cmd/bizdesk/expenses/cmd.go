// Package expensescmd implements the `bizdesk expenses` command group.
package expensescmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk expenses`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the expenses command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense"},
		Short:   "List, group and book expenses",
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List expenses", Args: cobra.NoArgs, RunE: c.runList},
		newGroups(ctx),
		newDetails(ctx),
		newAdd(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func expenseTable(expenses []models.Expense) *shared.Table {
	t := shared.NewTable("ID", "DATE", "CATEGORY", "BANK", "AMOUNT", "DESCRIPTION")
	for _, e := range expenses {
		t.Row(e.ID.String(), shared.Day(e.Date), shared.OrDash(e.CategoryName), shared.OrDash(e.BankName),
			shared.Money(e.Amount), shared.OrDash(e.Description))
	}
	return t
}

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	expenses, err := svc.ListExpenses(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(expenses, func() *shared.Table { return expenseTable(expenses) })
}

func newGroups(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Total expenses per category, highest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			groups, err := svc.ExpenseGroups(cmd.Context())
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(groups, func() *shared.Table {
				t := shared.NewTable("CATEGORY", "ENTRIES", "TOTAL")
				for _, g := range groups {
					t.Row(g.Category, strconv.Itoa(g.Count), shared.Money(g.Total))
				}
				return t
			})
		},
	}
}

func newDetails(ctx *shared.Context) *cobra.Command {
	var (
		f        api.ExpenseDetailFilter
		category string
	)
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Show expenses by id, date or date range, optionally for one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			d, err := svc.ExpenseDetails(cmd.Context(), f, category)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(d, func() *shared.Table {
				t := expenseTable(d.Expenses)
				t.Footer = []string{"", "", shared.OrDash(d.Category), "total", shared.Money(d.Total), ""}
				return t
			})
		},
	}
	fl := cmd.Flags()
	shared.IDVar(fl, &f.ID, "id", "One expense")
	fl.StringVar(&f.Date, "date", "", "Expenses of one day (YYYY-MM-DD)")
	fl.StringVar(&f.From, "from", "", "Start date (YYYY-MM-DD)")
	fl.StringVar(&f.To, "to", "", "End date (YYYY-MM-DD)")
	fl.StringVar(&category, "category", "", "Only this category name")
	return cmd
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.ExpenseInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddExpense(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Booked expense of "+shared.Money(in.Amount)+" on "+in.Date, ack)
		},
	}
	f := cmd.Flags()
	shared.IDVar(f, &in.CategoryID, "category-id", "Expense category (required)")
	shared.IDVar(f, &in.BankID, "bank-id", "Bank the money leaves from (required)")
	shared.AmountVar(f, &in.Amount, "amount", "Amount (required)")
	f.StringVar(&in.Date, "date", "", "Date, YYYY-MM-DD (default: today)")
	f.StringVar(&in.Description, "description", "", "Note")
	return cmd
}
