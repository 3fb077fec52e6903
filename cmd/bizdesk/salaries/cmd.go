// Package salariescmd implements the `bizdesk salaries` command group.
package salariescmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk salaries`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	filter api.SalaryFilter
}

// New creates the salaries command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "salaries",
		Aliases: []string{"salary", "payroll"},
		Short:   "List and book salary payments",
		RunE:    c.runList,
	}
	list := &cobra.Command{Use: "list", Short: "List salary entries", Args: cobra.NoArgs, RunE: c.runList}
	bindFilter(c.cmd.Flags(), &c.filter, true)
	bindFilter(list.Flags(), &c.filter, true)

	c.cmd.AddCommand(list, newLedger(ctx), newAdd(ctx), newUpdate(ctx), newDelete(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func bindFilter(f *pflag.FlagSet, sf *api.SalaryFilter, withEmployee bool) {
	if withEmployee {
		shared.IDVar(f, &sf.EmployeeID, "employee-id", "Only this employee")
	}
	shared.IDVar(f, &sf.BankID, "bank-id", "Only salaries paid from this bank")
	f.StringVar(&sf.Status, "status", "", "paid or pending")
	f.StringVar(&sf.StartDate, "from", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&sf.EndDate, "to", "", "End date (YYYY-MM-DD)")
}

func salaryTable(salaries []models.Salary) *shared.Table {
	t := shared.NewTable("ID", "EMPLOYEE", "MONTH", "PAID ON", "BANK", "AMOUNT", "STATUS")
	for _, s := range salaries {
		month := s.Month
		if len(month) >= 7 {
			month = month[:7]
		}
		t.Row(s.ID.String(), shared.OrDash(s.EmployeeName), month, shared.Day(s.PaymentDate),
			shared.OrDash(s.BankName), shared.Money(s.Amount), s.Status)
	}
	return t
}

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	page, err := svc.ListSalaries(cmd.Context(), c.filter)
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(page, func() *shared.Table {
		t := salaryTable(page.Salaries)
		t.Footer = []string{"", "", "", "", "paid " + shared.Money(page.Summary.TotalPaid),
			"pending " + shared.Money(page.Summary.TotalPending), ""}
		return t
	})
}

func newLedger(ctx *shared.Context) *cobra.Command {
	var f api.SalaryFilter
	cmd := &cobra.Command{
		Use:   "ledger <employee-id>",
		Short: "Show one employee's salary entries and what is still owed this month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.EmployeeID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			l, err := svc.SalaryLedger(cmd.Context(), f)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(l, func() *shared.Table {
				t := salaryTable(l.Salaries)
				t.Footer = []string{"", l.Employee.Name, "salary " + shared.Money(l.Ledger.Salary),
					"paid " + shared.Money(l.Ledger.TotalPaid), "pending " + shared.Money(l.Ledger.TotalPending),
					"remaining " + shared.Money(l.Ledger.Remaining), ""}
				return t
			})
		},
	}
	bindFilter(cmd.Flags(), &f, false)
	return cmd
}

// ---------------------------------------------------------------------------
// add / update / delete
// ---------------------------------------------------------------------------

func bindInput(cmd *cobra.Command, in *models.SalaryInput) {
	f := cmd.Flags()
	shared.IDVar(f, &in.EmployeeID, "employee-id", "Employee (required)")
	shared.IDVar(f, &in.BankID, "bank-id", "Bank the salary is paid from (required)")
	shared.AmountVar(f, &in.Amount, "amount", "Amount (required)")
	f.StringVar(&in.Month, "month", "", "Salary month, YYYY-MM (default: current month)")
	f.StringVar(&in.PaymentDate, "date", "", "Payment date, YYYY-MM-DD (default: today)")
	f.StringVar(&in.Status, "status", models.SalaryPending, "paid or pending")
	f.StringVar(&in.Notes, "notes", "", "Notes")
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.SalaryInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a salary payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddSalary(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Booked "+in.Status+" salary of "+shared.Money(in.Amount)+" for "+in.Month[:7], ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var in models.SalaryInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a salary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.UpdateSalary(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Updated salary entry "+args[0], ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newDelete(ctx *shared.Context) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a salary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shared.RequireYes(yes, "salary entry "+args[0]); err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.DeleteSalary(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Deleted salary entry "+args[0], ack)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
