// Package employeescmd implements the `bizdesk employees` command group.
package employeescmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk employees`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the employees command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "staff"},
		Short:   "List and manage employees",
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List employees", Args: cobra.NoArgs, RunE: c.runList},
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

	employees, err := svc.ListEmployees(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(employees, func() *shared.Table {
		t := shared.NewTable("ID", "NAME", "DESIGNATION", "PHONE", "SALARY")
		for _, e := range employees {
			t.Row(e.ID.String(), e.Name, shared.OrDash(e.Designation), shared.OrDash(e.Phone), shared.Money(e.Salary))
		}
		return t
	})
}

func bindInput(cmd *cobra.Command, in *models.EmployeeInput) {
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Employee name (required)")
	shared.AmountVar(f, &in.Salary, "salary", "Monthly salary (required)")
	f.StringVar(&in.Phone, "phone", "", "Phone number")
	f.StringVar(&in.Designation, "designation", "", "Job title")
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.EmployeeInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddEmployee(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Added employee "+in.Name, ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newUpdate(ctx *shared.Context) *cobra.Command {
	var in models.EmployeeInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.UpdateEmployee(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Updated employee "+args[0], ack)
		},
	}
	bindInput(cmd, &in)
	return cmd
}

func newDelete(ctx *shared.Context) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shared.RequireYes(yes, "employee "+args[0]); err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.DeleteEmployee(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Deleted employee "+args[0], ack)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
