// Package categoriescmd implements the `bizdesk categories` command group.
package categoriescmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk categories`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the categories command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List and manage expense categories",
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List expense categories", Args: cobra.NoArgs, RunE: c.runList},
		newAdd(ctx),
		newRename(ctx),
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

	categories, err := svc.ListCategories(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(categories, func() *shared.Table {
		t := shared.NewTable("ID", "NAME")
		for _, cat := range categories {
			t.Row(cat.ID.String(), cat.Name)
		}
		return t
	})
}

func newAdd(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add an expense category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddCategory(cmd.Context(), &models.CategoryInput{Name: args[0]})
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Added category "+args[0], ack)
		},
	}
}

func newRename(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <id> <name>",
		Aliases: []string{"update"},
		Short:   "Rename an expense category",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.UpdateCategory(cmd.Context(), &models.CategoryInput{ID: models.ID(args[0]), Name: args[1]})
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Renamed category "+args[0]+" to "+args[1], ack)
		},
	}
}

func newDelete(ctx *shared.Context) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := shared.RequireYes(yes, "category "+args[0]); err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.DeleteCategory(cmd.Context(), models.ID(args[0]))
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Deleted category "+args[0], ack)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
