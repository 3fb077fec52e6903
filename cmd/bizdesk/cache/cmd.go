// Package cachecmd implements the `bizdesk cache` command group.
package cachecmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/cache"
)

// Command implements `bizdesk cache`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the cache command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "cache",
		Short: "Manage the local reference cache (clients, vendors, products, banks, employees, categories)",
		RunE:  c.runStatus,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "status", Short: "Show cached row counts and sync times", Args: cobra.NoArgs, RunE: c.runStatus},
		newSync(ctx),
		newSearch(ctx),
		newClear(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func statsTable(stats []cache.KindStats) *shared.Table {
	t := shared.NewTable("KIND", "ROWS", "SYNCED")
	for _, s := range stats {
		synced := "never"
		if !s.SyncedAt.IsZero() {
			synced = s.SyncedAt.Local().Format(time.DateTime)
		}
		t.Row(string(s.Kind), strconv.Itoa(s.Count), synced)
	}
	return t
}

func (c *Command) runStatus(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	stats, err := svc.CacheStats()
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(stats, func() *shared.Table { return statsTable(stats) })
}

func newSync(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refetch every reference kind from the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			stats, err := svc.Sync(cmd.Context())
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(stats, func() *shared.Table { return statsTable(stats) })
		},
	}
}

func newSearch(ctx *shared.Context) *cobra.Command {
	var (
		kind  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find cached references by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := cache.ParseKind(kind)
			if err != nil {
				return err
			}
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			refs, err := svc.SearchRefs(args[0], k, limit)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(refs, func() *shared.Table {
				t := shared.NewTable("KIND", "ID", "NAME", "DETAIL")
				for _, r := range refs {
					t.Row(string(r.Kind), r.ID.String(), r.Name, shared.OrDash(r.Detail))
				}
				return t
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only this kind (client, vendor, product, bank, employee, category)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	return cmd
}

func newClear(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.ClearCache(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", svc.CachePath())
			return nil
		},
	}
}
