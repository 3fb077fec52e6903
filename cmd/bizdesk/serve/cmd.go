// Package servecmd implements the `bizdesk serve` command.
package servecmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/gateway"
	"github.com/go-ports/bizdesk/internal/service"
)

// Command implements `bizdesk serve`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	addr string
}

// New creates the serve command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve a local JSON API over the business API (normalised envelopes)",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVar(&c.addr, "addr", "", "Listen address (default: gateway.addr)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	cfg, home, err := c.ctx.Config()
	if err != nil {
		return err
	}
	if c.addr != "" {
		cfg.Gateway.Addr = c.addr
	}
	log := c.ctx.Logger(cmd, cfg)

	svc, err := service.New(service.Options{Home: home, Config: cfg, Logger: log})
	if err != nil {
		return err
	}
	defer svc.Close()

	return gateway.Serve(cmd.Context(), cfg.Gateway.Addr, gateway.New(svc, log), log)
}
