// Package configcmd implements the `bizdesk config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/config"
	"github.com/go-ports/bizdesk/internal/redaction"
)

const configTemplate = `# bizdesk configuration

# The business API the screens talk to. BIZDESK_API_URL, API_BASE_URL
# (also read from .env) and --api-url override base_url.
api:
  base_url: ""                  # e.g. https://shop.example.com/api/
  timeout: 30s
  compression: true             # ask for brotli responses

# Local SQLite copy of clients, vendors, products, banks, employees and
# expense categories, used to fill in names and for ` + "`bizdesk cache search`" + `.
cache:
  enabled: true

# ` + "`bizdesk serve`" + ` listen address.
gateway:
  addr: 127.0.0.1:8787

log:
  level: warn                   # debug | info | warn | error

output:
  format: table                 # table | json | csv
`

// Command implements `bizdesk config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Print the effective configuration", Args: cobra.NoArgs, RunE: c.runShow},
		newConfigInit(ctx),
		newSetHome(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	cfg, home, err := c.ctx.Config()
	if err != nil {
		return err
	}
	_, source := c.ctx.ResolveHome()

	data := map[string]any{
		"api": map[string]any{
			"base_url":    redaction.Redact(cfg.API.BaseURL, nil),
			"timeout":     cfg.API.TimeoutDuration().String(),
			"compression": cfg.API.Compression,
		},
		"cache": map[string]any{
			"enabled": cfg.Cache.Enabled,
			"path":    filepath.Join(home, "cache.db"),
		},
		"gateway":     map[string]any{"addr": cfg.Gateway.Addr},
		"log":         map[string]any{"level": cfg.Log.Level},
		"output":      map[string]any{"format": cfg.Output.Format},
		"home":        home,
		"home_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, _ := ctx.ResolveHome()
			cfgPath := filepath.Join(home, "config.yaml")
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			fmt.Fprintln(out, "Set api.base_url to your business API, then run `bizdesk cache sync`.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-home
// ---------------------------------------------------------------------------

func newSetHome(_ *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "set-home <path>",
		Short: "Persist the bizdesk home location (used when BIZDESK_HOME is unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedHome(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(resolved, 0o755); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted bizdesk home: %s\n", resolved)
			fmt.Fprintln(out, "Override anytime with BIZDESK_HOME or --home.")
			return nil
		},
	}
}
