// Package uninstallcmd implements the `bizdesk uninstall` command group.
package uninstallcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/setup"
)

// Command implements `bizdesk uninstall`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the uninstall command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the bizdesk MCP server from a coding agent",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newUninstall(".claude", "claude-code", "Claude Code", func(dir string, project bool) setup.Result {
			return setup.UninstallClaudeCode(dir, project)
		}),
		newUninstall(".cursor", "cursor", "Cursor", func(dir string, _ bool) setup.Result {
			return setup.UninstallCursor(dir)
		}),
		newUninstall(".codex", "codex", "Codex", func(dir string, _ bool) setup.Result {
			return setup.UninstallCodex(dir)
		}),
		newUninstallOpencode(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newUninstall(dotDir, use, agent string, remove func(dir string, project bool) setup.Result) *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   use,
		Short: "Remove bizdesk from " + agent,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := remove(shared.AgentDir(dotDir, configDir, project), project)
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to "+dotDir+" directory")
	cmd.Flags().BoolVar(&project, "project", false, "Uninstall from current project instead of globally")
	return cmd
}

func newUninstallOpencode() *cobra.Command {
	var project bool
	cmd := &cobra.Command{
		Use:   "opencode",
		Short: "Remove bizdesk from OpenCode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := setup.UninstallOpencode(project)
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "Uninstall from current project instead of globally")
	return cmd
}
