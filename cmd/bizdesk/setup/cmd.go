// Package setupcmd implements the `bizdesk setup` command group.
package setupcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/setup"
)

// Command implements `bizdesk setup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the setup command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Register the bizdesk MCP server with a coding agent",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newSetupClaudeCode(ctx),
		newSetupCursor(ctx),
		newSetupCodex(ctx),
		newSetupOpencode(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func bindCommand(cmd *cobra.Command, command *string) {
	cmd.Flags().StringVar(command, "command", "bizdesk", "Executable the agent launches")
}

// ---------------------------------------------------------------------------
// setup claude-code
// ---------------------------------------------------------------------------

func newSetupClaudeCode(ctx *shared.Context) *cobra.Command {
	var configDir, command string
	var project bool
	cmd := &cobra.Command{
		Use:   "claude-code",
		Short: "Register bizdesk in Claude Code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := shared.AgentDir(".claude", configDir, project)
			result := setup.SetupClaudeCode(target, project, ctx.MCPServer(command))
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .claude directory")
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	bindCommand(cmd, &command)
	return cmd
}

// ---------------------------------------------------------------------------
// setup cursor
// ---------------------------------------------------------------------------

func newSetupCursor(ctx *shared.Context) *cobra.Command {
	var configDir, command string
	var project bool
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Register bizdesk in Cursor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := shared.AgentDir(".cursor", configDir, project)
			result := setup.SetupCursor(target, ctx.MCPServer(command))
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .cursor directory")
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	bindCommand(cmd, &command)
	return cmd
}

// ---------------------------------------------------------------------------
// setup codex
// ---------------------------------------------------------------------------

func newSetupCodex(ctx *shared.Context) *cobra.Command {
	var configDir, command string
	var project bool
	cmd := &cobra.Command{
		Use:   "codex",
		Short: "Register bizdesk in Codex config.toml and AGENTS.md",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := shared.AgentDir(".codex", configDir, project)
			result := setup.SetupCodex(target, ctx.MCPServer(command))
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .codex directory")
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	bindCommand(cmd, &command)
	return cmd
}

// ---------------------------------------------------------------------------
// setup opencode
// ---------------------------------------------------------------------------

func newSetupOpencode(ctx *shared.Context) *cobra.Command {
	var command string
	var project bool
	cmd := &cobra.Command{
		Use:   "opencode",
		Short: "Register bizdesk in OpenCode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := setup.SetupOpencode(project, ctx.MCPServer(command))
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	bindCommand(cmd, &command)
	return cmd
}
