package setup_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/bizdesk/internal/checkers"
	"github.com/go-ports/bizdesk/internal/setup"
)

// ---------------------------------------------------------------------------
// SetupClaudeCode / UninstallClaudeCode
// ---------------------------------------------------------------------------

func TestSetupClaudeCode_HappyPath(t *testing.T) {
	c := qt.New(t)

	// project=true is used throughout to write into a controlled temp dir:
	// claudeMCPPath returns filepath.Dir(claudeHome)/.mcp.json.

	c.Run("first install creates .mcp.json with bizdesk entry", func(c *qt.C) {
		tmp := t.TempDir()
		claudeHome := filepath.Join(tmp, ".claude")

		result := setup.SetupClaudeCode(claudeHome, true, setup.Server{})
		c.Assert(result.Status, qt.Equals, "ok")
		c.Assert(result.Message, qt.Equals, "Installed: mcpServers in .mcp.json")

		data, err := os.ReadFile(filepath.Join(tmp, ".mcp.json"))
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.bizdesk.command"), "bizdesk")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.bizdesk.args"), []any{"mcp"})
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.bizdesk.type"), "stdio")
	})

	c.Run("home is exported to the server", func(c *qt.C) {
		tmp := t.TempDir()
		claudeHome := filepath.Join(tmp, ".claude")

		setup.SetupClaudeCode(claudeHome, true, setup.Server{Command: "/usr/local/bin/bizdesk", Home: "/srv/shop"})

		data, err := os.ReadFile(filepath.Join(tmp, ".mcp.json"))
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.bizdesk.command"), "/usr/local/bin/bizdesk")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.bizdesk.env.BIZDESK_HOME"), "/srv/shop")
	})

	c.Run("second install is idempotent", func(c *qt.C) {
		tmp := t.TempDir()
		claudeHome := filepath.Join(tmp, ".claude")

		setup.SetupClaudeCode(claudeHome, true, setup.Server{})
		result := setup.SetupClaudeCode(claudeHome, true, setup.Server{})
		c.Assert(result.Message, qt.Equals, "Already installed")
	})

	c.Run("other servers are kept", func(c *qt.C) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".mcp.json")
		err := os.WriteFile(path, []byte(`{"mcpServers":{"other":{"command":"other"}}}`), 0o600)
		c.Assert(err, qt.IsNil)

		setup.SetupClaudeCode(filepath.Join(tmp, ".claude"), true, setup.Server{})

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.other.command"), "other")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.bizdesk.command"), "bizdesk")
	})
}

func TestUninstallClaudeCode_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("installed entry is removed and the empty file deleted", func(c *qt.C) {
		tmp := t.TempDir()
		claudeHome := filepath.Join(tmp, ".claude")

		setup.SetupClaudeCode(claudeHome, true, setup.Server{})
		result := setup.UninstallClaudeCode(claudeHome, true)
		c.Assert(result.Message, qt.Equals, "Removed: mcpServers from .mcp.json")

		_, err := os.Stat(filepath.Join(tmp, ".mcp.json"))
		c.Assert(os.IsNotExist(err), qt.IsTrue)
	})

	c.Run("other servers survive", func(c *qt.C) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".mcp.json")
		err := os.WriteFile(path, []byte(`{"mcpServers":{"other":{"command":"other"}}}`), 0o600)
		c.Assert(err, qt.IsNil)
		claudeHome := filepath.Join(tmp, ".claude")

		setup.SetupClaudeCode(claudeHome, true, setup.Server{})
		setup.UninstallClaudeCode(claudeHome, true)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.other.command"), "other")
		c.Assert(string(data), qt.Not(qt.Contains), "bizdesk")
	})

	c.Run("nothing to remove when not installed", func(c *qt.C) {
		result := setup.UninstallClaudeCode(filepath.Join(t.TempDir(), ".claude"), true)
		c.Assert(result.Message, qt.Equals, "Nothing to remove")
	})
}

// ---------------------------------------------------------------------------
// SetupCursor / UninstallCursor
// ---------------------------------------------------------------------------

func TestCursor_InstallAndUninstall(t *testing.T) {
	c := qt.New(t)
	cursorHome := filepath.Join(t.TempDir(), ".cursor")

	result := setup.SetupCursor(cursorHome, setup.Server{})
	c.Assert(result.Message, qt.Equals, "Installed: mcpServers")

	data, err := os.ReadFile(filepath.Join(cursorHome, "mcp.json"))
	c.Assert(err, qt.IsNil)
	c.Assert(data, checkers.JSONPathEquals("$.mcpServers.bizdesk.command"), "bizdesk")

	c.Assert(setup.SetupCursor(cursorHome, setup.Server{}).Message, qt.Equals, "Already installed")
	c.Assert(setup.UninstallCursor(cursorHome).Message, qt.Equals, "Removed: mcpServers")
	c.Assert(setup.UninstallCursor(cursorHome).Message, qt.Equals, "Nothing to remove")
	c.Assert(setup.SetupCursor(cursorHome, setup.Server{}).Message, qt.Equals, "Installed: mcpServers")
}

// ---------------------------------------------------------------------------
// SetupCodex / UninstallCodex
// ---------------------------------------------------------------------------

func TestSetupCodex_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("install creates AGENTS.md and config.toml", func(c *qt.C) {
		codexHome := filepath.Join(t.TempDir(), ".codex")

		result := setup.SetupCodex(codexHome, setup.Server{Home: "/srv/shop"})
		c.Assert(result.Message, qt.Equals, "Installed: AGENTS.md, config.toml")

		agents, err := os.ReadFile(filepath.Join(codexHome, "AGENTS.md"))
		c.Assert(err, qt.IsNil)
		c.Assert(string(agents), qt.Contains, "## bizdesk: business records")
		c.Assert(string(agents), qt.Contains, "record_vendor_payment")

		toml, err := os.ReadFile(filepath.Join(codexHome, "config.toml"))
		c.Assert(err, qt.IsNil)
		c.Assert(string(toml), qt.Equals, "\n[mcp_servers.bizdesk]\n"+
			"command = \"bizdesk\"\n"+
			"args = [\"mcp\"]\n"+
			"env = { BIZDESK_HOME = \"/srv/shop\" }\n")
	})

	c.Run("second install is idempotent", func(c *qt.C) {
		codexHome := filepath.Join(t.TempDir(), ".codex")

		setup.SetupCodex(codexHome, setup.Server{})
		c.Assert(setup.SetupCodex(codexHome, setup.Server{}).Message, qt.Equals, "Already installed")
	})
}

func TestUninstallCodex_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("surrounding content is preserved", func(c *qt.C) {
		codexHome := filepath.Join(t.TempDir(), ".codex")
		err := os.MkdirAll(codexHome, 0o755)
		c.Assert(err, qt.IsNil)
		agentsPath := filepath.Join(codexHome, "AGENTS.md")
		tomlPath := filepath.Join(codexHome, "config.toml")
		err = os.WriteFile(agentsPath, []byte("# Notes\n\nkeep me\n"), 0o600)
		c.Assert(err, qt.IsNil)
		err = os.WriteFile(tomlPath, []byte("model = \"o3\"\n"), 0o600)
		c.Assert(err, qt.IsNil)

		setup.SetupCodex(codexHome, setup.Server{})
		result := setup.UninstallCodex(codexHome)
		c.Assert(result.Message, qt.Equals, "Removed: AGENTS.md, config.toml")

		agents, err := os.ReadFile(agentsPath)
		c.Assert(err, qt.IsNil)
		c.Assert(string(agents), qt.Equals, "# Notes\n\nkeep me\n")
		toml, err := os.ReadFile(tomlPath)
		c.Assert(err, qt.IsNil)
		c.Assert(string(toml), qt.Equals, "model = \"o3\"\n")
	})

	c.Run("following heading is kept", func(c *qt.C) {
		codexHome := filepath.Join(t.TempDir(), ".codex")
		agentsPath := filepath.Join(codexHome, "AGENTS.md")

		setup.SetupCodex(codexHome, setup.Server{})
		data, err := os.ReadFile(agentsPath)
		c.Assert(err, qt.IsNil)
		err = os.WriteFile(agentsPath, append(data, []byte("\n## Style\n\nUse tabs.\n")...), 0o600)
		c.Assert(err, qt.IsNil)

		setup.UninstallCodex(codexHome)
		agents, err := os.ReadFile(agentsPath)
		c.Assert(err, qt.IsNil)
		c.Assert(string(agents), qt.Equals, "## Style\n\nUse tabs.\n")
	})

	c.Run("nothing to remove when not installed", func(c *qt.C) {
		result := setup.UninstallCodex(filepath.Join(t.TempDir(), ".codex"))
		c.Assert(result.Message, qt.Equals, "Nothing to remove")
	})
}
