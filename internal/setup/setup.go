// Package setup registers and removes the bizdesk MCP server in the
// configuration of supported coding agents (Claude Code, Cursor, Codex,
// OpenCode).
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-ports/bizdesk/internal/config"
)

// ServerName is the key of the bizdesk entry in every agent config.
const ServerName = "bizdesk"

// Result is the return value from all Setup/Uninstall functions.
type Result struct {
	Status  string // always "ok"
	Message string
}

func ok(msg string) Result          { return Result{Status: "ok", Message: msg} }
func okf(f string, a ...any) Result { return ok(fmt.Sprintf(f, a...)) }

// ---------------------------------------------------------------------------
// Server entry
// ---------------------------------------------------------------------------

// Server describes the MCP server the agent should launch.
type Server struct {
	Command string // executable; "bizdesk" when empty
	Home    string // exported as BIZDESK_HOME when set
}

func (s Server) command() string {
	if s.Command == "" {
		return "bizdesk"
	}
	return s.Command
}

func (s Server) env() map[string]any {
	if s.Home == "" {
		return nil
	}
	return map[string]any{config.EnvHome: s.Home}
}

// jsonEntry is the mcpServers entry used by Claude Code and Cursor.
func (s Server) jsonEntry() map[string]any {
	e := map[string]any{
		"command": s.command(),
		"args":    []any{"mcp"},
		"type":    "stdio",
	}
	if env := s.env(); env != nil {
		e["env"] = env
	}
	return e
}

func (s Server) opencodeEntry() map[string]any {
	e := map[string]any{
		"type":    "local",
		"command": []any{s.command(), "mcp"},
	}
	if env := s.env(); env != nil {
		e["environment"] = env
	}
	return e
}

func (s Server) tomlSection() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n[mcp_servers.%s]\n", ServerName)
	fmt.Fprintf(&b, "command = %s\n", strconv.Quote(s.command()))
	b.WriteString("args = [\"mcp\"]\n")
	if s.Home != "" {
		fmt.Fprintf(&b, "env = { %s = %s }\n", config.EnvHome, strconv.Quote(s.Home))
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Default path helpers
// ---------------------------------------------------------------------------

// DefaultClaudeHome returns the default ~/.claude directory.
func DefaultClaudeHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

// DefaultCursorHome returns the default ~/.cursor directory.
func DefaultCursorHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cursor")
}

// DefaultCodexHome returns the default ~/.codex directory.
func DefaultCodexHome() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".codex")
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func readJSON(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return make(map[string]any)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]any)
	}
	return m
}

func writeJSON(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644) // #nosec G306 -- agent config files hold the server command, not credentials
}

// installEntry adds entry under data[section][ServerName] unless present.
func installEntry(path, section string, entry map[string]any) (bool, error) {
	data := readJSON(path)
	servers, _ := data[section].(map[string]any)
	if servers == nil {
		servers = make(map[string]any)
		data[section] = servers
	}
	if _, exists := servers[ServerName]; exists {
		return false, nil
	}
	servers[ServerName] = entry
	return true, writeJSON(path, data)
}

// uninstallEntry removes data[section][ServerName], dropping the section and
// then the file when they become empty.
func uninstallEntry(path, section string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	data := readJSON(path)
	servers, _ := data[section].(map[string]any)
	if _, exists := servers[ServerName]; !exists {
		return false, nil
	}
	delete(servers, ServerName)
	if len(servers) == 0 {
		delete(data, section)
	}
	if len(data) == 0 {
		return true, os.Remove(path)
	}
	return true, writeJSON(path, data)
}

// ---------------------------------------------------------------------------
// TOML helpers (text-based; only handles the [mcp_servers.bizdesk] table)
// ---------------------------------------------------------------------------

const tomlHeader = "[mcp_servers." + ServerName + "]"

func hasTOMLSection(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), tomlHeader)
}

func appendTOMLSection(path, section string) (bool, error) {
	if hasTOMLSection(path) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	_, err = f.WriteString(section)
	return err == nil, err
}

func removeTOMLSection(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	content := string(data)
	if !strings.Contains(content, tomlHeader) {
		return false, nil
	}
	// Drop the header and its key-value pairs up to the next table or EOF.
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	inSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == tomlHeader {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(trimmed, "[") {
			inSection = false
		}
		if !inSection {
			result = append(result, line)
		}
	}
	cleaned := strings.TrimRight(strings.Join(result, "\n"), "\n") + "\n"
	return true, os.WriteFile(path, []byte(cleaned), 0o644) // #nosec G306 -- agent TOML config is not a credential file
}

// ---------------------------------------------------------------------------
// Claude Code
// ---------------------------------------------------------------------------

//revive:disable:flag-parameter
func claudeMCPPath(claudeHome string, project bool) string {
	if project {
		return filepath.Join(filepath.Dir(claudeHome), ".mcp.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude.json")
}

func claudeScope(project bool) string {
	if project {
		return ".mcp.json"
	}
	return "~/.claude.json"
}

// SetupClaudeCode registers bizdesk with Claude Code, in the project's
// .mcp.json when project is set and ~/.claude.json otherwise.
func SetupClaudeCode(claudeHome string, project bool, srv Server) Result {
	if claudeHome == "" {
		claudeHome = DefaultClaudeHome()
	}
	added, err := installEntry(claudeMCPPath(claudeHome, project), "mcpServers", srv.jsonEntry())
	if err != nil {
		return okf("Failed to update %s: %v", claudeScope(project), err)
	}
	if added {
		return okf("Installed: mcpServers in %s", claudeScope(project))
	}
	return ok("Already installed")
}

// UninstallClaudeCode removes bizdesk from Claude Code.
func UninstallClaudeCode(claudeHome string, project bool) Result {
	if claudeHome == "" {
		claudeHome = DefaultClaudeHome()
	}
	if done, err := uninstallEntry(claudeMCPPath(claudeHome, project), "mcpServers"); err == nil && done {
		return okf("Removed: mcpServers from %s", claudeScope(project))
	}
	return ok("Nothing to remove")
}

//revive:enable:flag-parameter

// ---------------------------------------------------------------------------
// Cursor
// ---------------------------------------------------------------------------

// SetupCursor registers bizdesk in <cursorHome>/mcp.json.
// cursorHome defaults to ~/.cursor when empty.
func SetupCursor(cursorHome string, srv Server) Result {
	if cursorHome == "" {
		cursorHome = DefaultCursorHome()
	}
	added, err := installEntry(filepath.Join(cursorHome, "mcp.json"), "mcpServers", srv.jsonEntry())
	if err != nil {
		return okf("Failed to update mcp.json: %v", err)
	}
	if added {
		return ok("Installed: mcpServers")
	}
	return ok("Already installed")
}

// UninstallCursor removes bizdesk from Cursor.
func UninstallCursor(cursorHome string) Result {
	if cursorHome == "" {
		cursorHome = DefaultCursorHome()
	}
	if done, err := uninstallEntry(filepath.Join(cursorHome, "mcp.json"), "mcpServers"); err == nil && done {
		return ok("Removed: mcpServers")
	}
	return ok("Nothing to remove")
}

// ---------------------------------------------------------------------------
// Codex
// ---------------------------------------------------------------------------

const agentsMDHeading = "## bizdesk"

const codexAgentsMDSection = `
## bizdesk: business records

The bizdesk MCP server reads and writes the shop's business records.

- ` + "`list_records`" + ` lists clients, vendors, products, banks, sales, purchases,
  payments, receipts, employees, salaries, expenses or categories.
  Pass ` + "`select`" + ` (a JSONPath) and ` + "`limit`" + ` to keep answers short.
- ` + "`dashboard_summary`" + ` returns received, paid, stock, expenses, salaries and balance.
- ` + "`quote_sale`" + ` prices a loose or ready sale without booking it.
- ` + "`client_statement`" + ` returns a client's sales, receipts and remaining balance.
- ` + "`search_references`" + ` finds ids by name in the local cache.
- ` + "`record_vendor_payment`" + ` books a payment. Confirm the amount with the user first.
`

var agentsSectionRe = regexp.MustCompile(`(?s)\n*## bizdesk[^\n]*\n.*?(?:\n## |\z)`)

// removeAgentsSection strips the bizdesk block from AGENTS.md content,
// keeping any following heading.
func removeAgentsSection(content string) (string, bool) {
	if !strings.Contains(content, agentsMDHeading) {
		return content, false
	}
	cleaned := agentsSectionRe.ReplaceAllStringFunc(content, func(m string) string {
		if strings.HasSuffix(m, "\n## ") {
			return "\n\n## "
		}
		return ""
	})
	return strings.Trim(cleaned, "\n") + "\n", true
}

// SetupCodex registers bizdesk in Codex config.toml and describes its tools
// in AGENTS.md. codexHome defaults to ~/.codex when empty.
func SetupCodex(codexHome string, srv Server) Result {
	if codexHome == "" {
		codexHome = DefaultCodexHome()
	}
	var installed []string

	agentsPath := filepath.Join(codexHome, "AGENTS.md")
	existing, _ := os.ReadFile(agentsPath)
	if !strings.Contains(string(existing), agentsMDHeading) {
		if err := os.MkdirAll(codexHome, 0o755); err == nil {
			content := strings.TrimRight(string(existing), "\n") + "\n" + codexAgentsMDSection
			if err := os.WriteFile(agentsPath, []byte(content), 0o644); err == nil { // #nosec G306 -- AGENTS.md does not contain secrets
				installed = append(installed, "AGENTS.md")
			}
		}
	}

	if added, err := appendTOMLSection(filepath.Join(codexHome, "config.toml"), srv.tomlSection()); err == nil && added {
		installed = append(installed, "config.toml")
	}

	if len(installed) == 0 {
		return ok("Already installed")
	}
	return okf("Installed: %s", strings.Join(installed, ", "))
}

// UninstallCodex removes bizdesk from Codex (AGENTS.md + config.toml).
func UninstallCodex(codexHome string) Result {
	if codexHome == "" {
		codexHome = DefaultCodexHome()
	}
	var removed []string

	agentsPath := filepath.Join(codexHome, "AGENTS.md")
	if data, err := os.ReadFile(agentsPath); err == nil {
		if cleaned, changed := removeAgentsSection(string(data)); changed {
			if strings.TrimSpace(cleaned) == "" {
				_ = os.Remove(agentsPath)
			} else {
				_ = os.WriteFile(agentsPath, []byte(cleaned), 0o644) // #nosec G306 -- AGENTS.md does not contain secrets
			}
			removed = append(removed, "AGENTS.md")
		}
	}

	if done, err := removeTOMLSection(filepath.Join(codexHome, "config.toml")); err == nil && done {
		removed = append(removed, "config.toml")
	}

	if len(removed) > 0 {
		return okf("Removed: %s", strings.Join(removed, ", "))
	}
	return ok("Nothing to remove")
}

// ---------------------------------------------------------------------------
// OpenCode
// ---------------------------------------------------------------------------

//revive:disable:flag-parameter
func opencodeMCPPath(project bool) string {
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, "opencode.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "opencode", "opencode.json")
}

func opencodeScope(project bool) string {
	if project {
		return "opencode.json"
	}
	return "~/.config/opencode/opencode.json"
}

// SetupOpencode registers bizdesk with OpenCode.
func SetupOpencode(project bool, srv Server) Result {
	if added, err := installEntry(opencodeMCPPath(project), "mcp", srv.opencodeEntry()); err == nil && added {
		return okf("Installed: mcp in %s", opencodeScope(project))
	}
	return ok("Already installed")
}

// UninstallOpencode removes bizdesk from OpenCode.
func UninstallOpencode(project bool) Result {
	if done, err := uninstallEntry(opencodeMCPPath(project), "mcp"); err == nil && done {
		return okf("Removed: mcp from %s", opencodeScope(project))
	}
	return ok("Nothing to remove")
}

//revive:enable:flag-parameter
