package shared

import (
	"os"
	"path/filepath"

	"github.com/go-ports/bizdesk/internal/setup"
)

// MCPServer describes the `bizdesk mcp` entry written into agent configs.
// A home given by flag or BIZDESK_HOME is pinned in the entry, since the
// agent launches the server without the caller's flags or shell.
func (c *Context) MCPServer(command string) setup.Server {
	srv := setup.Server{Command: command}
	if home, source := c.ResolveHome(); source == "flag" || source == "env" {
		srv.Home = home
	}
	return srv
}

// AgentDir resolves an agent's dot directory: configDir when given, else
// dotDir under the working directory (project) or the user's home.
//
//revive:disable:flag-parameter
func AgentDir(dotDir, configDir string, project bool) string {
	if configDir != "" {
		return configDir
	}
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, dotDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dotDir)
}

//revive:enable:flag-parameter
