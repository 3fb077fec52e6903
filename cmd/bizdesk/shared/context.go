// Package shared holds the context passed to all CLI commands.
package shared

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/internal/buildinfo"
	"github.com/go-ports/bizdesk/internal/config"
	"github.com/go-ports/bizdesk/internal/logging"
	"github.com/go-ports/bizdesk/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Home overrides the bizdesk home directory.
	// When empty, resolution falls through to BIZDESK_HOME env → persisted config → ~/.bizdesk.
	Home string

	// APIURL overrides api.base_url, BIZDESK_API_URL and API_BASE_URL.
	APIURL string

	// Output is table, json or csv. Empty means output.format from config.
	Output string

	// Select is a JSONPath expression applied to the JSON form of the result.
	Select string

	// LogLevel overrides log.level and BIZDESK_LOG_LEVEL.
	LogLevel string
}

// ResolveHome returns the bizdesk home and where it came from.
func (c *Context) ResolveHome() (home, source string) {
	return config.ResolveHome(c.Home)
}

// Config loads the effective configuration: config.yaml, then .env files and
// environment variables, then root flags.
func (c *Context) Config() (cfg *config.Config, home string, err error) {
	home, _ = c.ResolveHome()
	if err := config.LoadDotEnv(home); err != nil {
		return nil, "", err
	}
	cfg, err = config.Load(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, "", err
	}
	config.ApplyEnv(cfg)

	if v := strings.TrimSpace(c.APIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(c.LogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := strings.ToLower(strings.TrimSpace(c.Output)); v != "" {
		if v != config.FormatTable && v != config.FormatJSON && v != config.FormatCSV {
			return nil, "", fmt.Errorf("--output %q must be table, json or csv", c.Output)
		}
		cfg.Output.Format = v
	}
	return cfg, home, nil
}

// Logger builds the CLI logger, writing to the command's stderr.
func (c *Context) Logger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Out:     cmd.ErrOrStderr(),
		Service: "bizdesk",
		Version: buildinfo.Version,
	})
}

// Service builds the service for one command run. Callers must Close it.
func (c *Context) Service(cmd *cobra.Command) (*service.Service, error) {
	cfg, home, err := c.Config()
	if err != nil {
		return nil, err
	}
	return service.New(service.Options{
		Home:   home,
		Config: cfg,
		Logger: c.Logger(cmd, cfg),
	})
}

// Printer returns the output printer configured for cmd.
func (c *Context) Printer(cmd *cobra.Command) (*Printer, error) {
	cfg, _, err := c.Config()
	if err != nil {
		return nil, err
	}
	return &Printer{out: cmd.OutOrStdout(), format: cfg.Output.Format, selectExpr: c.Select}, nil
}
