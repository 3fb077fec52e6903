package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/bizdesk/internal/config"
)

func writeFile(c *qt.C, dir, name, content string) string {
	c.Helper()
	path := filepath.Join(dir, name)
	c.Assert(os.WriteFile(path, []byte(content), 0o600), qt.IsNil)
	return path
}

func TestDefault_HappyPath(t *testing.T) {
	c := qt.New(t)
	cfg := config.Default()
	c.Assert(cfg, qt.IsNotNil)
	c.Assert(cfg.API.BaseURL, qt.Equals, "")
	c.Assert(cfg.API.Timeout, qt.Equals, "30s")
	c.Assert(cfg.API.Compression, qt.IsTrue)
	c.Assert(cfg.Cache.Enabled, qt.IsTrue)
	c.Assert(cfg.Gateway.Addr, qt.Equals, "127.0.0.1:8787")
	c.Assert(cfg.Log.Level, qt.Equals, "warn")
	c.Assert(cfg.Output.Format, qt.Equals, config.FormatTable)
	c.Assert(cfg.RequireBaseURL(), qt.ErrorIs, config.ErrNoBaseURL)
}

func TestLoad_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("non-existent file returns defaults without error", func(c *qt.C) {
		cfg, err := config.Load("/nonexistent/config.yaml")
		c.Assert(err, qt.IsNil)
		c.Assert(cfg.API.Timeout, qt.Equals, "30s")
		c.Assert(cfg.Cache.Enabled, qt.IsTrue)
	})

	tests := []struct {
		name            string
		yaml            string
		wantBaseURL     string
		wantTimeout     time.Duration
		wantCompression bool
		wantCache       bool
		wantFormat      string
		wantLevel       string
	}{
		{
			name:            "api section",
			yaml:            "api:\n  base_url: https://example.com/backend/api\n  timeout: 5s\n  compression: false\n",
			wantBaseURL:     "https://example.com/backend/api",
			wantTimeout:     5 * time.Second,
			wantCompression: false,
			wantCache:       true,
			wantFormat:      "table",
			wantLevel:       "warn",
		},
		{
			name:            "cache disabled",
			yaml:            "cache:\n  enabled: false\n",
			wantTimeout:     30 * time.Second,
			wantCompression: true,
			wantCache:       false,
			wantFormat:      "table",
			wantLevel:       "warn",
		},
		{
			name:            "output and log",
			yaml:            "output:\n  format: JSON\nlog:\n  level: Debug\n",
			wantTimeout:     30 * time.Second,
			wantCompression: true,
			wantCache:       true,
			wantFormat:      "json",
			wantLevel:       "debug",
		},
	}

	for _, tc := range tests {
		c.Run(tc.name, func(c *qt.C) {
			path := writeFile(c, c.TempDir(), "config.yaml", tc.yaml)
			cfg, err := config.Load(path)
			c.Assert(err, qt.IsNil)
			c.Assert(cfg.API.BaseURL, qt.Equals, tc.wantBaseURL)
			c.Assert(cfg.API.TimeoutDuration(), qt.Equals, tc.wantTimeout)
			c.Assert(cfg.API.Compression, qt.Equals, tc.wantCompression)
			c.Assert(cfg.Cache.Enabled, qt.Equals, tc.wantCache)
			c.Assert(cfg.Output.Format, qt.Equals, tc.wantFormat)
			c.Assert(cfg.Log.Level, qt.Equals, tc.wantLevel)
		})
	}
}

func TestLoad_FailurePath(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "api: [\n", `config.Load .*`},
		{"bad timeout", "api:\n  timeout: soon\n", `config.Load .*api.timeout: .*`},
		{"bad format", "output:\n  format: pdf\n", `config.Load .*output.format "pdf" must be table, json or csv`},
	}

	for _, tc := range tests {
		c.Run(tc.name, func(c *qt.C) {
			path := writeFile(c, c.TempDir(), "config.yaml", tc.yaml)
			_, err := config.Load(path)
			c.Assert(err, qt.ErrorMatches, tc.wantErr)
		})
	}
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	c := qt.New(t)

	cfg := config.Default()
	cfg.API.BaseURL = "https://example.com/api"
	cfg.Output.Format = config.FormatCSV
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c.Assert(config.Save(path, cfg), qt.IsNil)

	got, err := config.Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, cfg)
}

func TestApplyEnv(t *testing.T) {
	c := qt.New(t)

	c.Run("legacy variable is honoured", func(c *qt.C) {
		c.Setenv(config.EnvLegacyURL, "https://legacy.example.com/api")
		c.Setenv(config.EnvAPIURL, "")
		cfg := config.Default()
		config.ApplyEnv(cfg)
		c.Assert(cfg.API.BaseURL, qt.Equals, "https://legacy.example.com/api")
	})

	c.Run("BIZDESK_API_URL wins", func(c *qt.C) {
		c.Setenv(config.EnvLegacyURL, "https://legacy.example.com/api")
		c.Setenv(config.EnvAPIURL, "https://new.example.com/api")
		cfg := config.Default()
		config.ApplyEnv(cfg)
		c.Assert(cfg.API.BaseURL, qt.Equals, "https://new.example.com/api")
	})

	c.Run("log level and timeout", func(c *qt.C) {
		c.Setenv(config.EnvLogLevel, "INFO")
		c.Setenv(config.EnvAPITimeout, "2s")
		cfg := config.Default()
		config.ApplyEnv(cfg)
		c.Assert(cfg.Log.Level, qt.Equals, "info")
		c.Assert(cfg.API.TimeoutDuration(), qt.Equals, 2*time.Second)
	})
}

func TestLoadDotEnv(t *testing.T) {
	c := qt.New(t)

	home := t.TempDir()
	writeFile(c, home, ".env", "API_BASE_URL=https://dotenv.example.com/api\n")
	c.Setenv(config.EnvLegacyURL, "")
	c.Assert(os.Unsetenv(config.EnvLegacyURL), qt.IsNil)

	c.Assert(config.LoadDotEnv(home), qt.IsNil)
	c.Assert(os.Getenv(config.EnvLegacyURL), qt.Equals, "https://dotenv.example.com/api")
}

func TestResolveHome(t *testing.T) {
	c := qt.New(t)

	c.Run("flag wins", func(c *qt.C) {
		tmp := c.TempDir()
		c.Setenv(config.EnvHome, "/somewhere/else")
		path, source := config.ResolveHome(tmp)
		c.Assert(source, qt.Equals, "flag")
		c.Assert(path, qt.Equals, tmp)
	})

	c.Run("env override", func(c *qt.C) {
		tmp := c.TempDir()
		c.Setenv(config.EnvHome, tmp)
		path, source := config.ResolveHome("")
		c.Assert(source, qt.Equals, "env")
		c.Assert(path, qt.Equals, tmp)
	})

	c.Run("persisted home", func(c *qt.C) {
		c.Setenv("HOME", c.TempDir())
		c.Setenv(config.EnvHome, "")
		target := c.TempDir()
		got, err := config.SetPersistedHome(target)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, target)

		path, source := config.ResolveHome("")
		c.Assert(source, qt.Equals, "config")
		c.Assert(path, qt.Equals, target)
	})

	c.Run("default", func(c *qt.C) {
		userHome := c.TempDir()
		c.Setenv("HOME", userHome)
		c.Setenv(config.EnvHome, "")
		path, source := config.ResolveHome("")
		c.Assert(source, qt.Equals, "default")
		c.Assert(path, qt.Equals, filepath.Join(userHome, ".bizdesk"))
	})
}
