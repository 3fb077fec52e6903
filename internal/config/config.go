// Package config handles configuration loading and bizdesk home resolution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrNoBaseURL is returned by RequireBaseURL when no API base URL is set.
var ErrNoBaseURL = errors.New("API base URL is not set (api.base_url in config.yaml, BIZDESK_API_URL or --api-url)")

// Environment variables consulted by ApplyEnv and ResolveHome.
const (
	EnvHome       = "BIZDESK_HOME"
	EnvAPIURL     = "BIZDESK_API_URL"
	EnvLegacyURL  = "API_BASE_URL"
	EnvLogLevel   = "BIZDESK_LOG_LEVEL"
	EnvAPITimeout = "BIZDESK_API_TIMEOUT"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// APIConfig holds settings for the remote PHP API.
type APIConfig struct {
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`     // Go duration, e.g. "30s"
	Compression bool   `yaml:"compression"` // ask for brotli responses
}

// TimeoutDuration parses Timeout, falling back to 30s.
func (a APIConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// CacheConfig controls the local reference cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GatewayConfig controls `bizdesk serve`.
type GatewayConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // table | json | csv
}

// Config is the root configuration stored in <home>/config.yaml.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Gateway GatewayConfig `yaml:"gateway"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout:     "30s",
			Compression: true,
		},
		Cache:   CacheConfig{Enabled: true},
		Gateway: GatewayConfig{Addr: "127.0.0.1:8787"},
		Log:     LogConfig{Level: "warn"},
		Output:  OutputConfig{Format: FormatTable},
	}
}

// RequireBaseURL returns ErrNoBaseURL when the API base URL is empty.
func (c *Config) RequireBaseURL() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return ErrNoBaseURL
	}
	return nil
}

// Load reads config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config.Load %s: %w", path, err)
	}

	if api, ok := raw["api"].(map[string]any); ok {
		if v, ok := api["base_url"].(string); ok {
			cfg.API.BaseURL = strings.TrimSpace(v)
		}
		if v, ok := api["timeout"].(string); ok && v != "" {
			if _, err := time.ParseDuration(v); err != nil {
				return nil, fmt.Errorf("config.Load %s: api.timeout: %w", path, err)
			}
			cfg.API.Timeout = v
		}
		if v, ok := api["compression"].(bool); ok {
			cfg.API.Compression = v
		}
	}

	if c, ok := raw["cache"].(map[string]any); ok {
		if v, ok := c["enabled"].(bool); ok {
			cfg.Cache.Enabled = v
		}
	}

	if gw, ok := raw["gateway"].(map[string]any); ok {
		if v, ok := gw["addr"].(string); ok && v != "" {
			cfg.Gateway.Addr = v
		}
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v, ok := lg["level"].(string); ok && v != "" {
			cfg.Log.Level = strings.ToLower(v)
		}
	}

	if out, ok := raw["output"].(map[string]any); ok {
		if v, ok := out["format"].(string); ok && v != "" {
			v = strings.ToLower(v)
			if v != FormatTable && v != FormatJSON && v != FormatCSV {
				return nil, fmt.Errorf("config.Load %s: output.format %q must be table, json or csv", path, v)
			}
			cfg.Output.Format = v
		}
	}

	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return os.WriteFile(path, out, 0o600)
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// LoadDotEnv loads .env from the working directory and then from home.
// Variables already set in the environment are never overridden, so the
// first file to define a key wins.
func LoadDotEnv(home string) error {
	for _, p := range []string{".env", filepath.Join(home, ".env")} {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config.LoadDotEnv %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment variables on cfg. BIZDESK_API_URL wins over
// API_BASE_URL.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLegacyURL)); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPITimeout)); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = v
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

// ---------------------------------------------------------------------------
// Home resolution
// ---------------------------------------------------------------------------

// globalConfigPath returns the path to the global bizdesk config file.
// This file stores only home (and future global settings).
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bizdesk", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveHome returns the bizdesk home and the source of the resolution.
// Priority: flag → BIZDESK_HOME → persisted global config → ~/.bizdesk.
// source is one of "flag", "env", "config" or "default".
func ResolveHome(flag string) (path, source string) {
	if flag = strings.TrimSpace(flag); flag != "" {
		if p, err := normalizePath(flag); err == nil {
			return p, "flag"
		}
	}

	if env := os.Getenv(EnvHome); env != "" {
		if p, err := normalizePath(env); err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedHome(); ok {
		return persisted, "config"
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bizdesk"), "default"
}

// GetPersistedHome reads home from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedHome() (string, bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", false, nil
	}

	val, _ := raw["home"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedHome normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Read existing global config, preserving any other keys.
	var raw map[string]any
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &raw)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["home"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}
