// Package config loads xbase configuration from defaults, a YAML file, and
// XBASE_ environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Output format constants.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

type Config struct {
	Project ProjectConfig `koanf:"project"`
	Devices DeviceConfig  `koanf:"devices"`
	Build   BuildConfig   `koanf:"build"`
	UI      UIConfig      `koanf:"ui"`
}

type ProjectConfig struct {
	Root string `koanf:"root"`
}

type DeviceConfig struct {
	AvailableOnly bool `koanf:"available_only"` // Drop unavailable simulators from the inventory
	Timeout       int  `koanf:"timeout"`        // simctl invocation timeout in seconds
}

type BuildConfig struct {
	Configuration   string `koanf:"configuration"`
	DerivedDataPath string `koanf:"derived_data_path"`
}

type UIConfig struct {
	ColoredOutput bool   `koanf:"colored_output"`
	Format        string `koanf:"format"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	// XBASE_PROJECT_ROOT=~/repos/app maps to project.root.
	if err := k.Load(env.Provider("XBASE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "XBASE_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Project.Root = expandPath(cfg.Project.Root)
	cfg.Build.DerivedDataPath = expandPath(cfg.Build.DerivedDataPath)

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.UI.Format {
	case FormatTable, FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("unknown output format: %s (supported: %s, %s, %s)",
			c.UI.Format, FormatTable, FormatJSON, FormatMarkdown)
	}

	if c.Project.Root == "" {
		return fmt.Errorf("project root is required")
	}

	if c.Build.Configuration == "" {
		return fmt.Errorf("build configuration is required")
	}

	if c.Devices.Timeout <= 0 {
		return fmt.Errorf("devices timeout must be positive")
	}

	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
