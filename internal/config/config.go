// Package config loads stealenv's settings from, in increasing precedence,
// built-in defaults, a config file, STEALENV_* environment variables and
// command-line flags.
//
// The config file is optional. Without --config, the first of
// config.yaml, config.yml, config.json and config.jsonc found in
// $XDG_CONFIG_HOME/stealenv (or ~/.config/stealenv) is used. JSONC files may
// contain comments and trailing commas; github.com/tidwall/jsonc strips them
// before viper parses the result as JSON.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/stealenv/internal/model"
)

// EnvPrefix is the prefix for environment overrides, e.g. STEALENV_FORMAT.
const EnvPrefix = "STEALENV"

// configBaseName is the file name searched for, without extension.
const configBaseName = "config"

// searchExtensions are tried in order when no explicit file is given.
var searchExtensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// Config is the resolved configuration for one run.
type Config struct {
	// Format is the text format used when no format flag is given.
	// Empty means "derive from Shell".
	Format string `mapstructure:"format"`

	// Export makes sh/csh output use export/setenv declarations.
	Export bool `mapstructure:"export"`

	// ProcRoot is the procfs mount point.
	ProcRoot string `mapstructure:"proc_root"`

	// Shell is the user's login shell; $SHELL unless overridden.
	Shell string `mapstructure:"shell"`

	// Verbose enables debug logging on stderr.
	Verbose bool `mapstructure:"verbose"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// DefaultFormat returns the configured format, or the one matching the
// login shell when none is configured.
func (c *Config) DefaultFormat() (model.OutputFormat, error) {
	if c.Format == "" {
		return model.DefaultFormatForShell(c.Shell), nil
	}
	return model.ParseOutputFormat(c.Format)
}

// flagKeys maps flag names to config keys for flags that viper should see.
var flagKeys = map[string]string{
	"export":    "export",
	"verbose":   "verbose",
	"proc-root": "proc_root",
}

// Load builds the configuration. explicitPath, when non-empty, must name an
// existing file. flags may be nil; when given, flags the user set override
// every other source.
func Load(explicitPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("format", "")
	v.SetDefault("export", false)
	v.SetDefault("proc_root", "/proc")
	v.SetDefault("shell", "")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("shell", EnvPrefix+"_SHELL", "SHELL"); err != nil {
		return nil, fmt.Errorf("failed to bind shell environment: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	path, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := readConfigFile(v, path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.File = path

	if cfg.Format != "" {
		if _, err := model.ParseOutputFormat(cfg.Format); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

// findConfigFile returns the file to read, or "" when there is none.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		// No $HOME and no $XDG_CONFIG_HOME: run on defaults.
		return "", nil
	}
	for _, ext := range searchExtensions {
		candidate := filepath.Join(dir, "stealenv", configBaseName+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config file %s: %w", candidate, err)
		}
	}
	return "", nil
}

// readConfigFile parses path into v, choosing the parser from the extension.
func readConfigFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
		v.SetConfigType("json")
	default:
		return fmt.Errorf("unsupported config file type %q (valid: .yaml, .yml, .json, .jsonc)", ext)
	}

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
