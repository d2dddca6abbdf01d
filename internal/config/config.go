package config

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "tornspec.yaml"

type Config struct {
	Spec      string      `koanf:"spec"`
	OutputDir string      `koanf:"output-dir"`
	Store     string      `koanf:"store"`
	Validate  bool        `koanf:"validate"`
	Fetch     FetchConfig `koanf:"fetch"`
}

type FetchConfig struct {
	URL       string        `koanf:"url"`
	UserAgent string        `koanf:"user-agent"`
	Retries   int           `koanf:"retries"`
	Timeout   time.Duration `koanf:"timeout"`
}

func defaults() map[string]any {
	return map[string]any{
		"spec":          "openapi/latest.json",
		"output-dir":    "openapi",
		"fetch.retries": 2,
		"fetch.timeout": 30 * time.Second,
	}
}

// BindCommonFlags binds the flags shared by all commands.
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: tornspec.yaml)")
	flags.StringP("spec", "s", "", "OpenAPI spec file path")
	flags.StringP("output-dir", "o", "", "Output directory for artifacts")
	flags.String("store", "", "SQLite DSN for run history (disabled when empty)")
	flags.Bool("validate", false, "Validate the document before interpreting")
	flags.String("url", "", "Spec download URL")
	flags.Int("retries", -1, "Fetch retry count")
	flags.Duration("timeout", 0, "Fetch request timeout")
	flags.String("user-agent", "", "Fetch User-Agent header")
}

// Load merges defaults, the config file, and any changed flags, in that
// precedence order.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			configFile = defaultConfigFile
		}
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name)
	}

	if v := getString("spec"); v != "" {
		m["spec"] = v
	}
	if v := getString("output-dir"); v != "" {
		m["output-dir"] = v
	}
	if v := getString("store"); v != "" {
		m["store"] = v
	}
	if flagChanged("validate") {
		if v, err := cmd.Flags().GetBool("validate"); err == nil {
			m["validate"] = v
		} else if v, err := cmd.PersistentFlags().GetBool("validate"); err == nil {
			m["validate"] = v
		}
	}
	if v := getString("url"); v != "" {
		m["fetch.url"] = v
	}
	if v := getString("user-agent"); v != "" {
		m["fetch.user-agent"] = v
	}
	if flagChanged("retries") {
		if v, err := cmd.Flags().GetInt("retries"); err == nil && v >= 0 {
			m["fetch.retries"] = v
		} else if v, err := cmd.PersistentFlags().GetInt("retries"); err == nil && v >= 0 {
			m["fetch.retries"] = v
		}
	}
	if flagChanged("timeout") {
		if v, err := cmd.Flags().GetDuration("timeout"); err == nil && v > 0 {
			m["fetch.timeout"] = v
		} else if v, err := cmd.PersistentFlags().GetDuration("timeout"); err == nil && v > 0 {
			m["fetch.timeout"] = v
		}
	}

	return m
}

func (c *Config) validate() error {
	if c.Spec == "" {
		return fmt.Errorf("spec file is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch retries must not be negative")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch timeout must not be negative")
	}
	return nil
}
