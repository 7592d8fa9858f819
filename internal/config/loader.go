package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "HABITUAL"

// Options controls where Load looks.
type Options struct {
	// Home and Cwd locate the global and project files. Empty values are
	// filled from the OS; an unknown home directory skips the global file.
	Home string
	Cwd  string

	// ConfigFile is an explicit file that must exist.
	ConfigFile string

	// Flags maps configuration keys to command-line flags. A flag overrides
	// every other source only if it was set on the command line.
	Flags map[string]*pflag.Flag
}

// Load resolves the configuration from every source.
func Load(opts Options) (*Config, error) {
	if opts.Home == "" {
		opts.Home, _ = os.UserHomeDir()
	}
	if opts.Cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		opts.Cwd = cwd
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig(opts.Home))

	if opts.Home != "" {
		if err := mergeFile(v, GlobalConfigPath(opts.Home)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if err := mergeFile(v, ProjectConfigPath(opts.Cwd)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if opts.ConfigFile != "" {
		if err := mergeFile(v, opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %q: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Database = ExpandHome(cfg.Database, opts.Home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("format must be \"text\" or \"json\", got %q", c.Format)
	}
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database", cfg.Database)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("http.addr", cfg.HTTP.Addr)
}

// mergeFile layers a YAML file over what v already holds.
func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// ExpandHome replaces a leading "~/" in path with home.
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Dir returns the directory habitual keeps its files in under root.
func Dir(root string) string {
	return filepath.Join(root, ".habitual")
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath(home string) string {
	return filepath.Join(Dir(home), "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath(cwd string) string {
	return filepath.Join(Dir(cwd), "config.yaml")
}

// DatabasePath returns the default database location under home.
func DatabasePath(home string) string {
	return filepath.Join(Dir(home), DefaultDatabaseName)
}
