// Package config loads habitual's layered configuration.
//
// Sources, lowest priority first:
//
//  1. Built-in defaults
//  2. ~/.habitual/config.yaml
//  3. ./.habitual/config.yaml
//  4. The file named by --config
//  5. HABITUAL_* environment variables (HABITUAL_HTTP_ADDR for http.addr)
//  6. Command-line flags that were set explicitly
package config

// Config is the resolved configuration.
type Config struct {
	// Database is the SQLite file habits are stored in.
	Database string `mapstructure:"database"`

	// Format is the default output format, "text" or "json".
	Format string `mapstructure:"format"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`

	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig configures `habitual serve`.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// Defaults.
const (
	DefaultDatabaseName = "habits.db"
	DefaultFormat       = "text"
	DefaultHTTPAddr     = "127.0.0.1:8080"
)

// DefaultConfig returns the default configuration for the given home
// directory. With no home directory the database lives in the working
// directory.
func DefaultConfig(home string) *Config {
	db := DefaultDatabaseName
	if home != "" {
		db = DatabasePath(home)
	}
	return &Config{
		Database: db,
		Format:   DefaultFormat,
		HTTP: HTTPConfig{
			Addr: DefaultHTTPAddr,
		},
	}
}
