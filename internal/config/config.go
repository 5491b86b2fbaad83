package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/khrees2412/hireboard/internal/workflow"
)

// EnvPrefix prefixes environment overrides, e.g. HIREBOARD_API_URL
const EnvPrefix = "HIREBOARD"

// Config holds the application configuration
type Config struct {
	APIURL        string        `mapstructure:"api_url"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	LogLevel      string        `mapstructure:"log_level"`  // debug, info, warn, error
	LogFormat     string        `mapstructure:"log_format"` // text, json
	StatusVariant string        `mapstructure:"status_variant"`
	DBPath        string        `mapstructure:"db_path"`
}

// Variant returns the configured status action set
func (c *Config) Variant() workflow.Variant {
	return workflow.ParseVariant(c.StatusVariant)
}

// Keys lists the settings accepted by Set
var Keys = []string{"api_url", "http_timeout", "log_level", "log_format", "status_variant", "db_path"}

// Dir returns the configuration directory: $HIREBOARD_HOME, else ~/.hireboard
func Dir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".hireboard"), nil
}

// Path returns the config file inside dir
func Path(dir string) string {
	return filepath.Join(dir, "config.yaml")
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(Path(dir))
	v.SetConfigType("yaml")

	v.SetDefault("api_url", "http://localhost:8000")
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("status_variant", string(workflow.VariantExtended))
	v.SetDefault("db_path", filepath.Join(dir, "hireboard.db"))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads dir/config.yaml, creating it with defaults on first use.
// Environment variables override file values.
func Load(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(Path(dir)); errors.Is(err, os.ErrNotExist) {
		if err := createDefaultConfig(Path(dir)); err != nil {
			return nil, err
		}
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url %q must be an http or https URL", c.APIURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	return nil
}

func createDefaultConfig(path string) error {
	defaultConfig := `# Hireboard Configuration
api_url: http://localhost:8000
http_timeout: 10s

# Logging goes to stderr: debug, info, warn, error / text, json
log_level: warn
log_format: text

# Actions offered by "review next": extended or narrow
status_variant: extended
`
	if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}

// Set updates one key in dir/config.yaml. The resulting file must still load.
func Set(dir, key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown key %q, must be one of: %s", key, strings.Join(Keys, ", "))
	}
	if _, err := Load(dir); err != nil {
		return err
	}

	// check the merged result before touching the file
	check := newViper(dir)
	if err := check.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	check.Set(key, value)
	candidate := &Config{}
	if err := check.Unmarshal(candidate); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := candidate.validate(); err != nil {
		return err
	}

	// a bare instance so defaults and env overrides are not written out
	v := viper.New()
	v.SetConfigFile(Path(dir))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	v.Set(key, value)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
