package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ekaya-inc/entropy/pkg/naming"
)

// DefaultPath is the configuration file read by Load.
const DefaultPath = "config.yaml"

// Config holds all configuration for entropy.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords) must only come from environment variables.
type Config struct {
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	Naming NamingConfig `yaml:"naming"`

	// Database backs unique slug reservations. Optional for name resolution.
	Database DatabaseConfig `yaml:"database"`
}

// NamingConfig holds the naming convention settings.
type NamingConfig struct {
	// MaxSlugLength caps derived slugs (0 = uncapped).
	MaxSlugLength int `yaml:"max_slug_length" env:"NAMING_MAX_SLUG_LENGTH" env-default:"50"`
	// TemplateSuffix is appended to derived template paths.
	TemplateSuffix string `yaml:"template_suffix" env:"NAMING_TEMPLATE_SUFFIX" env-default:".html"`
	// OverridesFile is an optional YAML file of per-identifier overrides.
	OverridesFile string `yaml:"overrides_file" env:"NAMING_OVERRIDES_FILE" env-default:""`
	// MaxSlugAttempts bounds the "-N" suffix search for unique slugs.
	MaxSlugAttempts int `yaml:"max_slug_attempts" env:"NAMING_MAX_SLUG_ATTEMPTS" env-default:"1000"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"entropy"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"entropy"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// Load reads configuration from path with environment variable overrides.
// A missing file is not an error: defaults and environment are used.
// The version parameter is injected at build time and set on the returned Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Naming.MaxSlugLength < 0 {
		return fmt.Errorf("naming.max_slug_length must not be negative")
	}
	if c.Naming.MaxSlugAttempts <= 0 {
		return fmt.Errorf("naming.max_slug_attempts must be positive")
	}
	return nil
}

// ResolverOptions builds naming options, loading the overrides file if set.
func (c *Config) ResolverOptions() (naming.Options, error) {
	opts := naming.Options{
		MaxSlugLength:  c.Naming.MaxSlugLength,
		TemplateSuffix: c.Naming.TemplateSuffix,
	}
	if c.Naming.OverridesFile == "" {
		return opts, nil
	}

	overrides, err := naming.LoadOverrides(c.Naming.OverridesFile)
	if err != nil {
		return naming.Options{}, err
	}
	opts.Overrides = overrides
	return opts, nil
}

// ConnectionString returns a PostgreSQL URL. The host is rewritten for
// Docker when pointing at localhost.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     ResolveHostForDocker(c.Host) + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
