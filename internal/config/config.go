package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/mazurov/claude-token-cache/internal/defaults"
	"github.com/mazurov/claude-token-cache/keystore"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "CLAUDE_TOKEN_CACHE"

const configDir = ".config/claude-token-cache"

// Config holds all configuration for building a resolver
type Config struct {
	Cache    CacheConfig    `mapstructure:"cache"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CacheConfig holds the own cache namespace
type CacheConfig struct {
	Service string `mapstructure:"service"`
}

// UpstreamConfig locates the upstream credential record
type UpstreamConfig struct {
	Service string `mapstructure:"service"`
	Account string `mapstructure:"account"` // only used by backends without unfiltered lookup
}

// StoreConfig selects the credential store backend
type StoreConfig struct {
	Backend  string `mapstructure:"backend"`  // auto | keychain | system | encrypted-file | file
	Path     string `mapstructure:"path"`     // file path or directory, defaults under ~/.config
	Password string `mapstructure:"password"` // encrypted-file only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // json | text
}

// NewViper creates a new viper instance with defaults and environment binding
func NewViper() *viper.Viper {
	v := viper.New()

	// Set defaults
	v.SetDefault("cache.service", defaults.CacheService)
	v.SetDefault("upstream.service", defaults.UpstreamService)
	v.SetDefault("upstream.account", "")
	v.SetDefault("store.backend", keystore.BackendAuto)
	v.SetDefault("store.path", "")
	v.SetDefault("store.password", "")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	// Bind environment variables with CLAUDE_TOKEN_CACHE_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load loads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence
func Load(path string) (*Config, error) {
	v := NewViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a pre-configured viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Cache.Service == "" {
		return fmt.Errorf("cache.service cannot be empty")
	}
	if c.Upstream.Service == "" {
		return fmt.Errorf("upstream.service cannot be empty")
	}
	if c.Cache.Service == c.Upstream.Service {
		return fmt.Errorf("cache.service must differ from upstream.service")
	}

	// Validate store backend
	if !slices.Contains(keystore.Backends(), c.Store.Backend) {
		return fmt.Errorf("store.backend must be one of %s", strings.Join(keystore.Backends(), ", "))
	}
	if c.Store.Backend == keystore.BackendEncryptedFile && c.Store.Password == "" {
		return fmt.Errorf("store.password is required for the encrypted-file backend")
	}

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn, or error")
	}

	// Validate logging format
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be json or text")
	}

	return nil
}

// StorePath returns store.path, or the default location for file backends
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}

	var name string
	switch c.Store.Backend {
	case keystore.BackendFile:
		name = "credentials.yaml"
	case keystore.BackendEncryptedFile:
		name = "keyring"
	default:
		return "", nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir, name), nil
}

// StoreOptions converts the store configuration into keystore options
func (c *Config) StoreOptions() (keystore.Options, error) {
	path, err := c.StorePath()
	if err != nil {
		return keystore.Options{}, err
	}
	return keystore.Options{
		Backend:        c.Store.Backend,
		Path:           path,
		Password:       c.Store.Password,
		DefaultAccount: c.Upstream.Account,
	}, nil
}

// MaskPassword returns a masked version of the store password for logging
func (c *Config) MaskPassword() string {
	if c.Store.Password == "" {
		return ""
	}
	return "***"
}
