package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds backend configuration
type ServerConfig struct {
	URL   string `mapstructure:"url"`   // Backend base URL
	Token string `mapstructure:"token"` // Bearer token
}

// CacheConfig holds local member cache configuration
type CacheConfig struct {
	Dir    string        `mapstructure:"dir"`     // Empty keeps the cache in memory only
	MaxAge time.Duration `mapstructure:"max_age"` // How long a cached member stays fresh
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Dir:    defaultCachePath(),
			MaxAge: 15 * time.Minute,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "mediaclubs", "mediaclubs.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "mediaclubs", "mediaclubs.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "mediaclubs")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "mediaclubs")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "mediaclubs", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "mediaclubs", "cache")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Environment variable overrides (MEDIACLUBS_SERVER_URL, ...)
	v.SetEnvPrefix("MEDIACLUBS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register keys so AutomaticEnv applies during Unmarshal
	defaults := DefaultConfig()
	v.SetDefault("server.url", defaults.Server.URL)
	v.SetDefault("server.token", defaults.Server.Token)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("cache.max_age", defaults.Cache.MaxAge)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.level", defaults.Logging.Level)
	return v
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}
	return unmarshal(v)
}

// LoadConfigFrom loads configuration from an explicit file path
func LoadConfigFrom(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration to config.yaml in dir, or the default
// config directory when dir is empty
func SaveConfig(cfg *Config, dir string) error {
	if dir == "" {
		dir = defaultConfigPath()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.token", cfg.Server.Token)
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.max_age", cfg.Cache.MaxAge.String())
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}
