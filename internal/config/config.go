package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/phaseboard/internal/config/colors"
	"github.com/thenoetrevino/phaseboard/internal/metrics"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"gopkg.in/yaml.v3"
)

// Notification log drivers
const (
	LogDriverNone   = "none"
	LogDriverSQLite = "sqlite"
	LogDriverRedis  = "redis"
)

// Config represents the application configuration
type Config struct {
	Thresholds    metrics.Thresholds `yaml:"thresholds"`
	Notifications NotificationConfig `yaml:"notifications"`
	ColorScheme   colors.ColorScheme `yaml:"theme"`
}

// NotificationConfig controls the in-memory ledger and its optional log
type NotificationConfig struct {
	Capacity int       `yaml:"capacity"`
	Log      LogConfig `yaml:"log"`
}

// LogConfig selects where published notifications are appended
type LogConfig struct {
	Driver    string `yaml:"driver"`     // none, sqlite or redis
	Path      string `yaml:"path"`       // sqlite database file
	RedisAddr string `yaml:"redis_addr"` // host:port
	RedisKey  string `yaml:"redis_key"`
	Retries   int    `yaml:"retries"` // attempts per append
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile loads and merges theme from PHASEBOARD_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("PHASEBOARD_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		config := Default()
		loadThemeFile(config)
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		config := Default()
		loadThemeFile(config)
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	// Load theme from PHASEBOARD_THEME_FILE if set
	loadThemeFile(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	switch c.Notifications.Log.Driver {
	case LogDriverNone, LogDriverSQLite, LogDriverRedis:
	default:
		return fmt.Errorf("unknown notification log driver %q (must be: none, sqlite, redis)", c.Notifications.Log.Driver)
	}
	if c.Thresholds.CTR < 0 || c.Thresholds.ConversionRate < 0 || c.Thresholds.ROAS < 0 {
		return fmt.Errorf("thresholds cannot be negative")
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "phaseboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "phaseboard", "config.yaml"), nil
}

// DataDir returns ~/.phaseboard, where logs and the notification database live
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".phaseboard"), nil
}

// applyDefaults fills in missing configuration with defaults.
// A zero threshold is treated as unset.
func (c *Config) applyDefaults() {
	def := metrics.DefaultThresholds()
	if c.Thresholds.CTR == 0 {
		c.Thresholds.CTR = def.CTR
	}
	if c.Thresholds.ConversionRate == 0 {
		c.Thresholds.ConversionRate = def.ConversionRate
	}
	if c.Thresholds.ROAS == 0 {
		c.Thresholds.ROAS = def.ROAS
	}

	if c.Notifications.Capacity <= 0 {
		c.Notifications.Capacity = models.DefaultNotificationCapacity
	}
	if c.Notifications.Log.Driver == "" {
		c.Notifications.Log.Driver = LogDriverNone
	}
	if c.Notifications.Log.Path == "" {
		if dir, err := DataDir(); err == nil {
			c.Notifications.Log.Path = filepath.Join(dir, "notifications.db")
		}
	}
	if c.Notifications.Log.RedisAddr == "" {
		c.Notifications.Log.RedisAddr = "localhost:6379"
	}
	if c.Notifications.Log.RedisKey == "" {
		c.Notifications.Log.RedisKey = "phaseboard:notifications"
	}
	if c.Notifications.Log.Retries <= 0 {
		c.Notifications.Log.Retries = 3
	}

	c.ColorScheme.ApplyDefaults()
}
