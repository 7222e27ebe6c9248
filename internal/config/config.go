package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete taskstat configuration
type Config struct {
	Specs   SpecsConfig   `mapstructure:"specs"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SpecsConfig controls where task documents are discovered
type SpecsConfig struct {
	// Dir is the directory that holds one folder per spec
	Dir string `mapstructure:"dir"`
	// File is the task document filename inside each spec folder
	File string `mapstructure:"file"`
}

// UIConfig controls terminal output
type UIConfig struct {
	// Theme is the color theme for rendered output
	// Options: "default", "mono"
	Theme string `mapstructure:"theme"`
	// Width is the maximum render width in columns
	Width int `mapstructure:"width"`
	// Color enables ANSI color output
	Color bool `mapstructure:"color"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled turns debug logging on
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level (debug, info, warn, error)
	Level string `mapstructure:"level"`
	// Dir is where the log file is written; empty means stderr
	Dir string `mapstructure:"dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Specs: SpecsConfig{
			Dir:  "specs",
			File: "tasks.md",
		},
		UI: UIConfig{
			Theme: "default",
			Width: 100,
			Color: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers the default values with viper so they apply
// even when no config file is present
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("specs.dir", defaults.Specs.Dir)
	viper.SetDefault("specs.file", defaults.Specs.File)

	viper.SetDefault("ui.theme", defaults.UI.Theme)
	viper.SetDefault("ui.width", defaults.UI.Width)
	viper.SetDefault("ui.color", defaults.UI.Color)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// Validate checks the configuration for invalid values and returns a
// message per problem found
func (c *Config) Validate() []string {
	var errs []string

	if c.Specs.Dir == "" {
		errs = append(errs, "specs.dir must not be empty")
	}
	if c.Specs.File == "" {
		errs = append(errs, "specs.file must not be empty")
	}
	if !IsValidTheme(c.UI.Theme) {
		errs = append(errs, fmt.Sprintf("ui.theme %q is not one of %s",
			c.UI.Theme, strings.Join(ValidThemes(), ", ")))
	}
	if c.UI.Width < 40 {
		errs = append(errs, fmt.Sprintf("ui.width must be at least 40, got %d", c.UI.Width))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}

	return errs
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskstat")
	}
	// Fall back to ~/.config/taskstat
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskstat"
	}
	return filepath.Join(home, ".config", "taskstat")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidThemes returns the list of valid theme names
func ValidThemes() []string {
	return []string{"default", "mono"}
}

// IsValidTheme checks if the given theme name is valid
func IsValidTheme(theme string) bool {
	for _, t := range ValidThemes() {
		if t == theme {
			return true
		}
	}
	return false
}
