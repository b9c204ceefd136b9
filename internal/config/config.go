package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ThemeConfig holds TUI color configuration. Empty fields fall back to the
// preset's value.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// KDFConfig holds the argon2id cost used when a journal is written.
type KDFConfig struct {
	Time    uint32 `mapstructure:"time"`
	Memory  uint32 `mapstructure:"memory"`
	Threads uint8  `mapstructure:"threads"`
}

// Config holds the application configuration.
type Config struct {
	DefaultFile string      `mapstructure:"default_file"`
	LogFile     string      `mapstructure:"log_file"`
	MaxSize     int64       `mapstructure:"max_size"`
	KDF         KDFConfig   `mapstructure:"kdf"`
	Theme       ThemeConfig `mapstructure:"theme"`
}

// DefaultDataDir returns the default data directory (~/.jrnlctl/).
func DefaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", ".jrnlctl")
	}
	return filepath.Join(home, ".jrnlctl")
}

// ExpandPath expands a leading ~ in path. Paths that cannot be expanded are
// returned unchanged.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("default_file", "")
	v.SetDefault("log_file", "")
	v.SetDefault("max_size", 32<<20)
	v.SetDefault("kdf.time", 1)
	v.SetDefault("kdf.memory", 64*1024)
	v.SetDefault("kdf.threads", 4)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(ExpandPath(configPath))
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "jrnlctl"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: JRNLCTL_DEFAULT_FILE, JRNLCTL_LOG_FILE, etc.
	v.SetEnvPrefix("JRNLCTL")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFile != "" {
		cfg.DefaultFile = ExpandPath(cfg.DefaultFile)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = ExpandPath(cfg.LogFile)
	}

	return cfg, nil
}
