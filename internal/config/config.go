// Package config loads settings from a config file, NYAYA_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/nyaya/internal/analyzer"
	"github.com/valpere/nyaya/internal/lang"
)

const EnvPrefix = "NYAYA"

// Keys shared between flag binding and defaults.
const (
	KeyEndpoint  = "endpoint"
	KeyTimeout   = "timeout"
	KeyLang      = "lang"
	KeyHistoryDB = "history.db"
	KeyLogLevel  = "log.level"
	KeyLogFile   = "log.file"
)

type Config struct {
	Endpoint string        `mapstructure:"endpoint" json:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
	Lang     string        `mapstructure:"lang" json:"lang"`
	History  HistoryConfig `mapstructure:"history" json:"history"`
	Log      LogConfig     `mapstructure:"log" json:"log"`
}

type HistoryConfig struct {
	// DB is the SQLite path; empty disables history.
	DB string `mapstructure:"db" json:"db"`
}

type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
	// File receives logs instead of stderr when set.
	File string `mapstructure:"file" json:"file"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpoint, analyzer.DefaultEndpoint)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyLang, lang.Default)
	v.SetDefault(KeyHistoryDB, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
}

// DefaultPath returns $HOME/.config/nyaya, or "" when the home directory is
// unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nyaya")
}

// Load reads configFile (or config.yaml from DefaultPath when empty) into v
// and decodes the merged settings. A missing default file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := DefaultPath(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	return nil
}
