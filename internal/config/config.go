// Package config loads CLI settings from defaults, an optional YAML file,
// APRENDE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "APRENDE"

// Config holds the application settings.
type Config struct {
	// DBPath is empty when the store should pick its default location.
	DBPath          string `mapstructure:"db"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
	LogFormat       string `mapstructure:"log_format" validate:"required,oneof=text json"`
	DefaultStrategy string `mapstructure:"strategy" validate:"required"`
	SpacedStride    int    `mapstructure:"stride" validate:"gte=1"`
}

// Defaults for every key.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultStrategy  = "sequential"
	DefaultStride    = 3
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"db":         "db",
	"log-level":  "log_level",
	"log-format": "log_format",
	"strategy":   "strategy",
	"stride":     "stride",
}

// Load resolves the configuration. configFile may be empty, in which case
// $XDG_CONFIG_HOME/aprende/config.yaml is read when present. flags may be
// nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("db", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("strategy", DefaultStrategy)
	v.SetDefault("stride", DefaultStride)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.DefaultStrategy = strings.ToLower(strings.TrimSpace(cfg.DefaultStrategy))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(dir, "aprende"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
