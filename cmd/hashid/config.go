package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/zoobzio/hashid"
)

// Config is the CLI configuration, merged from flags, HASHID_* environment
// variables and an optional YAML file, in that order of precedence.
type Config struct {
	Salt      string    `mapstructure:"salt"`
	MinLength uint      `mapstructure:"min_length"`
	Alphabet  string    `mapstructure:"alphabet"`
	Log       LogConfig `mapstructure:"log"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
}

// defaultConfig returns the configuration used when nothing is set.
func defaultConfig() Config {
	return Config{
		MinLength: hashid.DefaultMinLength,
		Alphabet:  hashid.DefaultAlphabet,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// newViper returns a viper instance seeded with defaults and wired to the
// HASHID_ environment. Example: HASHID_MIN_LENGTH=12.
func newViper() *viper.Viper {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("HASHID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("salt", cfg.Salt)
	v.SetDefault("min_length", cfg.MinLength)
	v.SetDefault("alphabet", cfg.Alphabet)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	return v
}

// loadConfig reads the config file at path, or searches for hashid.yaml in
// the working directory and ~/.hashid when path is empty. A missing file is
// not an error.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		path = os.Getenv("HASHID_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hashid")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".hashid"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log.format: %q", c.Log.Format)
	}
	return nil
}

// options converts the hash settings to library options.
func (c Config) options() *hashid.Options {
	return hashid.NewOptions().
		WithSalt(c.Salt).
		WithMinLength(c.MinLength).
		WithAlphabet(c.Alphabet)
}
