// Package config wraps viper behind a small read-only view and loads
// chipmatch settings from defaults, a config file, CHIPMATCH_ environment
// variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// CHIPMATCH_RECOMMEND_TOP_N.
const EnvPrefix = "CHIPMATCH"

// Keys.
const (
	KeyCatalogPaths      = "catalog.paths"
	KeyRecommendTopN     = "recommend.top_n"
	KeyRecommendProfile  = "recommend.profile"
	KeyRecommendPriority = "recommend.priority"
	KeySimilarTopN       = "similar.top_n"
	KeyValueMargin       = "compare.value_margin"
	KeyOutputFormat      = "output.format"
	KeyOutputColor       = "output.color"
	KeyMetricsTextfile   = "metrics.textfile"
	KeyLogLevel          = "log.level"
)

// Config is a nil-safe read-only view over a viper instance.
type Config struct {
	v *viper.Viper
}

// New wraps v. A nil v behaves as an empty configuration.
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

func (c *Config) GetString(key string) string {
	if c == nil || c.v == nil {
		return ""
	}
	return c.v.GetString(key)
}

func (c *Config) GetStringSlice(key string) []string {
	if c == nil || c.v == nil {
		return nil
	}
	return c.v.GetStringSlice(key)
}

func (c *Config) GetInt(key string) int {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetInt(key)
}

func (c *Config) GetFloat64(key string) float64 {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetFloat64(key)
}

func (c *Config) GetBool(key string) bool {
	if c == nil || c.v == nil {
		return false
	}
	return c.v.GetBool(key)
}

func (c *Config) GetDuration(key string) time.Duration {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetDuration(key)
}

func (c *Config) IsSet(key string) bool {
	if c == nil || c.v == nil {
		return false
	}
	return c.v.IsSet(key)
}

// Sub returns the subtree at key. A missing subtree is an empty Config,
// never nil.
func (c *Config) Sub(key string) *Config {
	if c == nil || c.v == nil {
		return New(viper.New())
	}
	sub := c.v.Sub(key)
	if sub == nil {
		return New(viper.New())
	}
	return New(sub)
}

func (c *Config) Unmarshal(target any) error {
	if c == nil || c.v == nil {
		return nil
	}
	return c.v.Unmarshal(target)
}

// File returns the config file that was read, if any.
func (c *Config) File() string {
	if c == nil || c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// NewViper returns a viper instance with chipmatch defaults and
// environment overrides applied. Callers bind flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCatalogPaths, []string{})
	v.SetDefault(KeyRecommendTopN, 5)
	v.SetDefault(KeyRecommendProfile, "gaming")
	v.SetDefault(KeyRecommendPriority, "balanced")
	v.SetDefault(KeySimilarTopN, 5)
	v.SetDefault(KeyValueMargin, 0.10)
	v.SetDefault(KeyOutputFormat, "table")
	v.SetDefault(KeyOutputColor, true)
	v.SetDefault(KeyMetricsTextfile, "")
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads path into v, or, when path is empty, the first
// chipmatch.{yaml,yml,toml,json} found in the working directory or the
// user config directory. No file at all is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return New(v), nil
	}

	v.SetConfigName("chipmatch")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "chipmatch"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return New(v), nil
}

// Settings is the typed form of the configuration.
type Settings struct {
	Catalog struct {
		Paths []string `mapstructure:"paths"`
	} `mapstructure:"catalog"`
	Recommend struct {
		TopN     int    `mapstructure:"top_n" validate:"gte=1,lte=100"`
		Profile  string `mapstructure:"profile" validate:"required"`
		Priority string `mapstructure:"priority"`
	} `mapstructure:"recommend"`
	Similar struct {
		TopN int `mapstructure:"top_n" validate:"gte=1,lte=100"`
	} `mapstructure:"similar"`
	Compare struct {
		ValueMargin float64 `mapstructure:"value_margin" validate:"gte=0,lte=1"`
	} `mapstructure:"compare"`
	Output struct {
		Format string `mapstructure:"format" validate:"oneof=table json"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
	Metrics struct {
		Textfile string `mapstructure:"textfile"`
	} `mapstructure:"metrics"`
	Log struct {
		Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	} `mapstructure:"log"`
}

var (
	settingsValidator     *validator.Validate
	settingsValidatorOnce sync.Once
)

// Settings decodes and validates the configuration.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	if err := c.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decode config: %w", err)
	}
	settingsValidatorOnce.Do(func() {
		settingsValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := settingsValidator.Struct(s); err != nil {
		return s, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}
