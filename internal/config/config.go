// Package config loads CLI and server settings with viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/reoring/skemaform/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. SKEMAFORM_SERVER_ADDR.
const EnvPrefix = "SKEMAFORM"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Form    FormConfig
	Refs    RefsConfig
	Log     logger.Config
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string
	// Origins are extra host patterns allowed to open form sockets.
	// Same-origin requests are always accepted.
	Origins []string
}

// FormConfig holds the schema served and the engine options
type FormConfig struct {
	Schema        string // path to a .json, .yaml or .cue document
	Expr          string // CUE expression selecting the form, e.g. #Person
	Lang          string // en, ja
	LookupTimeout time.Duration
}

// RefsConfig selects the reference lookup sources. Sources are consulted
// in the order remote, sqlite, static.
type RefsConfig struct {
	Static string // fixture file
	SQLite string // DSN
	Remote string // base URL of another skemaform /refs API
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Enabled bool
}

// Load reads path when set, else an optional skemaform.{yaml,toml,json} in
// the working directory, then applies SKEMAFORM_* overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("skemaform")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Addr:    v.GetString("server.addr"),
			Origins: v.GetStringSlice("server.origins"),
		},
		Form: FormConfig{
			Schema:        v.GetString("form.schema"),
			Expr:          v.GetString("form.expr"),
			Lang:          v.GetString("form.lang"),
			LookupTimeout: v.GetDuration("form.lookup_timeout"),
		},
		Refs: RefsConfig{
			Static: v.GetString("refs.static"),
			SQLite: v.GetString("refs.sqlite"),
			Remote: v.GetString("refs.remote"),
		},
		Log: logger.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Metrics: MetricsConfig{Enabled: v.GetBool("metrics.enabled")},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("form.lang", "en")
	v.SetDefault("form.lookup_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("metrics.enabled", true)
}

func (c *Config) validate() error {
	switch c.Form.Lang {
	case "en", "ja":
	default:
		return fmt.Errorf("config: form.lang must be en or ja, got %q", c.Form.Lang)
	}
	if c.Form.LookupTimeout < 0 {
		return errors.New("config: form.lookup_timeout must not be negative")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
