// Package config loads server and CLI settings with viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmynk/fintrack/pkg/logging"
)

// DevSecret is the signing secret used when none is configured.
// It is refused when Env is EnvProd.
const DevSecret = "fintrack-dev-secret"

// Deployment environments.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type ServerConfig struct {
	Address    string `mapstructure:"address"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the full application configuration.
type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// Addr is the listen address, e.g. ":8080".
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// LogLevel parses Log.Level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// UsesDevSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.Secret == DevSecret
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDev)
	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.static_path", "../frontend/static")
	v.SetDefault("database.path", "./data/fintrack.db")
	v.SetDefault("auth.secret", DevSecret)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
}

// Load reads the YAML file at path, if any, then applies FINTRACK_*
// environment overrides (FINTRACK_SERVER_PORT, FINTRACK_DATABASE_PATH, ...).
// An empty path looks for an optional fintrack.yaml in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("fintrack")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("FINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Env != EnvDev && c.Env != EnvProd {
		return fmt.Errorf("env must be %q or %q, got %q", EnvDev, EnvProd, c.Env)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is required")
	}
	if c.Env == EnvProd && c.UsesDevSecret() {
		return errors.New("auth.secret must be set when env is prod")
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}
