// Package config resolves runtime settings from flags, the environment and
// an optional .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyPort            = "port"
	KeyDatabaseURL     = "database_url"
	KeyLogLevel        = "log_level"
	KeyShutdownTimeout = "shutdown_timeout"
	KeyEnvFile         = "env_file"
)

const (
	DefaultPort            = "3000"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultEnvFile         = ".env"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	Port            string
	DatabaseURL     string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// BindFlags registers the server flags and binds each to its viper key.
// Environment variables are looked up by the upper-cased key.
func BindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	flags.StringP("port", "p", DefaultPort, "port to listen on")
	flags.StringP("database-url", "d", "", "database connection url (mongodb://, postgres://, sqlite:)")
	flags.String("log-level", DefaultLogLevel, "log level: debug, info, warn or error")
	flags.Duration("shutdown-timeout", DefaultShutdownTimeout, "time allowed for in-flight requests on shutdown")
	flags.String("env-file", DefaultEnvFile, "dotenv file loaded before reading the environment")

	bindings := map[string]string{
		KeyPort:            "port",
		KeyDatabaseURL:     "database-url",
		KeyLogLevel:        "log-level",
		KeyShutdownTimeout: "shutdown-timeout",
		KeyEnvFile:         "env-file",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return nil
}

// LoadEnvFile reads path into the process environment without overriding
// variables that are already set. A missing file reports loaded == false and
// no error.
func LoadEnvFile(path string) (loaded bool, err error) {
	if path == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            strings.TrimSpace(v.GetString(KeyPort)),
		DatabaseURL:     strings.TrimSpace(v.GetString(KeyDatabaseURL)),
		LogLevel:        v.GetString(KeyLogLevel),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	return cfg, nil
}
