// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix of all environment variables read by the plugin
const envPrefix = "RSCHECK"

// config holds the operator overrides read from the environment. Zero values fall back to
// the compiled-in defaults of the rscheck package.
type config struct {
	BaseURL  string        `envconfig:"BASE_URL"`
	Timeout  time.Duration `envconfig:"TIMEOUT"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"error"`
	EnvFile  string        `envconfig:"ENV_FILE"`
}

// loadConfig reads the plugin configuration from the environment.
//
// If RSCHECK_ENV_FILE names a dotenv file, it is loaded first. Variables that are already
// set in the environment take precedence over the file.
//
// Returns:
//   - The validated config.
//   - The log level derived from RSCHECK_LOG_LEVEL.
//   - An error if the env file cannot be read or a value is invalid.
func loadConfig() (config, slog.Level, error) {
	var cfg config
	if file := os.Getenv(envPrefix + "_ENV_FILE"); file != "" {
		if err := godotenv.Load(file); err != nil {
			return cfg, slog.LevelError, fmt.Errorf("failed to load env file %q: %w", file, err)
		}
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, slog.LevelError, fmt.Errorf("failed to process environment: %w", err)
	}

	level := slog.LevelError
	if cfg.LogLevel == "" {
		cfg.LogLevel = level.String()
	}
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return cfg, slog.LevelError, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.Timeout < 0 {
		return cfg, level, errors.New("timeout must not be negative")
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return cfg, level, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
		}
		if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
			return cfg, level, fmt.Errorf("invalid base URL %q: absolute http(s) URL required", cfg.BaseURL)
		}
	}
	return cfg, level, nil
}
