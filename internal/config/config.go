// Package config reads the dashboard configuration from LAUNCHDASH_* environment
// variables. Every variable is optional; the defaults serve
// spacex_launch_dash.csv on 127.0.0.1:8050.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the process configuration.
type Config struct {
	Dataset         string        `env:"LAUNCHDASH_DATASET" envDefault:"spacex_launch_dash.csv"`
	DatasetTable    string        `env:"LAUNCHDASH_DATASET_TABLE" envDefault:"spacex_launches"`
	HTTPAddr        string        `env:"LAUNCHDASH_HTTP_ADDR" envDefault:"127.0.0.1:8050"`
	ShutdownTimeout time.Duration `env:"LAUNCHDASH_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel        string        `env:"LAUNCHDASH_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LAUNCHDASH_LOG_FORMAT" envDefault:"json"`
	Metrics         string        `env:"LAUNCHDASH_METRICS" envDefault:"prometheus"`
	ChartWidth      int           `env:"LAUNCHDASH_CHART_WIDTH" envDefault:"800"`
	ChartHeight     int           `env:"LAUNCHDASH_CHART_HEIGHT" envDefault:"450"`
	S3              S3            `envPrefix:"LAUNCHDASH_S3_"`
}

// S3 configures access to s3:// dataset locations. Credentials come from the
// default AWS chain (AWS_ACCESS_KEY_ID, shared config, instance roles).
type S3 struct {
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"ENDPOINT"`
	PathStyle bool   `env:"PATH_STYLE" envDefault:"false"`
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	var errs []error
	if c.Dataset == "" {
		errs = append(errs, errors.New("LAUNCHDASH_DATASET must not be empty"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("LAUNCHDASH_HTTP_ADDR must not be empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LAUNCHDASH_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LAUNCHDASH_LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	switch c.Metrics {
	case "prometheus", "expvar", "none":
	default:
		errs = append(errs, fmt.Errorf("LAUNCHDASH_METRICS must be prometheus, expvar or none, got %q", c.Metrics))
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight))
	}
	return errors.Join(errs...)
}
