package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"juicery/internal/faults"
)

const envPrefix = "JUICERY"

// envOverrides lists the settings that may be supplied through JUICERY_*
// variables. Unset variables leave the file or default value in place.
type envOverrides struct {
	Plants       *int     `envconfig:"PLANTS"`
	RunMillis    *int     `envconfig:"RUN_MS"`
	TimeScale    *float64 `envconfig:"TIME_SCALE"`
	LogLevel     string   `envconfig:"LOG_LEVEL"`
	LogFormat    string   `envconfig:"LOG_FORMAT"`
	LogDir       string   `envconfig:"LOG_DIR"`
	DrainTimeout *int     `envconfig:"DRAIN_TIMEOUT_MS"`
}

func (c *Config) normalize() error {
	if err := c.applyEnv(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("%w: environment: %w", faults.ErrConfiguration, err)
	}
	if env.Plants != nil {
		c.Plant.Count = *env.Plants
	}
	if env.RunMillis != nil {
		c.Workflow.RunMillis = *env.RunMillis
	}
	if env.TimeScale != nil {
		c.Workflow.TimeScale = *env.TimeScale
	}
	if env.DrainTimeout != nil {
		c.Workflow.DrainTimeoutMillis = *env.DrainTimeout
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		c.Logging.Format = env.LogFormat
	}
	if env.LogDir != "" {
		c.Logging.Dir = env.LogDir
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	dir := strings.TrimSpace(c.Logging.Dir)
	if dir == "" {
		c.Logging.Dir = ""
		return nil
	}
	expanded, err := expandPath(dir)
	if err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	c.Logging.Dir = expanded
	return nil
}
