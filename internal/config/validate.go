package config

import (
	"errors"
	"fmt"

	"juicery/internal/faults"
)

// Validate ensures the configuration is usable. Every returned error wraps
// faults.ErrConfiguration.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validatePlant,
		c.validateWorkflow,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", faults.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validatePlant() error {
	return ensurePositive([]namedValue{
		{"plant.count", c.Plant.Count},
		{"plant.peelers", c.Plant.Peelers},
		{"plant.squeezers", c.Plant.Squeezers},
		{"plant.bottlers", c.Plant.Bottlers},
		{"plant.queue_capacity", c.Plant.QueueCapacity},
		{"plant.oranges_per_bottle", c.Plant.OrangesPerBottle},
	})
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositive([]namedValue{
		{"workflow.run_ms", c.Workflow.RunMillis},
		{"workflow.poll_timeout_ms", c.Workflow.PollTimeoutMillis},
	}); err != nil {
		return err
	}
	if c.Workflow.DrainTimeoutMillis < 0 {
		return errors.New("workflow.drain_timeout_ms must not be negative")
	}
	if c.Workflow.TimeScale < 0 {
		return errors.New("workflow.time_scale must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

type namedValue struct {
	name  string
	value int
}

func ensurePositive(values []namedValue) error {
	for _, v := range values {
		if v.value <= 0 {
			return fmt.Errorf("%s must be positive", v.name)
		}
	}
	return nil
}
