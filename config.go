package schedsim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/schedsim/policy"
	pcbdao "github.com/viant/schedsim/service/dao/pcb"
	"github.com/viant/schedsim/service/meta"
)

// DefaultPace is the delay between iterations in slow mode
const DefaultPace = 500 * time.Millisecond

// Config is a serialisable representation of a simulation setup. It can be
// loaded from JSON or YAML; ${env.KEY} references are expanded on load.
type Config struct {
	Input    string         `json:"input" yaml:"input"`
	Fast     bool           `json:"fast" yaml:"fast"`
	Pace     string         `json:"pace" yaml:"pace"`
	Policy   *policy.Policy `json:"policy,omitempty" yaml:"policy,omitempty"`
	TraceDir string         `json:"traceDir,omitempty" yaml:"traceDir,omitempty"`
	Tracing  *TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

// TracingConfig enables OpenTelemetry spans written by the stdout exporter
type TracingConfig struct {
	Service    string `json:"service" yaml:"service"`
	Version    string `json:"version" yaml:"version"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:  pcbdao.DefaultURL,
		Pace:   DefaultPace.String(),
		Policy: policy.Default(),
	}
}

// PaceDuration returns the delay between iterations, zero in fast mode
func (c *Config) PaceDuration() (time.Duration, error) {
	if c.Fast || c.Pace == "" {
		return 0, nil
	}
	pace, err := time.ParseDuration(c.Pace)
	if err != nil {
		return 0, fmt.Errorf("invalid pace %q: %w", c.Pace, err)
	}
	return pace, nil
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Input == "" {
		errs = append(errs, fmt.Errorf("input must not be empty"))
	}
	if pace, err := c.PaceDuration(); err != nil {
		errs = append(errs, err)
	} else if pace < 0 {
		errs = append(errs, fmt.Errorf("pace must be >= 0, got %v", pace))
	}
	if c.Policy != nil {
		if err := c.Policy.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Tracing != nil && c.Tracing.Service == "" {
		errs = append(errs, fmt.Errorf("tracing.service must not be empty"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a config document on top of DefaultConfig
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(nil).Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if ret.Policy == nil {
		ret.Policy = policy.Default()
	}
	ret.Policy.Init()
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
