package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/solbo-lab/solbo/internal/types"
	"github.com/solbo-lab/solbo/internal/version"
	"github.com/solbo-lab/solbo/pkg/errors"
)

type IntervalUnit string

const (
	IntervalUnitSeconds IntervalUnit = "seconds"
	IntervalUnitMinutes IntervalUnit = "minutes"
	IntervalUnitHours   IntervalUnit = "hours"
)

// InstanceConfig describes one scheduled strategy instance.
type InstanceConfig struct {
	Name         string       `yaml:"name" validate:"required"`
	Interval     int          `yaml:"interval" validate:"required,gt=0"`
	IntervalUnit IntervalUnit `yaml:"interval_unit" validate:"required,oneof=seconds minutes hours"`

	Exchange types.ExchangeCredentials `yaml:"exchange" validate:"required"`
	// ExchangePreference is the fallback order the exchange switch tries when
	// the primary exchange does not list the symbol.
	ExchangePreference []types.ExchangeType `yaml:"exchange_preference" validate:"omitempty,dive,oneof=binance binance-testnet paper"`
}

// TickInterval returns the scheduling interval as a duration.
func (c *InstanceConfig) TickInterval() time.Duration {
	switch c.IntervalUnit {
	case IntervalUnitMinutes:
		return time.Duration(c.Interval) * time.Minute
	case IntervalUnitHours:
		return time.Duration(c.Interval) * time.Hour
	default:
		return time.Duration(c.Interval) * time.Second
	}
}

// AppConfig is the operator-provided application configuration.
type AppConfig struct {
	Version string `yaml:"version"`
	// ConfigDir is where per-strategy JSON documents live.
	ConfigDir string `yaml:"config_dir" validate:"required"`
	// HistoryDBPath is the DuckDB file backing price history. Empty selects an
	// in-memory database (history lost on restart).
	HistoryDBPath string `yaml:"history_db"`
	// WebhookURL, when set, receives trade notifications as JSON POSTs.
	WebhookURL string `yaml:"webhook_url"`

	Strategies []InstanceConfig `yaml:"strategies" validate:"required,min=1,dive"`
}

// LoadAppConfig reads and validates the application config at path.
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeConfigReadFailed, err, "failed to read app config %s", path)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeConfigParseFailed, err, "failed to parse app config %s", path)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAppConfig, "invalid app config", err)
	}

	if err := version.CheckConfigCompatibility(cfg.Version); err != nil {
		return nil, err
	}

	return &cfg, nil
}
