// Package config loads and validates run definitions from JSON files.
// Validation is strict and up front; a config that passes Validate can
// be converted to engine settings without further checks.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/frictionlabs/backtester/costs"
	"github.com/frictionlabs/backtester/engine"
)

var defaultPeriodsPerYear = decimal.NewFromInt(252)

// ReadConfigFromFile will return a config from a json file at path
func ReadConfigFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%v config file error %w", path, err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(contents)
}

// LoadConfig unmarshals and validates raw config bytes
func LoadConfig(contents []byte) (*Config, error) {
	c := &Config{}
	if err := json.Unmarshal(contents, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the config for anything that would fail mid-run,
// rejecting it before any data is loaded
func (c *Config) Validate() error {
	if c.Strategy.Name == "" {
		return ErrNoStrategy
	}
	switch c.Data.Source {
	case DataSourceCSV, DataSourceDatabase:
	default:
		return fmt.Errorf("%w '%v'", ErrUnknownDataSource, c.Data.Source)
	}
	if c.Data.Path == "" {
		return ErrNoDataPath
	}
	costConfig, err := c.CostConfig()
	if err != nil {
		return err
	}
	if err = costConfig.Validate(); err != nil {
		return err
	}
	if c.Statistics.PeriodsPerYear.IsNegative() {
		return fmt.Errorf("periods per year cannot be negative, received %v", c.Statistics.PeriodsPerYear)
	}
	return nil
}

// CostConfig resolves the configured cost model, looking up the preset
// when one is named
func (c *Config) CostConfig() (costs.Config, error) {
	switch {
	case c.Costs.Preset != "" && c.Costs.Custom != nil:
		return costs.Config{}, ErrBothCostModels
	case c.Costs.Preset != "":
		return costs.GetPreset(c.Costs.Preset)
	case c.Costs.Custom != nil:
		return *c.Costs.Custom, nil
	}
	return costs.Config{}, ErrNoCostModel
}

// EngineSettings converts the config into validated engine settings
func (c *Config) EngineSettings() (engine.Settings, error) {
	costConfig, err := c.CostConfig()
	if err != nil {
		return engine.Settings{}, err
	}
	return engine.Settings{
		Asset:               c.Engine.Asset,
		InitialCapital:      c.Engine.InitialCapital,
		PositionSizePercent: c.Engine.PositionSizePercent,
		MaxPositions:        c.Engine.MaxPositions,
		AllowShorting:       c.Engine.AllowShorting,
		Costs:               costConfig,
	}, nil
}

// PeriodsPerYear returns the configured annualisation factor or its
// default
func (c *Config) PeriodsPerYear() decimal.Decimal {
	if c.Statistics.PeriodsPerYear.IsPositive() {
		return c.Statistics.PeriodsPerYear
	}
	return defaultPeriodsPerYear
}
