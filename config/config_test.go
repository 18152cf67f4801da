package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frictionlabs/backtester/costs"
)

func validRawConfig() []byte {
	return []byte(`{
 "strategy": {
  "name": "rsi"
 },
 "engine": {
  "asset": "EURUSD",
  "initial-capital": "10000",
  "position-size-percent": "0.1",
  "max-positions": 1,
  "allow-shorting": false
 },
 "costs": {
  "preset": "forex_retail"
 },
 "data": {
  "source": "csv",
  "path": "testdata/eurusd.csv"
 },
 "statistics": {
  "periods-per-year": "252",
  "risk-free-rate": "0.02"
 }
}`)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(validRawConfig())
	require.NoError(t, err)
	assert.Equal(t, "rsi", cfg.Strategy.Name)
	assert.Equal(t, "EURUSD", cfg.Engine.Asset)
	assert.True(t, cfg.Engine.InitialCapital.Equal(decimal.NewFromInt(10000)))
	assert.True(t, cfg.Statistics.RiskFreeRate.Equal(decimal.NewFromFloat(0.02)))

	_, err = LoadConfig([]byte("{"))
	assert.Error(t, err)
}

func TestReadConfigFromFile(t *testing.T) {
	t.Parallel()
	_, err := ReadConfigFromFile("does-not-exist.json")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(validRawConfig())
	require.NoError(t, err)

	c := *cfg
	c.Strategy.Name = ""
	assert.ErrorIs(t, c.Validate(), ErrNoStrategy)

	c = *cfg
	c.Data.Source = "carrier-pigeon"
	assert.ErrorIs(t, c.Validate(), ErrUnknownDataSource)

	c = *cfg
	c.Data.Path = ""
	assert.ErrorIs(t, c.Validate(), ErrNoDataPath)

	c = *cfg
	c.Costs.Preset = ""
	assert.ErrorIs(t, c.Validate(), ErrNoCostModel)

	c = *cfg
	c.Costs.Preset = "bananas"
	assert.ErrorIs(t, c.Validate(), costs.ErrUnknownPreset)

	c = *cfg
	c.Statistics.PeriodsPerYear = decimal.NewFromInt(-1)
	assert.Error(t, c.Validate())
}

func TestCostConfig(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(validRawConfig())
	require.NoError(t, err)

	costConfig, err := cfg.CostConfig()
	require.NoError(t, err)
	assert.Equal(t, costs.Forex, costConfig.Asset)

	custom := costs.Config{
		Asset:          costs.Crypto,
		CommissionType: costs.CommissionPercentage,
		CommissionRate: decimal.NewFromFloat(0.1),
		SlippageModel:  costs.SlippageFixed,
	}
	c := *cfg
	c.Costs.Custom = &custom
	_, err = c.CostConfig()
	assert.ErrorIs(t, err, ErrBothCostModels)

	c.Costs.Preset = ""
	costConfig, err = c.CostConfig()
	require.NoError(t, err)
	assert.Equal(t, costs.Crypto, costConfig.Asset)
}

func TestEngineSettings(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(validRawConfig())
	require.NoError(t, err)

	settings, err := cfg.EngineSettings()
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", settings.Asset)
	assert.True(t, settings.PositionSizePercent.Equal(decimal.NewFromFloat(0.1)))
	assert.Equal(t, 1, settings.MaxPositions)
	assert.Equal(t, costs.Forex, settings.Costs.Asset)
}

func TestPeriodsPerYearDefault(t *testing.T) {
	t.Parallel()
	c := &Config{}
	assert.True(t, c.PeriodsPerYear().Equal(decimal.NewFromInt(252)))

	c.Statistics.PeriodsPerYear = decimal.NewFromInt(365)
	assert.True(t, c.PeriodsPerYear().Equal(decimal.NewFromInt(365)))
}
