package config

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frictionlabs/backtester/costs"
)

var (
	// ErrNoStrategy is returned when no strategy name is configured
	ErrNoStrategy = errors.New("no strategy name provided")
	// ErrNoCostModel is returned when neither a preset name nor a custom
	// cost model is configured
	ErrNoCostModel = errors.New("no cost model provided, set a preset or a custom model")
	// ErrBothCostModels is returned when a preset and a custom model are
	// both set, as there is no sensible precedence between them
	ErrBothCostModels = errors.New("both a preset and a custom cost model provided, set only one")
	// ErrUnknownDataSource is returned when the data source tag is not
	// one of the supported loaders
	ErrUnknownDataSource = errors.New("unknown data source")
	// ErrNoDataPath is returned when the data source has no path to load
	ErrNoDataPath = errors.New("no data path provided")
)

// Data source tags
const (
	DataSourceCSV      = "csv"
	DataSourceDatabase = "database"
)

// Config defines a full run. It is read once from JSON, validated and
// then treated as read-only
type Config struct {
	Strategy   StrategySettings  `json:"strategy"`
	Engine     EngineSettings    `json:"engine"`
	Costs      CostSettings      `json:"costs"`
	Data       DataSettings      `json:"data"`
	Statistics StatisticSettings `json:"statistics"`
}

// StrategySettings names the strategy to run
type StrategySettings struct {
	Name string `json:"name"`
}

// EngineSettings holds the simulation parameters
type EngineSettings struct {
	Asset               string          `json:"asset"`
	InitialCapital      decimal.Decimal `json:"initial-capital"`
	PositionSizePercent decimal.Decimal `json:"position-size-percent"`
	MaxPositions        int             `json:"max-positions"`
	AllowShorting       bool            `json:"allow-shorting"`
}

// CostSettings selects the cost model, either a named preset or a fully
// custom model, never both
type CostSettings struct {
	Preset string        `json:"preset,omitempty"`
	Custom *costs.Config `json:"custom,omitempty"`
}

// DataSettings describes where candle data comes from. Start and end
// bounds only apply to the database source; CSV files are always loaded
// whole
type DataSettings struct {
	Source    string    `json:"source"`
	Path      string    `json:"path"`
	StartDate time.Time `json:"start-date,omitempty"`
	EndDate   time.Time `json:"end-date,omitempty"`
}

// StatisticSettings controls annualisation of the performance metrics
type StatisticSettings struct {
	// PeriodsPerYear is the number of bars in a year, eg 252 for daily
	// stock bars. Defaults to 252 when unset
	PeriodsPerYear decimal.Decimal `json:"periods-per-year"`
	// RiskFreeRate is annual, eg 0.02 for two percent
	RiskFreeRate decimal.Decimal `json:"risk-free-rate"`
}
