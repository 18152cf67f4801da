package statistics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frictionlabs/backtester/costs"
)

var (
	// ErrNoResult is returned when there is no result to analyse
	ErrNoResult = errors.New("no result to calculate statistics against")
	// ErrNoEquityCurve is returned when a result carries no equity points
	ErrNoEquityCurve = errors.New("result contains no equity curve")
	// ErrInvalidPeriodsPerYear is returned when the annualisation factor
	// is not positive
	ErrInvalidPeriodsPerYear = errors.New("periods per year must be positive")
)

// Metric is a ratio or percentage that can be mathematically undefined.
// An undefined metric is reported as not valid rather than as zero so a
// flat equity curve is never mistaken for a zero-risk one
type Metric struct {
	Value decimal.Decimal `json:"value"`
	Valid bool            `json:"valid"`
}

// ValueAtTime is an individual record of a price at a point in time
type ValueAtTime struct {
	Time  time.Time       `json:"time"`
	Value decimal.Decimal `json:"value"`
}

// Swing describes the deepest peak-to-trough move of the equity curve.
// DrawdownPercent is zero or negative
type Swing struct {
	Highest         ValueAtTime     `json:"highest"`
	Lowest          ValueAtTime     `json:"lowest"`
	DrawdownPercent decimal.Decimal `json:"drawdown-percent"`
	// Bars counts the equity points the swing spent underwater, from the
	// peak until equity first recovered to the peak level or the series
	// ended
	Bars int `json:"bars"`
}

// TradeStatistics summarises the closed trade log
type TradeStatistics struct {
	TotalTrades    int             `json:"total-trades"`
	WinningTrades  int             `json:"winning-trades"`
	LosingTrades   int             `json:"losing-trades"`
	WinRatePercent Metric          `json:"win-rate-percent"`
	ProfitFactor   Metric          `json:"profit-factor"`
	AverageWin     Metric          `json:"average-win"`
	AverageLoss    Metric          `json:"average-loss"`
	LargestWin     decimal.Decimal `json:"largest-win"`
	LargestLoss    decimal.Decimal `json:"largest-loss"`
	AverageHolding time.Duration   `json:"average-holding"`
}

// CostStatistics attributes the run's total trading cost to its
// components and relates it to gross performance
type CostStatistics struct {
	Total costs.Breakdown `json:"total"`
	// GrossPnL is the sum of gross trade P&L before any costs
	GrossPnL decimal.Decimal `json:"gross-pnl"`
	// NetPnL is GrossPnL minus Total's sum, matching the trade log exactly
	NetPnL decimal.Decimal `json:"net-pnl"`
	// AverageCostPerTrade is undefined when the run closed no trades
	AverageCostPerTrade Metric `json:"average-cost-per-trade"`
	// CostsPercentOfGross is undefined when the run had no gross profit
	CostsPercentOfGross Metric `json:"costs-percent-of-gross"`
}

// Statistic is the full performance summary of a completed run
type Statistic struct {
	Asset          string          `json:"asset"`
	StrategyName   string          `json:"strategy-name"`
	StartTime      time.Time       `json:"start-time"`
	EndTime        time.Time       `json:"end-time"`
	InitialCapital decimal.Decimal `json:"initial-capital"`
	FinalCapital   decimal.Decimal `json:"final-capital"`
	FinalEquity    decimal.Decimal `json:"final-equity"`

	TotalReturnPercent decimal.Decimal `json:"total-return-percent"`
	// CompoundAnnualGrowthRatePercent annualises the total return over
	// the run's span
	CompoundAnnualGrowthRatePercent Metric `json:"compound-annual-growth-rate-percent"`
	AverageReturnPercent            Metric `json:"average-return-percent"`

	SharpeRatio             Metric `json:"sharpe-ratio"`
	SortinoRatio            Metric `json:"sortino-ratio"`
	AnnualVolatilityPercent Metric `json:"annual-volatility-percent"`
	MaxDrawdown             Swing  `json:"max-drawdown"`

	Trades TradeStatistics `json:"trades"`
	Costs  CostStatistics  `json:"costs"`

	// RiskFreeRate is the annual rate the ratios were measured against
	RiskFreeRate   decimal.Decimal `json:"risk-free-rate"`
	PeriodsPerYear decimal.Decimal `json:"periods-per-year"`
}

// validMetric wraps a defined value
func validMetric(v decimal.Decimal) Metric {
	return Metric{Value: v, Valid: true}
}
