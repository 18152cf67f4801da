package statistics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frictionlabs/backtester/costs"
	"github.com/frictionlabs/backtester/engine"
)

var (
	dailyPeriods = decimal.NewFromInt(252)
	noRiskFree   = decimal.Zero
)

func makeResult(t *testing.T, equities ...float64) *engine.Result {
	t.Helper()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	curve := make([]engine.EquityPoint, len(equities))
	for i := range equities {
		e := decimal.NewFromFloat(equities[i])
		curve[i] = engine.EquityPoint{
			Time:    start.Add(time.Duration(i) * time.Hour * 24),
			Capital: e,
			Equity:  e,
		}
	}
	return &engine.Result{
		Asset:          "EURUSD",
		StrategyName:   "scripted",
		StartTime:      curve[0].Time,
		EndTime:        curve[len(curve)-1].Time,
		InitialCapital: curve[0].Equity,
		FinalCapital:   curve[len(curve)-1].Equity,
		EquityCurve:    curve,
	}
}

func TestCalculateResultsValidation(t *testing.T) {
	t.Parallel()
	_, err := CalculateResults(nil, dailyPeriods, noRiskFree)
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = CalculateResults(&engine.Result{}, dailyPeriods, noRiskFree)
	assert.ErrorIs(t, err, ErrNoEquityCurve)

	_, err = CalculateResults(makeResult(t, 100, 110), decimal.Zero, noRiskFree)
	assert.ErrorIs(t, err, ErrInvalidPeriodsPerYear)
}

func TestTotalReturn(t *testing.T) {
	t.Parallel()
	s, err := CalculateResults(makeResult(t, 100, 110, 121), dailyPeriods, noRiskFree)
	require.NoError(t, err)
	assert.True(t, s.TotalReturnPercent.Equal(decimal.NewFromInt(21)), "received %v", s.TotalReturnPercent)
	require.True(t, s.CompoundAnnualGrowthRatePercent.Valid)
	assert.True(t, s.CompoundAnnualGrowthRatePercent.Value.IsPositive())
	require.True(t, s.AverageReturnPercent.Valid)
	assert.True(t, s.AverageReturnPercent.Value.Equal(decimal.NewFromInt(10)), "received %v", s.AverageReturnPercent.Value)
}

func TestFlatCurveLeavesRatiosUndefined(t *testing.T) {
	t.Parallel()
	s, err := CalculateResults(makeResult(t, 100, 100, 100, 100), dailyPeriods, noRiskFree)
	require.NoError(t, err)

	assert.False(t, s.SharpeRatio.Valid, "zero variance must leave the Sharpe ratio undefined, not zero")
	assert.False(t, s.SortinoRatio.Valid, "no downside must leave the Sortino ratio undefined")
	require.True(t, s.AnnualVolatilityPercent.Valid)
	assert.True(t, s.AnnualVolatilityPercent.Value.IsZero())
	assert.True(t, s.TotalReturnPercent.IsZero())
	assert.True(t, s.MaxDrawdown.DrawdownPercent.IsZero())
}

func TestRatiosDefinedOnVolatileCurve(t *testing.T) {
	t.Parallel()
	s, err := CalculateResults(makeResult(t, 100, 120, 90, 110, 130, 100), dailyPeriods, noRiskFree)
	require.NoError(t, err)
	assert.True(t, s.SharpeRatio.Valid)
	assert.True(t, s.SortinoRatio.Valid)
	assert.True(t, s.AnnualVolatilityPercent.Valid)
	assert.True(t, s.AnnualVolatilityPercent.Value.IsPositive())
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()
	s, err := CalculateResults(makeResult(t, 100, 120, 90, 110, 130, 100), dailyPeriods, noRiskFree)
	require.NoError(t, err)

	dd := s.MaxDrawdown
	assert.True(t, dd.DrawdownPercent.Equal(decimal.NewFromInt(-25)), "received %v", dd.DrawdownPercent)
	assert.True(t, dd.Highest.Value.Equal(decimal.NewFromInt(120)))
	assert.True(t, dd.Lowest.Value.Equal(decimal.NewFromInt(90)))
	// underwater at 90 and 110, recovered when equity hit 130
	assert.Equal(t, 2, dd.Bars)
	assert.False(t, dd.DrawdownPercent.IsPositive(), "drawdown can never be positive")
}

func TestMaxDrawdownNeverRecovered(t *testing.T) {
	t.Parallel()
	s, err := CalculateResults(makeResult(t, 100, 120, 90, 95, 100), dailyPeriods, noRiskFree)
	require.NoError(t, err)

	dd := s.MaxDrawdown
	assert.True(t, dd.Highest.Value.Equal(decimal.NewFromInt(120)))
	assert.True(t, dd.Lowest.Value.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 3, dd.Bars, "a swing that never regains its peak stays underwater to the end")
}

func TestMaxDrawdownMonotonicRise(t *testing.T) {
	t.Parallel()
	s, err := CalculateResults(makeResult(t, 100, 110, 120, 130), dailyPeriods, noRiskFree)
	require.NoError(t, err)
	assert.True(t, s.MaxDrawdown.DrawdownPercent.IsZero(), "a rising curve has no drawdown")
}

func TestTradeStatistics(t *testing.T) {
	t.Parallel()
	res := makeResult(t, 100, 110, 120)
	res.Trades = []engine.Trade{
		{NetPnL: decimal.NewFromInt(10), Holding: time.Hour * 24},
		{NetPnL: decimal.NewFromInt(30), Holding: time.Hour * 48},
		{NetPnL: decimal.NewFromInt(-20), Holding: time.Hour * 24},
	}
	s, err := CalculateResults(res, dailyPeriods, noRiskFree)
	require.NoError(t, err)

	tr := s.Trades
	assert.Equal(t, 3, tr.TotalTrades)
	assert.Equal(t, 2, tr.WinningTrades)
	assert.Equal(t, 1, tr.LosingTrades)
	require.True(t, tr.ProfitFactor.Valid)
	assert.True(t, tr.ProfitFactor.Value.Equal(decimal.NewFromInt(2)), "received %v", tr.ProfitFactor.Value)
	require.True(t, tr.AverageWin.Valid)
	assert.True(t, tr.AverageWin.Value.Equal(decimal.NewFromInt(20)), "received %v", tr.AverageWin.Value)
	require.True(t, tr.AverageLoss.Valid)
	assert.True(t, tr.AverageLoss.Value.Equal(decimal.NewFromInt(-20)), "received %v", tr.AverageLoss.Value)
	assert.True(t, tr.LargestWin.Equal(decimal.NewFromInt(30)))
	assert.True(t, tr.LargestLoss.Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, time.Hour*32, tr.AverageHolding)
}

func TestProfitFactorUndefinedWithoutLosers(t *testing.T) {
	t.Parallel()
	res := makeResult(t, 100, 110, 120)
	res.Trades = []engine.Trade{
		{NetPnL: decimal.NewFromInt(10)},
		{NetPnL: decimal.NewFromInt(5)},
	}
	s, err := CalculateResults(res, dailyPeriods, noRiskFree)
	require.NoError(t, err)

	assert.False(t, s.Trades.ProfitFactor.Valid, "no losing trades must leave the profit factor undefined, not infinite")
	assert.False(t, s.Trades.AverageLoss.Valid)
	require.True(t, s.Trades.WinRatePercent.Valid)
	assert.True(t, s.Trades.WinRatePercent.Value.Equal(decimal.NewFromInt(100)))
}

func TestNoTrades(t *testing.T) {
	t.Parallel()
	s, err := CalculateResults(makeResult(t, 100, 100), dailyPeriods, noRiskFree)
	require.NoError(t, err)
	assert.Zero(t, s.Trades.TotalTrades)
	assert.False(t, s.Trades.WinRatePercent.Valid)
	assert.False(t, s.Trades.ProfitFactor.Valid)
	assert.False(t, s.Costs.AverageCostPerTrade.Valid)
	assert.False(t, s.Costs.CostsPercentOfGross.Valid)
}

func TestCostStatistics(t *testing.T) {
	t.Parallel()
	res := makeResult(t, 100, 110, 120)
	res.Trades = []engine.Trade{
		{
			GrossPnL: decimal.NewFromInt(60),
			NetPnL:   decimal.NewFromInt(50),
			Costs: costs.Breakdown{
				Spread:     decimal.NewFromInt(4),
				Slippage:   decimal.NewFromInt(3),
				Commission: decimal.NewFromInt(2),
				Financing:  decimal.NewFromInt(1),
			},
		},
		{
			GrossPnL: decimal.NewFromInt(40),
			NetPnL:   decimal.NewFromInt(30),
			Costs: costs.Breakdown{
				Spread:    decimal.NewFromInt(6),
				Slippage:  decimal.NewFromInt(4),
				Financing: decimal.NewFromInt(0),
			},
		},
	}
	s, err := CalculateResults(res, dailyPeriods, noRiskFree)
	require.NoError(t, err)

	c := s.Costs
	assert.True(t, c.Total.Spread.Equal(decimal.NewFromInt(10)))
	assert.True(t, c.Total.Slippage.Equal(decimal.NewFromInt(7)))
	assert.True(t, c.Total.Commission.Equal(decimal.NewFromInt(2)))
	assert.True(t, c.Total.Financing.Equal(decimal.NewFromInt(1)))
	assert.True(t, c.GrossPnL.Equal(decimal.NewFromInt(100)))
	assert.True(t, c.NetPnL.Equal(decimal.NewFromInt(80)))
	require.True(t, c.AverageCostPerTrade.Valid)
	assert.True(t, c.AverageCostPerTrade.Value.Equal(decimal.NewFromInt(10)), "received %v", c.AverageCostPerTrade.Value)
	require.True(t, c.CostsPercentOfGross.Valid)
	assert.True(t, c.CostsPercentOfGross.Value.Equal(decimal.NewFromInt(20)), "received %v", c.CostsPercentOfGross.Value)
}
