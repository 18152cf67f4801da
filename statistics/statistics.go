// Package statistics turns a completed run into a performance summary.
// Ratio calculations use float64 via common/math; money totals stay in
// decimal throughout. A metric whose formula is undefined for the run,
// such as a profit factor with no losing trades, is reported as invalid
// rather than substituted with zero or infinity.
package statistics

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	gctmath "github.com/frictionlabs/backtester/common/math"
	"github.com/frictionlabs/backtester/engine"
)

var oneHundred = decimal.NewFromInt(100)

// CalculateResults analyses a run result against an annual risk free
// rate. periodsPerYear expresses the bar interval, eg 252 for daily
// stock bars or 365 for daily crypto bars
func CalculateResults(res *engine.Result, periodsPerYear, riskFreeRate decimal.Decimal) (*Statistic, error) {
	if res == nil {
		return nil, ErrNoResult
	}
	if len(res.EquityCurve) == 0 {
		return nil, ErrNoEquityCurve
	}
	if !periodsPerYear.IsPositive() {
		return nil, fmt.Errorf("%w, received %v", ErrInvalidPeriodsPerYear, periodsPerYear)
	}

	s := &Statistic{
		Asset:          res.Asset,
		StrategyName:   res.StrategyName,
		StartTime:      res.StartTime,
		EndTime:        res.EndTime,
		InitialCapital: res.InitialCapital,
		FinalCapital:   res.FinalCapital,
		FinalEquity:    res.EquityCurve[len(res.EquityCurve)-1].Equity,
		RiskFreeRate:   riskFreeRate,
		PeriodsPerYear: periodsPerYear,
	}
	s.TotalReturnPercent = s.FinalEquity.Sub(res.InitialCapital).
		Div(res.InitialCapital).
		Mul(oneHundred)

	returns := perPeriodReturns(res.EquityCurve)
	intervalsPerYear := periodsPerYear.InexactFloat64()
	periodRiskFree := riskFreeRate.InexactFloat64() / intervalsPerYear

	s.calculateRatios(returns, periodRiskFree, intervalsPerYear)
	s.calculateGrowth(returns, intervalsPerYear)
	s.MaxDrawdown = calculateMaxDrawdown(res.EquityCurve)
	s.calculateTradeStatistics(res.Trades)
	s.calculateCostStatistics(res.Trades)
	return s, nil
}

// perPeriodReturns converts the equity curve into simple returns between
// consecutive points. A non-positive equity level contributes no return
// as the ratio is meaningless
func perPeriodReturns(curve []engine.EquityPoint) []float64 {
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if !prev.IsPositive() {
			continue
		}
		r := curve[i].Equity.Sub(prev).Div(prev)
		returns = append(returns, r.InexactFloat64())
	}
	return returns
}

// calculateRatios computes the Sharpe and Sortino ratios and annualised
// volatility, leaving any undefined metric invalid
func (s *Statistic) calculateRatios(returns []float64, periodRiskFree, intervalsPerYear float64) {
	average, err := gctmath.ArithmeticAverage(returns)
	if err != nil {
		return
	}
	annualisation := math.Sqrt(intervalsPerYear)

	if sharpe, err := gctmath.CalculateSharpeRatio(returns, periodRiskFree, average); err == nil {
		s.SharpeRatio = validMetric(decimal.NewFromFloat(sharpe * annualisation))
	}
	if sortino, err := gctmath.CalculateSortinoRatio(returns, periodRiskFree, average); err == nil {
		s.SortinoRatio = validMetric(decimal.NewFromFloat(sortino * annualisation))
	}
	if stdDev, err := gctmath.SampleStandardDeviation(returns); err == nil && len(returns) > 1 {
		s.AnnualVolatilityPercent = validMetric(decimal.NewFromFloat(stdDev * annualisation * 100))
	}
}

// calculateGrowth computes the average per-period return and the
// compound annual growth rate of equity over the run's span
func (s *Statistic) calculateGrowth(returns []float64, intervalsPerYear float64) {
	if average, err := gctmath.ArithmeticAverage(returns); err == nil {
		s.AverageReturnPercent = validMetric(decimal.NewFromFloat(average * 100))
	}
	cagr, err := gctmath.CalculateCompoundAnnualGrowthRate(
		s.InitialCapital.InexactFloat64(),
		s.FinalEquity.InexactFloat64(),
		intervalsPerYear,
		float64(len(returns)))
	if err != nil {
		return
	}
	s.CompoundAnnualGrowthRatePercent = validMetric(decimal.NewFromFloat(cagr))
}

// calculateMaxDrawdown scans the equity curve against a running peak and
// keeps the deepest peak-to-trough move. The percentage is zero or
// negative, never positive; the duration counts the bars the swing spent
// underwater before equity regained its peak
func calculateMaxDrawdown(curve []engine.EquityPoint) Swing {
	peak := ValueAtTime{Time: curve[0].Time, Value: curve[0].Equity}
	peakIndex := 0
	deepestPeakIndex := 0
	deepest := Swing{
		Highest: peak,
		Lowest:  peak,
	}
	for i := range curve {
		if curve[i].Equity.GreaterThan(peak.Value) {
			peak = ValueAtTime{Time: curve[i].Time, Value: curve[i].Equity}
			peakIndex = i
			continue
		}
		if !peak.Value.IsPositive() {
			continue
		}
		drawdown := curve[i].Equity.Sub(peak.Value).
			Div(peak.Value).
			Mul(oneHundred)
		if drawdown.LessThan(deepest.DrawdownPercent) {
			deepest = Swing{
				Highest:         peak,
				Lowest:          ValueAtTime{Time: curve[i].Time, Value: curve[i].Equity},
				DrawdownPercent: drawdown,
			}
			deepestPeakIndex = peakIndex
		}
	}
	for i := deepestPeakIndex + 1; i < len(curve); i++ {
		if curve[i].Equity.GreaterThanOrEqual(deepest.Highest.Value) {
			break
		}
		deepest.Bars++
	}
	return deepest
}

// calculateTradeStatistics summarises the closed trade log. The profit
// factor is left invalid when there are no losing trades
func (s *Statistic) calculateTradeStatistics(trades []engine.Trade) {
	t := TradeStatistics{TotalTrades: len(trades)}
	if len(trades) == 0 {
		s.Trades = t
		return
	}
	var grossWins, grossLosses decimal.Decimal
	var totalHolding int64
	for i := range trades {
		totalHolding += int64(trades[i].Holding)
		switch {
		case trades[i].NetPnL.IsPositive():
			t.WinningTrades++
			grossWins = grossWins.Add(trades[i].NetPnL)
			if trades[i].NetPnL.GreaterThan(t.LargestWin) {
				t.LargestWin = trades[i].NetPnL
			}
		case trades[i].NetPnL.IsNegative():
			t.LosingTrades++
			grossLosses = grossLosses.Add(trades[i].NetPnL.Abs())
			if trades[i].NetPnL.LessThan(t.LargestLoss) {
				t.LargestLoss = trades[i].NetPnL
			}
		}
	}
	t.WinRatePercent = validMetric(decimal.NewFromInt(int64(t.WinningTrades)).
		Div(decimal.NewFromInt(int64(t.TotalTrades))).
		Mul(oneHundred))
	if t.LosingTrades > 0 {
		t.ProfitFactor = validMetric(grossWins.Div(grossLosses))
		t.AverageLoss = validMetric(grossLosses.Div(decimal.NewFromInt(int64(t.LosingTrades))).Neg())
	}
	if t.WinningTrades > 0 {
		t.AverageWin = validMetric(grossWins.Div(decimal.NewFromInt(int64(t.WinningTrades))))
	}
	t.AverageHolding = time.Duration(totalHolding / int64(len(trades)))
	s.Trades = t
}

// calculateCostStatistics sums cost breakdowns across all trades and
// verifies the gross-to-net relationship they imply
func (s *Statistic) calculateCostStatistics(trades []engine.Trade) {
	c := CostStatistics{}
	for i := range trades {
		c.Total = c.Total.Add(trades[i].Costs)
		c.GrossPnL = c.GrossPnL.Add(trades[i].GrossPnL)
		c.NetPnL = c.NetPnL.Add(trades[i].NetPnL)
	}
	if len(trades) > 0 {
		c.AverageCostPerTrade = validMetric(c.Total.Total().Div(decimal.NewFromInt(int64(len(trades)))))
	}
	if c.GrossPnL.IsPositive() {
		c.CostsPercentOfGross = validMetric(c.Total.Total().
			Div(c.GrossPnL).
			Mul(oneHundred))
	}
	s.Costs = c
}
