// Package report renders a finished run for humans and machines. Every
// report carries a unique identifier so saved output from repeated runs
// can be told apart even when the results are byte-identical.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/frictionlabs/backtester/common"
	"github.com/frictionlabs/backtester/engine"
	"github.com/frictionlabs/backtester/statistics"
)

// Report couples a run's raw result with its calculated statistics
type Report struct {
	ID          uuid.UUID             `json:"id"`
	GeneratedAt time.Time             `json:"generated-at"`
	Result      *engine.Result        `json:"result"`
	Statistics  *statistics.Statistic `json:"statistics"`
}

// New builds a report around a result and its statistics
func New(res *engine.Result, stats *statistics.Statistic) (*Report, error) {
	if res == nil || stats == nil {
		return nil, common.ErrNilArguments
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Report{
		ID:          id,
		GeneratedAt: time.Now().UTC(),
		Result:      res,
		Statistics:  stats,
	}, nil
}

// Serialise returns the report as indented JSON
func (r *Report) Serialise() ([]byte, error) {
	return json.MarshalIndent(r, "", " ")
}

// WriteToFile serialises the report and writes it to path
func (r *Report) WriteToFile(path string) error {
	payload, err := r.Serialise()
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0770)
}

// PrintSummary logs the headline statistics of the run. Undefined
// metrics are reported as undefined rather than omitted so their absence
// is visible
func (r *Report) PrintSummary(log *zap.Logger) error {
	if log == nil {
		return common.ErrNilLogger
	}
	s := r.Statistics
	log.Info("------------------Run Details-------------------------------")
	log.Info("run summary",
		zap.String("id", r.ID.String()),
		zap.String("asset", s.Asset),
		zap.String("strategy", s.StrategyName),
		zap.Time("start", s.StartTime),
		zap.Time("end", s.EndTime))
	log.Info("------------------Returns-----------------------------------")
	log.Info("returns",
		zap.String("initial-capital", s.InitialCapital.String()),
		zap.String("final-equity", s.FinalEquity.String()),
		zap.String("total-return", percent(s.TotalReturnPercent.String())),
		zap.String("cagr", metric(s.CompoundAnnualGrowthRatePercent, "%")))
	log.Info("------------------Risk--------------------------------------")
	log.Info("risk",
		zap.String("sharpe-ratio", metric(s.SharpeRatio, "")),
		zap.String("sortino-ratio", metric(s.SortinoRatio, "")),
		zap.String("annual-volatility", metric(s.AnnualVolatilityPercent, "%")),
		zap.String("max-drawdown", percent(s.MaxDrawdown.DrawdownPercent.String())),
		zap.Int("max-drawdown-bars", s.MaxDrawdown.Bars))
	log.Info("------------------Trades------------------------------------")
	log.Info("trades",
		zap.Int("total", s.Trades.TotalTrades),
		zap.Int("winners", s.Trades.WinningTrades),
		zap.Int("losers", s.Trades.LosingTrades),
		zap.String("win-rate", metric(s.Trades.WinRatePercent, "%")),
		zap.String("profit-factor", metric(s.Trades.ProfitFactor, "")))
	log.Info("------------------Costs-------------------------------------")
	log.Info("costs",
		zap.String("spread", s.Costs.Total.Spread.String()),
		zap.String("slippage", s.Costs.Total.Slippage.String()),
		zap.String("commission", s.Costs.Total.Commission.String()),
		zap.String("financing", s.Costs.Total.Financing.String()),
		zap.String("total", s.Costs.Total.Total().String()),
		zap.String("average-per-trade", metric(s.Costs.AverageCostPerTrade, "")),
		zap.String("percent-of-gross", metric(s.Costs.CostsPercentOfGross, "%")),
		zap.String("gross-pnl", s.Costs.GrossPnL.String()),
		zap.String("net-pnl", s.Costs.NetPnL.String()))
	return nil
}

func percent(v string) string {
	return v + "%"
}

func metric(m statistics.Metric, suffix string) string {
	if !m.Valid {
		return "undefined"
	}
	return fmt.Sprintf("%v%s", m.Value, suffix)
}
