// Package engine walks an ordered price series, queries a strategy at
// each bar and maintains positions, capital, an equity curve and a trade
// log under the configured sizing and concurrency constraints. Costs are
// applied through the costs package so every fill reflects realistic
// execution. The simulation is single-threaded and deterministic;
// identical inputs always produce identical output.
package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/frictionlabs/backtester/common"
	"github.com/frictionlabs/backtester/data"
	"github.com/frictionlabs/backtester/signal"
	"github.com/frictionlabs/backtester/strategies"
)

// New validates run settings and returns a ready engine. Configuration
// problems are fatal here, before any simulation state exists
func New(s Settings) (*BackTest, error) {
	if s.Asset == "" {
		return nil, ErrNoAsset
	}
	if !s.InitialCapital.IsPositive() {
		return nil, fmt.Errorf("%w, received %v", ErrInvalidInitialCapital, s.InitialCapital)
	}
	if s.MaxPositions <= 0 {
		return nil, fmt.Errorf("%w, received %v", ErrInvalidMaxPositions, s.MaxPositions)
	}
	if !s.PositionSizePercent.IsPositive() || s.PositionSizePercent.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w, received %v", ErrInvalidPositionSize, s.PositionSizePercent)
	}
	if err := s.Costs.Validate(); err != nil {
		return nil, err
	}
	b := &BackTest{
		settings: s,
		log:      zap.NewNop(),
	}
	b.Reset()
	return b, nil
}

// SetLogger attaches a logger to the engine
func (b *BackTest) SetLogger(l *zap.Logger) error {
	if l == nil {
		return common.ErrNilLogger
	}
	b.log = l
	return nil
}

// Reset returns the engine to its initial state so it can be reused for
// another run with the same settings
func (b *BackTest) Reset() {
	b.capital = b.settings.InitialCapital
	b.positions = make(map[string]*Position, b.settings.MaxPositions)
	b.trades = nil
	b.equity = nil
}

// Run processes the entire series to completion and returns the
// finalised result. Each bar follows the same sequence: accrue financing
// on open positions, query the strategy with the data so far, apply its
// decision, then settle and record an equity point. Positions still open
// on the final bar are force-closed at its price
func (b *BackTest) Run(d *data.Handler, strategy strategies.Handler) (*Result, error) {
	if d == nil || strategy == nil {
		return nil, common.ErrNilArguments
	}
	d.Reset()
	b.Reset()

	for {
		bar, ok := d.Next()
		if !ok {
			break
		}
		b.accrueFinancing(&bar)
		decision := strategy.OnData(d).Normalise()
		if err := b.processDecision(decision, &bar); err != nil {
			return nil, err
		}
		if d.IsLastOffset() {
			if err := b.closeAllPositions(&bar); err != nil {
				return nil, err
			}
		}
		b.appendEquity(&bar)
	}

	b.log.Info("run complete",
		zap.String("asset", b.settings.Asset),
		zap.String("strategy", strategy.Name()),
		zap.Int("trades", len(b.trades)),
		zap.String("final-capital", b.capital.String()))

	return &Result{
		Asset:          b.settings.Asset,
		StrategyName:   strategy.Name(),
		StartTime:      d.First().Time,
		EndTime:        d.Latest().Time,
		InitialCapital: b.settings.InitialCapital,
		FinalCapital:   b.capital,
		Trades:         b.trades,
		EquityCurve:    b.equity,
	}, nil
}

// processDecision applies one decision against current state. Only a
// transition between flat and open moves capital; a decision matching
// the held direction is a no-op and anything unrecognised was already
// degraded to hold
func (b *BackTest) processDecision(decision signal.Decision, bar *data.Bar) error {
	pos := b.positions[b.settings.Asset]
	switch decision {
	case signal.Buy:
		if pos != nil {
			if pos.Direction == Short {
				return b.closePosition(pos, bar)
			}
			return nil
		}
		return b.openPosition(Long, bar)
	case signal.Sell:
		if pos != nil {
			if pos.Direction == Long {
				return b.closePosition(pos, bar)
			}
			return nil
		}
		if !b.settings.AllowShorting {
			b.log.Debug("shorting disabled, holding",
				zap.String("asset", b.settings.Asset),
				zap.Time("time", bar.Time))
			return nil
		}
		return b.openPosition(Short, bar)
	case signal.Hold:
	}
	return nil
}

// openPosition sizes a new exposure off current capital, debits the
// entry leg's costs and records the position. Sizing is clamped to
// available capital so a fill can never push the account into debt
func (b *BackTest) openPosition(direction Direction, bar *data.Bar) error {
	if len(b.positions) >= b.settings.MaxPositions {
		b.log.Debug("maximum positions held, cannot open",
			zap.String("asset", b.settings.Asset),
			zap.Time("time", bar.Time))
		return nil
	}
	notional := b.capital.Mul(b.settings.PositionSizePercent)
	if notional.GreaterThan(b.capital) {
		notional = b.capital
	}
	if !notional.IsPositive() {
		b.log.Debug("no capital available, cannot open",
			zap.String("asset", b.settings.Asset),
			zap.Time("time", bar.Time))
		return nil
	}
	quantity := notional.Div(bar.Close)
	conditions := bar.Conditions()

	entryCosts, err := b.settings.Costs.LegCosts(bar.Close, quantity, conditions)
	if err != nil {
		return err
	}
	if entryCosts.Total().GreaterThanOrEqual(b.capital) {
		b.log.Debug("entry costs exceed capital, cannot open",
			zap.String("asset", b.settings.Asset),
			zap.Time("time", bar.Time))
		return nil
	}
	fillPrice, err := b.settings.Costs.AdjustedFillPrice(direction == Long, bar.Close, quantity, conditions)
	if err != nil {
		return err
	}

	b.capital = b.capital.Sub(entryCosts.Total())
	b.positions[b.settings.Asset] = &Position{
		Asset:       b.settings.Asset,
		Direction:   direction,
		EntryTime:   bar.Time,
		EntryClose:  bar.Close,
		EntryPrice:  fillPrice,
		Quantity:    quantity,
		EntryCosts:  entryCosts,
		lastAccrual: bar.Time,
	}
	b.log.Debug("opened position",
		zap.String("asset", b.settings.Asset),
		zap.String("direction", string(direction)),
		zap.String("quantity", quantity.String()),
		zap.String("fill-price", fillPrice.String()),
		zap.Time("time", bar.Time))
	return nil
}

// closePosition prices the exit leg, emits a trade with its full cost
// attribution and settles capital by the trade's net P&L. The entry
// leg's costs were debited at open, so only the remainder moves here
func (b *BackTest) closePosition(pos *Position, bar *data.Bar) error {
	conditions := bar.Conditions()
	exitCosts, err := b.settings.Costs.LegCosts(bar.Close, pos.Quantity, conditions)
	if err != nil {
		return err
	}
	fillPrice, err := b.settings.Costs.AdjustedFillPrice(pos.Direction == Short, bar.Close, pos.Quantity, conditions)
	if err != nil {
		return err
	}

	gross := pos.MarkToMarket(bar.Close)
	breakdown := pos.EntryCosts.Add(exitCosts)
	breakdown.Financing = pos.FinancingAccrued
	net := gross.Sub(breakdown.Total())

	b.capital = b.capital.Add(net).Add(pos.EntryCosts.Total())
	b.trades = append(b.trades, Trade{
		Asset:      pos.Asset,
		Direction:  pos.Direction,
		EntryTime:  pos.EntryTime,
		ExitTime:   bar.Time,
		EntryClose: pos.EntryClose,
		ExitClose:  bar.Close,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  fillPrice,
		Quantity:   pos.Quantity,
		GrossPnL:   gross,
		NetPnL:     net,
		Costs:      breakdown,
		Holding:    bar.Time.Sub(pos.EntryTime),
	})
	delete(b.positions, pos.Asset)
	b.log.Debug("closed position",
		zap.String("asset", pos.Asset),
		zap.String("direction", string(pos.Direction)),
		zap.String("net-pnl", net.String()),
		zap.Time("time", bar.Time))
	return nil
}

// closeAllPositions force-closes every open position at the supplied
// bar, used at the end of the series. Keys are walked in sorted order to
// keep the trade log byte-identical between runs
func (b *BackTest) closeAllPositions(bar *data.Bar) error {
	assets := make([]string, 0, len(b.positions))
	for asset := range b.positions {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	for i := range assets {
		if err := b.closePosition(b.positions[assets[i]], bar); err != nil {
			return err
		}
	}
	return nil
}

// accrueFinancing adds the signed financing of the elapsed fraction of a
// day onto each open position. Nothing is realised until the position
// closes
func (b *BackTest) accrueFinancing(bar *data.Bar) {
	assets := make([]string, 0, len(b.positions))
	for asset := range b.positions {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	for i := range assets {
		pos := b.positions[assets[i]]
		elapsed := bar.Time.Sub(pos.lastAccrual)
		if elapsed <= 0 {
			continue
		}
		days := decimal.NewFromFloat(elapsed.Hours() / 24)
		magnitude := b.settings.Costs.FinancingCost(pos.EntryClose.Mul(pos.Quantity), days)
		signed := magnitude.Mul(b.settings.Costs.FinancingMultiplier(pos.Direction == Short))
		pos.FinancingAccrued = pos.FinancingAccrued.Add(signed)
		pos.lastAccrual = bar.Time
	}
}

// appendEquity records exactly one point for the processed bar
func (b *BackTest) appendEquity(bar *data.Bar) {
	unrealised := decimal.Zero
	for _, pos := range b.positions {
		unrealised = unrealised.Add(pos.MarkToMarket(bar.Close)).Sub(pos.FinancingAccrued)
	}
	b.equity = append(b.equity, EquityPoint{
		Time:          bar.Time,
		Capital:       b.capital,
		UnrealisedPnL: unrealised,
		Equity:        b.capital.Add(unrealised),
		OpenPositions: len(b.positions),
	})
}
