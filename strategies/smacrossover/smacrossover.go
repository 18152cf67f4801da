package smacrossover

import (
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/frictionlabs/backtester/data"
	"github.com/frictionlabs/backtester/signal"
)

// Name is the strategy name
const Name = "smacrossover"

const description = `Classic moving average crossover. Buys when the fast simple moving average crosses above the slow one and sells when it crosses back below`

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	fastPeriod int
	slowPeriod int
}

// New returns an SMA crossover strategy with default periods
func New() *Strategy {
	s := &Strategy{}
	s.SetDefaults()
	return s
}

// SetDefaults sets the moving average periods to their default values
func (s *Strategy) SetDefaults() {
	s.fastPeriod = 10
	s.slowPeriod = 30
}

// SetPeriods overrides the fast and slow periods when both are sane
func (s *Strategy) SetPeriods(fast, slow int) {
	if fast <= 0 || slow <= fast {
		return
	}
	s.fastPeriod = fast
	s.slowPeriod = slow
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnData compares the fast and slow simple moving averages of the
// history so far. Until the slow window plus one bar is available there
// is no crossover to evaluate and the strategy holds
func (s *Strategy) OnData(d *data.Handler) signal.Decision {
	if d == nil {
		return signal.Hold
	}
	closes := d.StreamClose()
	if len(closes) <= s.slowPeriod {
		return signal.Hold
	}

	fast := indicators.SMA(closes, s.fastPeriod)
	slow := indicators.SMA(closes, s.slowPeriod)
	if len(fast) < 2 || len(slow) < 2 {
		return signal.Hold
	}

	fastNow := fast[len(fast)-1]
	slowNow := slow[len(slow)-1]
	fastPrev := fast[len(fast)-2]
	slowPrev := slow[len(slow)-2]

	switch {
	case fastPrev <= slowPrev && fastNow > slowNow:
		return signal.Buy
	case fastPrev >= slowPrev && fastNow < slowNow:
		return signal.Sell
	}
	return signal.Hold
}
