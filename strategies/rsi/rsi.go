package rsi

import (
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/frictionlabs/backtester/data"
	"github.com/frictionlabs/backtester/signal"
)

// Name is the strategy name
const Name = "rsi"

const description = `The relative strength index charts the current and historical strength or weakness of a market based on the closing prices of a recent trading period. Buys when oversold, sells when overbought`

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct {
	rsiPeriod int
	rsiLow    float64
	rsiHigh   float64
}

// New returns an RSI strategy with default thresholds
func New() *Strategy {
	s := &Strategy{}
	s.SetDefaults()
	return s
}

// SetDefaults sets the RSI settings to their default values
func (s *Strategy) SetDefaults() {
	s.rsiPeriod = 14
	s.rsiLow = 30
	s.rsiHigh = 70
}

// SetThresholds overrides the RSI period and bands when they are sane
func (s *Strategy) SetThresholds(period int, low, high float64) {
	if period <= 0 || low <= 0 || high <= low {
		return
	}
	s.rsiPeriod = period
	s.rsiLow = low
	s.rsiHigh = high
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnData signals buy when RSI is at or below the low band and sell when
// at or above the high band. A series shorter than the RSI period holds
// rather than failing
func (s *Strategy) OnData(d *data.Handler) signal.Decision {
	if d == nil {
		return signal.Hold
	}
	closes := d.StreamClose()
	if len(closes) <= s.rsiPeriod {
		return signal.Hold
	}

	rsi := indicators.RSI(closes, s.rsiPeriod)
	latest := rsi[len(rsi)-1]
	switch {
	case latest >= s.rsiHigh:
		return signal.Sell
	case latest <= s.rsiLow:
		return signal.Buy
	}
	return signal.Hold
}
