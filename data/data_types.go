package data

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frictionlabs/backtester/costs"
)

var (
	// ErrNoData is returned when a handler is created from an empty series
	ErrNoData = errors.New("price series contains no bars")
	// ErrUnorderedSeries is returned when bar timestamps are not strictly
	// ascending
	ErrUnorderedSeries = errors.New("price series timestamps are not strictly ascending")
	// ErrInvalidBar is returned when a bar carries a zero timestamp or a
	// non-positive close price
	ErrInvalidBar = errors.New("bar has invalid fields")
)

// Bar is one time step of market data. It is produced externally and
// consumed read-only. The market condition fields are optional; a zero
// value means the field was not supplied and the corresponding adaptive
// cost adjustment is disabled
type Bar struct {
	Time   time.Time       `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`

	Volatility  decimal.Decimal `json:"volatility,omitempty"`
	Liquidity   decimal.Decimal `json:"liquidity,omitempty"`
	VolumeRatio decimal.Decimal `json:"volume-ratio,omitempty"`
}

// Conditions maps the bar's optional market state onto the cost model's
// condition context
func (b *Bar) Conditions() costs.Conditions {
	return costs.Conditions{
		Volatility:  b.Volatility,
		Liquidity:   b.Liquidity,
		VolumeRatio: b.VolumeRatio,
	}
}

// Handler walks an ordered bar stream one step at a time, exposing only
// the data seen so far to its consumers so a strategy can never peek
// ahead of the simulation
type Handler struct {
	stream []Bar
	offset int
}
