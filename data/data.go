package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NewHandler validates a bar series and wraps it in a stream handler.
// The series must be non-empty with strictly ascending timestamps;
// anything else is fatal before a run starts
func NewHandler(stream []Bar) (*Handler, error) {
	if len(stream) == 0 {
		return nil, ErrNoData
	}
	for i := range stream {
		if stream[i].Time.IsZero() || !stream[i].Close.IsPositive() {
			return nil, fmt.Errorf("%w at index %v", ErrInvalidBar, i)
		}
		if i > 0 && !stream[i].Time.After(stream[i-1].Time) {
			return nil, fmt.Errorf("%w: %v does not follow %v",
				ErrUnorderedSeries,
				stream[i].Time,
				stream[i-1].Time)
		}
	}
	return &Handler{stream: stream}, nil
}

// Next returns the next bar in the stream and shifts the offset along one
func (d *Handler) Next() (Bar, bool) {
	if d.offset >= len(d.stream) {
		return Bar{}, false
	}
	d.offset++
	return d.stream[d.offset-1], true
}

// Latest returns the most recently consumed bar
func (d *Handler) Latest() Bar {
	if d.offset == 0 {
		return Bar{}
	}
	return d.stream[d.offset-1]
}

// History returns every bar consumed so far, including the latest.
// This is the only view a strategy receives
func (d *Handler) History() []Bar {
	return d.stream[:d.offset]
}

// Offset returns the number of bars consumed so far
func (d *Handler) Offset() int {
	return d.offset
}

// Length returns the total number of bars in the stream
func (d *Handler) Length() int {
	return len(d.stream)
}

// IsLastOffset reports whether the latest bar is the final bar of the
// series, the point at which any open positions are force-closed
func (d *Handler) IsLastOffset() bool {
	return d.offset == len(d.stream)
}

// StreamClose returns the close prices of the consumed bars as float64,
// the representation the indicator library operates on
func (d *Handler) StreamClose() []float64 {
	closes := make([]float64, d.offset)
	for i := 0; i < d.offset; i++ {
		closes[i] = d.stream[i].Close.InexactFloat64()
	}
	return closes
}

// First returns the first bar of the stream
func (d *Handler) First() Bar {
	return d.stream[0]
}

// Reset rewinds the handler to the start of the stream
func (d *Handler) Reset() {
	d.offset = 0
}

// TotalMovement returns the buy-and-hold market movement of the full
// series as a percentage, used for market comparison reporting
func (d *Handler) TotalMovement() decimal.Decimal {
	first := d.stream[0].Close
	last := d.stream[len(d.stream)-1].Close
	return last.Sub(first).Div(first).Mul(decimal.NewFromInt(100))
}
