package buyandhold

import (
	"github.com/frictionlabs/backtester/data"
	"github.com/frictionlabs/backtester/signal"
)

// Name is the strategy name
const Name = "buyandhold"

const description = `Buys on the first bar and holds for the duration of the run. Useful as a benchmark and for isolating the impact of financing costs on a long-held position`

// Strategy is an implementation of the strategies.Handler interface
type Strategy struct{}

// New returns a buy and hold strategy
func New() *Strategy {
	return &Strategy{}
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnData always signals buy; while a position is already held the engine
// treats the repeated buy as a no-op
func (s *Strategy) OnData(_ *data.Handler) signal.Decision {
	return signal.Buy
}
