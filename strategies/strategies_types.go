package strategies

import (
	"errors"

	"github.com/frictionlabs/backtester/data"
	"github.com/frictionlabs/backtester/signal"
)

// ErrStrategyNotFound is returned when a registry lookup fails
var ErrStrategyNotFound = errors.New("strategy not found")

// Handler is the capability a strategy supplies: given the data visible
// up to and including the current bar, decide. Implementations must be
// pure functions of the supplied history to keep runs deterministic
type Handler interface {
	Name() string
	Description() string
	OnData(d *data.Handler) signal.Decision
}
