// Package strategies defines the decision contract between the
// simulation and its strategy collaborators along with a registry of
// the example strategies shipped with the backtester.
package strategies

import (
	"fmt"
	"strings"

	"github.com/frictionlabs/backtester/strategies/buyandhold"
	"github.com/frictionlabs/backtester/strategies/rsi"
	"github.com/frictionlabs/backtester/strategies/smacrossover"
)

// LoadStrategyByName returns a ready-to-use strategy from the registry.
// Lookup is case insensitive
func LoadStrategyByName(name string) (Handler, error) {
	strats := GetStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		return strats[i], nil
	}
	return nil, fmt.Errorf("%w '%v'", ErrStrategyNotFound, name)
}

// GetStrategies returns a new instance of every registered strategy
// with its defaults applied
func GetStrategies() []Handler {
	return []Handler{
		buyandhold.New(),
		smacrossover.New(),
		rsi.New(),
	}
}
