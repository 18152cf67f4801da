// Package signal holds the decision vocabulary shared by strategies and
// the simulation engine.
package signal

// Decision is a strategy's verdict for the current bar. Strategies are
// untrusted external collaborators; any value outside the three known
// decisions is degraded to Hold by the engine rather than erroring
type Decision string

// The three recognised decisions
const (
	Buy  Decision = "buy"
	Sell Decision = "sell"
	Hold Decision = "hold"
)

// Normalise degrades any unrecognised decision value to Hold
func (d Decision) Normalise() Decision {
	switch d {
	case Buy, Sell, Hold:
		return d
	}
	return Hold
}
