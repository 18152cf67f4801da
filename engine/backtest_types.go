package engine

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/frictionlabs/backtester/costs"
)

var (
	// ErrInvalidInitialCapital is returned before a run starts when the
	// configured initial capital is not positive
	ErrInvalidInitialCapital = errors.New("initial capital must be positive")
	// ErrInvalidMaxPositions is returned before a run starts when the
	// concurrent position bound is not positive
	ErrInvalidMaxPositions = errors.New("max positions must be positive")
	// ErrInvalidPositionSize is returned before a run starts when the
	// position size percentage is outside (0, 1]
	ErrInvalidPositionSize = errors.New("position size percent must be within (0, 1]")
	// ErrNoAsset is returned before a run starts when no asset
	// identifier is configured
	ErrNoAsset = errors.New("no asset identifier set")
)

// Direction is the side of an exposure
type Direction string

// Position directions
const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Settings configures a single backtest run. It is validated once by New
// and read-only afterwards
type Settings struct {
	Asset          string          `json:"asset"`
	InitialCapital decimal.Decimal `json:"initial-capital"`
	// PositionSizePercent is the fraction of current capital committed
	// to each new position, so sizing compounds with capital changes
	PositionSizePercent decimal.Decimal `json:"position-size-percent"`
	MaxPositions        int             `json:"max-positions"`
	AllowShorting       bool            `json:"allow-shorting"`
	Costs               costs.Config    `json:"costs"`
}

// Position is an open exposure owned exclusively by the engine. It is
// mutated only on financing accrual and destroyed on close
type Position struct {
	Asset      string          `json:"asset"`
	Direction  Direction       `json:"direction"`
	EntryTime  time.Time       `json:"entry-time"`
	EntryClose decimal.Decimal `json:"entry-close"`
	EntryPrice decimal.Decimal `json:"entry-price"`
	Quantity   decimal.Decimal `json:"quantity"`
	// EntryCosts holds the entry leg's spread, slippage and commission,
	// already debited from capital when the position opened
	EntryCosts costs.Breakdown `json:"entry-costs"`
	// FinancingAccrued is the signed financing total so far
	FinancingAccrued decimal.Decimal `json:"financing-accrued"`

	lastAccrual time.Time
}

// MarkToMarket returns the unrealised gross P&L of the position at a price
func (p *Position) MarkToMarket(price decimal.Decimal) decimal.Decimal {
	if p.Direction == Short {
		return p.EntryClose.Sub(price).Mul(p.Quantity)
	}
	return price.Sub(p.EntryClose).Mul(p.Quantity)
}

// Trade is a closed position record, immutable once appended to the log.
// GrossPnL is measured between the raw entry and exit closes; EntryPrice
// and ExitPrice are the cost-adjusted fills. NetPnL always equals
// GrossPnL minus the sum of the four cost components, exactly
type Trade struct {
	Asset      string          `json:"asset"`
	Direction  Direction       `json:"direction"`
	EntryTime  time.Time       `json:"entry-time"`
	ExitTime   time.Time       `json:"exit-time"`
	EntryClose decimal.Decimal `json:"entry-close"`
	ExitClose  decimal.Decimal `json:"exit-close"`
	EntryPrice decimal.Decimal `json:"entry-price"`
	ExitPrice  decimal.Decimal `json:"exit-price"`
	Quantity   decimal.Decimal `json:"quantity"`
	GrossPnL   decimal.Decimal `json:"gross-pnl"`
	NetPnL     decimal.Decimal `json:"net-pnl"`
	Costs      costs.Breakdown `json:"costs"`
	Holding    time.Duration   `json:"holding"`
}

// EquityPoint records account state after a bar's settlement. Equity is
// capital plus the unrealised P&L of open positions net of their accrued
// financing
type EquityPoint struct {
	Time          time.Time       `json:"time"`
	Capital       decimal.Decimal `json:"capital"`
	UnrealisedPnL decimal.Decimal `json:"unrealised-pnl"`
	Equity        decimal.Decimal `json:"equity"`
	OpenPositions int             `json:"open-positions"`
}

// Result is the finalised output of a run, handed off read-only to the
// statistics layer
type Result struct {
	Asset          string          `json:"asset"`
	StrategyName   string          `json:"strategy-name"`
	StartTime      time.Time       `json:"start-time"`
	EndTime        time.Time       `json:"end-time"`
	InitialCapital decimal.Decimal `json:"initial-capital"`
	FinalCapital   decimal.Decimal `json:"final-capital"`
	Trades         []Trade         `json:"trades"`
	EquityCurve    []EquityPoint   `json:"equity-curve"`
}

// BackTest drives a single simulation. All state is process-local and
// owned by the run; the engine is strictly sequential and deterministic
type BackTest struct {
	settings  Settings
	log       *zap.Logger
	capital   decimal.Decimal
	positions map[string]*Position
	trades    []Trade
	equity    []EquityPoint
}
