package costs

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAssetClass is returned during validation when the asset
	// class is not one of the supported values
	ErrInvalidAssetClass = errors.New("invalid asset class")
	// ErrInvalidSlippageModel is returned during validation when the
	// slippage model tag is unrecognised. A default is never substituted
	ErrInvalidSlippageModel = errors.New("invalid slippage model")
	// ErrInvalidCommissionType is returned during validation when the
	// commission specification is unrecognised
	ErrInvalidCommissionType = errors.New("invalid commission type")
	// ErrUnknownPreset is returned when a preset lookup fails
	ErrUnknownPreset = errors.New("unknown cost model preset")

	errNegativeSpread        = errors.New("spread cannot be negative")
	errNegativeSlippage      = errors.New("base slippage cannot be negative")
	errNegativeCommission    = errors.New("commission rate cannot be negative")
	errNegativeFinancingRate = errors.New("annual financing rate cannot be negative")
)

// AssetClass determines default commission behaviour and financing
// sign conventions
type AssetClass string

// Supported asset classes
const (
	Forex   AssetClass = "forex"
	Stock   AssetClass = "stock"
	Crypto  AssetClass = "crypto"
	Futures AssetClass = "futures"
)

// IsValid checks whether the asset class is a member of the supported set
func (a AssetClass) IsValid() bool {
	switch a {
	case Forex, Stock, Crypto, Futures:
		return true
	}
	return false
}

// SlippageModel selects how slippage responds to market conditions.
// The models are mutually exclusive, never combined
type SlippageModel string

// Supported slippage models
const (
	SlippageFixed      SlippageModel = "fixed"
	SlippageVolume     SlippageModel = "volume"
	SlippageVolatility SlippageModel = "volatility"
)

// IsValid checks whether the slippage model tag is recognised
func (s SlippageModel) IsValid() bool {
	switch s {
	case SlippageFixed, SlippageVolume, SlippageVolatility:
		return true
	}
	return false
}

// CommissionType selects which single commission rule applies per fill
type CommissionType string

// Supported commission types
const (
	// CommissionNone charges nothing, eg spread-only forex pricing
	CommissionNone CommissionType = "none"
	// CommissionPercentage charges a percentage of notional,
	// eg stocks and crypto taker fees
	CommissionPercentage CommissionType = "percentage"
	// CommissionPerUnit charges a flat amount per unit/contract,
	// eg futures and per-lot forex pricing
	CommissionPerUnit CommissionType = "per-unit"
)

// IsValid checks whether the commission type is recognised
func (c CommissionType) IsValid() bool {
	switch c {
	case CommissionNone, CommissionPercentage, CommissionPerUnit:
		return true
	}
	return false
}

// Config holds every parameter of a cost model. It is built once,
// validated up front and reused read-only for every fill
type Config struct {
	Asset           AssetClass      `json:"asset"`
	SpreadBPS       decimal.Decimal `json:"spread-bps"`
	CommissionType  CommissionType  `json:"commission-type"`
	CommissionRate  decimal.Decimal `json:"commission-rate"`
	SlippageModel   SlippageModel   `json:"slippage-model"`
	BaseSlippageBPS decimal.Decimal `json:"base-slippage-bps"`
	// AnnualFinancingRate is the yearly rate applied pro-rata per day held
	AnnualFinancingRate decimal.Decimal `json:"annual-financing-rate"`
	// ShortFinancingMultiplier expresses the short-side financing
	// convention: -1 receives symmetric financing (forex), 1.5 pays a
	// premium rate (stocks/crypto), 0 pays nothing. Long positions
	// always carry a multiplier of 1
	ShortFinancingMultiplier decimal.Decimal `json:"short-financing-multiplier"`
}

// Conditions carries optional per-bar market state used by the adaptive
// cost adjustments. A zero field means the condition was not supplied
// and the corresponding adjustment is disabled
type Conditions struct {
	Volatility  decimal.Decimal `json:"volatility"`
	Liquidity   decimal.Decimal `json:"liquidity"`
	VolumeRatio decimal.Decimal `json:"volume-ratio"`
}

// Breakdown attributes a trade's total cost to its four components.
// Spread, slippage and commission are non-negative magnitudes summed
// over both legs. Financing is signed, a negative value is a credit
type Breakdown struct {
	Spread     decimal.Decimal `json:"spread"`
	Slippage   decimal.Decimal `json:"slippage"`
	Commission decimal.Decimal `json:"commission"`
	Financing  decimal.Decimal `json:"financing"`
}

// Total sums all four components
func (b Breakdown) Total() decimal.Decimal {
	return b.Spread.Add(b.Slippage).Add(b.Commission).Add(b.Financing)
}

// Add combines two breakdowns component-wise
func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{
		Spread:     b.Spread.Add(o.Spread),
		Slippage:   b.Slippage.Add(o.Slippage),
		Commission: b.Commission.Add(o.Commission),
		Financing:  b.Financing.Add(o.Financing),
	}
}
