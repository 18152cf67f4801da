// Package costs prices the friction of a fill. Given a trade intent and
// optional market conditions it produces the four cost components -
// spread, slippage, commission and financing - along with cost-adjusted
// execution prices. All calculations are pure and deterministic and all
// component functions return non-negative magnitudes; direction and sign
// are applied by the caller when settling capital.
//
// Spread, slippage and commission are charged per leg, once at entry and
// once at exit. Financing is charged once over the holding period.
package costs

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	one                = decimal.NewFromInt(1)
	two                = decimal.NewFromInt(2)
	oneHundred         = decimal.NewFromInt(100)
	basisPointDivisor  = decimal.NewFromInt(10000)
	daysPerYear        = decimal.NewFromInt(365)
	minimumVolumeRatio = decimal.NewFromFloat(0.1)
)

// Validate ensures the configuration is complete and internally
// consistent. An unrecognised asset class, slippage model or commission
// type is fatal; a default variant is never substituted
func (c *Config) Validate() error {
	if !c.Asset.IsValid() {
		return fmt.Errorf("%w '%v'", ErrInvalidAssetClass, c.Asset)
	}
	if !c.SlippageModel.IsValid() {
		return fmt.Errorf("%w '%v'", ErrInvalidSlippageModel, c.SlippageModel)
	}
	if !c.CommissionType.IsValid() {
		return fmt.Errorf("%w '%v'", ErrInvalidCommissionType, c.CommissionType)
	}
	if c.SpreadBPS.IsNegative() {
		return fmt.Errorf("%w: %v", errNegativeSpread, c.SpreadBPS)
	}
	if c.BaseSlippageBPS.IsNegative() {
		return fmt.Errorf("%w: %v", errNegativeSlippage, c.BaseSlippageBPS)
	}
	if c.CommissionRate.IsNegative() {
		return fmt.Errorf("%w: %v", errNegativeCommission, c.CommissionRate)
	}
	if c.AnnualFinancingRate.IsNegative() {
		return fmt.Errorf("%w: %v", errNegativeFinancingRate, c.AnnualFinancingRate)
	}
	return nil
}

// DefaultCommissionType returns the commission rule conventionally used
// for an asset class: percentage of notional for stocks and crypto, flat
// per contract for futures, per lot for forex when a rate is charged at all
func DefaultCommissionType(a AssetClass) (CommissionType, error) {
	switch a {
	case Stock, Crypto:
		return CommissionPercentage, nil
	case Futures, Forex:
		return CommissionPerUnit, nil
	}
	return "", fmt.Errorf("%w '%v'", ErrInvalidAssetClass, a)
}

// SpreadCost returns the bid-ask spread cost of a single leg.
// The base cost is widened multiplicatively when market conditions are
// supplied: higher volatility and lower liquidity both widen the
// effective spread, never narrow it relative to one another
func (c *Config) SpreadCost(price, quantity decimal.Decimal, cond Conditions) decimal.Decimal {
	cost := c.SpreadBPS.Div(basisPointDivisor).Mul(price).Mul(quantity.Abs())
	if cond.Volatility.IsPositive() {
		cost = cost.Mul(cond.Volatility)
	}
	if cond.Liquidity.IsPositive() {
		// liquidity sits in (0, 1]; a thin market doubles the spread
		liquidity := cond.Liquidity
		if liquidity.GreaterThan(one) {
			liquidity = one
		}
		cost = cost.Mul(two.Sub(liquidity))
	}
	return cost
}

// SlippageCost returns the market impact cost of a single leg under the
// configured slippage model
func (c *Config) SlippageCost(price, quantity decimal.Decimal, cond Conditions) (decimal.Decimal, error) {
	base := c.BaseSlippageBPS.Div(basisPointDivisor).Mul(price).Mul(quantity.Abs())
	switch c.SlippageModel {
	case SlippageFixed:
		return base, nil
	case SlippageVolume:
		// larger relative trade size (smaller volume ratio) strictly
		// increases impact; the ratio is clamped away from zero to keep
		// the multiplier bounded
		ratio := cond.VolumeRatio
		if !ratio.IsPositive() {
			ratio = one
		}
		if ratio.LessThan(minimumVolumeRatio) {
			ratio = minimumVolumeRatio
		}
		return base.Mul(one.Add(one.Div(ratio))), nil
	case SlippageVolatility:
		factor := cond.Volatility
		if !factor.IsPositive() {
			factor = one
		}
		return base.Mul(factor), nil
	}
	return decimal.Zero, fmt.Errorf("%w '%v'", ErrInvalidSlippageModel, c.SlippageModel)
}

// CommissionCost returns the broker commission of a single leg.
// Exactly one rule applies per fill, selected by the configured
// commission specification
func (c *Config) CommissionCost(price, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch c.CommissionType {
	case CommissionNone:
		return decimal.Zero, nil
	case CommissionPercentage:
		return c.CommissionRate.Div(oneHundred).Mul(price).Mul(quantity.Abs()), nil
	case CommissionPerUnit:
		return c.CommissionRate.Mul(quantity.Abs()), nil
	}
	return decimal.Zero, fmt.Errorf("%w '%v'", ErrInvalidCommissionType, c.CommissionType)
}

// FinancingCost returns the non-negative financing magnitude for holding
// a position value over a number of days at the configured annual rate.
// The direction-dependent sign comes from FinancingMultiplier
func (c *Config) FinancingCost(positionValue, daysHeld decimal.Decimal) decimal.Decimal {
	if !daysHeld.IsPositive() {
		return decimal.Zero
	}
	// multiply before dividing to keep whole-day accruals exact
	return positionValue.Abs().Mul(c.AnnualFinancingRate).Mul(daysHeld).Div(daysPerYear)
}

// FinancingMultiplier returns the signed financing convention for a
// direction. Long positions pay at the base rate; the short side follows
// the configured convention, which may be a credit
func (c *Config) FinancingMultiplier(short bool) decimal.Decimal {
	if short {
		return c.ShortFinancingMultiplier
	}
	return one
}

// LegCosts prices one leg of a trade, spread + slippage + commission.
// Financing is excluded as it accrues over the holding period, not per leg
func (c *Config) LegCosts(price, quantity decimal.Decimal, cond Conditions) (Breakdown, error) {
	slippage, err := c.SlippageCost(price, quantity, cond)
	if err != nil {
		return Breakdown{}, err
	}
	commission, err := c.CommissionCost(price, quantity)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Spread:     c.SpreadCost(price, quantity, cond),
		Slippage:   slippage,
		Commission: commission,
	}, nil
}

// AdjustedFillPrice moves the raw price against the trade by the
// per-unit spread and slippage of the leg, producing the execution price
// a live fill would have realised. Buy legs fill above the raw price,
// sell legs below
func (c *Config) AdjustedFillPrice(buyLeg bool, price, quantity decimal.Decimal, cond Conditions) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return price, nil
	}
	slippage, err := c.SlippageCost(price, quantity, cond)
	if err != nil {
		return decimal.Zero, err
	}
	perUnit := c.SpreadCost(price, quantity, cond).Add(slippage).Div(quantity.Abs())
	if buyLeg {
		return price.Add(perUnit), nil
	}
	return price.Sub(perUnit), nil
}

// RoundTripCost aggregates the full breakdown of a completed trade:
// both legs of spread, slippage and commission plus the signed financing
// accrued over the holding period
func (c *Config) RoundTripCost(entryPrice, exitPrice, quantity, daysHeld decimal.Decimal, short bool, entryCond, exitCond Conditions) (Breakdown, error) {
	entry, err := c.LegCosts(entryPrice, quantity, entryCond)
	if err != nil {
		return Breakdown{}, err
	}
	exit, err := c.LegCosts(exitPrice, quantity, exitCond)
	if err != nil {
		return Breakdown{}, err
	}
	b := entry.Add(exit)
	financing := c.FinancingCost(entryPrice.Mul(quantity), daysHeld)
	b.Financing = financing.Mul(c.FinancingMultiplier(short))
	return b, nil
}
