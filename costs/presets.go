package costs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// presets is an immutable mapping of named cost model bundles built once
// at process start. Callers receive copies, never the stored values
var presets = map[string]Config{
	"forex_retail": {
		Asset:                    Forex,
		SpreadBPS:                decimal.NewFromFloat(2),
		CommissionType:           CommissionNone,
		SlippageModel:            SlippageFixed,
		BaseSlippageBPS:          decimal.NewFromFloat(0.5),
		AnnualFinancingRate:      decimal.NewFromFloat(0.05),
		ShortFinancingMultiplier: decimal.NewFromInt(-1),
	},
	"forex_institutional": {
		Asset:                    Forex,
		SpreadBPS:                decimal.NewFromFloat(0.5),
		CommissionType:           CommissionNone,
		SlippageModel:            SlippageFixed,
		BaseSlippageBPS:          decimal.NewFromFloat(0.2),
		AnnualFinancingRate:      decimal.NewFromFloat(0.03),
		ShortFinancingMultiplier: decimal.NewFromInt(-1),
	},
	"stocks_commission_free": {
		Asset:                    Stock,
		SpreadBPS:                decimal.NewFromFloat(5),
		CommissionType:           CommissionNone,
		SlippageModel:            SlippageFixed,
		BaseSlippageBPS:          decimal.NewFromFloat(1),
		AnnualFinancingRate:      decimal.NewFromFloat(0.08),
		ShortFinancingMultiplier: decimal.NewFromFloat(1.5),
	},
	"stocks_traditional": {
		Asset:                    Stock,
		SpreadBPS:                decimal.NewFromFloat(5),
		CommissionType:           CommissionPerUnit,
		CommissionRate:           decimal.NewFromFloat(0.005),
		SlippageModel:            SlippageFixed,
		BaseSlippageBPS:          decimal.NewFromFloat(1),
		AnnualFinancingRate:      decimal.NewFromFloat(0.08),
		ShortFinancingMultiplier: decimal.NewFromFloat(1.5),
	},
	"crypto_exchange": {
		Asset:                    Crypto,
		SpreadBPS:                decimal.NewFromFloat(10),
		CommissionType:           CommissionPercentage,
		CommissionRate:           decimal.NewFromFloat(0.1),
		SlippageModel:            SlippageVolatility,
		BaseSlippageBPS:          decimal.NewFromFloat(5),
		ShortFinancingMultiplier: decimal.NewFromFloat(1.5),
	},
	"futures_cme": {
		Asset:                    Futures,
		SpreadBPS:                decimal.NewFromFloat(1),
		CommissionType:           CommissionPerUnit,
		CommissionRate:           decimal.NewFromFloat(2.5),
		SlippageModel:            SlippageFixed,
		BaseSlippageBPS:          decimal.NewFromFloat(0.5),
		ShortFinancingMultiplier: decimal.NewFromInt(1),
	},
}

// GetPreset returns a copy of a named cost model bundle.
// Lookup is case insensitive
func GetPreset(name string) (Config, error) {
	c, ok := presets[strings.ToLower(name)]
	if !ok {
		return Config{}, fmt.Errorf("%w '%v', available: %v", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return c, nil
}

// PresetNames returns the sorted names of all available presets
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
