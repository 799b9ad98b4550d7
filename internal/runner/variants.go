package runner

import (
	"github.com/rxtech-lab/option-regression/internal/resample"
	"github.com/rxtech-lab/option-regression/internal/types"
)

const (
	// BasePremiumRate is the daily premium collected per option leg.
	BasePremiumRate = 0.005
	// DefaultTradeSize is the number of shares bought or sold per trade.
	DefaultTradeSize = 300
)

// Premium multipliers for resampled periods. A longer holding period is
// credited as if it accrued that many daily premiums.
const (
	WeeklyPremiumMultiplier  = 4
	MonthlyPremiumMultiplier = 8
)

// DefaultVariants returns the five canonical strategy configurations:
// two-direction daily and weekly, long-only daily, weekly and monthly.
func DefaultVariants(basePremium float64, tradeSize int) []types.StrategyConfig {
	return []types.StrategyConfig{
		{
			Name:        "two-direction-daily",
			PremiumRate: basePremium,
			TradeSize:   tradeSize,
			AllowShort:  true,
			Period:      resample.Daily,
		},
		{
			Name:        "two-direction-weekly",
			PremiumRate: basePremium * WeeklyPremiumMultiplier,
			TradeSize:   tradeSize,
			AllowShort:  true,
			Period:      resample.Weekly,
		},
		{
			Name:        "long-only-daily",
			PremiumRate: basePremium,
			TradeSize:   tradeSize,
			AllowShort:  false,
			Period:      resample.Daily,
		},
		{
			Name:        "long-only-weekly",
			PremiumRate: basePremium * WeeklyPremiumMultiplier,
			TradeSize:   tradeSize,
			AllowShort:  false,
			Period:      resample.Weekly,
		},
		{
			Name:        "long-only-monthly",
			PremiumRate: basePremium * MonthlyPremiumMultiplier,
			TradeSize:   tradeSize,
			AllowShort:  false,
			Period:      resample.Monthly,
		},
	}
}
