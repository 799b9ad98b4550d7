package types

import (
	"testing"
	"time"

	"github.com/rxtech-lab/option-regression/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PositionTestSuite struct {
	suite.Suite
}

func TestPositionSuite(t *testing.T) {
	suite.Run(t, new(PositionTestSuite))
}

func (suite *PositionTestSuite) TestSide() {
	tests := []struct {
		name     string
		held     int
		expected PositionSide
	}{
		{"flat", 0, PositionSideFlat},
		{"long", 300, PositionSideLong},
		{"short", -300, PositionSideShort},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			state := PositionState{HeldVolume: tc.held}
			suite.Equal(tc.expected, state.Side())
			suite.Equal(tc.held == 0, state.IsFlat())
		})
	}
}

func (suite *PositionTestSuite) TestMove() {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := PriceBar{Date: day, Open: 10, Close: 9.5}
	exit := PriceBar{Date: day.AddDate(0, 0, 7), Open: 11, Close: 12}

	suite.Equal(-0.5, entry.Move())
	suite.Equal(2.0, DecisionPair{Entry: entry, Exit: exit}.Move())
	suite.Equal(-0.5, DecisionPair{Entry: entry, Exit: entry}.Move())
}

func (suite *PositionTestSuite) TestStrategyConfigValidate() {
	valid := StrategyConfig{Name: "two-direction-daily", PremiumRate: 0.005, TradeSize: 300, AllowShort: true, Period: 1}
	suite.NoError(valid.Validate())
	suite.Equal(2, valid.FlatPremiumLegs())

	longOnly := valid
	longOnly.AllowShort = false
	suite.Equal(1, longOnly.FlatPremiumLegs())

	tests := []struct {
		name   string
		mutate func(c *StrategyConfig)
		code   errors.ErrorCode
	}{
		{"missing name", func(c *StrategyConfig) { c.Name = "" }, errors.ErrCodeInvalidConfiguration},
		{"zero premium", func(c *StrategyConfig) { c.PremiumRate = 0 }, errors.ErrCodeInvalidPremiumRate},
		{"premium above one", func(c *StrategyConfig) { c.PremiumRate = 1.5 }, errors.ErrCodeInvalidPremiumRate},
		{"zero trade size", func(c *StrategyConfig) { c.TradeSize = 0 }, errors.ErrCodeInvalidTradeSize},
		{"negative trade size", func(c *StrategyConfig) { c.TradeSize = -300 }, errors.ErrCodeInvalidTradeSize},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfg := valid
			tc.mutate(&cfg)

			err := cfg.Validate()
			suite.True(errors.HasCode(err, tc.code), "got %v", err)
			suite.True(errors.IsConfigurationError(err))
		})
	}
}
