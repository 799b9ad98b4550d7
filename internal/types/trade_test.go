package types

import (
	"errors"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) TestPurchaseTypeLabel() {
	suite.Equal("Buy", PurchaseTypeBuy.Label())
	suite.Equal("Sell", PurchaseTypeSell.Label())
	suite.Equal("HOLD", PurchaseType("HOLD").Label())
}

func (suite *TradeTestSuite) TestIsClose() {
	open := TradeEvent{Action: PurchaseTypeBuy, Quantity: 300, Price: 9.95, Realized: optional.None[float64]()}
	closing := TradeEvent{Action: PurchaseTypeSell, Quantity: 300, Price: 10.05, Realized: optional.Some(30.0)}

	suite.False(open.IsClose())
	suite.True(closing.IsClose())
}

func (suite *TradeTestSuite) TestClosedTrades() {
	result := RunResult{
		Trades: []TradeEvent{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Action: PurchaseTypeBuy, Quantity: 300, Price: 9.95},
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Action: PurchaseTypeSell, Quantity: 300, Price: 10.05, Realized: optional.Some(30.0)},
			{Date: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), Action: PurchaseTypeBuy, Quantity: 300, Price: 9.9},
		},
	}

	suite.Equal(3, result.NumberOfTrades())
	closed := result.ClosedTrades()
	suite.Len(closed, 1)
	suite.Equal(30.0, closed[0].Realized.Unwrap())
	suite.False(result.Failed())

	result.Err = errors.New("boom")
	suite.True(result.Failed())
}
