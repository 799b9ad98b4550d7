package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type PurchaseType string

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

// Label returns the verb used in the trade log.
func (p PurchaseType) Label() string {
	switch p {
	case PurchaseTypeBuy:
		return "Buy"
	case PurchaseTypeSell:
		return "Sell"
	default:
		return string(p)
	}
}

// TradeEvent records one executed buy or sell.
type TradeEvent struct {
	// Date is the date of the entry bar the decision was taken on.
	Date     time.Time    `yaml:"date" json:"date"`
	Action   PurchaseType `yaml:"action" json:"action"`
	Quantity int          `yaml:"quantity" json:"quantity"`
	// Price is the fill price, the entry open adjusted by the premium rate.
	Price float64 `yaml:"price" json:"price"`
	// Realized is the stock earning of a closing trade.
	// Opening trades carry none.
	Realized optional.Option[float64] `yaml:"realized" json:"realized"`
}

// IsClose reports whether the event closed a position.
func (t TradeEvent) IsClose() bool {
	return t.Realized.IsSome()
}
