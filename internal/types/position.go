package types

type PositionSide string

const (
	PositionSideFlat  PositionSide = "FLAT"
	PositionSideLong  PositionSide = "LONG"
	PositionSideShort PositionSide = "SHORT"
)

// PositionState is the mutable state of one strategy run.
// Every run starts from the zero value.
type PositionState struct {
	// HeldVolume is 0 when flat, +tradeSize when long stock (short call)
	// and -tradeSize when short stock (short put).
	HeldVolume int `yaml:"held_volume" json:"held_volume"`
	// EntryPrice is the fill price of the open position. Meaningless when flat.
	EntryPrice   float64 `yaml:"entry_price" json:"entry_price"`
	Balance      float64 `yaml:"balance" json:"balance"`
	OptionIncome float64 `yaml:"option_income" json:"option_income"`
	StockIncome  float64 `yaml:"stock_income" json:"stock_income"`
	// PremiumLegs counts the option premium legs credited so far.
	PremiumLegs int `yaml:"premium_legs" json:"premium_legs"`
	// Steps counts the decision pairs consumed so far.
	Steps int `yaml:"steps" json:"steps"`
}

// Side derives the position side from the sign of HeldVolume.
func (p PositionState) Side() PositionSide {
	switch {
	case p.HeldVolume > 0:
		return PositionSideLong
	case p.HeldVolume < 0:
		return PositionSideShort
	default:
		return PositionSideFlat
	}
}

// IsFlat reports whether no position is held.
func (p PositionState) IsFlat() bool {
	return p.HeldVolume == 0
}
