package types

import "time"

// PriceBar is one trading period's quote.
// Only Date, Open and Close drive the strategy engine. High, Low, Volume and
// Percent are carried through from the source file for reporting.
type PriceBar struct {
	Date    time.Time `yaml:"date" json:"date" csv:"date"`
	Open    float64   `yaml:"open" json:"open" csv:"open"`
	Close   float64   `yaml:"close" json:"close" csv:"close"`
	High    float64   `yaml:"high" json:"high" csv:"high"`
	Low     float64   `yaml:"low" json:"low" csv:"low"`
	Volume  string    `yaml:"volume" json:"volume" csv:"volume"`
	Percent string    `yaml:"percent" json:"percent" csv:"percent"`
}

// Move returns the close-minus-open change of a single bar.
func (b PriceBar) Move() float64 {
	return b.Close - b.Open
}

// DecisionPair is the unit the strategy engine decides on.
// Entry is the bar at the start of a resampling period and Exit the bar one
// period later. For daily decisions Entry and Exit are the same bar.
type DecisionPair struct {
	Entry PriceBar
	Exit  PriceBar
}

// Move is the exit close minus the entry open.
func (p DecisionPair) Move() float64 {
	return p.Exit.Close - p.Entry.Open
}
