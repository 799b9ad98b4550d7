package types

// RunResult is the outcome of one strategy run.
type RunResult struct {
	// RunID uniquely identifies the run.
	RunID  string         `yaml:"run_id" json:"run_id"`
	Config StrategyConfig `yaml:"config" json:"config"`
	// StartMoney is the notional of one trade at the first bar's open.
	StartMoney float64       `yaml:"start_money" json:"start_money"`
	State      PositionState `yaml:"state" json:"state"`
	Trades     []TradeEvent  `yaml:"trades" json:"trades"`
	// Err is set when the run was aborted. State and Trades then hold
	// whatever was accumulated before the failure.
	Err error `yaml:"-" json:"-"`
}

// Failed reports whether the run was aborted.
func (r RunResult) Failed() bool {
	return r.Err != nil
}

// NumberOfTrades returns the count of executed buys and sells.
func (r RunResult) NumberOfTrades() int {
	return len(r.Trades)
}

// ClosedTrades returns the trades that closed a position.
func (r RunResult) ClosedTrades() []TradeEvent {
	closed := make([]TradeEvent, 0, len(r.Trades))

	for _, trade := range r.Trades {
		if trade.IsClose() {
			closed = append(closed, trade)
		}
	}

	return closed
}
