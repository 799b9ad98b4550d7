// Package strategy implements the premium-collection state machine shared by
// every two-direction and long-only variant.
package strategy

import (
	"iter"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/option-regression/internal/logger"
	"github.com/rxtech-lab/option-regression/internal/types"
	"github.com/rxtech-lab/option-regression/pkg/errors"
	"go.uber.org/zap"
)

// StepOutcome describes what a single decision did.
type StepOutcome struct {
	// Trade is the executed buy or sell, if any.
	Trade optional.Option[types.TradeEvent]
	// Legs is the number of premium legs credited.
	Legs int
	// Skipped is set when a losing close was suppressed by loss avoidance.
	Skipped bool
}

// Engine evaluates decision pairs against a PositionState.
// An Engine holds no run state and may be shared between runs.
type Engine struct {
	config types.StrategyConfig
	log    *logger.Logger
}

// NewEngine validates config and returns an engine for it.
func NewEngine(config types.StrategyConfig, log *logger.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		config: config,
		log:    log,
	}, nil
}

// Run folds pairs into a fresh PositionState.
// A position still open when pairs is exhausted is left open.
// On an invariant violation the state and trades accumulated so far are
// returned together with the error.
func (e *Engine) Run(pairs iter.Seq[types.DecisionPair]) (types.PositionState, []types.TradeEvent, error) {
	var state types.PositionState

	trades := make([]types.TradeEvent, 0)

	for pair := range pairs {
		outcome, err := e.Step(&state, pair)
		if err != nil {
			return state, trades, err
		}

		if outcome.Trade.IsSome() {
			trades = append(trades, outcome.Trade.Unwrap())
		}
	}

	return state, trades, nil
}

// Step applies one decision pair to state.
//
// With move = exit.Close - entry.Open and threshold = premiumRate * entry.Open:
//   - flat: buy when move < -threshold, sell short when move > threshold and
//     shorting is allowed, otherwise collect the flat premium legs.
//   - long: sell when move > threshold, otherwise collect the call premium.
//   - short: buy back when move < -threshold, otherwise collect the put premium.
//
// A move exactly on the threshold never trades.
func (e *Engine) Step(state *types.PositionState, pair types.DecisionPair) (StepOutcome, error) {
	open := pair.Entry.Open
	move := pair.Move()
	threshold := e.config.PremiumRate * open

	var (
		outcome StepOutcome
		err     error
	)

	switch {
	case state.IsFlat():
		outcome = e.stepFlat(state, pair.Entry, move, threshold)
	case state.HeldVolume > 0:
		if err = e.checkHeldVolume(state); err != nil {
			return StepOutcome{}, err
		}

		outcome = e.stepLong(state, pair.Entry, move, threshold)
	default:
		if err = e.checkHeldVolume(state); err != nil {
			return StepOutcome{}, err
		}

		outcome = e.stepShort(state, pair.Entry, move, threshold)
	}

	state.Steps++

	return outcome, nil
}

func (e *Engine) stepFlat(state *types.PositionState, entry types.PriceBar, move, threshold float64) StepOutcome {
	size := e.config.TradeSize

	switch {
	case move < -threshold:
		price := e.buyPrice(entry.Open)
		state.HeldVolume = size
		state.EntryPrice = price
		state.Balance -= float64(size) * price
		e.creditPremium(state, entry.Open, 1)

		return StepOutcome{Trade: optional.Some(e.trade(entry, types.PurchaseTypeBuy, price, optional.None[float64]())), Legs: 1}
	case move > threshold && e.config.AllowShort:
		price := e.sellPrice(entry.Open)
		state.HeldVolume = -size
		state.EntryPrice = price
		state.Balance += float64(size) * price
		e.creditPremium(state, entry.Open, 1)

		return StepOutcome{Trade: optional.Some(e.trade(entry, types.PurchaseTypeSell, price, optional.None[float64]())), Legs: 1}
	default:
		legs := e.config.FlatPremiumLegs()
		e.creditPremium(state, entry.Open, legs)

		return StepOutcome{Trade: optional.None[types.TradeEvent](), Legs: legs}
	}
}

func (e *Engine) stepLong(state *types.PositionState, entry types.PriceBar, move, threshold float64) StepOutcome {
	// call exercised
	if move > threshold {
		size := e.config.TradeSize
		price := e.sellPrice(entry.Open)
		earned := (price - state.EntryPrice) * float64(size)

		if e.config.AllowLossAvoidance && earned < 0 {
			e.log.Debug("Skipping losing close",
				zap.String("strategy", e.config.Name),
				zap.Float64("earned", earned),
			)

			return StepOutcome{Trade: optional.None[types.TradeEvent](), Skipped: true}
		}

		state.HeldVolume -= size
		state.Balance += float64(size) * price
		state.StockIncome += earned

		return StepOutcome{Trade: optional.Some(e.trade(entry, types.PurchaseTypeSell, price, optional.Some(earned)))}
	}

	e.creditPremium(state, entry.Open, 1)

	return StepOutcome{Trade: optional.None[types.TradeEvent](), Legs: 1}
}

func (e *Engine) stepShort(state *types.PositionState, entry types.PriceBar, move, threshold float64) StepOutcome {
	// put exercised
	if move < -threshold {
		size := e.config.TradeSize
		price := e.buyPrice(entry.Open)
		earned := (state.EntryPrice - price) * float64(size)

		if e.config.AllowLossAvoidance && earned < 0 {
			e.log.Debug("Skipping losing close",
				zap.String("strategy", e.config.Name),
				zap.Float64("earned", earned),
			)

			return StepOutcome{Trade: optional.None[types.TradeEvent](), Skipped: true}
		}

		state.HeldVolume += size
		state.Balance -= float64(size) * price
		state.StockIncome += earned

		return StepOutcome{Trade: optional.Some(e.trade(entry, types.PurchaseTypeBuy, price, optional.Some(earned)))}
	}

	e.creditPremium(state, entry.Open, 1)

	return StepOutcome{Trade: optional.None[types.TradeEvent](), Legs: 1}
}

// checkHeldVolume fails when a non-flat state holds anything but exactly one trade unit.
func (e *Engine) checkHeldVolume(state *types.PositionState) error {
	size := e.config.TradeSize
	if state.HeldVolume == size || state.HeldVolume == -size {
		return nil
	}

	e.log.Error("Held volume invariant violated",
		zap.String("strategy", e.config.Name),
		zap.Int("held_volume", state.HeldVolume),
		zap.Int("trade_size", size),
	)

	return errors.Newf(errors.ErrCodeInvariantViolation,
		"held volume %d is not one of 0, %d, %d", state.HeldVolume, size, -size)
}

func (e *Engine) creditPremium(state *types.PositionState, open float64, legs int) {
	premium := float64(legs) * e.config.PremiumRate * open * float64(e.config.TradeSize)
	state.Balance += premium
	state.OptionIncome += premium
	state.PremiumLegs += legs
}

func (e *Engine) buyPrice(open float64) float64 {
	return open * (1.0 - e.config.PremiumRate)
}

func (e *Engine) sellPrice(open float64) float64 {
	return open * (1.0 + e.config.PremiumRate)
}

func (e *Engine) trade(entry types.PriceBar, action types.PurchaseType, price float64, realized optional.Option[float64]) types.TradeEvent {
	e.log.Debug("Trade executed",
		zap.String("strategy", e.config.Name),
		zap.String("action", string(action)),
		zap.Time("date", entry.Date),
		zap.Float64("price", price),
	)

	return types.TradeEvent{
		Date:     entry.Date,
		Action:   action,
		Quantity: e.config.TradeSize,
		Price:    price,
		Realized: realized,
	}
}
