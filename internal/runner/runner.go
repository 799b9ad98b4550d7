// Package runner drives every configured strategy variant over one bar history.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/option-regression/internal/datasource"
	"github.com/rxtech-lab/option-regression/internal/logger"
	"github.com/rxtech-lab/option-regression/internal/resample"
	"github.com/rxtech-lab/option-regression/internal/strategy"
	"github.com/rxtech-lab/option-regression/internal/types"
	"github.com/rxtech-lab/option-regression/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	variants []types.StrategyConfig
	log      *logger.Logger
	parallel bool
}

type Option func(*Runner)

// WithLogger sets the logger used by the runner and its engines.
func WithLogger(log *logger.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithParallel runs the variants concurrently. Results keep variant order.
func WithParallel(parallel bool) Option {
	return func(r *Runner) {
		r.parallel = parallel
	}
}

func NewRunner(variants []types.StrategyConfig, opts ...Option) *Runner {
	r := &Runner{
		variants: variants,
		log:      logger.NewNopLogger(),
		parallel: false,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run loads the bars between start and end from source and runs every variant over them.
func (r *Runner) Run(
	ctx context.Context,
	source datasource.BarSource,
	start optional.Option[time.Time],
	end optional.Option[time.Time],
	callbacks LifecycleCallbacks,
) ([]types.RunResult, error) {
	bars := make([]types.PriceBar, 0)

	for bar, err := range source.ReadAll(start, end) {
		if err != nil {
			return nil, fmt.Errorf("failed to read price bars: %w", err)
		}

		bars = append(bars, bar)
	}

	return r.RunBars(ctx, bars, callbacks)
}

// RunBars runs every variant over bars, which must be in ascending date order.
//
// A configuration error or invariant violation aborts only the affected run
// and is recorded in its RunResult. Callback failures and context
// cancellation abort the whole call.
func (r *Runner) RunBars(ctx context.Context, bars []types.PriceBar, callbacks LifecycleCallbacks) (results []types.RunResult, err error) {
	if callbacks.OnEnd != nil {
		defer func() {
			(*callbacks.OnEnd)(err)
		}()
	}

	if callbacks.OnStart != nil {
		if cbErr := (*callbacks.OnStart)(len(r.variants), len(bars)); cbErr != nil {
			return nil, errors.Wrap(errors.ErrCodeCallbackFailed, "OnStart callback failed", cbErr)
		}
	}

	r.log.Info("Starting strategy runs",
		zap.Int("variants", len(r.variants)),
		zap.Int("bars", len(bars)),
		zap.Bool("parallel", r.parallel),
	)

	results = make([]types.RunResult, len(r.variants))

	if !r.parallel {
		for i, cfg := range r.variants {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}

			result, runErr := r.runOne(i, cfg, bars, callbacks)
			if runErr != nil {
				return nil, runErr
			}

			results[i] = result
		}

		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, cfg := range r.variants {
		g.Go(func() error {
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}

			result, runErr := r.runOne(i, cfg, bars, callbacks)
			if runErr != nil {
				return runErr
			}

			results[i] = result

			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// runOne executes a single variant from a zeroed PositionState.
// The returned error is reserved for failures that abort every run.
func (r *Runner) runOne(index int, cfg types.StrategyConfig, bars []types.PriceBar, callbacks LifecycleCallbacks) (types.RunResult, error) {
	result := types.RunResult{
		RunID:  uuid.New().String(),
		Config: cfg,
		Trades: []types.TradeEvent{},
	}

	if len(bars) > 0 {
		result.StartMoney = float64(cfg.TradeSize) * bars[0].Open
	}

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(result.RunID, index, cfg.Name, resample.Count(len(bars), cfg.Period)); err != nil {
			return result, errors.Wrap(errors.ErrCodeCallbackFailed, "OnRunStart callback failed", err)
		}
	}

	result.State, result.Trades, result.Err = r.execute(cfg, bars)

	if result.Err != nil {
		r.log.Error("Strategy run aborted",
			zap.String("run_id", result.RunID),
			zap.String("strategy", cfg.Name),
			zap.Error(result.Err),
		)
	} else {
		r.log.Info("Strategy run finished",
			zap.String("run_id", result.RunID),
			zap.String("strategy", cfg.Name),
			zap.Int("trades", len(result.Trades)),
			zap.Float64("balance", result.State.Balance),
			zap.Int("held_volume", result.State.HeldVolume),
		)
	}

	if callbacks.OnRunEnd != nil {
		(*callbacks.OnRunEnd)(index, result)
	}

	return result, nil
}

func (r *Runner) execute(cfg types.StrategyConfig, bars []types.PriceBar) (types.PositionState, []types.TradeEvent, error) {
	engine, err := strategy.NewEngine(cfg, r.log)
	if err != nil {
		return types.PositionState{}, []types.TradeEvent{}, err
	}

	pairs, err := resample.Resample(bars, cfg.Period)
	if err != nil {
		return types.PositionState{}, []types.TradeEvent{}, err
	}

	return engine.Run(pairs)
}
