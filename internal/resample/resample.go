// Package resample turns an ascending bar history into the decision pairs
// the strategy engine consumes.
package resample

import (
	"iter"

	"github.com/rxtech-lab/option-regression/internal/types"
	"github.com/rxtech-lab/option-regression/pkg/errors"
)

// Named resampling periods, in bars.
const (
	Daily   = 1
	Weekly  = 5
	Monthly = 20
)

// Resample returns the decision pairs for bars at the given period.
//
// For period 1 every bar is paired with itself. For longer periods the pair at
// index i is (bars[i], bars[i+period]) for i = 0, period, 2*period, ... while
// i+period is in range; the remainder is dropped. The returned sequence does
// not share state and may be ranged over any number of times.
func Resample(bars []types.PriceBar, period int) (iter.Seq[types.DecisionPair], error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "resampling period must be positive, got %d", period)
	}

	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeInsufficientData, "cannot resample an empty bar sequence")
	}

	if period == Daily {
		return func(yield func(types.DecisionPair) bool) {
			for _, bar := range bars {
				if !yield(types.DecisionPair{Entry: bar, Exit: bar}) {
					return
				}
			}
		}, nil
	}

	return func(yield func(types.DecisionPair) bool) {
		for i := 0; i+period < len(bars); i += period {
			if !yield(types.DecisionPair{Entry: bars[i], Exit: bars[i+period]}) {
				return
			}
		}
	}, nil
}

// Count returns how many pairs Resample yields for n bars, without building them.
func Count(n, period int) int {
	if period <= 0 || n <= 0 {
		return 0
	}

	if period == Daily {
		return n
	}

	return (n - 1) / period
}
