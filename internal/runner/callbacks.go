package runner

import "github.com/rxtech-lab/option-regression/internal/types"

// Lifecycle callback types for runner phases.
// All callbacks with error return abort the whole call if they return an error.
// In parallel mode run callbacks are invoked from several goroutines.

// OnStartCallback is called once the bar history is loaded, before any run.
type OnStartCallback func(totalRuns int, totalBars int) error

// OnEndCallback is called when the runner finishes (always called via defer).
type OnEndCallback func(err error)

// OnRunStartCallback is called when a strategy variant begins.
// runID is a unique identifier for this run, generated before processing starts.
type OnRunStartCallback func(runID string, runIndex int, name string, totalPairs int) error

// OnRunEndCallback is called when a strategy variant ends, successfully or not.
type OnRunEndCallback func(runIndex int, result types.RunResult)

// LifecycleCallbacks holds all lifecycle callback functions for the runner.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnStart    *OnStartCallback
	OnEnd      *OnEndCallback
	OnRunStart *OnRunStartCallback
	OnRunEnd   *OnRunEndCallback
}
