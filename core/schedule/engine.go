package schedule

import (
	"context"

	"github.com/tripathik9559/railops/core/model"
)

// Engine produces a schedule for a train set competing for platforms.
// Implementations must treat their inputs as immutable.
type Engine interface {
	// Schedule assigns a start time and platform to every train. The exact
	// engine may return an OptimizationFailedError; the greedy engine never
	// fails on validated input.
	Schedule(ctx context.Context, trains []model.Train, platforms []int) (*Solution, error)
}

// Solution is the raw engine output before metrics are derived.
type Solution struct {
	Assignments    []model.ScheduleAssignment
	ObjectiveValue float64
	WallTime       float64 // seconds spent inside the solver
	Proven         bool    // true when the solver proved optimality
	Overflows      int     // assignments whose buffered end exceeds the horizon
}

// ValidateInput rejects malformed problem instances before any model is
// built. Duplicate ids, non-positive durations and out-of-range priorities
// never reach an engine.
func ValidateInput(trains []model.Train, platforms []int) error {
	if len(trains) == 0 {
		return invalidInputf("no trains to schedule")
	}
	if len(platforms) == 0 {
		return invalidInputf("platform set is empty")
	}
	seen := make(map[string]struct{}, len(trains))
	for _, t := range trains {
		if err := t.Validate(); err != nil {
			return &InvalidInputError{Reason: err.Error()}
		}
		if _, dup := seen[t.ID]; dup {
			return invalidInputf("duplicate train id %s", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	seenPlatform := make(map[int]struct{}, len(platforms))
	for _, p := range platforms {
		if p <= 0 {
			return invalidInputf("platform id %d must be positive", p)
		}
		if _, dup := seenPlatform[p]; dup {
			return invalidInputf("duplicate platform id %d", p)
		}
		seenPlatform[p] = struct{}{}
	}
	return nil
}
