package schedule

import (
	"fmt"
	"time"
)

// Params defines the fixed problem parameters of one scheduling horizon.
type Params struct {
	// TimeHorizonMinutes is the total schedulable window.
	TimeHorizonMinutes int `json:"time_horizon_minutes" yaml:"time_horizon_minutes"`
	// TimeStartMinutes is the absolute offset of the horizon in minutes from
	// midnight. All relative times in assignments are offsets from it.
	TimeStartMinutes int `json:"time_start_minutes" yaml:"time_start_minutes"`
	// BufferMinutes is the minimum gap enforced between consecutive
	// occupants of the same platform, added after a train's nominal end.
	BufferMinutes int `json:"buffer_minutes" yaml:"buffer_minutes"`
	// SolverTimeoutSeconds bounds the exact engine's wall-clock search time.
	SolverTimeoutSeconds float64 `json:"solver_timeout_seconds" yaml:"solver_timeout_seconds"`
	// ImprovementSampling enables the synthetic baseline comparison in the
	// produced metrics. The baseline is random and not reproducible.
	ImprovementSampling bool `json:"improvement_sampling" yaml:"improvement_sampling"`
}

// SetDefaults applies the standard eight-hour 06:00 horizon.
func (p *Params) SetDefaults() {
	if p.TimeHorizonMinutes == 0 {
		p.TimeHorizonMinutes = 480
	}
	if p.TimeStartMinutes == 0 {
		p.TimeStartMinutes = 360
	}
	if p.BufferMinutes == 0 {
		p.BufferMinutes = 5
	}
	if p.SolverTimeoutSeconds == 0 {
		p.SolverTimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (p Params) Validate() error {
	if p.TimeHorizonMinutes <= 0 {
		return fmt.Errorf("time horizon must be positive")
	}
	if p.TimeStartMinutes < 0 {
		return fmt.Errorf("time start must not be negative")
	}
	if p.BufferMinutes < 0 {
		return fmt.Errorf("buffer must not be negative")
	}
	if p.SolverTimeoutSeconds < 0 {
		return fmt.Errorf("solver timeout must not be negative")
	}
	return nil
}

// SolverTimeout returns the exact engine budget as a duration.
func (p Params) SolverTimeout() time.Duration {
	return time.Duration(p.SolverTimeoutSeconds * float64(time.Second))
}

// PreferredRelative converts an absolute preferred time to an offset inside
// the horizon, clamped at zero for trains preferring a slot before it opens.
func (p Params) PreferredRelative(preferred int) int {
	rel := preferred - p.TimeStartMinutes
	if rel < 0 {
		return 0
	}
	return rel
}

// priorityWeights maps a priority level to the delay cost per minute in the
// exact engine's objective. Unmapped levels cost 1.
var priorityWeights = map[int]int64{1: 10, 2: 7, 3: 4, 4: 2, 5: 1}

// PriorityWeight returns the objective weight for a priority level.
func PriorityWeight(priority int) int64 {
	if w, ok := priorityWeights[priority]; ok {
		return w
	}
	return 1
}
