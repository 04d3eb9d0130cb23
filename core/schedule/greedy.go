package schedule

import (
	"context"
	"sort"

	"github.com/tripathik9559/railops/core/model"
)

// GreedyEngine assigns trains in one priority-ordered pass with no search or
// backtracking. Each train takes the platform that frees up earliest, never
// revisiting earlier decisions, so the result is deterministic and computed
// in O(trains x platforms). It trades optimality for speed and is used both
// standalone and as the fallback when the exact engine fails.
type GreedyEngine struct {
	Params Params
}

// NewGreedyEngine returns a heuristic engine for the given parameters.
func NewGreedyEngine(params Params) *GreedyEngine {
	params.SetDefaults()
	return &GreedyEngine{Params: params}
}

// Schedule implements Engine. It cannot fail on validated input: the horizon
// is a soft boundary here, exceeding it only counts as an overflow in the
// solution rather than aborting the schedule.
func (e *GreedyEngine) Schedule(_ context.Context, trains []model.Train, platforms []int) (*Solution, error) {
	p := e.Params

	// Stable sort keeps input order among equal priorities, which makes the
	// whole pass deterministic.
	ordered := make([]model.Train, len(trains))
	copy(ordered, trains)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	nextFree := make(map[int]int, len(platforms)) // absolute minutes
	for _, id := range platforms {
		nextFree[id] = p.TimeStartMinutes
	}

	horizonEnd := p.TimeStartMinutes + p.TimeHorizonMinutes
	sol := &Solution{Assignments: make([]model.ScheduleAssignment, 0, len(ordered))}
	for _, t := range ordered {
		platform := earliestPlatform(platforms, nextFree)

		preferredAbs := t.PreferredTime
		if preferredAbs < p.TimeStartMinutes {
			preferredAbs = p.TimeStartMinutes
		}
		start := preferredAbs
		if free := nextFree[platform]; free > start {
			start = free
		}
		delay := start - preferredAbs
		nextFree[platform] = start + t.Duration + p.BufferMinutes

		if start+t.Duration > horizonEnd {
			sol.Overflows++
		}
		sol.Assignments = append(sol.Assignments, model.ScheduleAssignment{
			TrainID:   t.ID,
			TrainType: t.Type,
			Priority:  t.Priority,
			StartTime: start - p.TimeStartMinutes,
			Platform:  platform,
			Delay:     delay,
			Duration:  t.Duration,
		})
		sol.ObjectiveValue += float64(delay) * float64(PriorityWeight(t.Priority))
	}
	return sol, nil
}

// earliestPlatform picks the platform with the smallest next-free time,
// breaking ties by the lowest platform id.
func earliestPlatform(platforms []int, nextFree map[int]int) int {
	best := platforms[0]
	for _, id := range platforms[1:] {
		if nextFree[id] < nextFree[best] || (nextFree[id] == nextFree[best] && id < best) {
			best = id
		}
	}
	return best
}
