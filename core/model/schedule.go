package model

import (
	"fmt"
	"time"
)

// SolveStatus reports how a schedule was produced.
type SolveStatus int

const (
	// StatusOptimal marks a schedule produced by the requested engine.
	// The exact engine does not distinguish proven-optimal from feasible
	// solutions here; both are accepted.
	StatusOptimal SolveStatus = iota
	// StatusFallback marks a heuristic schedule produced after the exact
	// engine failed or timed out.
	StatusFallback
)

func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MarshalText serialises the status as its name.
func (s SolveStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses a status name.
func (s *SolveStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "optimal":
		*s = StatusOptimal
	case "fallback":
		*s = StatusFallback
	default:
		return fmt.Errorf("unknown solve status %q", string(b))
	}
	return nil
}

// ScheduleAssignment is the slot a solve granted to one train. StartTime is
// relative to the start of the scheduling horizon; absolute times are derived.
type ScheduleAssignment struct {
	TrainID   string    `json:"train_id"`
	TrainType TrainType `json:"train_type"`
	Priority  int       `json:"priority"`
	StartTime int       `json:"start_time"` // minutes from horizon start
	Platform  int       `json:"platform"`
	Delay     int       `json:"delay"` // minutes past the preferred time
	Duration  int       `json:"duration"`
}

// AbsoluteStart returns the start in minutes from midnight given the horizon
// offset.
func (a ScheduleAssignment) AbsoluteStart(timeStart int) int {
	return timeStart + a.StartTime
}

// AbsoluteEnd returns the nominal end (without buffer) in minutes from
// midnight.
func (a ScheduleAssignment) AbsoluteEnd(timeStart int) int {
	return a.AbsoluteStart(timeStart) + a.Duration
}

// ClockTime formats minutes from midnight as HH:MM. Values beyond one day
// wrap around, matching timetable display conventions.
func ClockTime(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ConflictSeverity grades a platform conflict by overlap length.
type ConflictSeverity int

const (
	SeverityMedium ConflictSeverity = iota
	SeverityHigh
)

func (s ConflictSeverity) String() string {
	switch s {
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	default:
		return "unknown"
	}
}

// MarshalText serialises the severity as its name.
func (s ConflictSeverity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Conflict reports two schedule entries occupying the same platform at
// overlapping times.
type Conflict struct {
	ID             string           `json:"id"`
	Trains         [2]string        `json:"trains"`
	Platform       int              `json:"platform"`
	OverlapMinutes int              `json:"overlap_minutes"`
	Severity       ConflictSeverity `json:"severity"`
}

// PlatformUtilization is the percentage of the horizon a platform is
// nominally occupied.
type PlatformUtilization struct {
	Platform int     `json:"platform"`
	Percent  float64 `json:"percent"`
}

// Improvement estimates the delay saved against a synthetically sampled
// unoptimized baseline. The baseline is random, not a measurement of any real
// historical schedule, so these figures are illustrative only and
// non-deterministic across runs.
type Improvement struct {
	DelayReductionMinutes int     `json:"delay_reduction_minutes"`
	DelayReductionPercent float64 `json:"delay_reduction_percentage"`
}

// Metrics summarises a produced schedule.
type Metrics struct {
	TotalDelay          int                   `json:"total_delay_minutes"`
	AverageDelay        float64               `json:"average_delay"`
	OnTimeCount         int                   `json:"on_time_trains"`
	DelayedCount        int                   `json:"delayed_trains"`
	Overflows           int                   `json:"horizon_overflows"`
	PlatformUtilization []PlatformUtilization `json:"platform_utilization"`
	Improvement         *Improvement          `json:"optimization_improvement,omitempty"`
}

// ScheduleResult is the public outcome of one solve invocation.
type ScheduleResult struct {
	RunID          string               `json:"run_id"`
	Status         SolveStatus          `json:"status"`
	Assignments    []ScheduleAssignment `json:"assignments"`
	Metrics        Metrics              `json:"metrics"`
	ObjectiveValue float64              `json:"objective_value"`
	SolveTime      time.Duration        `json:"solve_time"`
	Error          string               `json:"error,omitempty"` // cause of the fallback, if any
}
