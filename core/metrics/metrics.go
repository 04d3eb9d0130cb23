package metrics

import (
	"time"

	"github.com/tripathik9559/railops/core/model"
)

// SolveRecord captures one optimizer run for observability purposes.
type SolveRecord struct {
	RunID        string
	Status       model.SolveStatus
	Engine       string // "cpsat" or "greedy"
	Scenario     string
	TrainCount   int
	TotalDelay   int
	AverageDelay float64
	OnTime       int
	Delayed      int
	Overflows    int
	SolveTime    time.Duration
	Fallback     bool
	Time         time.Time
}

// MetricsSink records solve outcomes.
type MetricsSink interface {
	RecordSolve(rec SolveRecord) error
}

// UtilizationRecorder optionally records per-platform utilization gauges.
type UtilizationRecorder interface {
	RecordPlatformUtilization(runID string, util []model.PlatformUtilization) error
}

// ConflictRecorder optionally records audit results.
type ConflictRecorder interface {
	RecordConflicts(count int) error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordSolve(SolveRecord) error { return nil }
