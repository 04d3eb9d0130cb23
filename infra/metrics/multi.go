package metrics

import (
	coremetrics "github.com/tripathik9559/railops/core/metrics"
	"github.com/tripathik9559/railops/core/model"
)

// MultiSink fans solve records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolve forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordSolve(rec coremetrics.SolveRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordPlatformUtilization forwards utilization gauges to capable sinks.
func (m *MultiSink) RecordPlatformUtilization(runID string, util []model.PlatformUtilization) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.UtilizationRecorder); ok {
			if err := rec.RecordPlatformUtilization(runID, util); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordConflicts forwards audit counts to capable sinks.
func (m *MultiSink) RecordConflicts(count int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ConflictRecorder); ok {
			if err := rec.RecordConflicts(count); err != nil {
				return err
			}
		}
	}
	return nil
}
