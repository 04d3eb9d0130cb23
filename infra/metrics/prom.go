package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/tripathik9559/railops/core/metrics"
	"github.com/tripathik9559/railops/core/model"
)

// PromSink records solve outcomes in Prometheus metrics.
type PromSink struct {
	solves      *prometheus.CounterVec
	solveTime   *prometheus.HistogramVec
	totalDelay  prometheus.Gauge
	utilization *prometheus.GaugeVec
	conflicts   prometheus.Counter
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The Prometheus server is started separately.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_solves_total",
		Help: "Total number of schedule solves",
	}, []string{"engine", "status", "fallback"})
	solveTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_solve_seconds",
		Help:    "Wall-clock time spent producing a schedule",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})
	totalDelay := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_total_delay_minutes",
		Help: "Priority-weighted total delay of the latest schedule",
	})
	utilization := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule_platform_utilization_percent",
		Help: "Share of the horizon each platform is occupied in the latest schedule",
	}, []string{"platform"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_audit_conflicts_total",
		Help: "Conflicts reported by the schedule auditor",
	})

	s := &PromSink{solves: solves, solveTime: solveTime, totalDelay: totalDelay, utilization: utilization, conflicts: conflicts}
	for _, c := range []prometheus.Collector{solves, solveTime, totalDelay, utilization, conflicts} {
		if err := register(reg, c, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// register tolerates re-registration so multiple sinks in one process reuse
// the existing collectors.
func register(reg prometheus.Registerer, c prometheus.Collector, s *PromSink) error {
	err := reg.Register(c)
	if err == nil {
		return nil
	}
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if !ok {
		return err
	}
	switch c {
	case s.solves:
		s.solves = are.ExistingCollector.(*prometheus.CounterVec)
	case s.solveTime:
		s.solveTime = are.ExistingCollector.(*prometheus.HistogramVec)
	case s.totalDelay:
		s.totalDelay = are.ExistingCollector.(prometheus.Gauge)
	case s.utilization:
		s.utilization = are.ExistingCollector.(*prometheus.GaugeVec)
	case s.conflicts:
		s.conflicts = are.ExistingCollector.(prometheus.Counter)
	}
	return nil
}

// RecordSolve increments the solve counter and observes the solve duration.
func (s *PromSink) RecordSolve(rec coremetrics.SolveRecord) error {
	s.solves.WithLabelValues(rec.Engine, rec.Status.String(), strconv.FormatBool(rec.Fallback)).Inc()
	s.solveTime.WithLabelValues(rec.Engine).Observe(rec.SolveTime.Seconds())
	s.totalDelay.Set(float64(rec.TotalDelay))
	return nil
}

// RecordPlatformUtilization sets the per-platform occupancy gauges.
func (s *PromSink) RecordPlatformUtilization(_ string, util []model.PlatformUtilization) error {
	for _, u := range util {
		s.utilization.WithLabelValues(strconv.Itoa(u.Platform)).Set(u.Percent)
	}
	return nil
}

// RecordConflicts counts audited conflicts.
func (s *PromSink) RecordConflicts(count int) error {
	s.conflicts.Add(float64(count))
	return nil
}
