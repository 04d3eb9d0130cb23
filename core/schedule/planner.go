package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tripathik9559/railops/core/logger"
	coremetrics "github.com/tripathik9559/railops/core/metrics"
	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/schedule/history"
	"github.com/tripathik9559/railops/internal/eventbus"
)

// EngineCPSAT and EngineGreedy name the two engines in records and API
// parameters.
const (
	EngineCPSAT  = "cpsat"
	EngineGreedy = "greedy"
)

// Planner is the façade over both engines. It validates inputs, runs the
// exact engine with automatic fallback to the heuristic, derives metrics and
// feeds the result to the metrics sink, the history store and the event bus.
// A Planner is safe for concurrent use as long as each call receives its own
// input snapshot.
type Planner struct {
	params  Params
	exact   Engine
	greedy  Engine
	sink    coremetrics.MetricsSink
	history history.Store
	bus     *eventbus.TypedBus[model.ScheduleResult]
	log     logger.Logger
}

// NewPlanner wires a planner. Nil engines select the default CP-SAT and
// greedy implementations; the sink, history store, bus and logger may be nil,
// in which case they are skipped.
func NewPlanner(params Params, exact, fallback Engine, sink coremetrics.MetricsSink, hist history.Store, bus *eventbus.TypedBus[model.ScheduleResult], log logger.Logger) (*Planner, error) {
	params.SetDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if exact == nil {
		exact = NewCPSATEngine(params)
	}
	if fallback == nil {
		fallback = NewGreedyEngine(params)
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Planner{
		params:  params,
		exact:   exact,
		greedy:  fallback,
		sink:    sink,
		history: hist,
		bus:     bus,
		log:     log,
	}, nil
}

// Params returns the planner's problem parameters.
func (p *Planner) Params() Params { return p.params }

// Solve runs the exact engine and falls back to the heuristic when it fails.
// An InvalidInputError is the only error callers see; solver failure is fully
// recovered and visible only through the fallback status and diagnostic
// message on the result.
func (p *Planner) Solve(ctx context.Context, trains []model.Train, platforms []int) (*model.ScheduleResult, error) {
	return p.solve(ctx, trains, platforms, "")
}

// SolveScenario perturbs the inputs with the named scenario and solves the
// resulting instance from scratch.
func (p *Planner) SolveScenario(ctx context.Context, scenario Scenario, trains []model.Train, platforms []int) (*model.ScheduleResult, error) {
	trains, platforms = ApplyScenario(scenario, trains, platforms)
	scenarioName := ""
	if scenario != ScenarioNone {
		scenarioName = scenario.String()
	}
	return p.solve(ctx, trains, platforms, scenarioName)
}

func (p *Planner) solve(ctx context.Context, trains []model.Train, platforms []int, scenario string) (*model.ScheduleResult, error) {
	if err := ValidateInput(trains, platforms); err != nil {
		return nil, err
	}

	began := time.Now()
	engine := EngineCPSAT
	fallbackCause := ""
	sol, err := p.exact.Schedule(ctx, trains, platforms)
	if err != nil {
		var failed *OptimizationFailedError
		if !errors.As(err, &failed) {
			return nil, err
		}
		p.log.Warnf("exact engine failed, using heuristic fallback: %v", failed)
		engine = EngineGreedy
		fallbackCause = failed.Error()
		if sol, err = p.greedy.Schedule(ctx, trains, platforms); err != nil {
			return nil, err
		}
	}

	status := model.StatusOptimal
	if fallbackCause != "" {
		status = model.StatusFallback
	}
	result := p.finish(ctx, sol, platforms, status, engine, scenario, fallbackCause, time.Since(began))
	return result, nil
}

// SolveHeuristic runs the greedy engine only. It has no failure mode beyond
// input validation, so the result is always marked optimal.
func (p *Planner) SolveHeuristic(ctx context.Context, trains []model.Train, platforms []int) (*model.ScheduleResult, error) {
	if err := ValidateInput(trains, platforms); err != nil {
		return nil, err
	}
	began := time.Now()
	sol, err := p.greedy.Schedule(ctx, trains, platforms)
	if err != nil {
		return nil, err
	}
	result := p.finish(ctx, sol, platforms, model.StatusOptimal, EngineGreedy, "", "", time.Since(began))
	return result, nil
}

// finish derives metrics, assembles the public result and notifies the
// observability collaborators. Sink and history errors are logged, never
// propagated; a failing recorder must not invalidate a produced schedule.
func (p *Planner) finish(ctx context.Context, sol *Solution, platforms []int, status model.SolveStatus, engine, scenario, cause string, elapsed time.Duration) *model.ScheduleResult {
	result := &model.ScheduleResult{
		RunID:          uuid.NewString(),
		Status:         status,
		Assignments:    sol.Assignments,
		Metrics:        BuildMetrics(sol, platforms, p.params, p.params.ImprovementSampling),
		ObjectiveValue: sol.ObjectiveValue,
		SolveTime:      elapsed,
		Error:          cause,
	}
	p.log.Infof("scheduled %d trains on %d platforms: status=%s total_delay=%dmin",
		len(sol.Assignments), len(platforms), status, result.Metrics.TotalDelay)

	rec := coremetrics.SolveRecord{
		RunID:        result.RunID,
		Status:       status,
		Engine:       engine,
		Scenario:     scenario,
		TrainCount:   len(sol.Assignments),
		TotalDelay:   result.Metrics.TotalDelay,
		AverageDelay: result.Metrics.AverageDelay,
		OnTime:       result.Metrics.OnTimeCount,
		Delayed:      result.Metrics.DelayedCount,
		Overflows:    result.Metrics.Overflows,
		SolveTime:    elapsed,
		Fallback:     status == model.StatusFallback,
		Time:         time.Now(),
	}
	if err := p.sink.RecordSolve(rec); err != nil {
		p.log.Errorf("metrics sink: %v", err)
	}
	if ur, ok := p.sink.(coremetrics.UtilizationRecorder); ok {
		if err := ur.RecordPlatformUtilization(result.RunID, result.Metrics.PlatformUtilization); err != nil {
			p.log.Errorf("utilization metrics: %v", err)
		}
	}
	if p.history != nil {
		h := history.Record{
			Timestamp:   rec.Time,
			RunID:       result.RunID,
			Status:      status,
			Engine:      engine,
			Scenario:    scenario,
			Assignments: result.Assignments,
			Metrics:     result.Metrics,
			Error:       cause,
		}
		if err := p.history.Append(ctx, h); err != nil {
			p.log.Errorf("history store: %v", err)
		}
	}
	if p.bus != nil {
		p.bus.Publish(*result)
	}
	return result
}

// nopLogger keeps the planner usable without a configured logger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
