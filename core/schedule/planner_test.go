package schedule

import (
	"context"
	"errors"
	"testing"

	coremetrics "github.com/tripathik9559/railops/core/metrics"
	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/schedule/history"
	"github.com/tripathik9559/railops/internal/eventbus"
)

type stubEngine struct {
	sol *Solution
	err error
}

func (s *stubEngine) Schedule(context.Context, []model.Train, []int) (*Solution, error) {
	return s.sol, s.err
}

type recordingSink struct {
	records []coremetrics.SolveRecord
	utils   int
}

func (r *recordingSink) RecordSolve(rec coremetrics.SolveRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingSink) RecordPlatformUtilization(string, []model.PlatformUtilization) error {
	r.utils++
	return nil
}

type memoryHistory struct {
	records []history.Record
}

func (m *memoryHistory) Append(_ context.Context, rec history.Record) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryHistory) Query(context.Context, history.Query) ([]history.Record, error) {
	return m.records, nil
}

func (m *memoryHistory) Close() error { return nil }

func solved() *Solution {
	return &Solution{
		Assignments: []model.ScheduleAssignment{
			{TrainID: "A", Platform: 1, StartTime: 0, Delay: 0, Duration: 10},
		},
		ObjectiveValue: 0,
	}
}

func TestPlannerOptimalPath(t *testing.T) {
	sink := &recordingSink{}
	hist := &memoryHistory{}
	bus := eventbus.NewTyped[model.ScheduleResult]()
	sub := bus.Subscribe()

	planner, err := NewPlanner(Params{}, &stubEngine{sol: solved()}, &stubEngine{}, sink, hist, bus, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	trains := []model.Train{{ID: "A", Priority: 1, Duration: 10, PreferredTime: 360}}
	res, err := planner.Solve(context.Background(), trains, []int{1})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != model.StatusOptimal {
		t.Fatalf("status = %v, want optimal", res.Status)
	}
	if res.RunID == "" {
		t.Fatalf("run id must be set")
	}
	if res.Error != "" {
		t.Fatalf("unexpected diagnostic: %q", res.Error)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 sink record, got %d", len(sink.records))
	}
	rec := sink.records[0]
	if rec.Engine != EngineCPSAT || rec.Fallback {
		t.Fatalf("unexpected record %+v", rec)
	}
	if sink.utils != 1 {
		t.Fatalf("utilization recorder not invoked")
	}
	if len(hist.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(hist.records))
	}
	select {
	case evt := <-sub:
		if evt.RunID != res.RunID {
			t.Fatalf("bus event run id mismatch")
		}
	default:
		t.Fatalf("expected an event on the bus")
	}
}

func TestPlannerFallsBackOnSolverFailure(t *testing.T) {
	sink := &recordingSink{}
	exact := &stubEngine{err: &OptimizationFailedError{Cause: "status INFEASIBLE"}}
	fallback := &stubEngine{sol: solved()}

	planner, err := NewPlanner(Params{}, exact, fallback, sink, nil, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	trains := []model.Train{{ID: "A", Priority: 1, Duration: 10, PreferredTime: 360}}
	res, err := planner.Solve(context.Background(), trains, []int{1})
	if err != nil {
		t.Fatalf("fallback must recover the solve: %v", err)
	}
	if res.Status != model.StatusFallback {
		t.Fatalf("status = %v, want fallback", res.Status)
	}
	if res.Error == "" {
		t.Fatalf("fallback cause must be surfaced on the result")
	}
	if rec := sink.records[0]; rec.Engine != EngineGreedy || !rec.Fallback {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestPlannerRejectsInvalidInput(t *testing.T) {
	planner, err := NewPlanner(Params{}, &stubEngine{sol: solved()}, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	_, err = planner.Solve(context.Background(), nil, []int{1})
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
}

func TestPlannerDoesNotRecoverUnexpectedErrors(t *testing.T) {
	boom := errors.New("boom")
	planner, err := NewPlanner(Params{}, &stubEngine{err: boom}, &stubEngine{sol: solved()}, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	trains := []model.Train{{ID: "A", Priority: 1, Duration: 10, PreferredTime: 360}}
	if _, err := planner.Solve(context.Background(), trains, []int{1}); !errors.Is(err, boom) {
		t.Fatalf("expected the raw error, got %v", err)
	}
}

func TestSolveHeuristic(t *testing.T) {
	planner, err := NewPlanner(Params{}, &stubEngine{err: errors.New("never called")}, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	res, err := planner.SolveHeuristic(context.Background(), model.DefaultTrains(), model.DefaultPlatforms())
	if err != nil {
		t.Fatalf("solve heuristic: %v", err)
	}
	if res.Status != model.StatusOptimal {
		t.Fatalf("heuristic-only solves report optimal, got %v", res.Status)
	}
	if len(res.Assignments) != 4 {
		t.Fatalf("expected 4 assignments, got %d", len(res.Assignments))
	}
}
