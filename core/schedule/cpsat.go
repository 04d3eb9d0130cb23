package schedule

import (
	"context"
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/tripathik9559/railops/core/model"
)

// CPSATEngine builds a finite-domain optimization model and solves it with
// the CP-SAT solver under a hard wall-clock budget. On expiry the best
// feasible solution found so far is returned; if none exists the solve fails
// and the caller is expected to fall back to the greedy engine.
type CPSATEngine struct {
	Params Params
}

// NewCPSATEngine returns an exact engine for the given parameters.
func NewCPSATEngine(params Params) *CPSATEngine {
	params.SetDefaults()
	return &CPSATEngine{Params: params}
}

// trainVars groups the decision variables of one train.
type trainVars struct {
	start    cpmodel.IntVar
	platform cpmodel.IntVar
	delay    cpmodel.IntVar
}

// Schedule implements Engine. Any modeling or solver error, as well as an
// infeasible or unknown outcome, is reported as an OptimizationFailedError.
func (e *CPSATEngine) Schedule(ctx context.Context, trains []model.Train, platforms []int) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, &OptimizationFailedError{Cause: "solve cancelled", Err: err}
	}

	p := e.Params
	builder := cpmodel.NewCpModelBuilder()
	horizon := int64(p.TimeHorizonMinutes)
	buffer := int64(p.BufferMinutes)

	vars := make([]trainVars, len(trains))
	objective := cpmodel.NewLinearExpr()
	for i, t := range trains {
		if int64(t.Duration) > horizon {
			return nil, &OptimizationFailedError{
				Cause: fmt.Sprintf("train %s does not fit the %d-minute horizon", t.ID, p.TimeHorizonMinutes),
			}
		}
		v := trainVars{
			start:    builder.NewIntVarFromDomain(cpmodel.NewDomain(0, horizon-int64(t.Duration))).WithName("start_" + t.ID),
			platform: builder.NewIntVarFromDomain(cpmodel.NewDomain(1, int64(len(platforms)))).WithName("platform_" + t.ID),
			delay:    builder.NewIntVarFromDomain(cpmodel.NewDomain(0, horizon)).WithName("delay_" + t.ID),
		}
		// delay >= |start - preferred| via its two one-sided bounds; the
		// objective pulls the variable down to the deviation itself.
		preferred := int64(p.PreferredRelative(t.PreferredTime))
		builder.AddGreaterOrEqual(v.delay, cpmodel.NewLinearExpr().Add(v.start).AddConstant(-preferred))
		builder.AddGreaterOrEqual(v.delay, cpmodel.NewLinearExpr().AddTerm(v.start, -1).AddConstant(preferred))

		objective.AddTerm(v.delay, PriorityWeight(t.Priority))
		vars[i] = v
	}

	// Pairwise platform exclusion: trains sharing a platform must occupy
	// disjoint buffered windows.
	for i := range trains {
		for j := i + 1; j < len(trains); j++ {
			samePlatform := builder.NewBoolVar().WithName(fmt.Sprintf("same_platform_%s_%s", trains[i].ID, trains[j].ID))
			builder.AddEquality(vars[i].platform, vars[j].platform).OnlyEnforceIf(samePlatform)
			builder.AddNotEqual(vars[i].platform, vars[j].platform).OnlyEnforceIf(samePlatform.Not())

			endI := cpmodel.NewLinearExpr().Add(vars[i].start).AddConstant(int64(trains[i].Duration) + buffer)
			endJ := cpmodel.NewLinearExpr().Add(vars[j].start).AddConstant(int64(trains[j].Duration) + buffer)
			iBeforeJ := builder.NewBoolVar()
			jBeforeI := builder.NewBoolVar()
			builder.AddLessOrEqual(endI, vars[j].start).OnlyEnforceIf(iBeforeJ)
			builder.AddLessOrEqual(endJ, vars[i].start).OnlyEnforceIf(jBeforeI)
			builder.AddBoolOr(iBeforeJ, jBeforeI, samePlatform.Not())
		}
	}

	// Priority ordering: a strictly higher-priority train may not be delayed
	// more than a lower-priority one beyond a slack that widens with the
	// priority gap.
	for i := range trains {
		for j := range trains {
			if trains[i].Priority < trains[j].Priority {
				gap := int64(trains[j].Priority-trains[i].Priority) * 10
				builder.AddLessOrEqual(vars[i].delay, cpmodel.NewLinearExpr().Add(vars[j].delay).AddConstant(gap))
			}
		}
	}

	builder.Minimize(objective)

	m, err := builder.Model()
	if err != nil {
		return nil, &OptimizationFailedError{Cause: "model construction", Err: err}
	}
	params := &sppb.SatParameters{MaxTimeInSeconds: proto.Float64(p.SolverTimeoutSeconds)}
	response, err := cpmodel.SolveCpModelWithParameters(m, params)
	if err != nil {
		return nil, &OptimizationFailedError{Cause: "solver", Err: err}
	}

	status := response.GetStatus()
	if status != cmpb.CpSolverStatus_OPTIMAL && status != cmpb.CpSolverStatus_FEASIBLE {
		return nil, &OptimizationFailedError{
			Cause: fmt.Sprintf("no feasible solution within %.0fs budget (status %s)", p.SolverTimeoutSeconds, status),
		}
	}

	sol := &Solution{
		Assignments:    make([]model.ScheduleAssignment, len(trains)),
		ObjectiveValue: response.GetObjectiveValue(),
		WallTime:       response.GetWallTime(),
		Proven:         status == cmpb.CpSolverStatus_OPTIMAL,
	}
	for i, t := range trains {
		idx := cpmodel.SolutionIntegerValue(response, vars[i].platform)
		sol.Assignments[i] = model.ScheduleAssignment{
			TrainID:   t.ID,
			TrainType: t.Type,
			Priority:  t.Priority,
			StartTime: int(cpmodel.SolutionIntegerValue(response, vars[i].start)),
			Platform:  platforms[idx-1],
			Delay:     int(cpmodel.SolutionIntegerValue(response, vars[i].delay)),
			Duration:  t.Duration,
		}
	}
	return sol, nil
}
