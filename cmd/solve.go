package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tripathik9559/railops/config"
	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/schedule"
	"github.com/tripathik9559/railops/infra/logger"
)

var (
	solveEngine   string
	solveScenario string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run a one-shot optimization and print the schedule",
	RunE:  solveOnce,
}

func init() {
	solveCmd.Flags().StringVar(&solveEngine, "engine", schedule.EngineCPSAT, "engine to use (cpsat or greedy)")
	solveCmd.Flags().StringVar(&solveScenario, "scenario", "", "scenario to apply (weather, maintenance, peak_hours)")
	rootCmd.AddCommand(solveCmd)
}

func solveOnce(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New("solve-command")
	planner, err := schedule.NewPlanner(cfg.Schedule, nil, nil, nil, nil, nil, logg)
	if err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	trains := cfg.Station.Trains
	platforms := cfg.Station.Platforms
	scenario := schedule.ScenarioFromString(solveScenario)

	res, err := runEngine(ctx, planner, scenario, trains, platforms)
	if err != nil {
		return err
	}

	fmt.Printf("run %s  status=%s  objective=%.0f  solve=%s\n",
		res.RunID, res.Status, res.ObjectiveValue, res.SolveTime)
	for _, a := range res.Assignments {
		fmt.Printf("  %-6s platform %d  start %s  delay %3d min\n",
			a.TrainID, a.Platform, model.ClockTime(a.AbsoluteStart(cfg.Schedule.TimeStartMinutes)), a.Delay)
	}
	fmt.Printf("total delay %d min, average %.1f, on time %d/%d\n",
		res.Metrics.TotalDelay, res.Metrics.AverageDelay,
		res.Metrics.OnTimeCount, len(res.Assignments))
	return nil
}

func runEngine(ctx context.Context, planner *schedule.Planner, scenario schedule.Scenario, trains []model.Train, platforms []int) (*model.ScheduleResult, error) {
	switch solveEngine {
	case schedule.EngineGreedy:
		trains, platforms = schedule.ApplyScenario(scenario, trains, platforms)
		return planner.SolveHeuristic(ctx, trains, platforms)
	case schedule.EngineCPSAT:
		return planner.SolveScenario(ctx, scenario, trains, platforms)
	default:
		return nil, fmt.Errorf("unknown engine %q", solveEngine)
	}
}
