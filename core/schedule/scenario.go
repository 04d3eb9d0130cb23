package schedule

import (
	"math/rand"

	"github.com/tripathik9559/railops/core/model"
)

// Scenario names a parameter perturbation applied before a fresh solve.
type Scenario int

const (
	ScenarioNone Scenario = iota
	// ScenarioWeather lengthens every train's occupation time.
	ScenarioWeather
	// ScenarioMaintenance closes all but a prefix of the platform set.
	ScenarioMaintenance
	// ScenarioPeakHours raises the priority of passenger trains.
	ScenarioPeakHours
)

const maintenancePlatforms = 4

func (s Scenario) String() string {
	switch s {
	case ScenarioWeather:
		return "weather"
	case ScenarioMaintenance:
		return "maintenance"
	case ScenarioPeakHours:
		return "peak_hours"
	default:
		return "none"
	}
}

// ScenarioFromString maps a scenario name to its variant. Unrecognised names
// map to ScenarioNone, which leaves the inputs untouched.
func ScenarioFromString(s string) Scenario {
	switch s {
	case "weather":
		return ScenarioWeather
	case "maintenance":
		return ScenarioMaintenance
	case "peak_hours":
		return ScenarioPeakHours
	default:
		return ScenarioNone
	}
}

// ApplyScenario returns perturbed copies of the train list and platform set.
// The inputs are never mutated; each solve consumes its own snapshot. Weather
// perturbation draws random duration increases, so it is not reproducible
// across calls.
func ApplyScenario(scenario Scenario, trains []model.Train, platforms []int) ([]model.Train, []int) {
	outTrains := make([]model.Train, len(trains))
	copy(outTrains, trains)
	outPlatforms := make([]int, len(platforms))
	copy(outPlatforms, platforms)

	switch scenario {
	case ScenarioWeather:
		for i := range outTrains {
			outTrains[i].Duration += 5 + rand.Intn(11) // +5..15 minutes
		}
	case ScenarioMaintenance:
		// Keeping a fixed-size prefix makes the perturbation idempotent:
		// applying it to an already reduced set changes nothing.
		if len(outPlatforms) > maintenancePlatforms {
			outPlatforms = outPlatforms[:maintenancePlatforms]
		}
	case ScenarioPeakHours:
		for i := range outTrains {
			if outTrains[i].Type == model.TrainPassenger && outTrains[i].Priority > 1 {
				outTrains[i].Priority--
			}
		}
	}
	return outTrains, outPlatforms
}
