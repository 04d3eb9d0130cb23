package schedule

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tripathik9559/railops/core/model"
)

// BuildMetrics derives schedule statistics from an engine solution. Every
// platform of the input set is reported, unused ones with zero utilization.
func BuildMetrics(sol *Solution, platforms []int, params Params, sampleImprovement bool) model.Metrics {
	m := model.Metrics{Overflows: sol.Overflows}

	delays := make([]float64, len(sol.Assignments))
	occupied := make(map[int]int, len(platforms))
	for i, a := range sol.Assignments {
		delays[i] = float64(a.Delay)
		m.TotalDelay += a.Delay
		if a.Delay == 0 {
			m.OnTimeCount++
		} else {
			m.DelayedCount++
		}
		occupied[a.Platform] += a.Duration
	}
	if len(delays) > 0 {
		m.AverageDelay = round2(stat.Mean(delays, nil))
	}

	m.PlatformUtilization = make([]model.PlatformUtilization, 0, len(platforms))
	for _, id := range platforms {
		percent := float64(occupied[id]) / float64(params.TimeHorizonMinutes) * 100
		m.PlatformUtilization = append(m.PlatformUtilization, model.PlatformUtilization{
			Platform: id,
			Percent:  round1(percent),
		})
	}
	sort.Slice(m.PlatformUtilization, func(i, j int) bool {
		return m.PlatformUtilization[i].Platform < m.PlatformUtilization[j].Platform
	})

	if sampleImprovement {
		m.Improvement = sampleImprovementEstimate(m.TotalDelay, len(sol.Assignments))
	}
	return m
}

// sampleImprovementEstimate compares the achieved total delay against a
// randomly sampled baseline of 5..25 minutes per train. There is no real
// historical schedule behind the baseline; the figure is an illustrative
// estimate and differs between runs.
func sampleImprovementEstimate(totalDelay, trainCount int) *model.Improvement {
	baseline := 0
	for i := 0; i < trainCount; i++ {
		baseline += 5 + rand.Intn(21)
	}
	reduction := baseline - totalDelay
	if reduction < 0 {
		reduction = 0
	}
	percent := 0.0
	if baseline > 0 {
		percent = round1(float64(reduction) / float64(baseline) * 100)
	}
	return &model.Improvement{
		DelayReductionMinutes: reduction,
		DelayReductionPercent: percent,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
