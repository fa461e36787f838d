// Package telemetry builds the §4.I statistics block attached to a
// completed planning task: wall-clock duration, objective value, and the
// lexicographic terms (coverage, max deviation, sum deviation) from the
// objective's weighting, in the same shape the reference MIP templates
// report their own custom result statistics.
package telemetry

import (
	"time"

	"github.com/nextmv-io/sdk/run/statistics"

	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/solve"
)

// FairnessStatistics is the custom result payload: the three terms §4.C
// weights into the objective, reported individually so an operator can
// tell a low-coverage solve apart from an unfair-but-fully-covered one.
type FairnessStatistics struct {
	Coverage         int     `json:"coverage"`
	MaxDeviation     int     `json:"max_deviation"`
	SumDeviation     int     `json:"sum_deviation"`
	AlternativeCount int     `json:"alternative_count"`
	Objective        float64 `json:"objective"`
}

// Build assembles a statistics.Statistics block for one planning task.
// elapsed is measured by the caller around the planning run, since
// the go-mip Solution type does not expose its own run-time accessor.
func Build(res solve.Result, roster []schedmodel.Worker, alternativeCount int, elapsed time.Duration) *statistics.Statistics {
	stats := statistics.NewStatistics()
	run := statistics.Run{}
	result := statistics.Result{}

	seconds := elapsed.Seconds()
	run.Duration = &seconds
	result.Duration = &seconds

	value := statistics.Float64(res.Objective)
	result.Value = &value

	coverage, maxDev, sumDev := fairnessTerms(res.Matrix, roster)
	result.Custom = FairnessStatistics{
		Coverage:         coverage,
		MaxDeviation:     maxDev,
		SumDeviation:     sumDev,
		AlternativeCount: alternativeCount,
		Objective:        res.Objective,
	}

	stats.Run = &run
	stats.Result = &result
	return stats
}

// fairnessTerms recomputes §4.C's three lexicographic terms directly from
// the materialized matrix, mirroring the objective's weighting without
// needing to carry the solver's slack variables out of the solve package.
func fairnessTerms(m *schedmodel.Matrix, roster []schedmodel.Worker) (coverage, maxDev, sumDev int) {
	if m == nil {
		return 0, 0, 0
	}
	coverage = m.TotalAssigned()

	for _, w := range roster {
		target := w.MaxShifts
		if target <= 0 {
			target = 5
		}
		assigned := len(m.WorkerDayShift(w.Name))
		dev := assigned - target
		if dev < 0 {
			dev = -dev
		}
		sumDev += dev
		if dev > maxDev {
			maxDev = dev
		}
	}
	return coverage, maxDev, sumDev
}
