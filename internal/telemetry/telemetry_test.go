package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/solve"
)

func TestBuildReportsCoverageAndDeviation(t *testing.T) {
	days := []string{"sun", "mon"}
	shifts := []string{"06-14"}
	stations := []string{"gate"}

	m := schedmodel.NewMatrix(days, shifts, stations)
	m.SetCell("sun", "06-14", 0, []string{"alice"})

	roster := []schedmodel.Worker{
		{Name: "alice", MaxShifts: 5},
		{Name: "bob", MaxShifts: 5},
	}

	res := solve.Result{Matrix: m, Objective: 1_000_000}
	stats := Build(res, roster, 3, 250*time.Millisecond)

	require.NotNil(t, stats.Result)
	fairness, ok := stats.Result.Custom.(FairnessStatistics)
	require.True(t, ok)
	require.Equal(t, 1, fairness.Coverage)
	require.Equal(t, 3, fairness.AlternativeCount)
	require.Equal(t, 5, fairness.MaxDeviation)   // bob: |0-5|
	require.Equal(t, 4+5, fairness.SumDeviation) // alice: |1-5|=4, bob: |0-5|=5
}

func TestBuildHandlesNilMatrix(t *testing.T) {
	stats := Build(solve.Result{}, nil, 0, time.Second)
	fairness := stats.Result.Custom.(FairnessStatistics)
	require.Equal(t, 0, fairness.Coverage)
	require.Equal(t, 0, fairness.MaxDeviation)
}
