package planrun

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joey603/sidour-avoda-scheduler/internal/request"
	"github.com/joey603/sidour-avoda-scheduler/internal/solve"
)

func sampleRequest() request.Request {
	return request.Request{
		Config: request.SiteConfig{Stations: []request.StationConfig{
			{
				Name:         "gate",
				UniformRoles: true,
				Workers:      1,
				Days:         map[string]bool{"sun": true},
				Shifts:       []request.ShiftEntry{{Name: "06-14", Enabled: true}},
			},
		}},
		Workers: []request.WorkerInput{
			{Name: "alice", MaxShifts: 5, Availability: map[string][]string{"sun": {"06-14"}}},
		},
		TimeLimitSeconds:   3,
		MaxNightsPerWorker: 3,
		NumAlternatives:    0,
	}
}

func TestPlanReturnsOptimalAssignments(t *testing.T) {
	norm, err := request.Parse(sampleRequest(), request.DefaultValues(), request.Overrides{})
	require.NoError(t, err)

	resp := Plan(context.Background(), norm)
	require.Equal(t, string(solve.StatusOptimal), resp.Status)
	require.Equal(t, []string{"alice"}, resp.Assignments["sun"]["06-14"][0])
}

func TestPlanReturnsNoWorkersStatusForEmptyRoster(t *testing.T) {
	req := sampleRequest()
	req.Workers = nil
	norm, err := request.Parse(req, request.DefaultValues(), request.Overrides{})
	require.NoError(t, err)

	resp := Plan(context.Background(), norm)
	require.Equal(t, string(solve.StatusNoWorkers), resp.Status)
	require.Empty(t, resp.Assignments["sun"]["06-14"][0])
}

func TestPlanStreamEmitsBaseRecord(t *testing.T) {
	norm, err := request.Parse(sampleRequest(), request.DefaultValues(), request.Overrides{})
	require.NoError(t, err)

	ch := PlanStream(context.Background(), norm)
	first := <-ch
	require.Equal(t, "base", first.Type)
	for range ch {
		// drain remaining records (alternative/done)
	}
}
