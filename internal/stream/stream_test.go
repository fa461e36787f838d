package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joey603/sidour-avoda-scheduler/internal/capacity"
	"github.com/joey603/sidour-avoda-scheduler/internal/request"
	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/solve"
)

func simpleCapacityAndRoster() (schedmodel.Capacity, []schedmodel.Worker) {
	cfg := capacity.Config{Stations: []capacity.StationConfig{
		{
			Name:         "gate",
			UniformRoles: true,
			Workers:      1,
			Days:         map[string]bool{"sun": true},
			Shifts:       []capacity.ShiftEntry{{Name: "06-14", Enabled: true}},
		},
	}}
	cap := capacity.Compile(cfg)
	avail := map[string]map[string]bool{"sun": {"06-14": true}}
	roster := []schedmodel.Worker{
		{Name: "alice", MaxShifts: 5, Roles: map[string]bool{}, Availability: avail},
	}
	return cap, roster
}

func TestRunEmitsBaseBeforeDoneForEmptyAlternativeBudget(t *testing.T) {
	cap, roster := simpleCapacityAndRoster()
	ctx := context.Background()

	ch := Run(ctx, cap, roster, Options{
		TimeLimitSeconds: 3,
		NumAlternatives:  0,
		BuildOptions:     solve.BuildOptions{MaxNightsPerWorker: 3},
	})

	var records []request.StreamRecord
	for rec := range ch {
		records = append(records, rec)
	}

	require.NotEmpty(t, records)
	require.Equal(t, "base", records[0].Type)
	require.Equal(t, "done", records[len(records)-1].Type)
}

func TestRunEmitsNoWorkersStatusForEmptyRoster(t *testing.T) {
	cap, _ := simpleCapacityAndRoster()
	ctx := context.Background()

	ch := Run(ctx, cap, nil, Options{TimeLimitSeconds: 3, NumAlternatives: 5})

	var records []request.StreamRecord
	for rec := range ch {
		records = append(records, rec)
	}

	require.Len(t, records, 2)
	require.Equal(t, "status", records[0].Type)
	require.Equal(t, string(solve.StatusNoWorkers), records[0].Status)
	require.Equal(t, "done", records[1].Type)
}

func TestRunStopsAtCancellation(t *testing.T) {
	cap, roster := simpleCapacityAndRoster()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := Run(ctx, cap, roster, Options{TimeLimitSeconds: 3, NumAlternatives: 0, BuildOptions: solve.BuildOptions{MaxNightsPerWorker: 3}})

	select {
	case _, ok := <-ch:
		_ = ok
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for producer to observe cancellation")
	}
}
