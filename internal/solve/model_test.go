package solve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
)

func availableEveryCell(days, shifts []string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(days))
	for _, d := range days {
		byShift := make(map[string]bool, len(shifts))
		for _, s := range shifts {
			byShift[s] = true
		}
		out[d] = byShift
	}
	return out
}

func oneStationCapacity(days, shifts []string, required int) schedmodel.Capacity {
	capMap := make(map[string]map[string]int, len(days))
	for _, d := range days {
		byShift := make(map[string]int, len(shifts))
		for _, s := range shifts {
			byShift[s] = required
		}
		capMap[d] = byShift
	}
	return schedmodel.Capacity{
		Days:   days,
		Shifts: shifts,
		Stations: []schedmodel.Station{
			{Name: "gate", Capacity: capMap, CapacityRoles: map[string]map[string]map[string]int{}},
		},
	}
}

// TestSolveTwoWorkersTwoCellsNeverDoubleBooked grounds scenario S2 from
// §8: two workers, both fully available, a station requiring one guard on
// two distinct (day, shift) cells must seat exactly two distinct names.
func TestSolveTwoWorkersTwoCellsNeverDoubleBooked(t *testing.T) {
	days := []string{"sun"}
	shifts := []string{"06-14", "14-22"}
	cap := oneStationCapacity(days, shifts, 1)
	avail := availableEveryCell(days, shifts)
	roster := []schedmodel.Worker{
		{Name: "alice", MaxShifts: 5, Roles: map[string]bool{}, Availability: avail},
		{Name: "bob", MaxShifts: 5, Roles: map[string]bool{}, Availability: avail},
	}

	model, vars := Build(cap, roster, BuildOptions{MaxNightsPerWorker: 3})
	result, err := Solve(model, vars, 3*time.Second)
	require.NoError(t, err)
	require.Contains(t, []Status{StatusOptimal, StatusFeasible}, result.Status)

	a := result.Matrix.Cell("sun", "06-14", 0)
	b := result.Matrix.Cell("sun", "14-22", 0)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	require.NotEqual(t, a[0], b[0])
}

// TestSolveRoleReservationLeavesShortfallEmpty grounds scenario S3: a cell
// with required_total=2 and quotas {guard:1, supervisor:1}, one guard-only
// worker and one non-role worker, must assign the guard and leave the
// supervisor seat empty rather than filling it with the non-role worker.
func TestSolveRoleReservationLeavesShortfallEmpty(t *testing.T) {
	days := []string{"sun"}
	shifts := []string{"06-14"}
	capMap := map[string]map[string]int{"sun": {"06-14": 2}}
	roleMap := map[string]map[string]map[string]int{
		"sun": {"06-14": {"guard": 1, "supervisor": 1}},
	}
	cap := schedmodel.Capacity{
		Days:   days,
		Shifts: shifts,
		Stations: []schedmodel.Station{
			{Name: "gate", Capacity: capMap, CapacityRoles: roleMap},
		},
	}
	avail := availableEveryCell(days, shifts)
	roster := []schedmodel.Worker{
		{Name: "guard-alice", MaxShifts: 5, Roles: map[string]bool{"guard": true}, Availability: avail},
		{Name: "no-role-bob", MaxShifts: 5, Roles: map[string]bool{}, Availability: avail},
	}

	model, vars := Build(cap, roster, BuildOptions{MaxNightsPerWorker: 3})
	result, err := Solve(model, vars, 3*time.Second)
	require.NoError(t, err)
	require.Contains(t, []Status{StatusOptimal, StatusFeasible}, result.Status)

	names := result.Matrix.Cell("sun", "06-14", 0)
	require.Contains(t, names, "guard-alice")
	require.NotContains(t, names, "no-role-bob")
	require.Len(t, names, 1)
}

// TestSolveRespectsPin grounds the "Pin honoring" law in §8: a pinned
// name must appear in its pinned cell in the base solution.
func TestSolveRespectsPin(t *testing.T) {
	days := []string{"sun"}
	shifts := []string{"06-14"}
	cap := oneStationCapacity(days, shifts, 1)
	avail := availableEveryCell(days, shifts)
	roster := []schedmodel.Worker{
		{Name: "alice", MaxShifts: 5, Roles: map[string]bool{}, Availability: avail},
		{Name: "bob", MaxShifts: 5, Roles: map[string]bool{}, Availability: avail},
	}
	pins := Pins{"sun": {"06-14": {0: {"bob"}}}}

	model, vars := Build(cap, roster, BuildOptions{MaxNightsPerWorker: 3, Pins: pins})
	result, err := Solve(model, vars, 3*time.Second)
	require.NoError(t, err)
	require.Contains(t, result.Matrix.Cell("sun", "06-14", 0), "bob")
}
