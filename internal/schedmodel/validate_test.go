package schedmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func alwaysAvailable(name string, maxShifts int, days, shifts []string) Worker {
	avail := make(map[string]map[string]bool, len(days))
	for _, d := range days {
		byShift := make(map[string]bool, len(shifts))
		for _, s := range shifts {
			byShift[s] = true
		}
		avail[d] = byShift
	}
	return Worker{ID: name, Name: name, MaxShifts: maxShifts, Roles: map[string]bool{}, Availability: avail}
}

func simpleCapacity(days, shifts, stations []string, required int) Capacity {
	stationsOut := make([]Station, len(stations))
	for i, name := range stations {
		capMap := make(map[string]map[string]int, len(days))
		for _, d := range days {
			byShift := make(map[string]int, len(shifts))
			for _, s := range shifts {
				byShift[s] = required
			}
			capMap[d] = byShift
		}
		stationsOut[i] = Station{Name: name, Capacity: capMap, CapacityRoles: map[string]map[string]map[string]int{}}
	}
	return Capacity{Days: days, Shifts: shifts, Stations: stationsOut}
}

func TestValidateCleanMatrixHasNoErrors(t *testing.T) {
	days := []string{"sun", "mon"}
	shifts := []string{"06-14", "14-22"}
	m := NewMatrix(days, shifts, []string{"gate"})
	m.SetCell("sun", "06-14", 0, []string{"alice"})
	roster := Roster{"alice": alwaysAvailable("alice", 5, days, shifts)}
	cap := simpleCapacity(days, shifts, []string{"gate"}, 1)

	errs := Validate(m, cap, roster, 3)
	require.Empty(t, errs)
}

func TestValidateDetectsDuplicateAcrossStations(t *testing.T) {
	days := []string{"sun"}
	shifts := []string{"06-14"}
	m := NewMatrix(days, shifts, []string{"gate", "lobby"})
	m.SetCell("sun", "06-14", 0, []string{"alice"})
	m.SetCell("sun", "06-14", 1, []string{"alice"})
	roster := Roster{"alice": alwaysAvailable("alice", 5, days, shifts)}
	cap := simpleCapacity(days, shifts, []string{"gate", "lobby"}, 1)

	errs := Validate(m, cap, roster, 3)
	require.NotEmpty(t, errs)
	require.Equal(t, 1, errs[0].Invariant)
}

func TestValidateDetectsAdjacentShifts(t *testing.T) {
	days := []string{"sun"}
	shifts := []string{"06-14", "14-22"}
	m := NewMatrix(days, shifts, []string{"gate"})
	m.SetCell("sun", "06-14", 0, []string{"alice"})
	m.SetCell("sun", "14-22", 0, []string{"alice"})
	roster := Roster{"alice": alwaysAvailable("alice", 5, days, shifts)}
	cap := simpleCapacity(days, shifts, []string{"gate"}, 1)

	errs := Validate(m, cap, roster, 3)
	found := false
	for _, e := range errs {
		if e.Invariant == 3 {
			found = true
		}
	}
	require.True(t, found, "expected invariant 3 violation, got %+v", errs)
}

func TestValidateDetectsNightCapOverflow(t *testing.T) {
	days := []string{"sun", "mon", "tue", "wed"}
	shifts := []string{"22-06"}
	m := NewMatrix(days, shifts, []string{"gate"})
	for _, d := range days {
		m.SetCell(d, "22-06", 0, []string{"alice"})
	}
	roster := Roster{"alice": alwaysAvailable("alice", 10, days, shifts)}
	cap := simpleCapacity(days, shifts, []string{"gate"}, 1)

	errs := Validate(m, cap, roster, 2)
	found := false
	for _, e := range errs {
		if e.Invariant == 6 {
			found = true
		}
	}
	require.True(t, found, "expected invariant 6 violation, got %+v", errs)
}

func TestValidateDetectsSevenConsecutiveDays(t *testing.T) {
	days := []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	shifts := []string{"06-14"}
	m := NewMatrix(days, shifts, []string{"gate"})
	for _, d := range days {
		m.SetCell(d, "06-14", 0, []string{"alice"})
	}
	roster := Roster{"alice": alwaysAvailable("alice", 10, days, shifts)}
	cap := simpleCapacity(days, shifts, []string{"gate"}, 1)

	errs := Validate(m, cap, roster, 5)
	found := false
	for _, e := range errs {
		if e.Invariant == 7 {
			found = true
		}
	}
	require.True(t, found, "expected invariant 7 violation, got %+v", errs)
}
