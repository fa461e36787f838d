// Package capacity implements the capacity compiler (§4.B): it flattens a
// site's station configuration — which may mix a per-day-override layout
// and a global days×shifts layout — into the uniform Capacity model that
// every downstream component (model builder, local-move enumerator,
// validator) indexes by.
package capacity

import (
	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/textnorm"
)

// RoleEntry is one role-count row in a station or per-shift role list.
type RoleEntry struct {
	Name    string
	Enabled bool
	Count   int
}

// ShiftEntry is one shift row under a station's global or per-day-override
// shift list.
type ShiftEntry struct {
	Name    string
	Enabled bool
	Workers int
	Roles   []RoleEntry
}

// DayOverride is one entry of a per-day-custom station's dayOverrides map.
type DayOverride struct {
	Active bool
	Shifts []ShiftEntry
}

// StationConfig is the tagged-variant input for one station, matching
// §6.1's StationConfig shape.
type StationConfig struct {
	Name         string
	PerDayCustom bool
	UniformRoles bool
	Workers      int // station-level worker count, used when UniformRoles

	// per-day-custom form
	DayOverrides map[string]DayOverride

	// global form
	Days   map[string]bool
	Shifts []ShiftEntry

	Roles []RoleEntry // station-level roles, used when UniformRoles
}

// Config is the top-level input to the compiler: a list of stations.
type Config struct {
	Stations []StationConfig
}

// Compile flattens cfg into the ordered Capacity model per §4.B.
func Compile(cfg Config) schedmodel.Capacity {
	allDays := make(map[string]bool)
	allShifts := make(map[string]bool)
	var shiftOrder []string // shift names in the order config first yields them
	listed := make(map[string]bool)
	noteShift := func(name string) {
		if allShifts[name] && !listed[name] {
			listed[name] = true
			shiftOrder = append(shiftOrder, name)
		}
	}
	stations := make([]schedmodel.Station, 0, len(cfg.Stations))

	for _, st := range cfg.Stations {
		name := st.Name
		if name == "" {
			name = "Station"
		}
		capTotal := make(map[string]map[string]int)
		capRoles := make(map[string]map[string]map[string]int)

		if st.PerDayCustom {
			for day, ov := range st.DayOverrides {
				if !ov.Active {
					continue
				}
				allDays[day] = true
				for _, sh := range ov.Shifts {
					compileCell(day, sh, st, &allShifts, capTotal, capRoles)
					noteShift(sh.Name)
				}
			}
		} else {
			for day, active := range st.Days {
				if !active {
					continue
				}
				allDays[day] = true
				for _, sh := range st.Shifts {
					compileCell(day, sh, st, &allShifts, capTotal, capRoles)
					noteShift(sh.Name)
				}
			}
		}

		stations = append(stations, schedmodel.Station{
			Name:          name,
			Capacity:      capTotal,
			CapacityRoles: capRoles,
		})
	}

	days := orderDays(keys(allDays))
	if len(days) == 0 {
		days = append([]string(nil), schedmodel.DefaultDayOrder...)
	}
	shifts := orderShifts(shiftOrder)
	if len(shifts) == 0 {
		shifts = append([]string(nil), schedmodel.DefaultShiftOrder...)
	}

	return schedmodel.Capacity{Days: days, Shifts: shifts, Stations: stations}
}

// compileCell implements one (day, shift) cell's required_total and role
// quota resolution, shared by both the per-day-custom and global branches.
func compileCell(day string, sh ShiftEntry, st StationConfig, allShifts *map[string]bool, capTotal map[string]map[string]int, capRoles map[string]map[string]map[string]int) {
	if !sh.Enabled {
		return
	}
	roleSource := sh.Roles
	if st.UniformRoles {
		roleSource = st.Roles
	}
	roleCounts := make(map[string]int)
	for _, r := range roleSource {
		if !r.Enabled || r.Count <= 0 {
			continue
		}
		roleCounts[textnorm.Norm(r.Name)] = r.Count
	}

	requiredTotal := sh.Workers
	if st.UniformRoles {
		requiredTotal = st.Workers
	}
	if requiredTotal <= 0 {
		sum := 0
		for _, c := range roleCounts {
			sum += c
		}
		requiredTotal = sum
	}
	if requiredTotal <= 0 {
		return
	}

	(*allShifts)[sh.Name] = true
	if capTotal[day] == nil {
		capTotal[day] = make(map[string]int)
	}
	capTotal[day][sh.Name] = requiredTotal
	if len(roleCounts) > 0 {
		if capRoles[day] == nil {
			capRoles[day] = make(map[string]map[string]int)
		}
		if capRoles[day][sh.Name] == nil {
			capRoles[day][sh.Name] = make(map[string]int)
		}
		for r, c := range roleCounts {
			capRoles[day][sh.Name][r] = c
		}
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// orderDays produces the canonical sun..sat ordering restricted to the
// days actually present, per order_days in the reference implementation.
func orderDays(days []string) []string {
	present := make(map[string]bool, len(days))
	for _, d := range days {
		present[d] = true
	}
	out := make([]string, 0, len(days))
	for _, d := range schedmodel.DefaultDayOrder {
		if present[d] {
			out = append(out, d)
		}
	}
	return out
}

// orderShifts prefers the canonical 06-14/14-22/22-06 triple, then
// appends any remaining shift names in their encounter order.
func orderShifts(shifts []string) []string {
	present := make(map[string]bool, len(shifts))
	for _, s := range shifts {
		present[s] = true
	}
	out := make([]string, 0, len(shifts))
	for _, s := range schedmodel.DefaultShiftOrder {
		if present[s] {
			out = append(out, s)
			delete(present, s)
		}
	}
	for _, s := range shifts {
		if present[s] {
			out = append(out, s)
			delete(present, s)
		}
	}
	return out
}
