// Package schedmodel holds the domain types shared by the capacity
// compiler, model builder, and alternative enumerator: days, shifts,
// stations, workers, and the assignment matrix they all read and write.
package schedmodel

import (
	"strings"

	"github.com/joey603/sidour-avoda-scheduler/internal/textnorm"
)

// DefaultDayOrder is the canonical weekday ordering used whenever a
// config contributes no active day of its own.
var DefaultDayOrder = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// DefaultShiftOrder is the canonical shift ordering used whenever a
// config contributes no enabled shift of its own.
var DefaultShiftOrder = []string{"06-14", "14-22", "22-06"}

// Station is a compiled capacity object: required headcount and
// per-role headcount for every (day, shift) cell the station serves.
type Station struct {
	Name          string
	Capacity      map[string]map[string]int            // day -> shift -> required_total
	CapacityRoles map[string]map[string]map[string]int // day -> shift -> role -> count
}

// Worker is a roster entry with normalized role qualifications and
// per-day availability.
type Worker struct {
	ID         string
	Name       string
	MaxShifts  int
	Roles      map[string]bool // normalized role -> present
	Availability map[string]map[string]bool // day -> shift -> available
}

// HasRole reports whether w carries role r, compared after normalization.
func (w Worker) HasRole(r string) bool {
	return w.Roles[textnorm.Norm(r)]
}

// Available reports whether w may work shift s on day d.
func (w Worker) Available(day, shift string) bool {
	byShift, ok := w.Availability[day]
	if !ok {
		return false
	}
	return byShift[shift]
}

// IsNightShift classifies a shift name as a night shift per the §3
// predicate: canonical "22-06", containing both "22" and "06", containing
// "night" (case-insensitive), or the Hebrew word for night.
func IsNightShift(name string) bool {
	n := textnorm.Norm(name)
	if n == "22-06" {
		return true
	}
	lower := strings.ToLower(n)
	if strings.Contains(lower, "22") && strings.Contains(lower, "06") {
		return true
	}
	if strings.Contains(lower, "night") {
		return true
	}
	if strings.Contains(n, "לילה") {
		return true
	}
	return false
}

// Capacity holds the compiled, order-stable output of the capacity
// compiler (§4.B): ordered days, ordered shifts, and ordered stations.
type Capacity struct {
	Days     []string
	Shifts   []string
	Stations []Station
}

// RequiredTotal returns the required headcount for (day, shift) at the
// station with index t, or 0 if undefined.
func (c Capacity) RequiredTotal(day, shift string, t int) int {
	if t < 0 || t >= len(c.Stations) {
		return 0
	}
	byShift, ok := c.Stations[t].Capacity[day]
	if !ok {
		return 0
	}
	return byShift[shift]
}

// RoleQuotas returns the role->count map for (day, shift) at station t,
// or nil if the cell carries no role breakdown.
func (c Capacity) RoleQuotas(day, shift string, t int) map[string]int {
	if t < 0 || t >= len(c.Stations) {
		return nil
	}
	byShift, ok := c.Stations[t].CapacityRoles[day]
	if !ok {
		return nil
	}
	return byShift[shift]
}
