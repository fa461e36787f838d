// Package request defines the wire contracts of §6.1/§6.2 and the
// defensive parsing that turns them into the domain types the rest of
// the scheduler operates on, per the §7 "Bad input" row: malformed
// config or roster data is normalized to 0/false rather than rejected.
// The one exception is a worker entry with no name, which Parse rejects.
package request

import "encoding/json"

// RoleEntry mirrors one role row in a station or per-shift role list.
type RoleEntry struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Count   int    `json:"count"`
}

// ShiftEntry mirrors one shift row in a station's global or per-day
// override shift list.
type ShiftEntry struct {
	Name    string      `json:"name"`
	Enabled bool        `json:"enabled"`
	Workers int         `json:"workers"`
	Roles   []RoleEntry `json:"roles"`
}

// DayOverride mirrors one entry of a per-day-custom station's
// dayOverrides map.
type DayOverride struct {
	Active bool         `json:"active"`
	Shifts []ShiftEntry `json:"shifts"`
}

// StationConfig mirrors §6.1's StationConfig tagged variant.
type StationConfig struct {
	Name         string                 `json:"name"`
	PerDayCustom bool                   `json:"perDayCustom"`
	UniformRoles bool                   `json:"uniformRoles"`
	Workers      int                    `json:"workers"`
	DayOverrides map[string]DayOverride `json:"dayOverrides"`
	Days         map[string]bool        `json:"days"`
	Shifts       []ShiftEntry           `json:"shifts"`
	Roles        []RoleEntry            `json:"roles"`
}

// SiteConfig mirrors §6.1's top-level config object.
type SiteConfig struct {
	Stations []StationConfig `json:"stations"`
}

// WorkerInput mirrors one roster entry in §6.1.
type WorkerInput struct {
	ID           string              `json:"id"`
	Name         string              `json:"name" validate:"required"`
	MaxShifts    int                 `json:"max_shifts"`
	Roles        []string            `json:"roles"`
	Availability map[string][]string `json:"availability"`
}

// Request is the full §6.1 input contract.
type Request struct {
	Config              SiteConfig                     `json:"config"`
	Workers             []WorkerInput                  `json:"workers" validate:"dive"`
	TimeLimitSeconds    int                             `json:"time_limit_seconds"`
	MaxNightsPerWorker  int                             `json:"max_nights_per_worker"`
	NumAlternatives     int                             `json:"num_alternatives"`
	FixedAssignments    map[string]map[string]map[string][]string `json:"fixed_assignments"`
	ExcludeDays         []string                        `json:"exclude_days"`
	WeeklyAvailability  map[string]map[string][]string  `json:"weekly_availability"`
}

// UnmarshalJSON decodes r with max_nights_per_worker and num_alternatives
// preset to -1, so a body that omits either field reaches Parse out of
// range and takes the Defaults value, while an explicit 0 is kept.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	p := plain{MaxNightsPerWorker: -1, NumAlternatives: -1}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Request(p)
	return nil
}

// Response is the full §6.2 output contract for batch (non-streaming)
// planning.
type Response struct {
	Days         []string              `json:"days"`
	Shifts       []string              `json:"shifts"`
	Stations     []string              `json:"stations"`
	Assignments  AssignmentsByCell     `json:"assignments"`
	Alternatives []AssignmentsByCell   `json:"alternatives,omitempty"`
	Status       string                `json:"status"`
	Objective    float64               `json:"objective"`
}

// AssignmentsByCell is day -> shift -> per-station ordered name lists,
// the §6.2 assignments shape.
type AssignmentsByCell map[string]map[string][][]string

// StreamRecord is one §4.G/§6.2 streamed record.
type StreamRecord struct {
	Type        string            `json:"type"`
	Days        []string          `json:"days,omitempty"`
	Shifts      []string          `json:"shifts,omitempty"`
	Stations    []string          `json:"stations,omitempty"`
	Assignments AssignmentsByCell `json:"assignments,omitempty"`
	Index       int               `json:"index,omitempty"`
	Status      string            `json:"status,omitempty"`
	Detail      string            `json:"detail,omitempty"`
	Objective   float64           `json:"objective,omitempty"`
}
