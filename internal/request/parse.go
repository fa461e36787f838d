package request

import (
	"github.com/go-playground/validator/v10"

	"github.com/joey603/sidour-avoda-scheduler/internal/capacity"
	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/solve"
	"github.com/joey603/sidour-avoda-scheduler/internal/textnorm"
)

// Built-in fallbacks from §6.1/§6.3, used only when a deployment hasn't
// loaded its own appconfig.Config (see Defaults/DefaultValues below).
const (
	DefaultTimeLimitSeconds      = 10
	DefaultMaxNightsPerWorker    = 3
	DefaultNumAlternatives       = 20
	DefaultAlternativeBufferSize = 8
)

var validate = validator.New()

// Defaults is the solver-defaults layer a deployment can fix ahead of any
// request body (§2 "appconfig"): the values Parse falls back to when a
// request field is absent or out of range (an absent time_limit_seconds
// decodes to 0; an absent max_nights_per_worker or num_alternatives
// decodes to -1, see Request.UnmarshalJSON), before Overrides (the highest
// precedence, §6.3 CLI/query-parameter shadowing) is applied.
type Defaults struct {
	TimeLimitSeconds      int
	MaxNightsPerWorker    int
	NumAlternatives       int
	AlternativeBufferSize int
}

// DefaultValues returns the built-in §6.1 fallbacks, for callers that
// have no appconfig.Config to load (e.g. a deployment running without
// `--config`).
func DefaultValues() Defaults {
	return Defaults{
		TimeLimitSeconds:      DefaultTimeLimitSeconds,
		MaxNightsPerWorker:    DefaultMaxNightsPerWorker,
		NumAlternatives:       DefaultNumAlternatives,
		AlternativeBufferSize: DefaultAlternativeBufferSize,
	}
}

// Overrides carries the §6.3 query-parameter-style overrides that shadow
// both the request body and Defaults; a nil pointer field means "not
// overridden".
type Overrides struct {
	TimeLimitSeconds   *int
	MaxNightsPerWorker *int
	NumAlternatives    *int
}

// Normalized is the request after defensive clamping and override
// application: never contains out-of-range integers or non-canonical day
// keys, per the §7 "Bad input" row.
type Normalized struct {
	Capacity              capacity.Config
	Workers               []WorkerInput
	TimeLimitSeconds      int
	MaxNightsPerWorker    int
	NumAlternatives       int
	AlternativeBufferSize int
	FixedAssignments      map[string]map[string]map[string][]string
	ExcludeDays           []string
	WeeklyAvailability    map[string]map[string][]string
}

// Parse validates the struct shape of req (required fields present) and
// then defensively clamps every numeric/day-key field, falling back to
// defaults and then applying any override, per §6.3. It never returns an
// error for out-of-range values; a validation error is only possible for
// structurally broken input (e.g. a worker with no name).
func Parse(req Request, defaults Defaults, ov Overrides) (Normalized, error) {
	if err := validate.Struct(req); err != nil {
		return Normalized{}, err
	}

	timeLimit := req.TimeLimitSeconds
	if timeLimit < 1 {
		timeLimit = defaults.TimeLimitSeconds
	}
	if ov.TimeLimitSeconds != nil && *ov.TimeLimitSeconds >= 1 {
		timeLimit = *ov.TimeLimitSeconds
	}

	maxNights := req.MaxNightsPerWorker
	if maxNights < 0 {
		maxNights = defaults.MaxNightsPerWorker
	}
	if ov.MaxNightsPerWorker != nil && *ov.MaxNightsPerWorker >= 0 {
		maxNights = *ov.MaxNightsPerWorker
	}

	numAlt := req.NumAlternatives
	if numAlt < 0 {
		numAlt = defaults.NumAlternatives
	}
	if ov.NumAlternatives != nil && *ov.NumAlternatives >= 0 {
		numAlt = *ov.NumAlternatives
	}

	bufferSize := defaults.AlternativeBufferSize
	if bufferSize < 1 {
		bufferSize = DefaultAlternativeBufferSize
	}

	excludeDays := make([]string, 0, len(req.ExcludeDays))
	validDay := make(map[string]bool, len(schedmodel.DefaultDayOrder))
	for _, d := range schedmodel.DefaultDayOrder {
		validDay[d] = true
	}
	for _, d := range req.ExcludeDays {
		if validDay[d] {
			excludeDays = append(excludeDays, d)
		}
	}

	return Normalized{
		Capacity:              toCapacityConfig(req.Config),
		Workers:               req.Workers,
		TimeLimitSeconds:      timeLimit,
		MaxNightsPerWorker:    maxNights,
		NumAlternatives:       numAlt,
		AlternativeBufferSize: bufferSize,
		FixedAssignments:      req.FixedAssignments,
		ExcludeDays:           excludeDays,
		WeeklyAvailability:    req.WeeklyAvailability,
	}, nil
}

func toCapacityConfig(c SiteConfig) capacity.Config {
	stations := make([]capacity.StationConfig, len(c.Stations))
	for i, st := range c.Stations {
		dayOverrides := make(map[string]capacity.DayOverride, len(st.DayOverrides))
		for day, ov := range st.DayOverrides {
			dayOverrides[day] = capacity.DayOverride{Active: ov.Active, Shifts: toCapacityShifts(ov.Shifts)}
		}
		stations[i] = capacity.StationConfig{
			Name:         st.Name,
			PerDayCustom: st.PerDayCustom,
			UniformRoles: st.UniformRoles,
			Workers:      st.Workers,
			DayOverrides: dayOverrides,
			Days:         st.Days,
			Shifts:       toCapacityShifts(st.Shifts),
			Roles:        toCapacityRoles(st.Roles),
		}
	}
	return capacity.Config{Stations: stations}
}

func toCapacityShifts(in []ShiftEntry) []capacity.ShiftEntry {
	out := make([]capacity.ShiftEntry, len(in))
	for i, s := range in {
		out[i] = capacity.ShiftEntry{Name: s.Name, Enabled: s.Enabled, Workers: s.Workers, Roles: toCapacityRoles(s.Roles)}
	}
	return out
}

func toCapacityRoles(in []RoleEntry) []capacity.RoleEntry {
	out := make([]capacity.RoleEntry, len(in))
	for i, r := range in {
		out[i] = capacity.RoleEntry{Name: r.Name, Enabled: r.Enabled, Count: r.Count}
	}
	return out
}

// ToRoster converts the request's worker list into schedmodel.Worker
// values with normalized role sets and availability maps.
func ToRoster(workers []WorkerInput) []schedmodel.Worker {
	out := make([]schedmodel.Worker, len(workers))
	for i, w := range workers {
		roles := make(map[string]bool, len(w.Roles))
		for _, r := range w.Roles {
			roles[textnorm.Norm(r)] = true
		}
		avail := make(map[string]map[string]bool, len(w.Availability))
		for day, shifts := range w.Availability {
			byShift := make(map[string]bool, len(shifts))
			for _, s := range shifts {
				byShift[s] = true
			}
			avail[day] = byShift
		}
		maxShifts := w.MaxShifts
		if maxShifts <= 0 {
			maxShifts = 5
		}
		out[i] = schedmodel.Worker{ID: w.ID, Name: w.Name, MaxShifts: maxShifts, Roles: roles, Availability: avail}
	}
	return out
}

// ToPins converts the raw fixed_assignments map (day -> shift ->
// station_idx-as-string -> names) into solve.Pins.
func ToPins(raw map[string]map[string]map[string][]string, stationIndex map[string]int) solve.Pins {
	if len(raw) == 0 {
		return nil
	}
	out := make(solve.Pins, len(raw))
	for day, byShift := range raw {
		outByShift := make(map[string]map[int][]string, len(byShift))
		for shift, byStation := range byShift {
			outByStation := make(map[int][]string, len(byStation))
			for stationKey, names := range byStation {
				idx, ok := stationIndexFromKey(stationKey, stationIndex)
				if !ok {
					continue
				}
				outByStation[idx] = names
			}
			outByShift[shift] = outByStation
		}
		out[day] = outByShift
	}
	return out
}

func stationIndexFromKey(key string, stationIndex map[string]int) (int, bool) {
	if idx, ok := stationIndex[key]; ok {
		return idx, true
	}
	return parseIntLoose(key)
}

func parseIntLoose(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// ToExcluded converts an exclude-days slice into solve.ExcludedDays.
func ToExcluded(days []string) solve.ExcludedDays {
	out := make(solve.ExcludedDays, len(days))
	for _, d := range days {
		out[d] = true
	}
	return out
}

// ToWeeklyAvailability converts the raw weekly_availability map into
// solve.WeeklyAvailability.
func ToWeeklyAvailability(raw map[string]map[string][]string) solve.WeeklyAvailability {
	if len(raw) == 0 {
		return nil
	}
	out := make(solve.WeeklyAvailability, len(raw))
	for name, byDay := range raw {
		out[name] = byDay
	}
	return out
}
