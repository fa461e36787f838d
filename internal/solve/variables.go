// Package solve builds the one-week assignment model (§4.C) and drives the
// base solve (§4.D) against a MIP backend.
package solve

import (
	"github.com/nextmv-io/go-mip"

	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
)

// cellKey addresses one (worker, day, shift, station) decision variable.
type cellKey struct {
	w, d, s, t int
}

// Variables holds the decision variables of a built model, indexed the
// way the model builder and the base solver driver both need to walk them.
type Variables struct {
	X map[cellKey]mip.Bool

	Workers []schedmodel.Worker
	Days    []string
	Shifts  []string
	Cap     schedmodel.Capacity
}

func (v *Variables) x(w, d, s, t int) mip.Bool {
	return v.X[cellKey{w, d, s, t}]
}

// Pins is the optional fixed_assignments input: day -> shift -> station
// index -> pinned worker names.
type Pins map[string]map[string]map[int][]string

// ExcludedDays is the optional exclude_days input, as a set.
type ExcludedDays map[string]bool

// WeeklyAvailability is the optional per-worker availability override:
// worker name -> day -> set of enabled shift names. When present for a
// worker, it replaces (not unions with) that worker's base availability.
type WeeklyAvailability map[string]map[string][]string
