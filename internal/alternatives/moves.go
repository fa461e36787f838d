// Package alternatives implements the local-move enumerator (§4.E) and
// the no-good re-solver (§4.F): both produce additional feasible
// schedules that preserve coverage and every hard invariant the base
// plan satisfies.
package alternatives

import (
	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
)

// Seen tracks the signatures of every matrix already emitted (base plus
// every accepted alternative), owned exclusively by the enumerator for
// the duration of one planning task per §5.
type Seen struct {
	sigs map[string]bool
}

// NewSeen seeds the signature set with the base plan's signature, so the
// base itself is never re-emitted as an alternative.
func NewSeen(base *schedmodel.Matrix) *Seen {
	s := &Seen{sigs: map[string]bool{base.Signature(): true}}
	return s
}

// Accept records sig and reports whether it was new.
func (s *Seen) Accept(sig string) bool {
	if s.sigs[sig] {
		return false
	}
	s.sigs[sig] = true
	return true
}

// Roster indexes worker availability and roles by name, the shape every
// move-feasibility check in this file needs.
type Roster map[string]schedmodel.Worker

func isAllowed(roster Roster, name, day, shift string) bool {
	w, ok := roster[name]
	if !ok {
		return false
	}
	return w.Available(day, shift)
}

// namePresentSameDay reports whether name already holds any cell on day
// across the whole matrix (used to guard moves that would otherwise
// create a same-day double-booking).
func namePresentSameDay(m *schedmodel.Matrix, day, name string) bool {
	byShift, ok := m.Cells[day]
	if !ok {
		return false
	}
	for _, cells := range byShift {
		for _, names := range cells {
			for _, n := range names {
				if n == name {
					return true
				}
			}
		}
	}
	return false
}

// hasAdjacentInCandidate reports whether name holds a shift immediately
// before or after (day, shift) in candidate m, including the day
// boundary wraparound described in §3 invariant 3.
func hasAdjacentInCandidate(m *schedmodel.Matrix, name, day, shift string) bool {
	dayIdx, shiftIdx := -1, -1
	for i, d := range m.Days {
		if d == day {
			dayIdx = i
		}
	}
	for i, s := range m.Shifts {
		if s == shift {
			shiftIdx = i
		}
	}
	if dayIdx < 0 || shiftIdx < 0 {
		return false
	}

	holdsCell := func(day, shift string) bool {
		byShift, ok := m.Cells[day]
		if !ok {
			return false
		}
		for _, names := range byShift[shift] {
			for _, n := range names {
				if n == name {
					return true
				}
			}
		}
		return false
	}

	if shiftIdx-1 >= 0 && holdsCell(day, m.Shifts[shiftIdx-1]) {
		return true
	}
	if shiftIdx+1 < len(m.Shifts) && holdsCell(day, m.Shifts[shiftIdx+1]) {
		return true
	}
	if shiftIdx == 0 && dayIdx-1 >= 0 && holdsCell(m.Days[dayIdx-1], m.Shifts[len(m.Shifts)-1]) {
		return true
	}
	if shiftIdx == len(m.Shifts)-1 && dayIdx+1 < len(m.Days) && holdsCell(m.Days[dayIdx+1], m.Shifts[0]) {
		return true
	}
	return false
}

// roleFeasible runs the §4.E greedy role-matching check: seat every
// already-present name by consuming one matching role quota each, then
// try to seat the candidate name. Reject if either step fails. An empty
// roleQuotas means the cell carries no role breakdown and any name may
// be seated.
func roleFeasible(roster Roster, currentNames []string, candidate string, roleQuotas map[string]int) bool {
	if len(roleQuotas) == 0 {
		return true
	}
	remaining := make(map[string]int, len(roleQuotas))
	for r, c := range roleQuotas {
		remaining[r] = c
	}
	seatGreedy := func(name string) bool {
		w, ok := roster[name]
		if !ok {
			return false
		}
		for role, count := range remaining {
			if count <= 0 {
				continue
			}
			if w.HasRole(role) {
				remaining[role]--
				return true
			}
		}
		return false
	}
	for _, name := range currentNames {
		if !seatGreedy(name) {
			return false
		}
	}
	return seatGreedy(candidate)
}

// cloneMatrix deep-copies m's cell contents for speculative mutation.
func cloneMatrix(m *schedmodel.Matrix) *schedmodel.Matrix {
	clone := schedmodel.NewMatrix(m.Days, m.Shifts, m.Stations)
	for d, byShift := range m.Cells {
		for s, cells := range byShift {
			for t, names := range cells {
				clone.SetCell(d, s, t, append([]string(nil), names...))
			}
		}
	}
	return clone
}

func removeName(names []string, name string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Generator produces local-move candidates from a base matrix, per §4.E's
// three move families, subject to the enumerator's overall budget.
type Generator struct {
	Base     *schedmodel.Matrix
	Cap      schedmodel.Capacity
	Roster   Roster
	Seen     *Seen
	BaseTotal int
}

// NewGenerator prepares a Generator seeded with base's own signature.
func NewGenerator(base *schedmodel.Matrix, cap schedmodel.Capacity, roster Roster) *Generator {
	return &Generator{
		Base:      base,
		Cap:       cap,
		Roster:    roster,
		Seen:      NewSeen(base),
		BaseTotal: base.TotalAssigned(),
	}
}

func (g *Generator) roleQuotasAt(day, shift string, t int) map[string]int {
	return g.Cap.RoleQuotas(day, shift, t)
}

func (g *Generator) requiredAt(day, shift string, t int) int {
	return g.Cap.RequiredTotal(day, shift, t)
}

// accept validates a candidate against coverage preservation and
// signature uniqueness, recording it in Seen when accepted.
func (g *Generator) accept(cand *schedmodel.Matrix) bool {
	if cand.TotalAssigned() != g.BaseTotal {
		return false
	}
	return g.Seen.Accept(cand.Signature())
}

// SameDaySameStationSwaps implements move family 1: for a (day, station)
// pair and two shifts s1 < s2, swap one name from each cell.
func (g *Generator) SameDaySameStationSwaps(budget int) []*schedmodel.Matrix {
	var out []*schedmodel.Matrix
	for _, day := range g.Base.Days {
		for t := range g.Cap.Stations {
			for i1 := 0; i1 < len(g.Base.Shifts); i1++ {
				for i2 := i1 + 1; i2 < len(g.Base.Shifts); i2++ {
					if budget <= 0 {
						return out
					}
					s1, s2 := g.Base.Shifts[i1], g.Base.Shifts[i2]
					names1 := g.Base.Cell(day, s1, t)
					names2 := g.Base.Cell(day, s2, t)
					if len(names1) == 0 || len(names2) == 0 {
						continue
					}
					for _, nm1 := range names1 {
						for _, nm2 := range names2 {
							if budget <= 0 {
								return out
							}
							if nm1 == nm2 {
								continue
							}
							if !isAllowed(g.Roster, nm1, day, s2) || !isAllowed(g.Roster, nm2, day, s1) {
								continue
							}
							cand := cloneMatrix(g.Base)
							cand.SetCell(day, s1, t, append(removeName(names1, nm1), nm2))
							cand.SetCell(day, s2, t, append(removeName(names2, nm2), nm1))

							if hasAdjacentInCandidate(cand, nm2, day, s1) || hasAdjacentInCandidate(cand, nm1, day, s2) {
								continue
							}
							if !roleFeasible(g.Roster, removeName(names1, nm1), nm2, g.roleQuotasAt(day, s1, t)) {
								continue
							}
							if !roleFeasible(g.Roster, removeName(names2, nm2), nm1, g.roleQuotasAt(day, s2, t)) {
								continue
							}
							if !g.accept(cand) {
								continue
							}
							out = append(out, cand)
							budget--
						}
					}
				}
			}
		}
	}
	return out
}

// SameDayFilledToUnderfilledMoves implements move family 2: move a name
// from a non-empty cell to another shift at the same station that still
// has spare capacity.
func (g *Generator) SameDayFilledToUnderfilledMoves(budget int) []*schedmodel.Matrix {
	var out []*schedmodel.Matrix
	for _, day := range g.Base.Days {
		for t := range g.Cap.Stations {
			for _, sFrom := range g.Base.Shifts {
				namesFrom := g.Base.Cell(day, sFrom, t)
				if len(namesFrom) == 0 {
					continue
				}
				for _, nm := range namesFrom {
					for _, sTo := range g.Base.Shifts {
						if budget <= 0 {
							return out
						}
						if sTo == sFrom {
							continue
						}
						capTo := g.requiredAt(day, sTo, t)
						if capTo <= 0 {
							continue
						}
						namesTo := g.Base.Cell(day, sTo, t)
						if contains(namesTo, nm) || len(namesTo) >= capTo {
							continue
						}
						if !isAllowed(g.Roster, nm, day, sTo) {
							continue
						}
						cand := cloneMatrix(g.Base)
						cand.SetCell(day, sFrom, t, removeName(namesFrom, nm))
						if namePresentSameDay(cand, day, nm) {
							continue
						}
						cand.SetCell(day, sTo, t, append(append([]string(nil), namesTo...), nm))

						if hasAdjacentInCandidate(cand, nm, day, sTo) {
							continue
						}
						if !roleFeasible(g.Roster, namesTo, nm, g.roleQuotasAt(day, sTo, t)) {
							continue
						}
						if !g.accept(cand) {
							continue
						}
						out = append(out, cand)
						budget--
					}
				}
			}
		}
	}
	return out
}

// CrossDaySwaps implements move family 3: for a fixed (station, shift),
// swap one name between two distinct days.
func (g *Generator) CrossDaySwaps(budget int) []*schedmodel.Matrix {
	var out []*schedmodel.Matrix
	for _, shift := range g.Base.Shifts {
		for t := range g.Cap.Stations {
			for i1 := 0; i1 < len(g.Base.Days); i1++ {
				d1 := g.Base.Days[i1]
				names1 := g.Base.Cell(d1, shift, t)
				if len(names1) == 0 {
					continue
				}
				for i2 := i1 + 1; i2 < len(g.Base.Days); i2++ {
					if budget <= 0 {
						return out
					}
					d2 := g.Base.Days[i2]
					names2 := g.Base.Cell(d2, shift, t)
					if len(names2) == 0 {
						continue
					}
					for _, nm1 := range names1 {
						for _, nm2 := range names2 {
							if budget <= 0 {
								return out
							}
							if nm1 == nm2 {
								continue
							}
							if !isAllowed(g.Roster, nm1, d2, shift) || !isAllowed(g.Roster, nm2, d1, shift) {
								continue
							}
							if namePresentSameDay(g.Base, d2, nm1) || namePresentSameDay(g.Base, d1, nm2) {
								continue
							}
							cand := cloneMatrix(g.Base)
							cand.SetCell(d1, shift, t, append(removeName(names1, nm1), nm2))
							cand.SetCell(d2, shift, t, append(removeName(names2, nm2), nm1))

							if hasAdjacentInCandidate(cand, nm2, d1, shift) || hasAdjacentInCandidate(cand, nm1, d2, shift) {
								continue
							}
							if !roleFeasible(g.Roster, removeName(names1, nm1), nm2, g.roleQuotasAt(d1, shift, t)) {
								continue
							}
							if !roleFeasible(g.Roster, removeName(names2, nm2), nm1, g.roleQuotasAt(d2, shift, t)) {
								continue
							}
							if !g.accept(cand) {
								continue
							}
							out = append(out, cand)
							budget--
						}
					}
				}
			}
		}
	}
	return out
}

// Generate runs all three move families against one shared budget,
// returning the accepted alternatives in family order, matching the
// reference implementation's own move-family sequencing.
func (g *Generator) Generate(budget int) []*schedmodel.Matrix {
	var out []*schedmodel.Matrix

	out = append(out, g.SameDaySameStationSwaps(budget)...)
	if remaining := budget - len(out); remaining > 0 {
		out = append(out, g.SameDayFilledToUnderfilledMoves(remaining)...)
	}
	if remaining := budget - len(out); remaining > 0 {
		out = append(out, g.CrossDaySwaps(remaining)...)
	}
	return out
}
