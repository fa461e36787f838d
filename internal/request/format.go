package request

import "github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"

// FromMatrix renders a schedmodel.Matrix into the §6.2 assignments shape.
func FromMatrix(m *schedmodel.Matrix) AssignmentsByCell {
	out := make(AssignmentsByCell, len(m.Days))
	for _, d := range m.Days {
		byShift := make(map[string][][]string, len(m.Shifts))
		for _, s := range m.Shifts {
			cells := make([][]string, len(m.Stations))
			for t := range m.Stations {
				names := m.Cell(d, s, t)
				cells[t] = append([]string(nil), names...)
			}
			byShift[s] = cells
		}
		out[d] = byShift
	}
	return out
}

// ToMatrix rebuilds a schedmodel.Matrix from a §6.2 assignments block and
// its index orderings, the inverse of FromMatrix. Used to recompute
// fairness telemetry (§4.I) from an already-returned Response without
// threading the solver's internal matrix through the CLI layer.
func ToMatrix(days, shifts, stations []string, assignments AssignmentsByCell) *schedmodel.Matrix {
	m := schedmodel.NewMatrix(days, shifts, stations)
	for _, d := range days {
		byShift, ok := assignments[d]
		if !ok {
			continue
		}
		for _, s := range shifts {
			cells, ok := byShift[s]
			if !ok {
				continue
			}
			for t := range stations {
				if t < len(cells) {
					m.SetCell(d, s, t, cells[t])
				}
			}
		}
	}
	return m
}
