package solve

import (
	"github.com/nextmv-io/go-mip"

	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/textnorm"
)

// BuildOptions carries every optional input from §3/§6.1 that shapes the
// model beyond the roster and capacity.
type BuildOptions struct {
	Pins               Pins
	Excluded           ExcludedDays
	WeeklyAvailability WeeklyAvailability
	MaxNightsPerWorker int
}

// Build emits the decision variables, hard constraints, and lexicographic
// objective of §4.C into a fresh MIP model. It returns the model and the
// Variables handle the driver uses to extract a solution.
func Build(cap schedmodel.Capacity, roster []schedmodel.Worker, opts BuildOptions) (mip.Model, *Variables) {
	m := mip.NewModel()

	days := activeDays(cap.Days, opts.Excluded)
	shifts := cap.Shifts
	nW, nD, nS, nT := len(roster), len(days), len(shifts), len(cap.Stations)

	vars := &Variables{
		X:       make(map[cellKey]mip.Bool, nW*nD*nS*nT),
		Workers: roster,
		Days:    days,
		Shifts:  shifts,
		Cap:     cap,
	}

	availability := resolveAvailability(roster, opts.WeeklyAvailability)

	for w := 0; w < nW; w++ {
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				for t := 0; t < nT; t++ {
					v := m.NewBool()
					vars.X[cellKey{w, d, s, t}] = v
					if !availability[w][days[d]][shifts[s]] {
						bindZero(m, v)
					}
				}
			}
		}
	}

	addCellCapacityConstraints(m, vars, cap, days, shifts)
	addOneShiftPerDayConstraints(m, vars, nW, nD, nS, nT)
	addNoAdjacentShiftConstraints(m, vars, nW, nD, nS, nT)
	addNightCapConstraints(m, vars, nW, nD, nT, shifts, opts.MaxNightsPerWorker)
	addNoSevenConsecutiveDaysConstraints(m, vars, nW, nD, nS, nT)
	addWeeklyCapConstraints(m, vars, roster, nD, nS, nT)
	addPins(m, vars, opts.Pins, days, shifts)
	addObjective(m, vars, roster, nW, nD, nS, nT)

	return m, vars
}

func activeDays(days []string, excluded ExcludedDays) []string {
	if len(excluded) == 0 {
		return append([]string(nil), days...)
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		if !excluded[d] {
			out = append(out, d)
		}
	}
	return out
}

// resolveAvailability returns, per worker index, a day->shift->bool map
// reflecting the §3 "Weekly availability overrides" rule: when an
// override is present for a worker, it replaces their base availability
// entirely rather than unioning with it.
func resolveAvailability(roster []schedmodel.Worker, overrides WeeklyAvailability) []map[string]map[string]bool {
	out := make([]map[string]map[string]bool, len(roster))
	for i, w := range roster {
		if ov, ok := overrides[w.Name]; ok {
			byDay := make(map[string]map[string]bool, len(ov))
			for day, shiftList := range ov {
				byShift := make(map[string]bool, len(shiftList))
				for _, s := range shiftList {
					byShift[s] = true
				}
				byDay[day] = byShift
			}
			out[i] = byDay
			continue
		}
		out[i] = w.Availability
	}
	return out
}

func bindZero(m mip.Model, v mip.Bool) {
	c := m.NewConstraint(mip.Equal, 0.0)
	c.NewTerm(1.0, v)
}

// addCellCapacityConstraints implements the §4.C cell-capacity rule,
// including strict role reservation with shortfall accounting.
func addCellCapacityConstraints(m mip.Model, vars *Variables, cap schedmodel.Capacity, days, shifts []string) {
	nW := len(vars.Workers)
	for t, st := range cap.Stations {
		for d, day := range days {
			for s, shift := range shifts {
				required := st.Capacity[day][shift]
				if required <= 0 {
					for w := 0; w < nW; w++ {
						bindZero(m, vars.x(w, d, s, t))
					}
					continue
				}
				roleMap := st.CapacityRoles[day][shift]
				if len(roleMap) == 0 {
					c := m.NewConstraint(mip.LessThanOrEqual, float64(required))
					for w := 0; w < nW; w++ {
						c.NewTerm(1.0, vars.x(w, d, s, t))
					}
					continue
				}

				shortfalls := make([]mip.Float, 0, len(roleMap))
				for role, quota := range roleMap {
					short := m.NewFloat(0, float64(quota))
					shortfalls = append(shortfalls, short)

					eq := m.NewConstraint(mip.Equal, float64(quota))
					for w := 0; w < nW; w++ {
						if vars.Workers[w].HasRole(role) {
							eq.NewTerm(1.0, vars.x(w, d, s, t))
						}
					}
					eq.NewTerm(1.0, short)
				}

				totalRoleQuota := 0
				for _, q := range roleMap {
					totalRoleQuota += q
				}
				shortTotal := shortfalls[0]
				if len(shortfalls) > 1 {
					shortTotal = m.NewFloat(0, float64(totalRoleQuota))
					sumEq := m.NewConstraint(mip.Equal, 0.0)
					sumEq.NewTerm(1.0, shortTotal)
					for _, short := range shortfalls {
						sumEq.NewTerm(-1.0, short)
					}
				}

				capConstraint := m.NewConstraint(mip.LessThanOrEqual, float64(required))
				for w := 0; w < nW; w++ {
					capConstraint.NewTerm(1.0, vars.x(w, d, s, t))
				}
				capConstraint.NewTerm(1.0, shortTotal)
			}
		}
	}
}

func addOneShiftPerDayConstraints(m mip.Model, vars *Variables, nW, nD, nS, nT int) {
	for w := 0; w < nW; w++ {
		for d := 0; d < nD; d++ {
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for s := 0; s < nS; s++ {
				for t := 0; t < nT; t++ {
					c.NewTerm(1.0, vars.x(w, d, s, t))
				}
			}
		}
	}
}

func addNoAdjacentShiftConstraints(m mip.Model, vars *Variables, nW, nD, nS, nT int) {
	for w := 0; w < nW; w++ {
		for d := 0; d < nD; d++ {
			for s := 0; s < nS-1; s++ {
				c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
				for t := 0; t < nT; t++ {
					c.NewTerm(1.0, vars.x(w, d, s, t))
					c.NewTerm(1.0, vars.x(w, d, s+1, t))
				}
			}
		}
		for d := 0; d < nD-1; d++ {
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for t := 0; t < nT; t++ {
				c.NewTerm(1.0, vars.x(w, d, nS-1, t))
				c.NewTerm(1.0, vars.x(w, d+1, 0, t))
			}
		}
	}
}

func addNightCapConstraints(m mip.Model, vars *Variables, nW, nD, nT int, shifts []string, maxNights int) {
	nightIdx := make([]int, 0, len(shifts))
	for s, name := range shifts {
		if schedmodel.IsNightShift(name) {
			nightIdx = append(nightIdx, s)
		}
	}
	if len(nightIdx) == 0 {
		return
	}
	for w := 0; w < nW; w++ {
		c := m.NewConstraint(mip.LessThanOrEqual, float64(maxNights))
		for d := 0; d < nD; d++ {
			for _, s := range nightIdx {
				for t := 0; t < nT; t++ {
					c.NewTerm(1.0, vars.x(w, d, s, t))
				}
			}
		}
	}
}

// addNoSevenConsecutiveDaysConstraints encodes the §4.C "y[w,d] = OR over
// shifts/stations" rule linearly: MIP has no native max/OR primitive, so
// day_work is bounded below by every cell it aggregates and above by
// their sum, which pins it to the boolean OR for 0/1 inputs.
func addNoSevenConsecutiveDaysConstraints(m mip.Model, vars *Variables, nW, nD, nS, nT int) {
	for w := 0; w < nW; w++ {
		dayWork := make([]mip.Bool, nD)
		for d := 0; d < nD; d++ {
			dw := m.NewBool()
			dayWork[d] = dw

			sumConstraint := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			sumConstraint.NewTerm(1.0, dw)
			for s := 0; s < nS; s++ {
				for t := 0; t < nT; t++ {
					sumConstraint.NewTerm(-1.0, vars.x(w, d, s, t))

					ge := m.NewConstraint(mip.GreaterThanOrEqual, 0.0)
					ge.NewTerm(1.0, dw)
					ge.NewTerm(-1.0, vars.x(w, d, s, t))
				}
			}
		}
		if nD < 7 {
			continue
		}
		for start := 0; start+7 <= nD; start++ {
			c := m.NewConstraint(mip.LessThanOrEqual, 6.0)
			for d := start; d < start+7; d++ {
				c.NewTerm(1.0, dayWork[d])
			}
		}
	}
}

func addWeeklyCapConstraints(m mip.Model, vars *Variables, roster []schedmodel.Worker, nD, nS, nT int) {
	for w, worker := range roster {
		maxShifts := worker.MaxShifts
		if maxShifts <= 0 {
			maxShifts = 5
		}
		c := m.NewConstraint(mip.LessThanOrEqual, float64(maxShifts))
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				for t := 0; t < nT; t++ {
					c.NewTerm(1.0, vars.x(w, d, s, t))
				}
			}
		}
	}
}

func addPins(m mip.Model, vars *Variables, pins Pins, days, shifts []string) {
	if len(pins) == 0 {
		return
	}
	nameIndex := make(map[string]int, len(vars.Workers)*2)
	for i, w := range vars.Workers {
		nameIndex[w.Name] = i
		nameIndex[textnorm.Norm(w.Name)] = i
	}
	dayIdx := make(map[string]int, len(days))
	for i, d := range days {
		dayIdx[d] = i
	}
	shiftIdx := make(map[string]int, len(shifts))
	for i, s := range shifts {
		shiftIdx[s] = i
	}

	for day, byShift := range pins {
		d, ok := dayIdx[day]
		if !ok {
			continue
		}
		for shift, byStation := range byShift {
			s, ok := shiftIdx[shift]
			if !ok {
				continue
			}
			for t, names := range byStation {
				if t < 0 || t >= len(vars.Cap.Stations) {
					continue
				}
				for _, name := range names {
					w, ok := nameIndex[textnorm.Norm(name)]
					if !ok {
						continue
					}
					eq := m.NewConstraint(mip.Equal, 1.0)
					eq.NewTerm(1.0, vars.x(w, d, s, t))
				}
			}
		}
	}
}

// addObjective emits the §4.C weighted lexicographic-flavoured objective:
// maximize 10^6*coverage - 10^4*max_dev - 10^2*sum(dev_w).
func addObjective(m mip.Model, vars *Variables, roster []schedmodel.Worker, nW, nD, nS, nT int) {
	const (
		wCoverage = 1_000_000.0
		wMaxDev   = 10_000.0
		wSumDev   = 100.0
	)

	obj := m.Objective()
	obj.SetMaximize()

	for w := 0; w < nW; w++ {
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				for t := 0; t < nT; t++ {
					obj.NewTerm(wCoverage, vars.x(w, d, s, t))
				}
			}
		}
	}

	// A deviation can reach the larger of a worker's target and the
	// horizon length, so that bounds every deviation variable.
	devBound := nD
	for _, worker := range roster {
		target := worker.MaxShifts
		if target <= 0 {
			target = 5
		}
		if target > devBound {
			devBound = target
		}
	}

	maxDev := m.NewFloat(0, float64(devBound))
	obj.NewTerm(-wMaxDev, maxDev)

	for w, worker := range roster {
		target := worker.MaxShifts
		if target <= 0 {
			target = 5
		}
		over := m.NewFloat(0, float64(devBound))
		under := m.NewFloat(0, float64(devBound))

		balance := m.NewConstraint(mip.Equal, float64(target))
		for d := 0; d < nD; d++ {
			for s := 0; s < nS; s++ {
				for t := 0; t < nT; t++ {
					balance.NewTerm(1.0, vars.x(w, d, s, t))
				}
			}
		}
		balance.NewTerm(-1.0, over)
		balance.NewTerm(1.0, under)

		dev := m.NewFloat(0, float64(devBound))
		devEq := m.NewConstraint(mip.Equal, 0.0)
		devEq.NewTerm(1.0, dev)
		devEq.NewTerm(-1.0, over)
		devEq.NewTerm(-1.0, under)

		devLeMax := m.NewConstraint(mip.LessThanOrEqual, 0.0)
		devLeMax.NewTerm(1.0, dev)
		devLeMax.NewTerm(-1.0, maxDev)

		obj.NewTerm(-wSumDev, dev)
	}
}
