package solve

import (
	"time"

	"github.com/nextmv-io/go-highs"
	"github.com/nextmv-io/go-mip"

	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
)

// Status mirrors the §6.2 status vocabulary.
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusNoWorkers  Status = "NO_WORKERS"
	StatusInfeasible Status = "INFEASIBLE"
	StatusError      Status = "ERROR"
)

// Result is what the base solver driver (§4.D) and the no-good re-solver
// (§4.F) both produce: a materialized matrix plus its solver metadata.
type Result struct {
	Matrix    *schedmodel.Matrix
	Status    Status
	Objective float64
	Solution  mip.Solution
}

// Solve invokes the HiGHS MIP backend with the given time budget and
// materializes the assignment matrix from the solution, per §4.D. When
// the solver does not return OPTIMAL or FEASIBLE, Result.Matrix is an
// empty matrix and Status is StatusInfeasible for every such outcome; the
// solver's own status (time limit, unbounded, ...) is not passed on.
func Solve(model mip.Model, vars *Variables, timeLimit time.Duration) (Result, error) {
	solver := highs.NewSolver(model)

	solution, err := solver.Solve(mip.SolveOptions{Duration: timeLimit})
	if err != nil {
		return Result{Status: StatusError}, err
	}

	stationNames := stationNames(vars.Cap)
	matrix := schedmodel.NewMatrix(vars.Days, vars.Shifts, stationNames)

	if !solution.IsOptimal() && !solution.IsSubOptimal() {
		return Result{Matrix: matrix, Status: StatusInfeasible, Objective: 0}, nil
	}

	status := StatusOptimal
	if !solution.IsOptimal() {
		status = StatusFeasible
	}

	fillMatrix(matrix, vars, solution)

	return Result{
		Matrix:    matrix,
		Status:    status,
		Objective: solution.ObjectiveValue(),
		Solution:  solution,
	}, nil
}

func stationNames(cap schedmodel.Capacity) []string {
	out := make([]string, len(cap.Stations))
	for i, st := range cap.Stations {
		out[i] = st.Name
	}
	return out
}

// fillMatrix reads boolean variable values from solution and writes the
// assignment matrix, deduplicating by name across stations in the same
// (day, shift) and truncating to required_total per station, exactly as
// §4.D requires as a defensive measure against any slack the model
// admits.
func fillMatrix(matrix *schedmodel.Matrix, vars *Variables, solution mip.Solution) {
	for d, day := range vars.Days {
		for s, shift := range vars.Shifts {
			seen := make(map[string]bool)
			for t, st := range vars.Cap.Stations {
				required := st.Capacity[day][shift]
				if required <= 0 {
					continue
				}
				names := make([]string, 0, required)
				for w, worker := range vars.Workers {
					if solution.Value(vars.x(w, d, s, t)) <= 0.9 {
						continue
					}
					if seen[worker.Name] {
						continue
					}
					names = append(names, worker.Name)
					seen[worker.Name] = true
					if len(names) >= required {
						break
					}
				}
				matrix.SetCell(day, shift, t, names)
			}
		}
	}
}

// AddNoGood appends the §4.F no-good constraint to model, forbidding the
// exact combination of true literals from reoccurring in any future
// solve against the same model: sum(lits) <= len(lits) - 1.
func AddNoGood(model mip.Model, lits []mip.Bool) {
	if len(lits) == 0 {
		return
	}
	c := model.NewConstraint(mip.LessThanOrEqual, float64(len(lits)-1))
	for _, lit := range lits {
		c.NewTerm(1.0, lit)
	}
}

// TrueLiterals returns every (w,d,s,t) boolean variable set to true in
// solution — the literal set the no-good re-solver (§4.F) forbids.
func TrueLiterals(vars *Variables, solution mip.Solution) []mip.Bool {
	var lits []mip.Bool
	for _, v := range vars.X {
		if solution.Value(v) > 0.9 {
			lits = append(lits, v)
		}
	}
	return lits
}
