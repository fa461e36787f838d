package alternatives

import (
	"time"

	"github.com/nextmv-io/go-mip"

	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/solve"
)

// ReSolver implements §4.F: it repeatedly forbids the model's current
// solution with a no-good constraint and re-solves, accepting only
// solutions that preserve base coverage and have a fresh signature.
type ReSolver struct {
	Model *mip.Model
	Vars  *solve.Variables
	Seen  *Seen

	BaseTotal int
	TimeLimit time.Duration
}

// NewReSolver prepares a re-solver that mutates model in place (each
// accepted or rejected candidate still adds a no-good, so the search
// space monotonically shrinks) and shares seen with the local-move
// enumerator so no alternative from either source is emitted twice.
func NewReSolver(model mip.Model, vars *solve.Variables, seen *Seen, baseTotal int, timeLimit time.Duration) *ReSolver {
	return &ReSolver{Model: &model, Vars: vars, Seen: seen, BaseTotal: baseTotal, TimeLimit: timeLimit}
}

// Next produces at most one additional alternative. It returns
// (nil, false) once the solve fails or finds no feasible solution, and
// (nil, true) when the new solution changes coverage or repeats a seen
// signature; in both (nil, true) cases the no-good has been added, so a
// further call searches a smaller space.
func (r *ReSolver) Next() (*schedmodel.Matrix, bool) {
	result, err := solve.Solve(*r.Model, r.Vars, r.TimeLimit)
	if err != nil {
		return nil, false
	}
	if result.Status != solve.StatusOptimal && result.Status != solve.StatusFeasible {
		return nil, false
	}

	lits := solve.TrueLiterals(r.Vars, result.Solution)
	solve.AddNoGood(*r.Model, lits)

	if result.Matrix.TotalAssigned() != r.BaseTotal {
		return nil, true // model advanced (no-good added); caller should keep trying
	}
	if !r.Seen.Accept(result.Matrix.Signature()) {
		return nil, true
	}
	return result.Matrix, true
}

// Run drives Next until budget alternatives are collected or the model
// is exhausted.
func (r *ReSolver) Run(budget int) []*schedmodel.Matrix {
	var out []*schedmodel.Matrix
	for len(out) < budget {
		m, ok := r.Next()
		if !ok {
			break
		}
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
