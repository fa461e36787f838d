package stream

import (
	"context"
	"time"

	"github.com/joey603/sidour-avoda-scheduler/internal/alternatives"
	"github.com/joey603/sidour-avoda-scheduler/internal/request"
	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/solve"
)

// Options carries everything the streaming driver needs beyond the
// compiled capacity and roster: solver tuning and the optional pins /
// exclusions / availability overrides from §3.
type Options struct {
	BuildOptions     solve.BuildOptions
	TimeLimitSeconds int
	NumAlternatives  int
	BufferSize       int // bounded buffer size from §5; 0 defaults to 8
}

// Run starts the planning task's producer goroutine and returns the
// bounded channel the consumer drains, per §4.G/§5. The channel is
// closed after the terminal "done" record; on unrecoverable
// error/infeasibility a "status" record is sent first, then "done".
//
// Cancelling ctx causes the producer to stop writing further records at
// the next buffer-write boundary; it does not pre-empt a solver call
// already in flight, matching §5's cancellation semantics.
func Run(ctx context.Context, cap schedmodel.Capacity, roster []schedmodel.Worker, opts Options) <-chan request.StreamRecord {
	bufSize := opts.BufferSize
	if bufSize <= 0 {
		bufSize = 8
	}
	out := make(chan request.StreamRecord, bufSize)

	go func() {
		defer close(out)
		produce(ctx, out, cap, roster, opts)
	}()

	return out
}

func send(ctx context.Context, out chan<- request.StreamRecord, rec request.StreamRecord) bool {
	select {
	case out <- rec:
		return true
	case <-ctx.Done():
		return false
	}
}

func produce(ctx context.Context, out chan<- request.StreamRecord, cap schedmodel.Capacity, roster []schedmodel.Worker, opts Options) {
	defer func() {
		if r := recover(); r != nil {
			send(ctx, out, request.StreamRecord{Type: "status", Status: string(solve.StatusError), Detail: detailFromPanic(r)})
			send(ctx, out, request.StreamRecord{Type: "done"})
		}
	}()

	if len(roster) == 0 {
		send(ctx, out, request.StreamRecord{Type: "status", Status: string(solve.StatusNoWorkers)})
		send(ctx, out, request.StreamRecord{Type: "done"})
		return
	}

	timeLimit := time.Duration(opts.TimeLimitSeconds) * time.Second
	model, vars := solve.Build(cap, roster, opts.BuildOptions)
	base, err := solve.Solve(model, vars, timeLimit)
	if err != nil {
		send(ctx, out, request.StreamRecord{Type: "status", Status: string(solve.StatusError), Detail: err.Error()})
		send(ctx, out, request.StreamRecord{Type: "done"})
		return
	}
	if base.Status != solve.StatusOptimal && base.Status != solve.StatusFeasible {
		send(ctx, out, request.StreamRecord{Type: "status", Status: string(base.Status)})
		send(ctx, out, request.StreamRecord{Type: "done"})
		return
	}

	if !send(ctx, out, request.StreamRecord{
		Type:        "base",
		Days:        cap.Days,
		Shifts:      cap.Shifts,
		Stations:    stationNames(cap),
		Assignments: request.FromMatrix(base.Matrix),
		Objective:   base.Objective,
		Status:      string(base.Status),
	}) {
		return
	}

	rosterByName := make(alternatives.Roster, len(roster))
	for _, w := range roster {
		rosterByName[w.Name] = w
	}

	gen := alternatives.NewGenerator(base.Matrix, cap, rosterByName)
	moveBudget := opts.NumAlternatives
	moveAlts := gen.Generate(moveBudget)

	index := 0
	for _, alt := range moveAlts {
		if index >= opts.NumAlternatives {
			break
		}
		index++
		if !send(ctx, out, request.StreamRecord{Type: "alternative", Index: index, Assignments: request.FromMatrix(alt)}) {
			return
		}
	}

	remaining := opts.NumAlternatives - index
	if remaining > 0 {
		reTimeLimit := timeLimit
		if reTimeLimit < time.Second {
			reTimeLimit = time.Second
		}
		resolver := alternatives.NewReSolver(model, vars, gen.Seen, base.Matrix.TotalAssigned(), reTimeLimit)
		for index < opts.NumAlternatives {
			alt, ok := resolver.Next()
			if !ok {
				break
			}
			if alt == nil {
				continue
			}
			index++
			if !send(ctx, out, request.StreamRecord{Type: "alternative", Index: index, Assignments: request.FromMatrix(alt)}) {
				return
			}
		}
	}

	send(ctx, out, request.StreamRecord{Type: "done"})
}

func stationNames(cap schedmodel.Capacity) []string {
	out := make([]string, len(cap.Stations))
	for i, st := range cap.Stations {
		out[i] = st.Name
	}
	return out
}

func detailFromPanic(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "internal error"
}
