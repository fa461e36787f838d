// Package planrun orchestrates the capacity compiler, model builder,
// solver driver, alternative enumerator, and streaming driver into the
// scheduler's two public operations: Plan (batch) and PlanStream
// (incremental).
package planrun

import (
	"context"
	"time"

	"github.com/nextmv-io/sdk/run/statistics"

	"github.com/joey603/sidour-avoda-scheduler/internal/capacity"
	"github.com/joey603/sidour-avoda-scheduler/internal/request"
	"github.com/joey603/sidour-avoda-scheduler/internal/schedmodel"
	"github.com/joey603/sidour-avoda-scheduler/internal/solve"
	"github.com/joey603/sidour-avoda-scheduler/internal/stream"
	"github.com/joey603/sidour-avoda-scheduler/internal/telemetry"
)

// Plan runs the full pipeline to completion and returns a single §6.2
// Response carrying the base assignments plus every alternative.
func Plan(ctx context.Context, req request.Normalized) request.Response {
	cap := capacity.Compile(req.Capacity)
	roster := request.ToRoster(req.Workers)
	opts := buildStreamOptions(cap, req)

	ch := stream.Run(ctx, cap, roster, opts)

	empty := schedmodel.NewMatrix(cap.Days, cap.Shifts, stationNames(cap))
	resp := request.Response{
		Days:        cap.Days,
		Shifts:      cap.Shifts,
		Stations:    stationNames(cap),
		Assignments: request.FromMatrix(empty),
		Status:      string(solve.StatusError),
	}

	for rec := range ch {
		switch rec.Type {
		case "base":
			resp.Assignments = rec.Assignments
			resp.Objective = rec.Objective
			resp.Status = rec.Status
		case "alternative":
			resp.Alternatives = append(resp.Alternatives, rec.Assignments)
		case "status":
			resp.Status = rec.Status
		case "done":
			// terminal; nothing left to record
		}
	}

	return resp
}

// PlanStream runs the full pipeline and returns the record channel
// directly, for a caller (e.g. the CLI's stream subcommand) to frame and
// forward records as they are produced, per §4.G/§5.
func PlanStream(ctx context.Context, req request.Normalized) <-chan request.StreamRecord {
	cap := capacity.Compile(req.Capacity)
	roster := request.ToRoster(req.Workers)
	opts := buildStreamOptions(cap, req)
	return stream.Run(ctx, cap, roster, opts)
}

func buildStreamOptions(cap schedmodel.Capacity, req request.Normalized) stream.Options {
	stationIndex := make(map[string]int, len(cap.Stations))
	for i, st := range cap.Stations {
		stationIndex[st.Name] = i
	}

	return stream.Options{
		TimeLimitSeconds: req.TimeLimitSeconds,
		NumAlternatives:  req.NumAlternatives,
		BufferSize:       req.AlternativeBufferSize,
		BuildOptions: solve.BuildOptions{
			Pins:               request.ToPins(req.FixedAssignments, stationIndex),
			Excluded:           request.ToExcluded(req.ExcludeDays),
			WeeklyAvailability: request.ToWeeklyAvailability(req.WeeklyAvailability),
			MaxNightsPerWorker: req.MaxNightsPerWorker,
		},
	}
}

// Telemetry recomputes the §4.I statistics block for an already-completed
// Response, given the original request and the wall-clock time the
// caller measured around Plan/PlanStream. It is a CLI-only convenience,
// not part of the §6.2 wire contract, so it takes the finished Response
// rather than threading a solver handle through the public API.
func Telemetry(req request.Normalized, resp request.Response, elapsed time.Duration) *statistics.Statistics {
	matrix := request.ToMatrix(resp.Days, resp.Shifts, resp.Stations, resp.Assignments)
	roster := request.ToRoster(req.Workers)
	res := solve.Result{Matrix: matrix, Objective: resp.Objective}
	return telemetry.Build(res, roster, len(resp.Alternatives), elapsed)
}

func stationNames(cap schedmodel.Capacity) []string {
	out := make([]string, len(cap.Stations))
	for i, st := range cap.Stations {
		out[i] = st.Name
	}
	return out
}
