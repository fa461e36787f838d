package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joey603/sidour-avoda-scheduler/internal/planrun"
	"github.com/joey603/sidour-avoda-scheduler/internal/request"
)

func solveCmd() *cobra.Command {
	var (
		inputPath          string
		timeLimitSeconds   int
		maxNightsPerWorker int
		numAlternatives    int
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the solver to completion and print the full response",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(inputPath)
			if err != nil {
				return err
			}

			norm, err := request.Parse(req, requestDefaults(), overridesFromFlags(cmd, timeLimitSeconds, maxNightsPerWorker, numAlternatives))
			if err != nil {
				return fmt.Errorf("parse request: %w", err)
			}

			runID := uuid.NewString()
			app.logger.Info("solving", zap.String("run_id", runID), zap.Int("workers", len(norm.Workers)), zap.Int("num_alternatives", norm.NumAlternatives))
			started := time.Now()
			resp := planrun.Plan(app.ctx, norm)
			elapsed := time.Since(started)

			stats := planrun.Telemetry(norm, resp, elapsed)
			app.logger.Info("solve complete",
				zap.String("run_id", runID),
				zap.String("status", resp.Status),
				zap.Float64("objective", resp.Objective),
				zap.Duration("elapsed", elapsed),
				zap.Any("fairness", stats.Result.Custom),
			)

			enc := json.NewEncoder(os.Stdout)
			return enc.Encode(resp)
		},
	}

	addRequestFlags(cmd, &inputPath, &timeLimitSeconds, &maxNightsPerWorker, &numAlternatives)
	return cmd
}

func addRequestFlags(cmd *cobra.Command, inputPath *string, timeLimitSeconds, maxNightsPerWorker, numAlternatives *int) {
	cmd.Flags().StringVar(inputPath, "input", "", "Path to a request JSON document (default: read stdin)")
	cmd.Flags().IntVar(timeLimitSeconds, "time-limit-seconds", 0, "Override the request's time_limit_seconds")
	cmd.Flags().IntVar(maxNightsPerWorker, "max-nights-per-worker", -1, "Override the request's max_nights_per_worker")
	cmd.Flags().IntVar(numAlternatives, "num-alternatives", -1, "Override the request's num_alternatives")
}

// overridesFromFlags turns the §6.3 CLI flags into a request.Overrides,
// leaving a field nil when its flag was never set so Parse falls back to
// the request body (or the built-in default).
func overridesFromFlags(cmd *cobra.Command, timeLimitSeconds, maxNightsPerWorker, numAlternatives int) request.Overrides {
	var ov request.Overrides
	if cmd.Flags().Changed("time-limit-seconds") {
		ov.TimeLimitSeconds = &timeLimitSeconds
	}
	if cmd.Flags().Changed("max-nights-per-worker") {
		ov.MaxNightsPerWorker = &maxNightsPerWorker
	}
	if cmd.Flags().Changed("num-alternatives") {
		ov.NumAlternatives = &numAlternatives
	}
	return ov
}

func readRequest(path string) (request.Request, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return request.Request{}, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req request.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return request.Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}
