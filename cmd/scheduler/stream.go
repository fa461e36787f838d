package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joey603/sidour-avoda-scheduler/internal/planrun"
	"github.com/joey603/sidour-avoda-scheduler/internal/request"
	"github.com/joey603/sidour-avoda-scheduler/internal/stream"
)

func streamCmd() *cobra.Command {
	var (
		inputPath          string
		timeLimitSeconds   int
		maxNightsPerWorker int
		numAlternatives    int
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Run the solver and print each base/alternative record as SSE frames as it is produced",
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
			app.logger.Info("streaming", zap.String("run_id", runID), zap.Int("workers", len(norm.Workers)), zap.Int("num_alternatives", norm.NumAlternatives))
			ch := planrun.PlanStream(app.ctx, norm)
			for rec := range ch {
				if err := stream.WriteSSE(os.Stdout, rec); err != nil {
					return fmt.Errorf("write record: %w", err)
				}
				if rec.Type == "done" {
					app.logger.Info("stream complete", zap.String("run_id", runID))
				}
			}
			return nil
		},
	}

	addRequestFlags(cmd, &inputPath, &timeLimitSeconds, &maxNightsPerWorker, &numAlternatives)
	return cmd
}
