package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joey603/sidour-avoda-scheduler/internal/applog"
	"github.com/joey603/sidour-avoda-scheduler/internal/appconfig"
	"github.com/joey603/sidour-avoda-scheduler/internal/request"
)

// App holds the scheduler CLI's shared dependencies, wired once in
// initApp and read by every subcommand.
type App struct {
	cfg    appconfig.Config
	logger *zap.Logger
	ctx    context.Context
}

var (
	env        string
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Sidour Avoda Scheduler - role-aware shift rota solver",
		Long:  `Builds a weekly shift roster from station capacity, worker availability, and role requirements, and enumerates near-optimal alternatives.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name (used to label the log file)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a solver-defaults YAML file (optional; built-in defaults otherwise)")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(streamCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() error {
	var err error
	app = &App{ctx: context.Background()}

	app.logger, err = applog.New(env)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	app.logger.Info("starting scheduler", zap.String("environment", env))

	if configPath != "" {
		app.logger.Debug("loading solver defaults", zap.String("path", configPath))
		app.cfg, err = appconfig.LoadFromPath(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		app.cfg = appconfig.Default()
	}
	app.logger.Debug("solver defaults ready",
		zap.Int("time_limit_seconds", app.cfg.TimeLimitSeconds),
		zap.Int("max_nights_per_worker", app.cfg.MaxNightsPerWorker),
		zap.Int("num_alternatives", app.cfg.NumAlternatives),
	)

	return nil
}

// requestDefaults turns the loaded appconfig.Config into the
// request.Defaults layer Parse falls back to, so a `--config` override
// actually reaches the solve instead of only being logged.
func requestDefaults() request.Defaults {
	return request.Defaults{
		TimeLimitSeconds:      app.cfg.TimeLimitSeconds,
		MaxNightsPerWorker:    app.cfg.MaxNightsPerWorker,
		NumAlternatives:       app.cfg.NumAlternatives,
		AlternativeBufferSize: app.cfg.AlternativeBufferSize,
	}
}
