package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"juicery/internal/config"
	"juicery/internal/faults"
	"juicery/internal/logging"
	"juicery/internal/metrics"
	"juicery/internal/plant"
)

const lockFileName = "juicery.lock"

type runOptions struct {
	plants      int
	duration    time.Duration
	timeScale   float64
	peelers     int
	squeezers   int
	bottlers    int
	jsonOutput  bool
	metricsFile string
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the plants for a fixed duration and print what they produced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg, err := opts.apply(cmd, cfg)
			if err != nil {
				return err
			}
			return executeRun(cmd, runCfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.plants, "plants", 0, "Number of independent plants (overrides plant.count)")
	flags.DurationVar(&opts.duration, "duration", 0, "How long the plants run (overrides workflow.run_ms)")
	flags.Float64Var(&opts.timeScale, "time-scale", 0, "Simulated time multiplier (overrides workflow.time_scale)")
	flags.IntVar(&opts.peelers, "peelers", 0, "Peeling workers per plant")
	flags.IntVar(&opts.squeezers, "squeezers", 0, "Squeezing workers per plant")
	flags.IntVar(&opts.bottlers, "bottlers", 0, "Bottling workers per plant")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the summary as JSON")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	return cmd
}

// apply returns a copy of cfg with every explicitly set flag applied.
func (o runOptions) apply(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	out := *cfg
	flags := cmd.Flags()
	if flags.Changed("plants") {
		out.Plant.Count = o.plants
	}
	if flags.Changed("duration") {
		out.Workflow.RunMillis = int(o.duration.Milliseconds())
	}
	if flags.Changed("time-scale") {
		out.Workflow.TimeScale = o.timeScale
	}
	if flags.Changed("peelers") {
		out.Plant.Peelers = o.peelers
	}
	if flags.Changed("squeezers") {
		out.Plant.Squeezers = o.squeezers
	}
	if flags.Changed("bottlers") {
		out.Plant.Bottlers = o.bottlers
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func executeRun(cmd *cobra.Command, cfg *config.Config, opts runOptions) error {
	runID := uuid.NewString()
	ctx := logging.WithRunID(cmd.Context(), runID)

	base, err := logging.NewFromConfigTo(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger := logging.WithContext(ctx, base)

	unlock, err := acquireRunLock(cfg)
	if err != nil {
		return err
	}
	defer unlock()

	recorder := metrics.New()
	fleet := plant.NewFleet(cfg.Plant.Count,
		plant.WithConfig(cfg),
		plant.WithLogger(base),
		plant.WithMetrics(recorder),
	)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("juicery run starting",
		logging.Int("plants", cfg.Plant.Count),
		logging.Duration("duration", cfg.RunDuration()),
		logging.Float64("time_scale", cfg.Workflow.TimeScale),
	)
	started := time.Now()
	runErr := fleet.Run(runCtx, cfg.RunDuration())
	elapsed := time.Since(started)
	if runErr != nil && !faults.IsInterrupted(runErr) {
		return runErr
	}
	if runErr != nil {
		logging.WarnWithContext(logger, "run finished with interrupted hand-offs",
			"run_drain_incomplete",
			logging.Error(runErr),
			logging.String(logging.FieldErrorHint, "stranded oranges are reported as left in queue"),
		)
	}

	summary := newRunSummary(runID, elapsed, fleet, runErr != nil)
	logger.Info("juicery run finished",
		logging.Int("provided", summary.Totals.Provided),
		logging.Int("processed", summary.Totals.Processed),
		logging.Int("bottles", summary.Totals.Bottled),
	)

	if path := strings.TrimSpace(opts.metricsFile); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return fmt.Errorf("resolve metrics file: %w", err)
		}
		if err := recorder.WriteTextfile(expanded); err != nil {
			return fmt.Errorf("write metrics file: %w", err)
		}
	}

	if opts.jsonOutput {
		return writeJSON(cmd, summary)
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, renderSummary(summary, shouldColorize(out)))
	return nil
}

// acquireRunLock keeps two runs from appending to the same log directory.
func acquireRunLock(cfg *config.Config) (func(), error) {
	dir := strings.TrimSpace(cfg.Logging.Dir)
	if dir == "" {
		return func() {}, nil
	}
	lock := flock.New(filepath.Join(dir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another juicery run is using log directory " + dir)
	}
	return func() { _ = lock.Unlock() }, nil
}
