package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/plus3/orbit/internal/config"
	"github.com/plus3/orbit/internal/host"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newStressCmd(configPath *string) *cobra.Command {
	var (
		duration       time.Duration
		entities       int
		seed           uint64
		gcPauseMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run the performance scene headless and report frame times",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if cmd.Flags().Changed("duration") {
				cfg.Stress.Duration = duration
			}
			if cmd.Flags().Changed("entities") {
				cfg.Stress.Entities = entities
			}
			if err := cfg.Validate(); err != nil {
				return eris.Wrap(err, "stress flags")
			}

			report, err := stress(cmd.Context(), cfg, logger, seed)
			if err != nil {
				return err
			}
			report.GCPauseMetrics = gcPauseMetrics
			return report.Generate(os.Stdout)
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 10*time.Second, "how long the run lasts")
	cmd.Flags().IntVarP(&entities, "entities", "n", 50000, "number of tiles in the performance scene")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for tile colours and phases")
	cmd.Flags().BoolVar(&gcPauseMetrics, "gc-pause-metrics", false, "include GC pause totals in the report")
	return cmd
}

// stress builds the performance scene with cfg.Stress.Entities tiles and
// steps it with wall-clock deltas until cfg.Stress.Duration elapses.
func stress(ctx context.Context, cfg *config.Config, logger *zap.Logger, seed uint64) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Stress.Entities < 0 {
		return nil, eris.Errorf("stress entities must be >= 0, got %d", cfg.Stress.Entities)
	}
	cfg.Performance.Count = cfg.Stress.Entities

	logger.Info("populating performance scene", zap.Int("entities", cfg.Stress.Entities))
	sim := host.NewSimulation(cfg, logger, seed)
	if err := sim.SetMode(host.ModePerformance); err != nil {
		return nil, err
	}

	report := &Report{
		Duration: cfg.Stress.Duration,
		Entities: cfg.Stress.Entities,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running", zap.Duration("duration", cfg.Stress.Duration))
	ctx, cancel := context.WithTimeout(ctx, cfg.Stress.Duration)
	defer cancel()

	start := time.Now()
	last := start

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			now := time.Now()
			dt := now.Sub(last)
			last = now

			updateStart := time.Now()
			sim.Step(dt.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Components = len(sim.World.ComponentTypes())
	report.RenderNodes = sim.Nodes.Len()
	report.World = sim.World.CollectStats()
	report.Systems = sim.World.Stats().Systems

	logger.Info("run finished",
		zap.Int64("updates", report.TotalUpdates),
		zap.Duration("avg", report.UpdateTime.Avg))
	return report, nil
}
