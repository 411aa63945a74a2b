package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/lrtf-sim/sim"
	"github.com/inference-sim/lrtf-sim/sim/trace"
	"github.com/inference-sim/lrtf-sim/sim/workload"
)

var (
	sweepThresholds  []int64 // Starvation thresholds to compare
	sweepParallelism int     // Max concurrent runs
)

// SweepPoint is the outcome of one run in a threshold sweep.
type SweepPoint struct {
	StarvationThreshold int64       `json:"starvation_threshold" yaml:"starvation_threshold"`
	RunID               string      `json:"run_id" yaml:"run_id"`
	Summary             sim.Summary `json:"summary" yaml:"summary"`
}

// SweepResults lists one point per threshold, in flag order.
type SweepResults struct {
	Threads int          `json:"threads" yaml:"threads"`
	Points  []SweepPoint `json:"points" yaml:"points"`
}

// sweepThresholdsRun runs one isolated simulation per threshold. Every run owns
// its registry; decls is only read.
func sweepThresholdsRun(ctx context.Context, base sim.SchedulerConfig, decls []workload.Declaration, thresholds []int64, parallelism int) (*SweepResults, error) {
	points := make([]SweepPoint, len(thresholds))
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, threshold := range thresholds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := sim.NewSchedulerConfig(base.Threads, threshold)
			if err := cfg.Validate(); err != nil {
				return err
			}
			res, err := runSimulation(cfg, decls, trace.TraceConfig{Level: trace.TraceLevelNone})
			if err != nil {
				return fmt.Errorf("threshold %d: %w", threshold, err)
			}
			logrus.Debugf("sweep: threshold %d finished in %d ticks", threshold, res.Summary.Makespan)
			points[i] = SweepPoint{StarvationThreshold: threshold, RunID: res.RunID, Summary: res.Summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &SweepResults{Threads: base.Threads, Points: points}, nil
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare starvation thresholds over the same workload",
	Long:  "Run one independent simulation per --thresholds value, concurrently, and write a summary for each.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		checkFormat()
		if len(sweepThresholds) == 0 {
			logrus.Fatalf("at least one --thresholds value is required")
		}

		spec, err := loadWorkload(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Failed to load workload: %v", err)
		}
		base, err := resolveSchedulerConfig(spec, cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid scheduler config: %v", err)
		}
		decls, err := spec.Declarations()
		if err != nil {
			logrus.Fatalf("Failed to build requests: %v", err)
		}

		results, err := sweepThresholdsRun(cmd.Context(), base, decls, sweepThresholds, sweepParallelism)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		out, err := openOutput(outputPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		defer out.Close()
		if err := sim.Encode(out, outputFormat, results); err != nil {
			logrus.Fatalf("Failed to write sweep results: %v", err)
		}
	},
}

func init() {
	addWorkloadFlags(sweepCmd.Flags())
	sweepCmd.Flags().Int64SliceVar(&sweepThresholds, "thresholds", []int64{0, 2, 5, 10}, "Comma-separated starvation thresholds")
	sweepCmd.Flags().IntVar(&sweepParallelism, "parallel", 4, "Maximum simulations run at once (0 = unlimited)")

	rootCmd.AddCommand(sweepCmd)
}
