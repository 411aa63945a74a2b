package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inference-sim/lrtf-sim/sim"
	"github.com/inference-sim/lrtf-sim/sim/trace"
	"github.com/inference-sim/lrtf-sim/sim/workload"
)

var (
	logLevel     string // Log verbosity level
	traceLevel   string // Decision trace level
	outputFormat string // json or yaml
	outputPath   string // Results file; stdout when empty
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "lrtf-sim",
	Short: "Tick-based simulator for Collaborative LRTF scheduling with starvation prevention",
}

// addWorkloadFlags registers the flags shared by every command that builds a simulation.
func addWorkloadFlags(fs *pflag.FlagSet) {
	fs.String("workload", "", "Path to a workload YAML file")
	fs.StringSlice("request", nil, "Request declaration id:arrival:pages (can be repeated)")
	fs.Int("threads", 4, "Number of simulated execution threads")
}

// loadWorkload resolves the workload named by the flags: the YAML file if given,
// with any --request declarations appended. Without either, the built-in
// four-request example is used.
func loadWorkload(fs *pflag.FlagSet) (*workload.WorkloadSpec, error) {
	path, _ := fs.GetString("workload")
	requests, _ := fs.GetStringSlice("request")

	var spec *workload.WorkloadSpec
	switch {
	case path != "":
		loaded, err := workload.LoadWorkloadSpec(path)
		if err != nil {
			return nil, err
		}
		spec = loaded
	case len(requests) > 0:
		spec = &workload.WorkloadSpec{Version: "1"}
	default:
		logrus.Info("No workload or requests given; using the built-in example")
		spec = workload.ScenarioExample()
	}

	for _, value := range requests {
		decl, err := workload.ParseRequestFlag(value)
		if err != nil {
			return nil, err
		}
		spec.Requests = append(spec.Requests, workload.RequestSpec{ID: decl.ID, Arrival: decl.Arrival, Pages: decl.Pages})
	}
	return spec, nil
}

// resolveSchedulerConfig merges the workload's settings with the flags.
// Explicitly set flags win; otherwise the workload's values, then flag defaults.
// Without a starvation-threshold flag the default threshold applies.
func resolveSchedulerConfig(spec *workload.WorkloadSpec, fs *pflag.FlagSet) (sim.SchedulerConfig, error) {
	threads, _ := fs.GetInt("threads")
	threshold, err := fs.GetInt64("starvation-threshold")
	if err != nil {
		threshold = sim.DefaultStarvationThreshold
	}
	if spec.Threads != nil && !fs.Changed("threads") {
		threads = *spec.Threads
	}
	if spec.StarvationThreshold != nil && !fs.Changed("starvation-threshold") {
		threshold = *spec.StarvationThreshold
	}
	cfg := sim.NewSchedulerConfig(threads, threshold)
	if err := cfg.Validate(); err != nil {
		return sim.SchedulerConfig{}, err
	}
	return cfg, nil
}

// newRegistry registers the declarations in order into a fresh registry.
func newRegistry(decls []workload.Declaration) (*sim.Registry, error) {
	reg := sim.NewRegistry()
	if err := workload.Populate(reg, decls); err != nil {
		return nil, err
	}
	return reg, nil
}

// runSimulation executes one full run and returns its results.
func runSimulation(cfg sim.SchedulerConfig, decls []workload.Declaration, traceCfg trace.TraceConfig) (*sim.Results, error) {
	reg, err := newRegistry(decls)
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSimulator(cfg, reg, sim.WithTrace(traceCfg))
	if err != nil {
		return nil, err
	}
	s.Run()
	return s.Results(), nil
}

// openOutput returns the results destination. The caller closes it.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func checkFormat() {
	if !sim.IsValidFormat(outputFormat) {
		logrus.Fatalf("Unknown --format %q; valid: json, yaml", outputFormat)
	}
}

// runCmd executes one simulation using parameters from the workload and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Collaborative LRTF simulation and write its results",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		checkFormat()
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown --trace %q; valid: none, decisions", traceLevel)
		}

		spec, err := loadWorkload(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Failed to load workload: %v", err)
		}
		cfg, err := resolveSchedulerConfig(spec, cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid scheduler config: %v", err)
		}
		decls, err := spec.Declarations()
		if err != nil {
			logrus.Fatalf("Failed to build requests: %v", err)
		}

		res, err := runSimulation(cfg, decls, trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		out, err := openOutput(outputPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		defer out.Close()
		if err := res.Write(out, outputFormat); err != nil {
			logrus.Fatalf("Failed to write results: %v", err)
		}
		logrus.Infof("Simulation complete: %d requests in %d ticks", res.Summary.CompletedRequests, res.Summary.Makespan)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", sim.FormatJSON, "Output format (json, yaml)")
	rootCmd.PersistentFlags().StringVar(&outputPath, "output", "", "Write results to this file instead of stdout")

	addWorkloadFlags(runCmd.Flags())
	runCmd.Flags().Int64("starvation-threshold", sim.DefaultStarvationThreshold, "Waiting ticks before a request is served by the starvation override")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
