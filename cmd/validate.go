package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/lrtf-sim/sim/workload"
)

var validatePath string

// validateWorkload loads the workload at path, expands it, and registers it
// into a scratch registry so that duplicate IDs are reported too.
func validateWorkload(path string, w io.Writer) error {
	spec, err := workload.LoadWorkloadSpec(path)
	if err != nil {
		return err
	}
	decls, err := spec.Declarations()
	if err != nil {
		return err
	}
	reg, err := newRegistry(decls)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: ok (%d requests, %d pages)\n", path, reg.Len(), reg.TotalPages())
	return err
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a workload YAML file without running it",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if err := validateWorkload(validatePath, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}
	},
}

func init() {
	validateCmd.Flags().StringVar(&validatePath, "workload", "", "Path to a workload YAML file")
	_ = validateCmd.MarkFlagRequired("workload")

	rootCmd.AddCommand(validateCmd)
}
