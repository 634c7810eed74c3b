// Command annealer runs the parallel simulated-annealing job scheduler
// from the command line: it generates synthetic job duration data,
// builds a worst-case starting schedule, and searches for a
// lower-imbalance assignment using a Coordinator-driven pool of
// workers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "annealer job_count processor_count min_duration max_duration exchange_interval initial_temperature cooling_law iterations_per_temperature iterations_without_improvement iterations_without_improvement_global num_threads [log]",
	Short:   "Parallel simulated annealing job scheduler",
	Version: version,
	Args:    cobra.RangeArgs(11, 12),
	Example: "annealer 10 2 1.0 15.0 100 1000.0 boltzmann 50 1000 10 4",
	RunE:    runAnnealer,
}

func main() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
