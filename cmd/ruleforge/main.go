// Command ruleforge is the CLI entrypoint for the rule engine: run a single
// experiment, cluster a rule base, run a batch of experiments concurrently,
// or explain how a fact was derived. pkg/rulekit never imports cobra; only
// this entrypoint and internal/config know a CLI exists.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dataset string
	seed    int64
	strat   string
	method  string
)

var rootCmd = &cobra.Command{
	Use:   "ruleforge",
	Short: "A clustered rule-based inference engine",
	Long: `ruleforge runs forward chaining, greedy forward chaining, backward
chaining, and Jaccard-clustered forward chaining over attribute-value rule
bases.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataset, "dataset", "dataset", "dataset name, used in artifact directory naming")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed for the random strategy and k-means")
	rootCmd.PersistentFlags().StringVar(&strat, "strategy", "", "conflict resolution strategy: first, random, specificity, recency")
	rootCmd.PersistentFlags().StringVar(&method, "method", "", "inference method: forward, backward, greedy")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(explainCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
