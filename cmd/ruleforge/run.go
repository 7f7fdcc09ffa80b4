package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/ruleforge/internal/config"
	"github.com/gitrdm/ruleforge/internal/orchestrator"
	"github.com/gitrdm/ruleforge/internal/rlog"
	"github.com/gitrdm/ruleforge/internal/store"
)

var (
	runRulesPath string
	runOutDir    string
	runGoalAttr  string
	runGoalVal   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single inference experiment over a rule base",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runRulesPath, "rules", "", "path to a rule base file (required)")
	runCmd.Flags().StringVar(&runOutDir, "out", "", "directory to persist run artifacts; skipped if empty")
	runCmd.Flags().StringVar(&runGoalAttr, "goal-attribute", "", "goal attribute name")
	runCmd.Flags().StringVar(&runGoalVal, "goal-value", "", "goal attribute value")
	runCmd.MarkFlagRequired("rules")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := rlog.Must()
	defer logger.Sync()

	rules, facts, err := loadRuleBase(runRulesPath)
	if err != nil {
		return err
	}

	overrides := config.Overrides{}
	persistent := cmd.Root().PersistentFlags()
	if persistent.Changed("seed") {
		s := seed
		overrides.Seed = &s
	}
	if persistent.Changed("strategy") {
		s := strat
		overrides.Strategy = &s
	}
	if persistent.Changed("method") {
		m := method
		overrides.InferenceMethod = &m
	}
	if runGoalAttr != "" {
		overrides.GoalAttribute = &runGoalAttr
	}
	if runGoalVal != "" {
		overrides.GoalValue = &runGoalVal
	}

	cfg, err := config.Resolve(cfgFile, overrides)
	if err != nil {
		return err
	}

	exp := orchestrator.Experiment{Dataset: dataset, Config: cfg, Rules: rules, Facts: facts}
	result, err := orchestrator.Run(exp)
	if err != nil {
		return err
	}

	logger.Info("run finished", zap.String("dataset", dataset), zap.Bool("success", result.Success))
	fmt.Fprintf(cmd.OutOrStdout(), "success=%v iterations=%d rules_activated=%d\n", result.Success, result.Iterations, result.RulesActivated)
	for _, r := range result.FiredRules {
		fmt.Fprintln(cmd.OutOrStdout(), r.String())
	}

	if runOutDir != "" {
		w := store.NewWriter(runOutDir)
		runID := store.NewRunID()
		dir, err := w.Write(runID, dataset, cfg, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "artifacts written to %s\n", dir)
	}

	return nil
}
