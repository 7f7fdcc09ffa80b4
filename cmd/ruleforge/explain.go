package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/ruleforge/internal/config"
	"github.com/gitrdm/ruleforge/pkg/rulekit"
)

var (
	explainRulesPath string
	explainGoalAttr  string
	explainGoalVal   string
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain how a goal fact can be derived via backward chaining",
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().StringVar(&explainRulesPath, "rules", "", "path to a rule base file (required)")
	explainCmd.Flags().StringVar(&explainGoalAttr, "goal-attribute", "", "goal attribute name (required)")
	explainCmd.Flags().StringVar(&explainGoalVal, "goal-value", "", "goal attribute value (required)")
	explainCmd.MarkFlagRequired("rules")
	explainCmd.MarkFlagRequired("goal-attribute")
	explainCmd.MarkFlagRequired("goal-value")
}

func runExplain(cmd *cobra.Command, args []string) error {
	rules, facts, err := loadRuleBase(explainRulesPath)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(cfgFile, config.Overrides{})
	if err != nil {
		return err
	}
	strategy, err := cfg.ResolveStrategy()
	if err != nil {
		return err
	}

	goalFact, err := rulekit.NewFact(explainGoalAttr, explainGoalVal)
	if err != nil {
		return err
	}

	kb := rulekit.NewKnowledgeBase(rules, facts)
	bc := rulekit.NewBackwardChaining(kb, rulekit.WithBackwardStrategy(strategy), rulekit.WithBackwardTrace())
	result, err := bc.Run(rulekit.FactGoal(goalFact))
	if err != nil {
		return err
	}

	if !result.Success {
		fmt.Fprintf(cmd.OutOrStdout(), "no proof found for %s\n", goalFact.String())
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "proved %s in %d step(s):\n", goalFact.String(), len(result.FiredRules))
	for i, r := range result.FiredRules {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, r.String())
	}
	return nil
}
