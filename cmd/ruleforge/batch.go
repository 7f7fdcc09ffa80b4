package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitrdm/ruleforge/internal/config"
	"github.com/gitrdm/ruleforge/internal/orchestrator"
	"github.com/gitrdm/ruleforge/internal/rlog"
	"github.com/gitrdm/ruleforge/internal/store"
)

var (
	batchManifestPath string
	batchOutDir       string
	batchWorkers      int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of experiments concurrently over a fixed worker pool",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchManifestPath, "manifest", "", "path to a batch manifest file (required)")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory to persist run artifacts; skipped if empty")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "worker pool size; 0 defaults to NumCPU")
	batchCmd.MarkFlagRequired("manifest")
}

// manifestEntry is one line of a batch manifest: a dataset name and the
// path to its rule base file, separated by whitespace.
type manifestEntry struct {
	dataset   string
	rulesPath string
}

func loadManifest(path string) ([]manifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading batch manifest: %w", err)
	}
	defer f.Close()

	var entries []manifestEntry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("manifest line %d: expected '<dataset> <rules-file>', got %q", lineNo, line)
		}
		entries = append(entries, manifestEntry{dataset: fields[0], rulesPath: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch manifest: %w", err)
	}
	return entries, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := rlog.Must()
	defer logger.Sync()

	entries, err := loadManifest(batchManifestPath)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(cfgFile, config.Overrides{})
	if err != nil {
		return err
	}

	experiments := make([]orchestrator.Experiment, 0, len(entries))
	for _, e := range entries {
		rules, facts, err := loadRuleBase(e.rulesPath)
		if err != nil {
			return err
		}
		experiments = append(experiments, orchestrator.Experiment{
			Dataset: e.dataset,
			Config:  cfg,
			Rules:   rules,
			Facts:   facts,
		})
	}

	runner := &orchestrator.Runner{Workers: batchWorkers, Logger: logger}
	if batchOutDir != "" {
		runner.Writer = store.NewWriter(batchOutDir)
	}

	results := runner.RunBatch(experiments)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED: %v\n", r.Dataset, r.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: success=%v iterations=%d rules_activated=%d\n",
			r.Dataset, r.Result.Success, r.Result.Iterations, r.Result.RulesActivated)
		if r.RunDir != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  artifacts: %s\n", r.RunDir)
		}
	}
	return nil
}
