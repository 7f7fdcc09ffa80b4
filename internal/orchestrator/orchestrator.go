// Package orchestrator threads an ExperimentConfig into a concrete
// rulekit engine and, for batches of independent experiments, fans them out
// across a fixed worker pool. No parallelism happens inside a single run —
// only across runs; each engine run is single-threaded.
package orchestrator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gitrdm/ruleforge/internal/dataio"
	"github.com/gitrdm/ruleforge/internal/store"
	"github.com/gitrdm/ruleforge/pkg/rulekit"
)

// Experiment is one unit of work: a named dataset's rules and initial facts
// bound to an ExperimentConfig. Clusters may be precomputed by the caller
// (e.g. shared across several experiments over the same rule base); if nil
// and clustering is enabled, Run computes them itself.
//
// Rules may be supplied directly, or derived by calling Source.GenerateRules
// against RawData when Rules is nil — Run does not care which way a caller
// chooses to populate the rule base.
type Experiment struct {
	Dataset  string
	Config   rulekit.ExperimentConfig
	Rules    []rulekit.Rule
	Facts    rulekit.FactSet
	Clusters []rulekit.RuleCluster

	RawData dataio.Dataset
	Source  dataio.RuleSource
}

// Run resolves exp.Config into the engine it names and executes it once.
func Run(exp Experiment) (*rulekit.InferenceResult, error) {
	if err := exp.Config.Validate(); err != nil {
		return nil, err
	}
	goal, err := exp.Config.Goal()
	if err != nil {
		return nil, err
	}
	strategy, err := exp.Config.ResolveStrategy()
	if err != nil {
		return nil, err
	}

	rules := exp.Rules
	if rules == nil && exp.Source != nil {
		if exp.RawData == nil {
			return nil, fmt.Errorf("orchestrator: experiment has a RuleSource but no RawData to generate rules from")
		}
		generated, err := exp.Source.GenerateRules(exp.RawData)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: generating rules: %w", err)
		}
		rules = generated
	}

	kb := rulekit.NewKnowledgeBase(rules, exp.Facts)

	if exp.Config.ClusteringEnabled {
		return runClustered(kb, exp, goal, strategy)
	}

	switch exp.Config.InferenceMethod {
	case rulekit.MethodForward:
		fc := rulekit.NewForwardChaining(kb)
		return fc.Run(rulekit.WithGoal(goal), rulekit.WithStrategy(strategy), rulekit.WithTrace())
	case rulekit.MethodGreedy:
		gc := rulekit.NewGreedyForwardChaining(kb)
		return gc.Run(rulekit.WithGreedyGoal(goal), rulekit.WithGreedyTrace())
	case rulekit.MethodBackward:
		bc := rulekit.NewBackwardChaining(kb, rulekit.WithBackwardStrategy(strategy), rulekit.WithBackwardTrace())
		return bc.Run(goal)
	default:
		return nil, rulekit.InvalidConfigError{Reason: fmt.Sprintf("unknown inference_method %q", exp.Config.InferenceMethod)}
	}
}

func runClustered(kb *rulekit.KnowledgeBase, exp Experiment, goal rulekit.Goal, strategy rulekit.Strategy) (*rulekit.InferenceResult, error) {
	clusters := exp.Clusters
	if clusters == nil {
		backend, err := resolveBackend(exp.Config)
		if err != nil {
			return nil, err
		}
		clusterer := rulekit.NewRuleClusterer(backend, exp.Config.CentroidMethod, exp.Config.CentroidThreshold, exp.Config.Seed)
		built, err := clusterer.Cluster(kb.Rules, exp.Config.NClusters)
		if err != nil {
			return nil, err
		}
		clusters = built
	}

	cc := rulekit.NewClusteredForwardChaining(kb, clusters)
	return cc.Run(
		rulekit.WithClusteredGoal(goal),
		rulekit.WithClusteredStrategy(strategy),
		rulekit.WithCentroidMatchThreshold(exp.Config.CentroidMatchThreshold),
		rulekit.WithClusteredTrace(),
	)
}

func resolveBackend(cfg rulekit.ExperimentConfig) (rulekit.ClusterBackend, error) {
	switch cfg.ClusterMethod {
	case rulekit.ClusterAgglomerative:
		return rulekit.NewAgglomerativeBackend(cfg.Linkage), nil
	case rulekit.ClusterKMeans:
		return rulekit.NewKMeansBackend(5), nil
	default:
		return nil, rulekit.UnknownClusterMethodError{Method: string(cfg.ClusterMethod)}
	}
}

// BatchResult pairs an Experiment's outcome with the directory its
// artifacts were written to, if a Writer was supplied.
type BatchResult struct {
	Dataset string
	RunID   string
	RunDir  string
	Result  *rulekit.InferenceResult
	Err     error
}

// Runner runs batches of experiments concurrently over a fixed-size worker
// pool, optionally persisting each one via store.Writer and logging
// start/finish/failure through a zap logger.
type Runner struct {
	Workers int
	Writer  *store.Writer
	Logger  *zap.Logger
}

// RunBatch executes every experiment, returning one BatchResult per input in
// the same order. A failing experiment does not stop the others.
func (r *Runner) RunBatch(experiments []Experiment) []BatchResult {
	pool := newFixedPool(r.Workers)
	results := make([]BatchResult, len(experiments))

	for i, exp := range experiments {
		i, exp := i, exp
		pool.Submit(func() {
			results[i] = r.runOne(exp)
		})
	}
	pool.Close()

	return results
}

func (r *Runner) runOne(exp Experiment) BatchResult {
	runID := store.NewRunID()
	start := time.Now()

	if r.Logger != nil {
		r.Logger.Info("run started", zap.String("run_id", runID), zap.String("dataset", exp.Dataset))
	}

	result, err := Run(exp)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Error("run failed", zap.String("run_id", runID), zap.String("dataset", exp.Dataset), zap.Error(err))
		}
		return BatchResult{Dataset: exp.Dataset, RunID: runID, Err: err}
	}

	br := BatchResult{Dataset: exp.Dataset, RunID: runID, Result: result}

	if r.Writer != nil {
		dir, werr := r.Writer.Write(runID, exp.Dataset, exp.Config, result)
		if werr != nil {
			br.Err = werr
		} else {
			br.RunDir = dir
		}
	}

	if r.Logger != nil {
		r.Logger.Info("run completed",
			zap.String("run_id", runID),
			zap.String("dataset", exp.Dataset),
			zap.Bool("success", result.Success),
			zap.Duration("elapsed", time.Since(start)))
	}

	return br
}
