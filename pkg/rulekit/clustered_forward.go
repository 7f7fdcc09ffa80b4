package rulekit

import "time"

// ClusteredForwardChainingOption configures a ClusteredForwardChaining run.
type ClusteredForwardChainingOption func(*clusteredOptions)

type clusteredOptions struct {
	goal           Goal
	strategy       Strategy
	matchThreshold float64
	trace          bool
}

// WithClusteredGoal sets the stop condition.
func WithClusteredGoal(g Goal) ClusteredForwardChainingOption {
	return func(o *clusteredOptions) { o.goal = g }
}

// WithClusteredStrategy sets the conflict-resolution strategy used once a
// cluster has been selected. Defaults to NewFirstStrategy().
func WithClusteredStrategy(s Strategy) ClusteredForwardChainingOption {
	return func(o *clusteredOptions) { o.strategy = s }
}

// WithCentroidMatchThreshold sets the argmax gate: an iteration whose best
// cluster similarity does not exceed this threshold is treated as
// quiescence-by-skip. Defaults to 0.
func WithCentroidMatchThreshold(t float64) ClusteredForwardChainingOption {
	return func(o *clusteredOptions) { o.matchThreshold = t }
}

// WithClusteredTrace enables per-iteration trace recording.
func WithClusteredTrace() ClusteredForwardChainingOption {
	return func(o *clusteredOptions) { o.trace = true }
}

// ClusteredForwardChaining scores every cluster's centroid similarity
// against the current fact set each iteration, explores only the argmax
// cluster's rules, and treats a max similarity at or below the gate
// threshold as quiescence. It is an approximation of ForwardChaining that
// may skip rules whose owning cluster never wins the argmax.
type ClusteredForwardChaining struct {
	kb       *KnowledgeBase
	clusters []RuleCluster
}

// NewClusteredForwardChaining creates an engine over kb that explores only
// clusters, in the order clusters is given. clusters is typically the
// output of RuleClusterer.Cluster applied to kb.Rules.
func NewClusteredForwardChaining(kb *KnowledgeBase, clusters []RuleCluster) *ClusteredForwardChaining {
	return &ClusteredForwardChaining{kb: kb, clusters: clusters}
}

// Run executes the clustered fixpoint.
func (cc *ClusteredForwardChaining) Run(opts ...ClusteredForwardChainingOption) (*InferenceResult, error) {
	o := clusteredOptions{strategy: NewFirstStrategy()}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()

	facts := cc.kb.Facts.Clone()
	fired := newFiredSet()

	useRecency := o.strategy.Name() == "recency"
	var clock LogicalClock
	if useRecency {
		clock = newLogicalClock(facts)
	}

	result := &InferenceResult{}

	if o.goal.IsSet() && o.goal.satisfiedBy(facts) {
		result.Success = true
		result.FinalFacts = facts
		result.FactsCount = len(facts)
		result.Duration = time.Since(start)
		return result, nil
	}

	iteration := 0
	for {
		iteration++

		winner, winnerSim := cc.selectCluster(facts)
		result.CentroidEvaluations += len(cc.clusters)

		if winner < 0 || winnerSim <= o.matchThreshold {
			// Every cluster is irrelevant this iteration: none explored.
			result.ClustersSkipped += len(cc.clusters)
			if o.trace {
				result.Trace = append(result.Trace, TraceStep{Iteration: iteration, ConflictSize: 0, Note: "quiescence-by-skip"})
			}
			break
		}

		result.ClustersChecked++
		result.ClustersSkipped += len(cc.clusters) - 1

		conflictSet := applicableRules(cc.clusters[winner].Rules, facts, fired, &result.RulesEvaluated)
		result.RulesActivated += len(conflictSet)

		if len(conflictSet) == 0 {
			if o.trace {
				result.Trace = append(result.Trace, TraceStep{Iteration: iteration, ConflictSize: 0, Note: "quiescence"})
			}
			break
		}

		ctx := StrategyContext{}
		if useRecency {
			ctx.Clock = clock
		}
		selected, err := o.strategy.Select(conflictSet, ctx)
		if err != nil {
			return nil, err
		}
		fired.add(selected.ID)

		step := TraceStep{Iteration: iteration, ConflictSize: len(conflictSet)}
		id := selected.ID
		step.SelectedRule = &id

		if !facts.Contains(selected.Conclusion) {
			facts.Add(selected.Conclusion)
			result.NewFacts = append(result.NewFacts, selected.Conclusion)
			result.FiredRules = append(result.FiredRules, selected)
			if useRecency {
				clock[selected.Conclusion] = iteration
			}
			c := selected.Conclusion
			step.NewFact = &c
		} else {
			step.Note = "no-op: conclusion already present"
		}

		if o.trace {
			result.Trace = append(result.Trace, step)
		}

		if o.goal.IsSet() && o.goal.satisfiedBy(facts) {
			result.Success = true
			result.FinalFacts = facts
			result.FactsCount = len(facts)
			result.Iterations = iteration
			result.Duration = time.Since(start)
			return result, nil
		}
	}

	result.Iterations = iteration
	result.FinalFacts = facts
	result.FactsCount = len(facts)
	result.Duration = time.Since(start)
	if !o.goal.IsSet() {
		result.Success = true
	} else {
		result.Success = o.goal.satisfiedBy(facts)
	}
	return result, nil
}

// selectCluster scores every cluster's centroid similarity against facts
// and returns the argmax cluster's index (ties broken by ClusterID, i.e.
// ascending index order here) and its similarity. Returns winner -1 if
// there are no clusters at all.
func (cc *ClusteredForwardChaining) selectCluster(facts FactSet) (winner int, winnerSim float64) {
	winner = -1
	for i, cluster := range cc.clusters {
		sim := centroidSimilarity(cluster.Centroid, facts)
		if winner < 0 || sim > winnerSim {
			winner, winnerSim = i, sim
		}
	}
	return winner, winnerSim
}

// centroidSimilarity is the fraction of centroid premises present in
// facts. A centroid with no premises scores 1 (degenerate; should not
// occur given RuleCluster's non-empty-centroid invariant).
func centroidSimilarity(centroid Rule, facts FactSet) float64 {
	if len(centroid.Premises) == 0 {
		return 1
	}
	hits := 0
	for _, p := range centroid.Premises {
		if facts.Contains(p) {
			hits++
		}
	}
	return float64(hits) / float64(len(centroid.Premises))
}
