package rulekit

import "time"

// GreedyForwardChainingOption configures a GreedyForwardChaining run.
type GreedyForwardChainingOption func(*greedyOptions)

type greedyOptions struct {
	goal  Goal
	trace bool
}

// WithGreedyGoal sets the stop condition, identical in semantics to
// WithGoal for ForwardChaining.
func WithGreedyGoal(g Goal) GreedyForwardChainingOption {
	return func(o *greedyOptions) { o.goal = g }
}

// WithGreedyTrace enables per-iteration trace recording.
func WithGreedyTrace() GreedyForwardChainingOption {
	return func(o *greedyOptions) { o.trace = true }
}

// GreedyForwardChaining is identical to ForwardChaining except each
// iteration fires every rule in the conflict set, in conflict-set order,
// instead of consulting a strategy to pick one. A single iteration can
// therefore introduce multiple facts. There is no strategy to configure —
// greedy firing is only available unseeded.
type GreedyForwardChaining struct {
	kb *KnowledgeBase
}

// NewGreedyForwardChaining creates a GreedyForwardChaining engine over kb.
func NewGreedyForwardChaining(kb *KnowledgeBase) *GreedyForwardChaining {
	return &GreedyForwardChaining{kb: kb}
}

// Run executes the greedy fixpoint.
func (gc *GreedyForwardChaining) Run(opts ...GreedyForwardChainingOption) (*InferenceResult, error) {
	o := greedyOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()

	facts := gc.kb.Facts.Clone()
	fired := newFiredSet()
	result := &InferenceResult{}

	if o.goal.IsSet() && o.goal.satisfiedBy(facts) {
		result.Success = true
		result.FinalFacts = facts
		result.FactsCount = len(facts)
		result.Duration = time.Since(start)
		return result, nil
	}

	iteration := 0
	goalReached := false
	for {
		iteration++
		conflictSet := applicableRules(gc.kb.Rules, facts, fired, &result.RulesEvaluated)
		result.RulesActivated += len(conflictSet)

		if len(conflictSet) == 0 {
			if o.trace {
				result.Trace = append(result.Trace, TraceStep{Iteration: iteration, ConflictSize: 0, Note: "quiescence"})
			}
			break
		}

		for _, r := range conflictSet {
			fired.add(r.ID)
			if facts.Contains(r.Conclusion) {
				continue
			}
			facts.Add(r.Conclusion)
			result.NewFacts = append(result.NewFacts, r.Conclusion)
			result.FiredRules = append(result.FiredRules, r)

			if o.trace {
				c := r.Conclusion
				id := r.ID
				result.Trace = append(result.Trace, TraceStep{
					Iteration: iteration, ConflictSize: len(conflictSet), SelectedRule: &id, NewFact: &c,
				})
			}

			if o.goal.IsSet() && o.goal.satisfiedBy(facts) {
				goalReached = true
				break
			}
		}

		if goalReached {
			break
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
