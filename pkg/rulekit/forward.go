package rulekit

import "time"

// ForwardChainingOption configures a ForwardChaining run.
type ForwardChainingOption func(*forwardOptions)

type forwardOptions struct {
	goal     Goal
	strategy Strategy
	trace    bool
}

// WithGoal sets the stop condition. The zero value (NoGoal) runs to
// quiescence.
func WithGoal(g Goal) ForwardChainingOption {
	return func(o *forwardOptions) { o.goal = g }
}

// WithStrategy sets the conflict-resolution strategy. Defaults to
// NewFirstStrategy() when not supplied.
func WithStrategy(s Strategy) ForwardChainingOption {
	return func(o *forwardOptions) { o.strategy = s }
}

// WithTrace enables per-iteration trace recording on the result.
func WithTrace() ForwardChainingOption {
	return func(o *forwardOptions) { o.trace = true }
}

// ForwardChaining is an iterative fixpoint that scans the KB for a
// conflict set, selects one rule via the configured Strategy, fires it,
// and repeats until quiescence or the goal is met.
type ForwardChaining struct {
	kb *KnowledgeBase
}

// NewForwardChaining creates a ForwardChaining engine over kb. The engine
// takes its own working copy of kb.Facts at Run time; kb is never mutated.
func NewForwardChaining(kb *KnowledgeBase) *ForwardChaining {
	return &ForwardChaining{kb: kb}
}

// Run executes the fixpoint and reports whether the goal (if any) was met
// by the time the engine reached quiescence.
func (fc *ForwardChaining) Run(opts ...ForwardChainingOption) (*InferenceResult, error) {
	o := forwardOptions{strategy: NewFirstStrategy()}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()

	facts := fc.kb.Facts.Clone()
	fired := newFiredSet()

	useRecency := o.strategy.Name() == "recency"
	var clock LogicalClock
	if useRecency {
		clock = newLogicalClock(facts)
	}

	result := &InferenceResult{}

	// Goal already satisfied before any iteration runs.
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
		conflictSet := applicableRules(fc.kb.Rules, facts, fired, &result.RulesEvaluated)
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
