package rulekit

import "time"

// BackwardChaining is a goal-driven recursive proof with backtracking over
// competing rules and a cycle guard on the in-progress goal path.
type BackwardChaining struct {
	kb       *KnowledgeBase
	strategy Strategy

	facts          FactSet
	proofPath      FactSet
	newFacts       []Fact
	firedRules     []Rule
	rulesEvaluated int
	rulesActivated int
	maxDepth       int
	trace          []TraceStep
	wantTrace      bool
}

// BackwardChainingOption configures a BackwardChaining run.
type BackwardChainingOption func(*BackwardChaining)

// WithBackwardStrategy sets the strategy used to order competing rules for
// a goal. Defaults to NewFirstStrategy() when not supplied.
func WithBackwardStrategy(s Strategy) BackwardChainingOption {
	return func(bc *BackwardChaining) { bc.strategy = s }
}

// WithBackwardTrace enables recording of each proved subgoal.
func WithBackwardTrace() BackwardChainingOption {
	return func(bc *BackwardChaining) { bc.wantTrace = true }
}

// NewBackwardChaining creates a BackwardChaining engine over kb.
func NewBackwardChaining(kb *KnowledgeBase, opts ...BackwardChainingOption) *BackwardChaining {
	bc := &BackwardChaining{kb: kb, strategy: NewFirstStrategy()}
	for _, opt := range opts {
		opt(bc)
	}
	return bc
}

// Run proves goal against kb, depth-first with backtracking. goal must be
// a concrete fact: an attribute-only goal fails with GoalUnsupportedError,
// and an unset goal fails with GoalRequiredError.
func (bc *BackwardChaining) Run(goal Goal) (*InferenceResult, error) {
	if !goal.IsSet() {
		return nil, GoalRequiredError{}
	}
	if attr, ok := goal.Attribute(); ok {
		return nil, GoalUnsupportedError{Attribute: attr}
	}
	target, _ := goal.Fact()

	start := time.Now()

	bc.facts = bc.kb.Facts.Clone()
	bc.proofPath = make(FactSet)
	bc.newFacts = nil
	bc.firedRules = nil
	bc.rulesEvaluated = 0
	bc.rulesActivated = 0
	bc.maxDepth = 0
	bc.trace = nil

	success := bc.prove(target, 0)

	result := &InferenceResult{
		Success:        success,
		FinalFacts:     bc.facts,
		NewFacts:       bc.newFacts,
		FiredRules:     bc.firedRules,
		Iterations:     len(bc.firedRules),
		Duration:       time.Since(start),
		RulesEvaluated: bc.rulesEvaluated,
		RulesActivated: bc.rulesActivated,
		FactsCount:     len(bc.facts),
		Trace:          bc.trace,
	}
	return result, nil
}

// MaxDepth returns the deepest recursion level reached by the most recent
// Run, for diagnostics.
func (bc *BackwardChaining) MaxDepth() int {
	return bc.maxDepth
}

// prove attempts to establish goal, returning true on success. It mutates
// bc.facts, bc.newFacts, and bc.firedRules as rules fire.
func (bc *BackwardChaining) prove(goal Fact, depth int) bool {
	if depth > bc.maxDepth {
		bc.maxDepth = depth
	}

	if bc.facts.Contains(goal) {
		return true
	}

	if bc.proofPath.Contains(goal) {
		// Cycle: this goal is already being proved higher up the call
		// stack. Fail without recursing further.
		return false
	}

	bc.proofPath.Add(goal)

	var competitive []Rule
	for _, r := range bc.kb.Rules {
		bc.rulesEvaluated++
		if r.Conclusion == goal {
			competitive = append(competitive, r)
		}
	}
	bc.rulesActivated += len(competitive)

	if len(competitive) == 0 {
		delete(bc.proofPath, goal)
		return false
	}

	ordered := bc.orderByStrategy(competitive)

	for _, r := range ordered {
		if bc.tryRule(r, depth) {
			bc.facts.Add(goal)
			bc.newFacts = append(bc.newFacts, goal)
			bc.firedRules = append(bc.firedRules, r)
			if bc.wantTrace {
				id := r.ID
				g := goal
				bc.trace = append(bc.trace, TraceStep{Iteration: len(bc.firedRules), SelectedRule: &id, NewFact: &g})
			}
			delete(bc.proofPath, goal)
			return true
		}
	}

	delete(bc.proofPath, goal)
	return false
}

// tryRule attempts to prove every premise of r, depth-first in premise
// order, backtracking (returning false) the moment one fails.
func (bc *BackwardChaining) tryRule(r Rule, depth int) bool {
	for _, p := range r.Premises {
		if !bc.prove(p, depth+1) {
			return false
		}
	}
	return true
}

// orderByStrategy repeatedly selects from the remaining competitive rules
// via bc.strategy, yielding a deterministic exploration order for
// backtracking to walk through.
func (bc *BackwardChaining) orderByStrategy(competitive []Rule) []Rule {
	remaining := make([]Rule, len(competitive))
	copy(remaining, competitive)

	ordered := make([]Rule, 0, len(remaining))
	for len(remaining) > 0 {
		selected, err := bc.strategy.Select(remaining, StrategyContext{})
		if err != nil {
			// Strategy contract guarantees non-empty input here; this
			// should be unreachable.
			break
		}
		ordered = append(ordered, selected)
		remaining = removeRule(remaining, selected)
	}
	return ordered
}

// removeRule returns a copy of rules with the first occurrence of target
// (matched by ID) removed.
func removeRule(rules []Rule, target Rule) []Rule {
	out := make([]Rule, 0, len(rules)-1)
	removed := false
	for _, r := range rules {
		if !removed && r.ID == target.ID {
			removed = true
			continue
		}
		out = append(out, r)
	}
	return out
}
