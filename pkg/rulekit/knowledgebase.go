package rulekit

// KnowledgeBase pairs a read-only rule list with a fact set. Rules are
// examined in KB insertion order throughout a run: that order is what
// makes conflict sets, tie-breaks, and the whole engine deterministic.
//
// An engine takes a logical snapshot of facts at the start of a run and
// mutates its own working copy; the KnowledgeBase passed in is never
// observably modified.
type KnowledgeBase struct {
	Rules []Rule
	Facts FactSet
}

// NewKnowledgeBase builds a KnowledgeBase from a rule list and an initial
// fact set. The rule slice and fact set are copied so the KnowledgeBase
// owns independent storage from the caller.
func NewKnowledgeBase(rules []Rule, facts FactSet) *KnowledgeBase {
	rs := make([]Rule, len(rules))
	copy(rs, rules)
	return &KnowledgeBase{Rules: rs, Facts: facts.Clone()}
}

// firedSet tracks rule IDs that have already fired in the current run,
// implementing refractoriness: a rule may fire at most once.
type firedSet map[int]struct{}

func newFiredSet() firedSet {
	return make(firedSet)
}

func (s firedSet) has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s firedSet) add(id int) {
	s[id] = struct{}{}
}

// ApplicableRules returns the conflict set over kb.Rules and facts: rules
// not yet in fired, whose premises are satisfied, and whose conclusion is
// novel. fired may be nil to mean "nothing has fired yet". This is the
// public form of the same scan every engine runs once per iteration.
func (kb *KnowledgeBase) ApplicableRules(facts FactSet, fired map[int]struct{}) []Rule {
	evaluated := 0
	if fired == nil {
		fired = make(firedSet)
	}
	return applicableRules(kb.Rules, facts, firedSet(fired), &evaluated)
}

// applicableRules scans kb.Rules in order and returns the conflict set: the
// subset of rules whose id has not yet fired, whose premises are all
// satisfied by facts, and whose conclusion is not already in facts. The
// returned slice preserves KB insertion order. evaluated is incremented
// once per rule examined, matching rules_evaluated in InferenceResult.
func applicableRules(rules []Rule, facts FactSet, fired firedSet, evaluated *int) []Rule {
	conflictSet := make([]Rule, 0, len(rules))
	for _, r := range rules {
		*evaluated++
		if fired.has(r.ID) {
			continue
		}
		if !r.IsSatisfiedBy(facts) {
			continue
		}
		if facts.Contains(r.Conclusion) {
			continue
		}
		conflictSet = append(conflictSet, r)
	}
	return conflictSet
}
