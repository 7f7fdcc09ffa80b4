package rulekit

import (
	"strconv"
	"strings"
)

// CentroidIDBase is the first ID in the range reserved for synthetic
// centroid rules produced by RuleClusterer, conventionally
// 1_000_000 + cluster_index. Data-derived rules are expected to use IDs
// below this range; the clusterer never checks for collisions against the
// input rule set, it only guarantees its own centroids don't collide with
// each other.
const CentroidIDBase = 1_000_000

// Rule is an immutable (id, premises, conclusion) record. Premise order is
// preserved for rendering but carries no semantic weight: IsSatisfiedBy
// treats premises as a set.
type Rule struct {
	ID         int
	Premises   []Fact
	Conclusion Fact
}

// NewRule creates a Rule, failing with InvalidRuleError if id is negative
// or premises is empty. The premise slice is copied so the returned Rule is
// independent of the caller's backing array.
func NewRule(id int, premises []Fact, conclusion Fact) (Rule, error) {
	if id < 0 {
		return Rule{}, InvalidRuleError{Reason: "id must be non-negative"}
	}
	if len(premises) == 0 {
		return Rule{}, InvalidRuleError{Reason: "premises must not be empty"}
	}
	cp := make([]Fact, len(premises))
	copy(cp, premises)
	return Rule{ID: id, Premises: cp, Conclusion: conclusion}, nil
}

// MustRule is NewRule for call sites that can prove the arguments are
// valid (tests, centroid construction).
func MustRule(id int, premises []Fact, conclusion Fact) Rule {
	r, err := NewRule(id, premises, conclusion)
	if err != nil {
		panic(err)
	}
	return r
}

// Specificity is the number of premises in the rule, used by the
// Specificity strategy to rank candidates in a conflict set.
func (r Rule) Specificity() int {
	return len(r.Premises)
}

// IsSatisfiedBy reports whether every premise of r is present in facts.
// This is the hot predicate evaluated once per rule per iteration; lookup
// against a FactSet is O(1) expected case, so the whole check is
// O(|premises|) expected case as required.
func (r Rule) IsSatisfiedBy(facts FactSet) bool {
	return facts.ContainsAll(r.Premises)
}

// IsCentroid reports whether r was synthesized by RuleClusterer, i.e. its
// ID falls in the reserved high range.
func (r Rule) IsCentroid() bool {
	return r.ID >= CentroidIDBase
}

// String renders the rule as "Rule(<id>): IF a=v AND ... THEN c=v", the
// format internal/store writes one-per-line to rules.txt.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString("Rule(")
	b.WriteString(strconv.Itoa(r.ID))
	b.WriteString("): IF ")
	for i, p := range r.Premises {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(" THEN ")
	b.WriteString(r.Conclusion.String())
	return b.String()
}
