package rulekit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKnowledgeBase_CopiesInputs(t *testing.T) {
	rules := []Rule{MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))}
	facts := NewFactSet(MustFact("a", "1"))

	kb := NewKnowledgeBase(rules, facts)
	rules[0] = MustRule(99, []Fact{MustFact("z", "9")}, MustFact("y", "8"))
	facts.Add(MustFact("c", "3"))

	require.Equal(t, 1, kb.Rules[0].ID, "KnowledgeBase must own an independent copy of the rule slice")
	require.False(t, kb.Facts.Contains(MustFact("c", "3")), "KnowledgeBase must own an independent copy of the fact set")
}

func TestKnowledgeBase_ApplicableRules(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	r2 := MustRule(2, []Fact{MustFact("z", "9")}, MustFact("y", "8"))
	r3 := MustRule(3, []Fact{MustFact("a", "1")}, MustFact("b", "2"))

	kb := NewKnowledgeBase([]Rule{r1, r2, r3}, NewFactSet(MustFact("a", "1")))

	conflictSet := kb.ApplicableRules(kb.Facts, nil)
	// r2's premise is unsatisfied; r3's conclusion duplicates r1's, but
	// conflict-set membership only checks the conclusion against the fact
	// set, not against sibling rules, so both r1 and r3 are candidates.
	require.Equal(t, []int{1, 3}, ruleIDs(conflictSet))
}

func TestKnowledgeBase_ApplicableRulesExcludesFired(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	kb := NewKnowledgeBase([]Rule{r1}, NewFactSet(MustFact("a", "1")))

	fired := map[int]struct{}{1: {}}
	conflictSet := kb.ApplicableRules(kb.Facts, fired)
	require.Empty(t, conflictSet)
}

func TestKnowledgeBase_ApplicableRulesExcludesSatisfiedConclusion(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	kb := NewKnowledgeBase([]Rule{r1}, NewFactSet(MustFact("a", "1"), MustFact("b", "2")))

	conflictSet := kb.ApplicableRules(kb.Facts, nil)
	require.Empty(t, conflictSet)
}
