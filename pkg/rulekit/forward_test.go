package rulekit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestForwardChaining_TwoStepChain fires a two-step rule chain to quiescence.
func TestForwardChaining_TwoStepChain(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	r2 := MustRule(2, []Fact{MustFact("b", "2")}, MustFact("c", "3"))

	kb := NewKnowledgeBase([]Rule{r1, r2}, NewFactSet(MustFact("a", "1")))
	fc := NewForwardChaining(kb)

	result, err := fc.Run(WithStrategy(NewFirstStrategy()))
	require.NoError(t, err)

	require.Equal(t, []Rule{r1, r2}, result.FiredRules)
	require.Equal(t, []Fact{MustFact("b", "2"), MustFact("c", "3")}, result.NewFacts)
	require.Equal(t, 3, result.Iterations)
	require.True(t, result.Success)
}

// TestForwardChaining_RecencyPrefersNewerFacts checks that the Recency
// strategy prefers the rule enabled by the most recently asserted fact.
func TestForwardChaining_RecencyPrefersNewerFacts(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "1"))
	r2 := MustRule(2, []Fact{MustFact("a", "1")}, MustFact("c", "1"))
	r3 := MustRule(3, []Fact{MustFact("b", "1")}, MustFact("d", "1"))

	kb := NewKnowledgeBase([]Rule{r1, r2, r3}, NewFactSet(MustFact("a", "1")))
	fc := NewForwardChaining(kb)

	result, err := fc.Run(WithStrategy(NewRecencyStrategy()))
	require.NoError(t, err)

	require.Equal(t, []int{1, 3, 2}, ruleIDs(result.FiredRules))
}

// TestForwardChaining_Refractoriness checks that a rule fires at most once
// even though its premises remain satisfied.
func TestForwardChaining_Refractoriness(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	r2 := MustRule(2, []Fact{MustFact("b", "2")}, MustFact("c", "3"))

	kb := NewKnowledgeBase([]Rule{r1, r2}, NewFactSet(MustFact("a", "1")))
	fc := NewForwardChaining(kb)

	result, err := fc.Run()
	require.NoError(t, err)

	seen := make(map[int]int)
	for _, r := range result.FiredRules {
		seen[r.ID]++
	}
	for id, count := range seen {
		require.Equal(t, 1, count, "rule %d fired more than once", id)
	}
	require.Equal(t, 3, result.Iterations)
}

func TestForwardChaining_GoalAlreadySatisfied(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	kb := NewKnowledgeBase([]Rule{r1}, NewFactSet(MustFact("a", "1"), MustFact("b", "2")))
	fc := NewForwardChaining(kb)

	result, err := fc.Run(WithGoal(FactGoal(MustFact("b", "2"))))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.NewFacts)
	require.Equal(t, 0, result.Iterations)
}

func TestForwardChaining_ConcreteFactGoalStopsEarly(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	r2 := MustRule(2, []Fact{MustFact("b", "2")}, MustFact("c", "3"))
	r3 := MustRule(3, []Fact{MustFact("c", "3")}, MustFact("d", "4"))

	kb := NewKnowledgeBase([]Rule{r1, r2, r3}, NewFactSet(MustFact("a", "1")))
	fc := NewForwardChaining(kb)

	result, err := fc.Run(WithGoal(FactGoal(MustFact("c", "3"))))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, []Fact{MustFact("b", "2"), MustFact("c", "3")}, result.NewFacts)
}

func TestForwardChaining_AttributeGoal(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	kb := NewKnowledgeBase([]Rule{r1}, NewFactSet(MustFact("a", "1")))
	fc := NewForwardChaining(kb)

	result, err := fc.Run(WithGoal(AttributeGoal("b")))
	require.NoError(t, err)
	require.True(t, result.Success)
}

func TestForwardChaining_EmptyRuleList(t *testing.T) {
	kb := NewKnowledgeBase(nil, NewFactSet())
	fc := NewForwardChaining(kb)

	result, err := fc.Run()
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.NewFacts)
}

// TestForwardChaining_Determinism: identical inputs produce identical
// fired_rules and new_facts sequences.
func TestForwardChaining_Determinism(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "2"))
	r2 := MustRule(2, []Fact{MustFact("a", "1")}, MustFact("c", "3"))
	r3 := MustRule(3, []Fact{MustFact("a", "1")}, MustFact("d", "4"))

	run := func() *InferenceResult {
		kb := NewKnowledgeBase([]Rule{r1, r2, r3}, NewFactSet(MustFact("a", "1")))
		fc := NewForwardChaining(kb)
		seed := int64(42)
		result, err := fc.Run(WithStrategy(NewRandomStrategy(&seed)))
		require.NoError(t, err)
		return result
	}

	a := run()
	b := run()
	require.Equal(t, ruleIDs(a.FiredRules), ruleIDs(b.FiredRules))
	require.Equal(t, a.NewFacts, b.NewFacts)
}

func ruleIDs(rules []Rule) []int {
	ids := make([]int, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
	}
	return ids
}
