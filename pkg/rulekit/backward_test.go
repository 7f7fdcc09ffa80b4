package rulekit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackwardChaining_SimpleProof(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "1"))
	r2 := MustRule(2, []Fact{MustFact("b", "1")}, MustFact("c", "1"))

	kb := NewKnowledgeBase([]Rule{r1, r2}, NewFactSet(MustFact("a", "1")))
	bc := NewBackwardChaining(kb)

	result, err := bc.Run(FactGoal(MustFact("c", "1")))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, []int{1, 2}, ruleIDs(result.FiredRules))
}

func TestBackwardChaining_GoalAlreadyInFacts(t *testing.T) {
	kb := NewKnowledgeBase(nil, NewFactSet(MustFact("a", "1")))
	bc := NewBackwardChaining(kb)

	result, err := bc.Run(FactGoal(MustFact("a", "1")))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.FiredRules)
}

// TestBackwardChaining_CycleGuard checks that R1 and R2 forming a two-rule
// cycle can never establish an unrelated goal.
func TestBackwardChaining_CycleGuard(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "1"))
	r2 := MustRule(2, []Fact{MustFact("b", "1")}, MustFact("a", "1"))

	kb := NewKnowledgeBase([]Rule{r1, r2}, NewFactSet())
	bc := NewBackwardChaining(kb)

	result, err := bc.Run(FactGoal(MustFact("c", "1")))
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Empty(t, result.FiredRules)
}

func TestBackwardChaining_BacktracksOverFailedRule(t *testing.T) {
	// R1 offers a path that dead-ends; R2 offers a working path to the same
	// goal. First prefers R1 (conflict-set order), so proving must
	// backtrack off R1's failure and retry with R2.
	r1 := MustRule(1, []Fact{MustFact("x", "dead-end")}, MustFact("goal", "1"))
	r2 := MustRule(2, []Fact{MustFact("a", "1")}, MustFact("goal", "1"))

	kb := NewKnowledgeBase([]Rule{r1, r2}, NewFactSet(MustFact("a", "1")))
	bc := NewBackwardChaining(kb)

	result, err := bc.Run(FactGoal(MustFact("goal", "1")))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, []int{2}, ruleIDs(result.FiredRules))
}

func TestBackwardChaining_RequiresGoal(t *testing.T) {
	kb := NewKnowledgeBase(nil, NewFactSet())
	bc := NewBackwardChaining(kb)

	_, err := bc.Run(NoGoal())
	require.ErrorAs(t, err, &GoalRequiredError{})
}

func TestBackwardChaining_RejectsAttributeOnlyGoal(t *testing.T) {
	kb := NewKnowledgeBase(nil, NewFactSet())
	bc := NewBackwardChaining(kb)

	_, err := bc.Run(AttributeGoal("a"))
	require.ErrorAs(t, err, &GoalUnsupportedError{})
}

func TestBackwardChaining_UnreachableGoalFails(t *testing.T) {
	r1 := MustRule(1, []Fact{MustFact("a", "1")}, MustFact("b", "1"))
	kb := NewKnowledgeBase([]Rule{r1}, NewFactSet())
	bc := NewBackwardChaining(kb)

	result, err := bc.Run(FactGoal(MustFact("z", "9")))
	require.NoError(t, err)
	require.False(t, result.Success)
}
