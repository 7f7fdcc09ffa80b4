package rulekit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultExperimentConfig_IsValid(t *testing.T) {
	c := DefaultExperimentConfig()
	require.NoError(t, c.Validate())
}

func TestExperimentConfig_Goal(t *testing.T) {
	t.Run("neither set is NoGoal", func(t *testing.T) {
		c := DefaultExperimentConfig()
		g, err := c.Goal()
		require.NoError(t, err)
		require.False(t, g.IsSet())
	})

	t.Run("attribute only", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.GoalAttribute = "color"
		g, err := c.Goal()
		require.NoError(t, err)
		require.True(t, g.IsAttributeOnly())
	})

	t.Run("concrete fact", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.GoalAttribute = "color"
		c.GoalValue = "red"
		g, err := c.Goal()
		require.NoError(t, err)
		f, ok := g.Fact()
		require.True(t, ok)
		require.Equal(t, MustFact("color", "red"), f)
	})
}

func TestExperimentConfig_ResolveStrategy(t *testing.T) {
	c := DefaultExperimentConfig()
	c.Strategy = StrategyRecency
	s, err := c.ResolveStrategy()
	require.NoError(t, err)
	require.Equal(t, "recency", s.Name())
}

func TestExperimentConfig_ResolveStrategy_SeededRandomIsReproducible(t *testing.T) {
	c := DefaultExperimentConfig()
	c.Strategy = StrategyRandom
	c.Seed = 99

	cs := []Rule{
		MustRule(1, []Fact{MustFact("a", "1")}, MustFact("x", "1")),
		MustRule(2, []Fact{MustFact("a", "1")}, MustFact("y", "1")),
	}

	s1, err := c.ResolveStrategy()
	require.NoError(t, err)
	s2, err := c.ResolveStrategy()
	require.NoError(t, err)

	r1, err := s1.Select(cs, StrategyContext{})
	require.NoError(t, err)
	r2, err := s2.Select(cs, StrategyContext{})
	require.NoError(t, err)
	require.Equal(t, r1.ID, r2.ID)
}

func TestExperimentConfig_Validate(t *testing.T) {
	t.Run("negative seed", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.Seed = -1
		require.ErrorAs(t, c.Validate(), &InvalidConfigError{})
	})

	t.Run("bad strategy", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.Strategy = "bogus"
		require.ErrorAs(t, c.Validate(), &InvalidConfigError{})
	})

	t.Run("bad inference method", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.InferenceMethod = "bogus"
		require.ErrorAs(t, c.Validate(), &InvalidConfigError{})
	})

	t.Run("clustering enabled requires positive n_clusters", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.ClusteringEnabled = true
		c.NClusters = 0
		require.ErrorAs(t, c.Validate(), &InvalidConfigError{})
	})

	t.Run("clustering enabled requires valid cluster method", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.ClusteringEnabled = true
		c.NClusters = 2
		c.ClusterMethod = "bogus"
		require.ErrorAs(t, c.Validate(), &InvalidConfigError{})
	})

	t.Run("threshold out of range", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.CentroidThreshold = 1.5
		require.ErrorAs(t, c.Validate(), &InvalidConfigError{})
	})

	t.Run("match threshold out of range", func(t *testing.T) {
		c := DefaultExperimentConfig()
		c.CentroidMatchThreshold = -0.1
		require.ErrorAs(t, c.Validate(), &InvalidConfigError{})
	})
}
