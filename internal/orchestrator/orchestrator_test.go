package orchestrator

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/ruleforge/internal/dataio"
	"github.com/gitrdm/ruleforge/internal/store"
	"github.com/gitrdm/ruleforge/pkg/rulekit"
)

var errGeneration = errors.New("rule generation failed")

type fakeDataset struct{}

func (fakeDataset) Columns() []string      { return []string{"a", "b"} }
func (fakeDataset) DecisionColumn() string { return "b" }
func (fakeDataset) Rows() [][]string       { return [][]string{{"1", "2"}} }

type fakeRuleSource struct {
	rules []rulekit.Rule
	err   error
}

func (f fakeRuleSource) GenerateRules(d dataio.Dataset) ([]rulekit.Rule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules, nil
}

func sampleExperiment(dataset string) Experiment {
	r1 := rulekit.MustRule(1, []rulekit.Fact{rulekit.MustFact("a", "1")}, rulekit.MustFact("b", "2"))
	r2 := rulekit.MustRule(2, []rulekit.Fact{rulekit.MustFact("b", "2")}, rulekit.MustFact("c", "3"))
	cfg := rulekit.DefaultExperimentConfig()
	return Experiment{
		Dataset: dataset,
		Config:  cfg,
		Rules:   []rulekit.Rule{r1, r2},
		Facts:   rulekit.NewFactSet(rulekit.MustFact("a", "1")),
	}
}

func TestRun_Forward(t *testing.T) {
	result, err := Run(sampleExperiment("iris"))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.FiredRules, 2)
}

func TestRun_Greedy(t *testing.T) {
	exp := sampleExperiment("iris")
	exp.Config.InferenceMethod = rulekit.MethodGreedy
	result, err := Run(exp)
	require.NoError(t, err)
	require.Len(t, result.FiredRules, 2)
}

func TestRun_Backward(t *testing.T) {
	exp := sampleExperiment("iris")
	exp.Config.InferenceMethod = rulekit.MethodBackward
	exp.Config.GoalAttribute = "c"
	exp.Config.GoalValue = "3"
	result, err := Run(exp)
	require.NoError(t, err)
	require.True(t, result.Success)
}

func TestRun_Clustered(t *testing.T) {
	exp := sampleExperiment("iris")
	exp.Config.ClusteringEnabled = true
	exp.Config.NClusters = 2
	exp.Config.ClusterMethod = rulekit.ClusterAgglomerative
	exp.Config.CentroidMethod = rulekit.CentroidSpecialized

	result, err := Run(exp)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Positive(t, result.CentroidEvaluations)
}

func TestRun_GeneratesRulesFromSourceWhenRulesNil(t *testing.T) {
	r1 := rulekit.MustRule(1, []rulekit.Fact{rulekit.MustFact("a", "1")}, rulekit.MustFact("b", "2"))
	exp := Experiment{
		Dataset: "iris",
		Config:  rulekit.DefaultExperimentConfig(),
		Facts:   rulekit.NewFactSet(rulekit.MustFact("a", "1")),
		RawData: fakeDataset{},
		Source:  fakeRuleSource{rules: []rulekit.Rule{r1}},
	}

	result, err := Run(exp)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.FiredRules, 1)
}

func TestRun_SourceWithoutRawDataIsError(t *testing.T) {
	exp := Experiment{
		Dataset: "iris",
		Config:  rulekit.DefaultExperimentConfig(),
		Facts:   rulekit.NewFactSet(rulekit.MustFact("a", "1")),
		Source:  fakeRuleSource{},
	}

	_, err := Run(exp)
	require.Error(t, err)
}

func TestRun_SourceErrorPropagates(t *testing.T) {
	exp := Experiment{
		Dataset: "iris",
		Config:  rulekit.DefaultExperimentConfig(),
		Facts:   rulekit.NewFactSet(rulekit.MustFact("a", "1")),
		RawData: fakeDataset{},
		Source:  fakeRuleSource{err: errGeneration},
	}

	_, err := Run(exp)
	require.Error(t, err)
}

func TestRun_InvalidConfigRejected(t *testing.T) {
	exp := sampleExperiment("iris")
	exp.Config.Seed = -1
	_, err := Run(exp)
	require.ErrorAs(t, err, &rulekit.InvalidConfigError{})
}

func TestRunner_RunBatch_WritesArtifactsPerExperiment(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{Workers: 2, Writer: store.NewWriter(dir)}

	results := r.RunBatch([]Experiment{sampleExperiment("iris"), sampleExperiment("wine")})
	require.Len(t, results, 2)

	for _, br := range results {
		require.NoError(t, br.Err)
		require.True(t, br.Result.Success)
		require.FileExists(t, filepath.Join(br.RunDir, "metadata.json"))
	}
}

func TestRunner_RunBatch_OneFailureDoesNotStopOthers(t *testing.T) {
	good := sampleExperiment("iris")
	bad := sampleExperiment("broken")
	bad.Config.Seed = -1

	r := &Runner{Workers: 2}
	results := r.RunBatch([]Experiment{good, bad})

	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
}
