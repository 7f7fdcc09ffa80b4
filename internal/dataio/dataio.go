// Package dataio declares the collaborator interfaces that sit upstream of
// rulekit: loading a dataset, discretizing and imputing it, and turning it
// into an initial rule list. None of these are implemented here — CSV
// loading, binning policy, and rule generation are explicitly out of scope;
// internal/orchestrator accepts any implementation that satisfies these
// interfaces, or accepts rules and facts directly when the caller has no
// need for them.
package dataio

import "github.com/gitrdm/ruleforge/pkg/rulekit"

// Dataset is a validated tabular dataset with a nominated decision column.
// Out of scope: encoding detection, separator sniffing.
type Dataset interface {
	Columns() []string
	DecisionColumn() string
	Rows() [][]string
}

// Discretizer turns continuous columns of a Dataset into categorical ones.
// Out of scope: equal-width/equal-frequency/k-means binning.
type Discretizer interface {
	Discretize(d Dataset) (Dataset, error)
}

// Imputer fills missing values in a Dataset. Out of scope: mean/median/mode
// imputation policies.
type Imputer interface {
	Impute(d Dataset) (Dataset, error)
}

// RuleSource produces an initial rule list from a fully categorical,
// NaN-free Dataset. Out of scope: naive row-to-rule conversion,
// decision-tree path extraction, random forest rule mining.
type RuleSource interface {
	GenerateRules(d Dataset) ([]rulekit.Rule, error)
}
