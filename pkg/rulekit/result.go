package rulekit

import "time"

// TraceStep records one iteration of an inference run for diagnostics. It
// is optional: engines only populate InferenceResult.Trace when the caller
// asks for it (WithTrace), since a full per-iteration trace is not free on
// large rule sets.
type TraceStep struct {
	Iteration    int    `json:"iteration"`
	ConflictSize int    `json:"conflict_size"`
	SelectedRule *int   `json:"selected_rule,omitempty"`
	NewFact      *Fact  `json:"new_fact,omitempty"`
	Note         string `json:"note,omitempty"`
}

// InferenceResult reports the outcome of a single engine run. It is
// produced once and never mutated afterward.
type InferenceResult struct {
	Success bool `json:"success"`

	FinalFacts FactSet `json:"-"`
	NewFacts   []Fact  `json:"new_facts"`
	FiredRules []Rule  `json:"fired_rules"`

	Iterations int           `json:"iterations"`
	Duration   time.Duration `json:"duration"`

	RulesEvaluated int `json:"rules_evaluated"`
	RulesActivated int `json:"rules_activated"`
	FactsCount     int `json:"facts_count"`

	// Populated only by ClusteredForwardChaining.
	ClustersChecked     int `json:"clusters_checked,omitempty"`
	ClustersSkipped     int `json:"clusters_skipped,omitempty"`
	CentroidEvaluations int `json:"centroid_evaluations,omitempty"`

	Trace []TraceStep `json:"trace,omitempty"`
}

// ClusteringSavings is clusters_skipped / (clusters_checked + clusters_skipped),
// the fraction of cluster explorations ClusteredForwardChaining avoided
// relative to an unclustered baseline. Returns 0 when no clusters were
// ever considered.
func (r InferenceResult) ClusteringSavings() float64 {
	total := r.ClustersChecked + r.ClustersSkipped
	if total == 0 {
		return 0
	}
	return float64(r.ClustersSkipped) / float64(total)
}
