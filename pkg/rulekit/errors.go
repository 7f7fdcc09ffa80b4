package rulekit

import "fmt"

// EmptyFieldError is returned by NewFact when either the attribute or the
// value is empty.
type EmptyFieldError struct {
	Field string
}

func (e EmptyFieldError) Error() string {
	return fmt.Sprintf("rulekit: empty field: %s", e.Field)
}

// InvalidRuleError is returned by NewRule when the id is negative or the
// premise list is empty.
type InvalidRuleError struct {
	Reason string
}

func (e InvalidRuleError) Error() string {
	return fmt.Sprintf("rulekit: invalid rule: %s", e.Reason)
}

// EmptyConflictSetError is returned by a Strategy when asked to select from
// an empty conflict set. Callers must guard against this; it signals a bug
// at the call site, not a runtime condition an engine expects to hit.
type EmptyConflictSetError struct{}

func (e EmptyConflictSetError) Error() string {
	return "rulekit: select called on empty conflict set"
}

// GoalRequiredError is returned by BackwardChaining.Run when invoked without
// a goal.
type GoalRequiredError struct{}

func (e GoalRequiredError) Error() string {
	return "rulekit: backward chaining requires a goal"
}

// GoalUnsupportedError is returned by BackwardChaining.Run when the supplied
// goal is an attribute name rather than a concrete fact.
type GoalUnsupportedError struct {
	Attribute string
}

func (e GoalUnsupportedError) Error() string {
	return fmt.Sprintf("rulekit: backward chaining cannot prove attribute-only goal %q, a concrete fact is required", e.Attribute)
}

// InvalidConfigError is returned by ExperimentConfig.Validate.
type InvalidConfigError struct {
	Reason string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("rulekit: invalid config: %s", e.Reason)
}

// UnknownClusterMethodError is returned by RuleClusterer when asked to
// dispatch on an unrecognized clustering backend tag.
type UnknownClusterMethodError struct {
	Method string
}

func (e UnknownClusterMethodError) Error() string {
	return fmt.Sprintf("rulekit: unknown cluster method %q", e.Method)
}

// UnknownCentroidMethodError is returned by RuleClusterer when asked to
// dispatch on an unrecognized centroid-construction policy tag.
type UnknownCentroidMethodError struct {
	Method string
}

func (e UnknownCentroidMethodError) Error() string {
	return fmt.Sprintf("rulekit: unknown centroid method %q", e.Method)
}

// EmptyClusterError signals the internal invariant violation of a cluster
// with zero rules reaching centroid construction. It should never surface
// on valid inputs; RuleClusterer never produces an empty cluster.
type EmptyClusterError struct {
	ClusterID int
}

func (e EmptyClusterError) Error() string {
	return fmt.Sprintf("rulekit: cluster %d has no rules", e.ClusterID)
}
