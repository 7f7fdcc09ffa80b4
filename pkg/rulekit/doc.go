// Package rulekit implements a propositional, attribute-value rule engine:
// forward chaining with pluggable conflict-resolution strategies and a
// greedy variant, backward chaining with backtracking and cycle
// detection, and a Jaccard-clustering-accelerated forward chaining
// variant (Algorithm 2) that prefilters the rule base by argmax centroid
// match before scanning for applicable rules.
//
// Facts are immutable (attribute, value) pairs; rules are immutable
// (id, premises, conclusion) triples. A KnowledgeBase pairs a read-only
// rule list with a fact set; every engine takes its own working copy of
// the fact set at Run time and never mutates the KnowledgeBase it was
// built from, so independent engines may safely share one KnowledgeBase
// across goroutines.
package rulekit
