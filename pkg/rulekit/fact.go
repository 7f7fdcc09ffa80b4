package rulekit

import "fmt"

// Fact is an immutable (attribute, value) pair. Two facts with equal fields
// are interchangeable: Fact has no identity beyond its content, which makes
// it safe to use as a map key and as a set element.
type Fact struct {
	Attribute string
	Value     string
}

// NewFact creates a Fact, failing with EmptyFieldError if either the
// attribute or the value is empty.
func NewFact(attribute, value string) (Fact, error) {
	if attribute == "" {
		return Fact{}, EmptyFieldError{Field: "attribute"}
	}
	if value == "" {
		return Fact{}, EmptyFieldError{Field: "value"}
	}
	return Fact{Attribute: attribute, Value: value}, nil
}

// MustFact is NewFact for call sites that can prove the fields are
// non-empty (table-driven tests, generated centroid facts). It panics on
// EmptyFieldError.
func MustFact(attribute, value string) Fact {
	f, err := NewFact(attribute, value)
	if err != nil {
		panic(err)
	}
	return f
}

// String renders the fact as "attribute=value", the form used when
// rendering rule premises and conclusions for tracing.
func (f Fact) String() string {
	return fmt.Sprintf("%s=%s", f.Attribute, f.Value)
}

// FactSet is a set of facts, used for the current working fact set of a
// KnowledgeBase and for premise/conclusion membership tests. Facts are
// comparable structs, so a plain map works as the hash set: no custom
// hashing is needed beyond what Go gives struct keys for free.
type FactSet map[Fact]struct{}

// NewFactSet builds a FactSet from the given facts.
func NewFactSet(facts ...Fact) FactSet {
	s := make(FactSet, len(facts))
	for _, f := range facts {
		s[f] = struct{}{}
	}
	return s
}

// Clone returns an independent copy of the set.
func (s FactSet) Clone() FactSet {
	out := make(FactSet, len(s))
	for f := range s {
		out[f] = struct{}{}
	}
	return out
}

// Contains reports whether f is a member of the set.
func (s FactSet) Contains(f Fact) bool {
	_, ok := s[f]
	return ok
}

// Add inserts f into the set.
func (s FactSet) Add(f Fact) {
	s[f] = struct{}{}
}

// ContainsAll reports whether every fact in facts is a member of the set.
func (s FactSet) ContainsAll(facts []Fact) bool {
	for _, f := range facts {
		if !s.Contains(f) {
			return false
		}
	}
	return true
}

// ContainsAttribute reports whether any fact in the set has the given
// attribute, used for attribute-name goal matching in forward chaining.
func (s FactSet) ContainsAttribute(attribute string) bool {
	for f := range s {
		if f.Attribute == attribute {
			return true
		}
	}
	return false
}
