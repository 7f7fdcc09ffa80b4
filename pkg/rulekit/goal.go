package rulekit

// Goal is the optional stop condition for forward chaining: absent (run to
// quiescence), a concrete Fact (stop when that exact fact is inferred), or
// a bare attribute name (stop when any fact with that attribute appears).
// BackwardChaining only accepts the concrete-fact form.
type Goal struct {
	fact      *Fact
	attribute string
}

// NoGoal runs to quiescence.
func NoGoal() Goal { return Goal{} }

// FactGoal stops forward chaining, or drives backward chaining, once f is
// in the fact set.
func FactGoal(f Fact) Goal { return Goal{fact: &f} }

// AttributeGoal stops forward chaining once any fact with this attribute is
// inferred. Rejected by BackwardChaining.Run with GoalUnsupportedError.
func AttributeGoal(attribute string) Goal { return Goal{attribute: attribute} }

// IsSet reports whether a goal was provided at all.
func (g Goal) IsSet() bool {
	return g.fact != nil || g.attribute != ""
}

// IsAttributeOnly reports whether the goal names an attribute rather than a
// concrete fact.
func (g Goal) IsAttributeOnly() bool {
	return g.fact == nil && g.attribute != ""
}

// Fact returns the concrete fact goal and true, or the zero Fact and false
// if the goal is unset or attribute-only.
func (g Goal) Fact() (Fact, bool) {
	if g.fact == nil {
		return Fact{}, false
	}
	return *g.fact, true
}

// Attribute returns the attribute-only goal's name and true, or "" and
// false otherwise.
func (g Goal) Attribute() (string, bool) {
	if g.IsAttributeOnly() {
		return g.attribute, true
	}
	return "", false
}

// satisfiedBy reports whether facts satisfies the goal: for no goal, always
// true (quiescence is itself success); for a concrete fact, exact
// membership; for an attribute, membership of any fact with that
// attribute.
func (g Goal) satisfiedBy(facts FactSet) bool {
	if g.fact != nil {
		return facts.Contains(*g.fact)
	}
	if g.attribute != "" {
		return facts.ContainsAttribute(g.attribute)
	}
	return true
}
