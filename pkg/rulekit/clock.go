package rulekit

// LogicalClock maps each fact to the iteration at which it entered the fact
// set. Initial facts are stamped 0; a fact produced by firing during
// iteration k is stamped k. Only the Recency strategy reads this map —
// engines only allocate one when Recency is in play, so other runs pay
// nothing for it.
type LogicalClock map[Fact]int

// newLogicalClock stamps every fact in initial with clock 0.
func newLogicalClock(initial FactSet) LogicalClock {
	clock := make(LogicalClock, len(initial))
	for f := range initial {
		clock[f] = 0
	}
	return clock
}

// maxClock returns the greatest clock value among a rule's premises. It is
// the quantity the Recency strategy ranks candidates by.
func (c LogicalClock) maxClock(premises []Fact) int {
	max := c[premises[0]]
	for _, p := range premises[1:] {
		if v := c[p]; v > max {
			max = v
		}
	}
	return max
}
