// internal/rules/ordering.go
package rules

import (
	"fmt"

	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Partially ordered priorities.
 *
 * A Scale is a named enumeration of priority values declared highest-first;
 * comparison within one scale is a total ordinal order. Across scales,
 * priorities compare only through declared scale-below-scale facts.
 * Undeclared pairs are incomparable, which is a valid steady state and the
 * reason call selection reduces to a maximal set rather than a single
 * maximum.
 *
 * AddBelow folds in the chains known at declaration time, matching the
 * original system's behavior: declare orderings bottom-up if transitive
 * reach matters.
 */

// Scale is a named family of priority values, highest priority first.
type Scale struct {
	name   string
	values []string
}

// NewScale declares a scale. Values are ordered highest-first.
func NewScale(name string, highestFirst ...string) *Scale {
	return &Scale{name: name, values: highestFirst}
}

// P returns the named priority on this scale. Unknown names panic: scales
// are wired in static convention tables, so a miss is a typo caught by the
// table's tests, never runtime input.
func (s *Scale) P(name string) Priority {
	for i, v := range s.values {
		if v == name {
			return Priority{scale: s, ordinal: i}
		}
	}
	panic(fmt.Sprintf("scale %s has no value %q", s.name, name))
}

// Priority is one value on a scale. The zero value means "no priority" and
// is how rule evaluation reports an inapplicable rule.
type Priority struct {
	scale   *Scale
	ordinal int
}

// IsZero reports whether the priority is unset.
func (p Priority) IsZero() bool { return p.scale == nil }

func (p Priority) String() string {
	if p.scale == nil {
		return "none"
	}
	return p.scale.name + "." + p.scale.values[p.ordinal]
}

// identityPriority builds the fallback priority for a rule declared without
// one: a fresh single-value scale whose identity is the rule. It orders
// against nothing except by declared fact, but guarantees every rule has a
// usable ordering key for situational self-exclusion.
func identityPriority(ruleName string) Priority {
	return Priority{scale: NewScale(ruleName, ruleName)}
}

// Ordering holds the declared cross-scale facts.
type Ordering struct {
	below map[*Scale]map[*Scale]bool
}

// NewOrdering creates an empty ordering.
func NewOrdering() *Ordering {
	return &Ordering{below: make(map[*Scale]map[*Scale]bool)}
}

// AddBelow declares that every value of lesser ranks below every value of
// greater, and below everything greater is already known to rank below.
func (o *Ordering) AddBelow(lesser, greater *Scale) {
	above := map[*Scale]bool{greater: true}
	for s := range o.below[greater] {
		above[s] = true
	}
	if o.below[lesser] == nil {
		o.below[lesser] = make(map[*Scale]bool)
	}
	for s := range above {
		o.below[lesser][s] = true
	}
}

// LessThan reports whether a ranks strictly below b. Scales are declared
// highest-first, so within a scale a larger ordinal is a lower priority.
func (o *Ordering) LessThan(a, b Priority) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	if a.scale == b.scale {
		return a.ordinal > b.ordinal
	}
	return o.below[a.scale][b.scale]
}

// CallPriority pairs a candidate call with its resolved priority.
type CallPriority struct {
	Call     types.Call
	Priority Priority
}

// PossibleCalls accumulates candidate calls and reduces them to the subset
// whose priorities no other candidate strictly dominates.
type PossibleCalls struct {
	ordering *Ordering
	pairs    []CallPriority
}

// NewPossibleCalls creates an empty candidate set under the given ordering.
func NewPossibleCalls(o *Ordering) *PossibleCalls {
	return &PossibleCalls{ordering: o}
}

// Add records a candidate call.
func (p *PossibleCalls) Add(call types.Call, priority Priority) {
	p.pairs = append(p.pairs, CallPriority{Call: call, Priority: priority})
}

// All returns the accumulated candidates in insertion order.
func (p *PossibleCalls) All() []CallPriority {
	return append([]CallPriority(nil), p.pairs...)
}

// Maximal returns the candidates with no other candidate strictly above
// them. A newcomer dominated by any frontier member is discarded; otherwise
// it joins the frontier and evicts members now strictly below it. Several
// incomparable priorities may survive together.
func (p *PossibleCalls) Maximal() []CallPriority {
	var frontier []CallPriority
	for _, cand := range p.pairs {
		dominated := false
		for _, kept := range frontier {
			if p.ordering.LessThan(cand.Priority, kept.Priority) {
				dominated = true
				break
			}
		}
		if dominated {
			continue
		}
		next := frontier[:0:0]
		for _, kept := range frontier {
			if !p.ordering.LessThan(kept.Priority, cand.Priority) {
				next = append(next, kept)
			}
		}
		frontier = append(next, cand)
	}
	return frontier
}
