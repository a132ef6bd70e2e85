// internal/rules/constraints.go
package rules

import (
	"github.com/kibitz-bridge/kibitz/internal/solver"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

// Constraint produces a solver expression for a candidate call in a given
// history. Most constraints are Static wrappers around a fixed expression;
// the interesting ones read the history, like MinimumCombinedLength, which
// discounts whatever length partner has already promised.
type Constraint interface {
	Expr(h *History, call types.Call) (solver.Expr, error)
}

// Static wraps a fixed solver expression as a Constraint.
func Static(e solver.Expr) Constraint { return static{e: e} }

type static struct{ e solver.Expr }

func (s static) Expr(*History, types.Call) (solver.Expr, error) { return s.e, nil }

// NoConstraints is the vacuous constraint; rules that exist purely for
// their preconditions and annotations still must declare it explicitly.
var NoConstraints = Static(solver.True)

// MinLength promises at least n cards in the bid suit.
func MinLength(n int) Constraint { return minLength{n: n} }

type minLength struct{ n int }

func (m minLength) Expr(_ *History, call types.Call) (solver.Expr, error) {
	return solver.LengthOf(call.Strain).GE(solver.N(m.n)), nil
}

// MinimumCombinedLength promises the partnership n cards in the bid suit:
// the bidder covers whatever partner's promised minimum leaves open.
func MinimumCombinedLength(n int) Constraint { return minCombined{n: n} }

type minCombined struct{ n int }

func (m minCombined) Expr(h *History, call types.Call) (solver.Expr, error) {
	promised, err := h.MinLengthFor(types.Partner, call.Strain)
	if err != nil {
		return nil, err
	}
	implied := m.n - promised
	if implied < 0 {
		implied = 0
	}
	return solver.LengthOf(call.Strain).GE(solver.N(implied)), nil
}

// exprsFrom collects the expressions of a constraint list for a call.
func exprsFrom(constraints []Constraint, h *History, call types.Call) ([]solver.Expr, error) {
	if len(constraints) == 0 {
		return []solver.Expr{solver.True}, nil
	}
	out := make([]solver.Expr, 0, len(constraints))
	for _, c := range constraints {
		e, err := c.Expr(h, call)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
