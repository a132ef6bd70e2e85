// internal/rules/evaluate.go
package rules

import (
	"fmt"

	"github.com/kibitz-bridge/kibitz/internal/solver"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Compiled-rule evaluation.
 *
 * A rule's meaning for a call is a sequence of (priority, expression)
 * pairs: per-call conditional priorities first, then rule-level ones, then
 * the resolved default with no extra condition. Order is semantics: the
 * first conditional whose condition is satisfiable for the hand wins, and
 * the default's vacuous condition terminates the search. Callers never
 * union the pairs.
 */

// Name returns the rule's name.
func (r *CompiledRule) Name() string { return r.name }

// Category returns the rule's selection category.
func (r *CompiledRule) Category() Category { return r.category }

// RequiresPlanning reports whether the rule needs multi-step lookahead and
// is therefore excluded from direct selection.
func (r *CompiledRule) RequiresPlanning() bool { return r.requiresPlanning }

// KnownCalls returns the calls the rule can produce, ascending by rank.
func (r *CompiledRule) KnownCalls() []types.Call {
	return append([]types.Call(nil), r.knownCalls...)
}

// DefaultPriority returns the rule's resolved fallback priority.
func (r *CompiledRule) DefaultPriority() Priority { return r.defaultPriority }

// AnnotationsFor returns the rule's annotations for a call, with any
// per-call additions appended.
func (r *CompiledRule) AnnotationsFor(call types.Call) []Annotation {
	extra := r.annotationsPerCall[call.String()]
	if len(extra) == 0 {
		return append([]Annotation(nil), r.annotations...)
	}
	out := append([]Annotation(nil), r.annotations...)
	for _, a := range extra {
		seen := false
		for _, have := range out {
			if have == a {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, a)
		}
	}
	return out
}

func (r *CompiledRule) knowsCall(call types.Call) bool {
	for _, c := range r.knownCalls {
		if c == call {
			return true
		}
	}
	return false
}

// fitsPreconditions evaluates the rule's preconditions in order; all must
// hold. A precondition failure aborts with the rule, precondition, and call
// attached; asymmetric convention bugs are miserable to find without them.
func (r *CompiledRule) fitsPreconditions(h *History, call types.Call) (bool, error) {
	for _, p := range r.preconditions {
		fits, err := p.Fits(h, call)
		if err != nil {
			return false, fmt.Errorf("rule %s: precondition %s for %s: %w", r.name, p.Name(), call, err)
		}
		if !fits {
			return false, nil
		}
	}
	return true, nil
}

// CallsOver returns the legal calls this rule claims in the given history.
func (r *CompiledRule) CallsOver(h *History, legal []types.Call) ([]types.Call, error) {
	var out []types.Call
	for _, call := range legal {
		if !r.knowsCall(call) {
			continue
		}
		fits, err := r.fitsPreconditions(h, call)
		if err != nil {
			return nil, err
		}
		if fits {
			out = append(out, call)
		}
	}
	return out, nil
}

// resolvedPriority returns the priority a call falls back to when no
// conditional fires: the constraints-map override, then the per-call
// priority map, then the rule default. Always non-zero; compilation
// guarantees a default.
func (r *CompiledRule) resolvedPriority(call types.Call) Priority {
	if cc, ok := r.constraints[call.String()]; ok && !cc.Priority.IsZero() {
		return cc.Priority
	}
	if p, ok := r.prioritiesPerCall[call.String()]; ok {
		return p
	}
	return r.defaultPriority
}

// ConstraintExprFor builds the conjunction of the call's per-call
// constraint and every shared constraint.
func (r *CompiledRule) ConstraintExprFor(h *History, call types.Call) (solver.Expr, error) {
	exprs, err := r.constraintExprsFor(h, call)
	if err != nil {
		return nil, err
	}
	return solver.And(exprs...), nil
}

func (r *CompiledRule) constraintExprsFor(h *History, call types.Call) ([]solver.Expr, error) {
	var exprs []solver.Expr
	if cc, ok := r.constraints[call.String()]; ok && cc.Constraint != nil {
		e, err := cc.Constraint.Expr(h, call)
		if err != nil {
			return nil, fmt.Errorf("rule %s: constraint for %s: %w", r.name, call, err)
		}
		exprs = append(exprs, e)
	}
	shared, err := exprsFrom(r.sharedConstraints, h, call)
	if err != nil {
		return nil, fmt.Errorf("rule %s: constraint for %s: %w", r.name, call, err)
	}
	return append(exprs, shared...), nil
}

// prioCond is one (priority, condition) alternative for a call, condition
// only; the call's base constraints are not folded in.
type prioCond struct {
	priority  Priority
	condition solver.Expr
}

// priorityConditions returns the call's alternatives in selection order:
// per-call conditionals, rule-level conditionals, then the fallback
// priority under the vacuous condition.
func (r *CompiledRule) priorityConditions(h *History, call types.Call) ([]prioCond, error) {
	var out []prioCond
	appendConds := func(conds []ConditionalPriority) error {
		for _, cp := range conds {
			e, err := cp.Condition.Expr(h, call)
			if err != nil {
				return fmt.Errorf("rule %s: conditional priority for %s: %w", r.name, call, err)
			}
			out = append(out, prioCond{priority: cp.Priority, condition: e})
		}
		return nil
	}
	if err := appendConds(r.condsPerCall[call.String()]); err != nil {
		return nil, err
	}
	if err := appendConds(r.conditionals); err != nil {
		return nil, err
	}
	out = append(out, prioCond{priority: r.resolvedPriority(call), condition: solver.True})
	return out, nil
}

// Meaning is one interpretation of a call: the priority it would be chosen
// under and the full expression the hand must satisfy for it.
type Meaning struct {
	Priority Priority
	Expr     solver.Expr
}

// MeaningsOf enumerates the call's meanings in selection order. Each
// meaning's expression is the call's full constraint conjunction plus that
// meaning's condition.
func (r *CompiledRule) MeaningsOf(h *History, call types.Call) ([]Meaning, error) {
	base, err := r.constraintExprsFor(h, call)
	if err != nil {
		return nil, err
	}
	conds, err := r.priorityConditions(h, call)
	if err != nil {
		return nil, err
	}
	meanings := make([]Meaning, 0, len(conds))
	for _, pc := range conds {
		exprs := append(append([]solver.Expr(nil), base...), pc.condition)
		meanings = append(meanings, Meaning{Priority: pc.priority, Expr: solver.And(exprs...)})
	}
	return meanings, nil
}

// PriorityFor resolves the rule's priority for a call against a hand's
// solver context. Zero priority means the rule does not apply: its full
// constraint expression is impossible for the hand. Otherwise the first
// alternative whose condition is possible wins; the vacuous fallback
// guarantees termination.
func (r *CompiledRule) PriorityFor(s *solver.Solver, h *History, call types.Call) (Priority, error) {
	full, err := r.ConstraintExprFor(h, call)
	if err != nil {
		return Priority{}, err
	}
	possible, err := solver.IsPossible(s, full)
	if err != nil {
		return Priority{}, fmt.Errorf("rule %s: %s: %w", r.name, call, err)
	}
	if !possible {
		return Priority{}, nil
	}
	conds, err := r.priorityConditions(h, call)
	if err != nil {
		return Priority{}, err
	}
	for _, pc := range conds {
		ok, err := solver.IsPossible(s, pc.condition)
		if err != nil {
			return Priority{}, fmt.Errorf("rule %s: %s: %w", r.name, call, err)
		}
		if ok {
			return pc.priority, nil
		}
	}
	return Priority{}, nil
}
