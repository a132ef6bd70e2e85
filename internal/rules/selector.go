// internal/rules/selector.go
package rules

import (
	"fmt"
	"sort"

	"github.com/kibitz-bridge/kibitz/internal/auction"
	"github.com/kibitz-bridge/kibitz/internal/solver"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Rule selection and situational meaning.
 *
 * A RuleSelector is scoped to one (system, history) pair: the call-to-rule
 * map and the compiled situational expressions are memoized on the instance
 * and invalidated by constructing a new selector for the next state, never
 * by mutation.
 *
 * Selection: among the rules whose known calls and preconditions admit a
 * call, the strictly highest category wins. Two distinct rules claiming the
 * call at equal category is a configuration defect and fails loudly; the
 * original system silently overwrote, which hid real convention clashes.
 *
 * Situational meaning: a call that could mean several things means, in any
 * actual auction, the best thing the bidder had. For each meaning of the
 * chosen rule the compiled clause is "this meaning's condition AND, for
 * every meaning of every claimable call with a strictly higher priority,
 * NOT(that meaning's condition AND that call's constraints)". The call's
 * interpreted expression is the OR over its own meanings. Candidate calls
 * iterate in rank order so compiled expressions are reproducible.
 */

// RuleSelector maps legal calls to their authoritative rules for one
// history state.
type RuleSelector struct {
	system  *System
	history *History

	callToRule map[types.Call]*CompiledRule
	compiled   map[types.Call]solver.Expr
}

// NewRuleSelector creates a selector for one history state.
func NewRuleSelector(system *System, history *History) *RuleSelector {
	return &RuleSelector{
		system:   system,
		history:  history,
		compiled: make(map[types.Call]solver.Expr),
	}
}

func (s *RuleSelector) callRuleMap() (map[types.Call]*CompiledRule, error) {
	if s.callToRule != nil {
		return s.callToRule, nil
	}
	legal := auction.LegalCalls(s.history.Auction())
	m := make(map[types.Call]*CompiledRule)
	for _, rule := range s.system.Rules {
		calls, err := rule.CallsOver(s.history, legal)
		if err != nil {
			return nil, err
		}
		for _, call := range calls {
			existing := m[call]
			switch {
			case existing == nil || rule.Category() > existing.Category():
				m[call] = rule
			case rule.Category() == existing.Category():
				return nil, fmt.Errorf("call %s: rules %s and %s at %s: %w",
					call, existing.Name(), rule.Name(), rule.Category(), types.ErrAmbiguousRules)
			}
		}
	}
	s.callToRule = m
	return m, nil
}

// RuleFor returns the authoritative rule for a call, or nil when no rule
// claims it.
func (s *RuleSelector) RuleFor(call types.Call) (*CompiledRule, error) {
	m, err := s.callRuleMap()
	if err != nil {
		return nil, err
	}
	return m[call], nil
}

// mappedCalls returns the claimed calls in rank order.
func (s *RuleSelector) mappedCalls() ([]types.Call, error) {
	m, err := s.callRuleMap()
	if err != nil {
		return nil, err
	}
	calls := make([]types.Call, 0, len(m))
	for call := range m {
		calls = append(calls, call)
	}
	sort.Slice(calls, func(i, j int) bool { return calls[i].Rank() < calls[j].Rank() })
	return calls, nil
}

// CompileConstraintsFor builds the situational expression interpreting an
// actual occurrence of the call. Memoized per selector.
func (s *RuleSelector) CompileConstraintsFor(call types.Call) (solver.Expr, error) {
	if e, ok := s.compiled[call]; ok {
		return e, nil
	}
	rule, err := s.RuleFor(call)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, fmt.Errorf("no rule claims call %s", call)
	}
	ownConds, err := rule.priorityConditions(s.history, call)
	if err != nil {
		return nil, err
	}
	others, err := s.mappedCalls()
	if err != nil {
		return nil, err
	}

	situations := make([]solver.Expr, 0, len(ownConds))
	for _, pc := range ownConds {
		clauses := []solver.Expr{pc.condition}
		for _, otherCall := range others {
			otherRule, err := s.RuleFor(otherCall)
			if err != nil {
				return nil, err
			}
			otherConds, err := otherRule.priorityConditions(s.history, otherCall)
			if err != nil {
				return nil, err
			}
			for _, opc := range otherConds {
				if !s.system.Ordering.LessThan(pc.priority, opc.priority) {
					continue
				}
				otherExpr, err := otherRule.ConstraintExprFor(s.history, otherCall)
				if err != nil {
					return nil, err
				}
				clauses = append(clauses, solver.Not(solver.And(opc.condition, otherExpr)))
			}
		}
		situations = append(situations, solver.And(clauses...))
	}
	expr := solver.Or(situations...)
	s.compiled[call] = expr
	return expr, nil
}

// PossibleCallsFor enumerates the legal calls with a claiming rule and a
// resolvable priority for the hand, in legal-call enumeration order.
func (s *RuleSelector) PossibleCallsFor(hand types.Hand) (*PossibleCalls, error) {
	possible := NewPossibleCalls(s.system.Ordering)
	handSolver := solver.ForHand(hand, s.history.budget)
	for _, call := range auction.LegalCalls(s.history.Auction()) {
		rule, err := s.RuleFor(call)
		if err != nil {
			return nil, err
		}
		if rule == nil {
			continue
		}
		priority, err := rule.PriorityFor(handSolver, s.history, call)
		if err != nil {
			return nil, err
		}
		if !priority.IsZero() {
			possible.Add(call, priority)
		}
	}
	return possible, nil
}
