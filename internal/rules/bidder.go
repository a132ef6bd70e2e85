// internal/rules/bidder.go
package rules

import (
	"github.com/kibitz-bridge/kibitz/internal/auction"
	"github.com/kibitz-bridge/kibitz/internal/solver"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Interpreter and Bidder.
 *
 * The Interpreter replays a completed auction, building a fully annotated
 * History: each call is attributed to its authoritative rule, tagged with
 * the rule's annotations, and bound to the conjunction of the rule's
 * constraints and the situational expression that disambiguates which of
 * the rule's meanings the caller could have intended. Calls no rule knows
 * contribute no knowledge.
 *
 * The Bidder runs the pipeline forward: interpret the auction so far, rank
 * every applicable legal call for the concrete hand, reduce to the
 * maximal-priority frontier, and drop rules requiring planning. Finding
 * nothing is a normal outcome reported as ok=false, not an error; the rule
 * set simply has no opinion. Ties among incomparable priorities resolve to
 * the first candidate in legal-call enumeration order, which is stable
 * across runs.
 */

// Interpreter attributes meaning to completed auctions.
type Interpreter struct {
	System       *System
	SolverBudget int
}

// History replays the auction call by call and returns the annotated
// final state.
func (in Interpreter) History(auct auction.Auction) (*History, error) {
	h := NewHistory(in.SolverBudget)
	for _, prefix := range auct.AscendingPrefixes() {
		selector := NewRuleSelector(in.System, h)
		call, _ := prefix.LastCall()

		rule, err := selector.RuleFor(call)
		if err != nil {
			return nil, err
		}
		expr := solver.True
		var annotations []Annotation
		if rule != nil {
			annotations = rule.AnnotationsFor(call)
			constraint, err := rule.ConstraintExprFor(h, call)
			if err != nil {
				return nil, err
			}
			situational, err := selector.CompileConstraintsFor(call)
			if err != nil {
				return nil, err
			}
			expr = solver.And(constraint, situational)
		}
		h = h.Extend(call, annotations, expr)
	}
	return h, nil
}

// Bidder chooses the next call for a concrete hand.
type Bidder struct {
	System       *System
	SolverBudget int
}

// FindCall returns the best call for the hand given the auction so far.
// ok is false when no rule applies, a caller-visible outcome rather than a fault.
func (b Bidder) FindCall(hand types.Hand, auct auction.Auction) (call types.Call, ok bool, err error) {
	interpreter := Interpreter{System: b.System, SolverBudget: b.SolverBudget}
	h, err := interpreter.History(auct)
	if err != nil {
		return types.Call{}, false, err
	}
	selector := NewRuleSelector(b.System, h)
	possible, err := selector.PossibleCallsFor(hand)
	if err != nil {
		return types.Call{}, false, err
	}
	for _, cand := range possible.Maximal() {
		rule, err := selector.RuleFor(cand.Call)
		if err != nil {
			return types.Call{}, false, err
		}
		if rule.RequiresPlanning() {
			continue
		}
		return cand.Call, true, nil
	}
	return types.Call{}, false, nil
}
