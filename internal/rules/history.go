// internal/rules/history.go
package rules

import (
	"github.com/kibitz-bridge/kibitz/internal/auction"
	"github.com/kibitz-bridge/kibitz/internal/solver"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Incremental bidding knowledge.
 *
 * A History is an immutable, singly-linked chain of states, one per call.
 * Each state carries the call, the annotations the selected rule attached
 * to it, and the call's derived constraint expression. Per-position solver
 * contexts are derived lazily: the root state holds only the hand axioms;
 * each later state inherits the rotated previous position's context and,
 * for the position that just acted, asserts the new call's expression onto
 * a copy. Ancestors are shared by pointer and never mutated, so any number
 * of continuations can branch from one state.
 *
 * Positions are relative to the player about to act: the most recent call
 * was made by RHO, who was Me one state earlier, hence the rotate-back in
 * the recursion.
 *
 * Memoized derived values (solver contexts, minimum lengths, unbid suits)
 * are pure functions of the state; the caches are owned by the instance
 * and die with it. A History is not safe for concurrent use; branches
 * exploring in parallel should interpret their own copies and accept the
 * redundant computation.
 */

// History is one state in the chain. The zero value is not usable; start
// from NewHistory.
type History struct {
	prev *History
	auct auction.Auction

	annotations [][]Annotation
	constraints []solver.Expr

	budget int

	solvers map[types.Position]*solver.Solver
	minLens map[posStrain]int
	unbid   map[types.Strain]bool
}

type posStrain struct {
	pos    types.Position
	strain types.Strain
}

// NewHistory returns the root state: no calls, axioms only. The budget
// bounds every solver query derived from this chain; zero means unlimited.
func NewHistory(budget int) *History {
	return &History{
		budget:  budget,
		solvers: make(map[types.Position]*solver.Solver),
		minLens: make(map[posStrain]int),
		unbid:   make(map[types.Strain]bool),
	}
}

// Extend returns a new state with one more call. The receiver is unchanged.
func (h *History) Extend(call types.Call, annotations []Annotation, constraint solver.Expr) *History {
	anns := make([][]Annotation, 0, len(h.annotations)+1)
	anns = append(anns, h.annotations...)
	anns = append(anns, append([]Annotation(nil), annotations...))

	constraints := make([]solver.Expr, 0, len(h.constraints)+1)
	constraints = append(constraints, h.constraints...)
	constraints = append(constraints, constraint)

	return &History{
		prev:        h,
		auct:        h.auct.Extend(call),
		annotations: anns,
		constraints: constraints,
		budget:      h.budget,
		solvers:     make(map[types.Position]*solver.Solver),
		minLens:     make(map[posStrain]int),
		unbid:       make(map[types.Strain]bool),
	}
}

// Auction returns the call sequence this state has accumulated.
func (h *History) Auction() auction.Auction { return h.auct }

// rotateBack maps a position in this state to the same seat one state
// earlier: one fewer call has been made, so relative seats shift by one.
func rotateBack(pos types.Position) types.Position {
	return types.Position((int(pos) + 3) % 4)
}

// SolverFor returns the solver context accumulating everything the given
// position's own calls imply about their hand. Memoized per state; the
// returned context is shared and must be treated as read-only (query via
// solver.IsPossible/IsEntailed, which restore their scopes).
func (h *History) SolverFor(pos types.Position) (*solver.Solver, error) {
	if s, ok := h.solvers[pos]; ok {
		return s, nil
	}
	if h.prev == nil {
		s := solver.New(solver.Axioms()...)
		s.SetBudget(h.budget)
		h.solvers[pos] = s
		return s, nil
	}
	prevPos := rotateBack(pos)
	s, err := h.prev.SolverFor(prevPos)
	if err != nil {
		return nil, err
	}
	if prevPos == types.Me {
		// This seat just acted: fold the new call's constraint into a copy,
		// leaving the ancestor's context untouched.
		s = s.With(h.constraints[len(h.constraints)-1])
	}
	h.solvers[pos] = s
	return s, nil
}

// projectIndices returns the call indices made by the given relative seat,
// oldest first.
func (h *History) projectIndices(pos types.Position) []int {
	n := h.auct.Len()
	start := n - 1 - int(pos)
	for start >= 4 {
		start -= 4
	}
	if start < 0 {
		return nil
	}
	var idx []int
	for i := start; i < n; i += 4 {
		idx = append(idx, i)
	}
	return idx
}

// Annotations returns every annotation attached anywhere in the history.
func (h *History) Annotations() []Annotation {
	var out []Annotation
	for _, anns := range h.annotations {
		out = append(out, anns...)
	}
	return out
}

// AnnotationsForPosition returns all annotations attached to the given
// seat's calls.
func (h *History) AnnotationsForPosition(pos types.Position) []Annotation {
	var out []Annotation
	for _, i := range h.projectIndices(pos) {
		out = append(out, h.annotations[i]...)
	}
	return out
}

// AnnotationsForLastCall returns the annotations on the seat's most recent
// call, or nil if the seat has not called.
func (h *History) AnnotationsForLastCall(pos types.Position) []Annotation {
	idx := h.projectIndices(pos)
	if len(idx) == 0 {
		return nil
	}
	return h.annotations[idx[len(idx)-1]]
}

// LastCallBy returns the seat's most recent call.
func (h *History) LastCallBy(pos types.Position) (types.Call, bool) {
	idx := h.projectIndices(pos)
	if len(idx) == 0 {
		return types.Call{}, false
	}
	return h.auct.Calls()[idx[len(idx)-1]], true
}

// MinLengthFor returns the minimum suit length entailed (not merely
// possible) for the position, scanning 13 down and memoizing the answer.
func (h *History) MinLengthFor(pos types.Position, strain types.Strain) (int, error) {
	key := posStrain{pos, strain}
	if n, ok := h.minLens[key]; ok {
		return n, nil
	}
	s, err := h.SolverFor(pos)
	if err != nil {
		return 0, err
	}
	length := 0
	for l := 13; l >= 1; l-- {
		entailed, err := solver.IsEntailed(s, solver.LengthOf(strain).GE(solver.N(l)))
		if err != nil {
			return 0, err
		}
		if entailed {
			length = l
			break
		}
	}
	h.minLens[key] = length
	return length, nil
}

// MaxLengthFor returns the maximum suit length still possible for the
// position: the smallest upper bound its context entails.
func (h *History) MaxLengthFor(pos types.Position, strain types.Strain) (int, error) {
	s, err := h.SolverFor(pos)
	if err != nil {
		return 0, err
	}
	for l := 0; l < 13; l++ {
		entailed, err := solver.IsEntailed(s, solver.LengthOf(strain).LE(solver.N(l)))
		if err != nil {
			return 0, err
		}
		if entailed {
			return l, nil
		}
	}
	return 13, nil
}

// PointRangeFor returns the tightest high-card point range entailed for the
// position.
func (h *History) PointRangeFor(pos types.Position) (min, max int, err error) {
	s, err := h.SolverFor(pos)
	if err != nil {
		return 0, 0, err
	}
	max = 37
	for p := 37; p >= 1; p-- {
		entailed, err := solver.IsEntailed(s, solver.Points.GE(solver.N(p)))
		if err != nil {
			return 0, 0, err
		}
		if entailed {
			min = p
			break
		}
	}
	for p := min; p < 37; p++ {
		entailed, err := solver.IsEntailed(s, solver.Points.LE(solver.N(p)))
		if err != nil {
			return 0, 0, err
		}
		if entailed {
			max = p
			break
		}
	}
	return min, max, nil
}

// IsUnbidSuit reports whether every position may still hold fewer than
// three cards of the suit, meaning nobody has shown it yet.
func (h *History) IsUnbidSuit(strain types.Strain) (bool, error) {
	if v, ok := h.unbid[strain]; ok {
		return v, nil
	}
	result := true
	for _, pos := range types.Positions {
		s, err := h.SolverFor(pos)
		if err != nil {
			return false, err
		}
		possible, err := solver.IsPossible(s, solver.LengthOf(strain).LT(solver.N(3)))
		if err != nil {
			return false, err
		}
		if !possible {
			result = false
			break
		}
	}
	h.unbid[strain] = result
	return result, nil
}

// PositionView is a position-centric read surface over a history, the
// shape explanation layers consume.
type PositionView struct {
	history  *History
	position types.Position
}

// View returns the history as seen from one relative seat.
func (h *History) View(pos types.Position) PositionView {
	return PositionView{history: h, position: pos}
}

// Partner is shorthand for View(types.Partner); Me, LHO, and RHO likewise.
func (h *History) Partner() PositionView { return h.View(types.Partner) }
func (h *History) Me() PositionView      { return h.View(types.Me) }
func (h *History) LHO() PositionView     { return h.View(types.LHO) }
func (h *History) RHO() PositionView     { return h.View(types.RHO) }

// Position returns the seat this view projects.
func (v PositionView) Position() types.Position { return v.position }

// Annotations returns every annotation on this seat's calls.
func (v PositionView) Annotations() []Annotation {
	return v.history.AnnotationsForPosition(v.position)
}

// AnnotationsForLastCall returns the annotations on this seat's most
// recent call.
func (v PositionView) AnnotationsForLastCall() []Annotation {
	return v.history.AnnotationsForLastCall(v.position)
}

// LastCall returns this seat's most recent call.
func (v PositionView) LastCall() (types.Call, bool) {
	return v.history.LastCallBy(v.position)
}

// MinLength returns the entailed minimum length in the suit.
func (v PositionView) MinLength(strain types.Strain) (int, error) {
	return v.history.MinLengthFor(v.position, strain)
}

// MaxLength returns the entailed maximum length in the suit.
func (v PositionView) MaxLength(strain types.Strain) (int, error) {
	return v.history.MaxLengthFor(v.position, strain)
}

// PointRange returns the entailed high-card point range.
func (v PositionView) PointRange() (min, max int, err error) {
	return v.history.PointRangeFor(v.position)
}
