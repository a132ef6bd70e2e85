// internal/solver/solver.go
package solver

import (
	"fmt"
	"sync"

	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Exact satisfiability over the closed hand domain.
 *
 * The variable domain is tiny and closed: four non-negative suit lengths
 * summing to 13 (560 shapes) times 38 point counts. Check decides
 * satisfiability by exhausting it, which is exact (no heuristics, no
 * approximation) and fast enough for the small conjunctions bidding rules
 * produce. Expressions are evaluated in assertion order with short-circuit
 * failure, so a pinned-hand context rejects foreign shapes on its first
 * asserted equality.
 *
 * Scoping: Push opens a frame, Pop discards the newest frame. IsPossible
 * and IsEntailed are built on push/assert/check/pop; entailment asserts the
 * negation and reads unsatisfiability.
 *
 * Budget: a configurable step budget (one step per candidate assignment)
 * turns a runaway query into ErrSearchBudget rather than a wrong answer.
 * Zero means unlimited.
 *
 * Sharing: With returns an extended copy and never mutates the receiver,
 * so history states can hand the same context to several branches.
 */

// shapeTable holds every legal suit distribution (c, d, h, s summing to 13).
var (
	shapeOnce  sync.Once
	shapeTable [][4]int
)

func shapes() [][4]int {
	shapeOnce.Do(func() {
		for c := 0; c <= 13; c++ {
			for d := 0; c+d <= 13; d++ {
				for h := 0; c+d+h <= 13; h++ {
					shapeTable = append(shapeTable, [4]int{c, d, h, 13 - c - d - h})
				}
			}
		}
	})
	return shapeTable
}

const maxPoints = 37

// Axioms returns the global hand-shape facts: non-negative suit lengths
// summing to 13, points within [0, 37].
func Axioms() []Expr {
	return []Expr{
		Clubs.Plus(Diamonds).Plus(Hearts).Plus(Spades).EQ(N(13)),
		Clubs.GE(N(0)),
		Diamonds.GE(N(0)),
		Hearts.GE(N(0)),
		Spades.GE(N(0)),
		Points.GE(N(0)),
		Points.LE(N(maxPoints)),
	}
}

// HandExpr pins all five variables to a concrete hand.
func HandExpr(h types.Hand) Expr {
	return And(
		Clubs.EQ(N(h.SuitLength(types.Clubs))),
		Diamonds.EQ(N(h.SuitLength(types.Diamonds))),
		Hearts.EQ(N(h.SuitLength(types.Hearts))),
		Spades.EQ(N(h.SuitLength(types.Spades))),
		Points.EQ(N(h.HighCardPoints())),
	)
}

// Solver is an incremental constraint context: a stack of assertion frames
// queried for satisfiability. Not safe for concurrent use; copy with With
// or Clone to share across branches.
type Solver struct {
	frames [][]Expr
	budget int
}

// New creates a context holding the given axioms in its base frame.
func New(axioms ...Expr) *Solver {
	base := make([]Expr, len(axioms))
	copy(base, axioms)
	return &Solver{frames: [][]Expr{base}}
}

// ForHand creates a context with the axioms plus the hand's exact values.
func ForHand(h types.Hand, budget int) *Solver {
	s := New(Axioms()...)
	s.budget = budget
	s.Assert(HandExpr(h))
	return s
}

// SetBudget sets the per-query step budget; zero means unlimited.
func (s *Solver) SetBudget(budget int) { s.budget = budget }

// Assert adds an expression to the newest frame.
func (s *Solver) Assert(e Expr) {
	top := len(s.frames) - 1
	s.frames[top] = append(s.frames[top], e)
}

// Push opens a new assertion frame.
func (s *Solver) Push() {
	s.frames = append(s.frames, nil)
}

// Pop discards the newest frame. Popping the base frame is a programmer
// error and panics.
func (s *Solver) Pop() {
	if len(s.frames) == 1 {
		panic("solver: pop of base frame")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Clone returns an independent copy sharing no mutable state.
func (s *Solver) Clone() *Solver {
	frames := make([][]Expr, len(s.frames))
	for i, f := range s.frames {
		frames[i] = append([]Expr(nil), f...)
	}
	return &Solver{frames: frames, budget: s.budget}
}

// With returns a copy of the context with e asserted. The receiver is
// unchanged; this is the copy-on-extend primitive history states rely on.
func (s *Solver) With(e Expr) *Solver {
	c := s.Clone()
	c.Assert(e)
	return c
}

// Check reports whether the asserted constraints admit at least one hand.
func (s *Solver) Check() (bool, error) {
	steps := 0
	var a Assignment
	for _, shape := range shapes() {
		a[VarClubs], a[VarDiamonds], a[VarHearts], a[VarSpades] = shape[0], shape[1], shape[2], shape[3]
		for p := 0; p <= maxPoints; p++ {
			steps++
			if s.budget > 0 && steps > s.budget {
				return false, fmt.Errorf("check after %d steps: %w", steps-1, types.ErrSearchBudget)
			}
			a[VarPoints] = p
			if s.satisfiedBy(a) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *Solver) satisfiedBy(a Assignment) bool {
	for _, frame := range s.frames {
		for _, e := range frame {
			if !e.Eval(a) {
				return false
			}
		}
	}
	return true
}

// IsPossible reports whether e is consistent with the context.
func IsPossible(s *Solver, e Expr) (bool, error) {
	s.Push()
	defer s.Pop()
	s.Assert(e)
	return s.Check()
}

// IsEntailed reports whether the context forces e: its negation is
// unsatisfiable.
func IsEntailed(s *Solver, e Expr) (bool, error) {
	s.Push()
	defer s.Pop()
	s.Assert(Not(e))
	sat, err := s.Check()
	if err != nil {
		return false, err
	}
	return !sat, nil
}
