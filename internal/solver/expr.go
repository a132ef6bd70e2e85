// internal/solver/expr.go
package solver

import (
	"fmt"
	"strings"

	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Linear-arithmetic expressions over the five hand variables.
 *
 * A hand is described by four suit-length integers plus a point count.
 * Expressions are immutable trees of comparisons between linear sums,
 * combined with And/Or/Not. Evaluation is a pure function of an Assignment,
 * which lets the solver decide satisfiability exactly by exhausting the
 * closed hand domain (see solver.go).
 *
 * Sums carry unit coefficients only: every constraint the bidding domain
 * needs compares sums of distinct variables against constants or against
 * each other ("spades + hearts + points >= 20", "hearts > spades").
 */

// Var identifies one of the five hand variables.
type Var uint8

const (
	VarClubs Var = iota
	VarDiamonds
	VarHearts
	VarSpades
	VarPoints
	numVars
)

func (v Var) String() string {
	switch v {
	case VarClubs:
		return "clubs"
	case VarDiamonds:
		return "diamonds"
	case VarHearts:
		return "hearts"
	case VarSpades:
		return "spades"
	case VarPoints:
		return "points"
	}
	return fmt.Sprintf("var(%d)", uint8(v))
}

// Assignment is one concrete valuation of the five variables.
type Assignment [numVars]int

// Expr is a boolean expression over an Assignment.
type Expr interface {
	Eval(a Assignment) bool
	String() string
}

// Sum is a linear sum of variables plus a constant.
type Sum struct {
	vars []Var
	c    int
}

// The five variables as sums, ready for comparison building.
var (
	Clubs    = Sum{vars: []Var{VarClubs}}
	Diamonds = Sum{vars: []Var{VarDiamonds}}
	Hearts   = Sum{vars: []Var{VarHearts}}
	Spades   = Sum{vars: []Var{VarSpades}}
	Points   = Sum{vars: []Var{VarPoints}}
)

// N is the constant sum n.
func N(n int) Sum { return Sum{c: n} }

// LengthOf returns the suit-length variable for a suit strain. Strains
// without a length (no-trump) have no variable; callers gate on IsSuit.
func LengthOf(s types.Strain) Sum {
	switch s {
	case types.Clubs:
		return Clubs
	case types.Diamonds:
		return Diamonds
	case types.Hearts:
		return Hearts
	case types.Spades:
		return Spades
	}
	panic(fmt.Sprintf("no length variable for strain %s", s))
}

// Plus returns a new sum with o's terms appended; receivers are never mutated.
func (s Sum) Plus(o Sum) Sum {
	vars := make([]Var, 0, len(s.vars)+len(o.vars))
	vars = append(vars, s.vars...)
	vars = append(vars, o.vars...)
	return Sum{vars: vars, c: s.c + o.c}
}

func (s Sum) value(a Assignment) int {
	v := s.c
	for _, x := range s.vars {
		v += a[x]
	}
	return v
}

func (s Sum) String() string {
	if len(s.vars) == 0 {
		return fmt.Sprintf("%d", s.c)
	}
	parts := make([]string, 0, len(s.vars)+1)
	for _, v := range s.vars {
		parts = append(parts, v.String())
	}
	if s.c != 0 {
		parts = append(parts, fmt.Sprintf("%d", s.c))
	}
	return strings.Join(parts, " + ")
}

type cmpOp uint8

const (
	opGE cmpOp = iota
	opGT
	opLE
	opLT
	opEQ
	opNE
)

var cmpSymbols = [...]string{">=", ">", "<=", "<", "==", "!="}

type cmp struct {
	l, r Sum
	op   cmpOp
}

func (c cmp) Eval(a Assignment) bool {
	l, r := c.l.value(a), c.r.value(a)
	switch c.op {
	case opGE:
		return l >= r
	case opGT:
		return l > r
	case opLE:
		return l <= r
	case opLT:
		return l < r
	case opEQ:
		return l == r
	default:
		return l != r
	}
}

func (c cmp) String() string {
	return fmt.Sprintf("%s %s %s", c.l, cmpSymbols[c.op], c.r)
}

// GE builds s >= o. The remaining comparisons follow the same shape.
func (s Sum) GE(o Sum) Expr { return cmp{s, o, opGE} }
func (s Sum) GT(o Sum) Expr { return cmp{s, o, opGT} }
func (s Sum) LE(o Sum) Expr { return cmp{s, o, opLE} }
func (s Sum) LT(o Sum) Expr { return cmp{s, o, opLT} }
func (s Sum) EQ(o Sum) Expr { return cmp{s, o, opEQ} }
func (s Sum) NE(o Sum) Expr { return cmp{s, o, opNE} }

type conj struct{ xs []Expr }

func (c conj) Eval(a Assignment) bool {
	for _, x := range c.xs {
		if !x.Eval(a) {
			return false
		}
	}
	return true
}

func (c conj) String() string { return joinExprs("and", c.xs) }

type disj struct{ xs []Expr }

func (d disj) Eval(a Assignment) bool {
	for _, x := range d.xs {
		if x.Eval(a) {
			return true
		}
	}
	return false
}

func (d disj) String() string { return joinExprs("or", d.xs) }

type neg struct{ x Expr }

func (n neg) Eval(a Assignment) bool { return !n.x.Eval(a) }
func (n neg) String() string         { return fmt.Sprintf("(not %s)", n.x) }

type tautology struct{}

func (tautology) Eval(Assignment) bool { return true }
func (tautology) String() string       { return "true" }

// True is the empty constraint: every hand satisfies it.
var True Expr = tautology{}

// And builds the conjunction of the given expressions. And() is True.
func And(xs ...Expr) Expr {
	if len(xs) == 1 {
		return xs[0]
	}
	return conj{xs: xs}
}

// Or builds the disjunction. Or() is unsatisfiable by construction.
func Or(xs ...Expr) Expr {
	if len(xs) == 1 {
		return xs[0]
	}
	return disj{xs: xs}
}

// Not negates an expression.
func Not(x Expr) Expr { return neg{x: x} }

func joinExprs(op string, xs []Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return "(" + op + " " + strings.Join(parts, " ") + ")"
}
