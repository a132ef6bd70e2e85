// internal/solver/idioms.go
package solver

// Shape expressions every bidding phase reaches for. These are plain Exprs;
// rules embed them directly in shared constraints.

// RuleOfTwenty: the two longest suits plus points reach twenty. Expressed as
// a disjunction over all suit pairs, which is equivalent and keeps the
// expression linear.
var RuleOfTwenty = ruleOfN(20)

// RuleOfNineteen is the borderline-opening variant of RuleOfTwenty.
var RuleOfNineteen = ruleOfN(19)

// RuleOfFifteen gates fourth-seat openings: spades plus points reach fifteen.
var RuleOfFifteen = Spades.Plus(Points).GE(N(15))

func ruleOfN(n int) Expr {
	pairs := [][2]Sum{
		{Spades, Hearts}, {Spades, Diamonds}, {Spades, Clubs},
		{Hearts, Diamonds}, {Hearts, Clubs}, {Diamonds, Clubs},
	}
	xs := make([]Expr, 0, len(pairs))
	for _, p := range pairs {
		xs = append(xs, p[0].Plus(p[1]).Plus(Points).GE(N(n)))
	}
	return Or(xs...)
}

// Balanced: no void, no singleton, at most one doubleton.
var Balanced = And(
	Clubs.GE(N(2)), Diamonds.GE(N(2)), Hearts.GE(N(2)), Spades.GE(N(2)),
	Or(
		And(Hearts.GT(N(2)), Diamonds.GT(N(2)), Clubs.GT(N(2))),
		And(Spades.GT(N(2)), Diamonds.GT(N(2)), Clubs.GT(N(2))),
		And(Spades.GT(N(2)), Hearts.GT(N(2)), Clubs.GT(N(2))),
		And(Spades.GT(N(2)), Hearts.GT(N(2)), Diamonds.GT(N(2))),
	),
)
