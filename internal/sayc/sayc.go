// internal/sayc/sayc.go

// Package sayc defines the Standard American Yellow Card convention table:
// the priority scales, the rule definitions, and the cross-scale ordering
// facts, compiled once into a rules.System.
//
// Definitions compose through parent defs (Opening, Response, and friends
// contribute preconditions and annotations to their descendants); only the
// concrete leaf definitions are registered. The registry is an explicit
// list; adding a convention means adding its def here.
package sayc

import (
	"fmt"
	"sync"

	"github.com/kibitz-bridge/kibitz/internal/rules"
	"github.com/kibitz-bridge/kibitz/internal/solver"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

// Priority scales, values highest-first.
var (
	openingPriorities = rules.NewScale("opening",
		"StrongTwoClubs",
		"NoTrumpOpening",
		"LongestMajor",
		"HigherMajor",
		"LowerMajor",
		"LongestMinor",
		"HigherMinor",
		"LowerMinor",
	)

	responsePriorities = rules.NewScale("response",
		"MajorLimitRaise",
		"MajorMinimumRaise",
		"LongestNewMajor",
		"OneSpadeWithFiveResponse",
		"OneHeartWithFiveResponse",
		"OneDiamondResponse",
		"OneHeartWithFourResponse",
		"OneSpadeWithFourResponse",
		"TwoHeartNewSuitResponse",
		"TwoSpadeNewSuitResponse",
		"TwoClubNewSuitResponse",
		"TwoDiamondNewSuitResponse",
		"OneNotrumpResponse",
	)

	ntResponsePriorities = rules.NewScale("ntresponse",
		"NoTrumpJumpRaise",
		"NoTrumpMinimumRaise",
		"JacobyTransferToLongerMajor",
		"JacobyTransferToSpadesWithGameForcingValues",
		"JacobyTransferToHeartsWithGameForcingValues",
		"JacobyTransferToHearts",
		"JacobyTransferToSpades",
		"Stayman",
		"ClubBust",
	)

	staymanResponsePriorities = rules.NewScale("staymanresponse",
		"HeartStaymanResponse",
		"SpadeStaymanResponse",
		"DiamondStaymanResponse",
	)

	overcallPriorities = rules.NewScale("overcall",
		"DirectOvercall",
	)

	featureAskingPriorities = rules.NewScale("featureasking",
		"Gerber",
	)
)

func static(exprs ...solver.Expr) []rules.Constraint {
	out := make([]rules.Constraint, len(exprs))
	for i, e := range exprs {
		out[i] = rules.Static(e)
	}
	return out
}

func cond(e solver.Expr, p rules.Priority) rules.ConditionalPriority {
	return rules.ConditionalPriority{Condition: rules.Static(e), Priority: p}
}

// Abstract parents. Never registered; they carry the preconditions and
// annotations their descendants share.
var (
	opening = &rules.RuleDef{
		Name:          "Opening",
		Annotations:   []rules.Annotation{rules.AnnOpening},
		Preconditions: []rules.Precondition{rules.NoOpening()},
	}

	response = &rules.RuleDef{
		Name:          "Response",
		Preconditions: []rules.Precondition{rules.Opened(types.Partner)},
	}

	raiseResponse = &rules.RuleDef{
		Name:    "RaiseResponse",
		Parents: []*rules.RuleDef{response},
		Preconditions: []rules.Precondition{
			rules.RaiseOfPartnersLastSuit(),
			rules.LastBidHasAnnotation(types.Partner, rules.AnnOpening),
		},
	}

	noTrumpResponse = &rules.RuleDef{
		Name:     "NoTrumpResponse",
		Parents:  []*rules.RuleDef{response},
		Category: rules.CategoryNoTrumpSystem,
		Preconditions: []rules.Precondition{
			rules.LastBidHasAnnotation(types.Partner, rules.AnnOpening),
			rules.LastBidHasAnnotation(types.Partner, rules.AnnNoTrumpSystemsOn),
		},
	}

	directOvercall = &rules.RuleDef{
		Name:          "DirectOvercall",
		Preconditions: []rules.Precondition{rules.LastBidHasAnnotation(types.RHO, rules.AnnOpening)},
		Priority:      overcallPriorities.P("DirectOvercall"),
	}

	gerber = &rules.RuleDef{
		Name:              "Gerber",
		Category:          rules.CategoryGadget,
		RequiresPlanning:  true,
		Annotations:       []rules.Annotation{rules.AnnGerber},
		SharedConstraints: []rules.Constraint{rules.NoConstraints},
		Priority:          featureAskingPriorities.P("Gerber"),
	}
)

// Openings.
var (
	oneClubOpening = &rules.RuleDef{
		Name:              "OneClubOpening",
		Parents:           []*rules.RuleDef{opening},
		CallNames:         []string{"1C"},
		SharedConstraints: static(solver.RuleOfTwenty, solver.Clubs.GE(solver.N(3))),
		ConditionalPriorities: []rules.ConditionalPriority{
			cond(solver.Or(
				solver.Clubs.GT(solver.Diamonds),
				solver.And(solver.Clubs.EQ(solver.N(3)), solver.Diamonds.EQ(solver.N(3))),
			), openingPriorities.P("LongestMinor")),
		},
		Priority: openingPriorities.P("LowerMinor"),
	}

	oneDiamondOpening = &rules.RuleDef{
		Name:              "OneDiamondOpening",
		Parents:           []*rules.RuleDef{opening},
		CallNames:         []string{"1D"},
		SharedConstraints: static(solver.RuleOfTwenty, solver.Diamonds.GE(solver.N(3))),
		ConditionalPriorities: []rules.ConditionalPriority{
			cond(solver.Diamonds.GT(solver.Clubs), openingPriorities.P("LongestMinor")),
		},
		Priority: openingPriorities.P("HigherMinor"),
	}

	oneHeartOpening = &rules.RuleDef{
		Name:              "OneHeartOpening",
		Parents:           []*rules.RuleDef{opening},
		CallNames:         []string{"1H"},
		SharedConstraints: static(solver.RuleOfTwenty, solver.Hearts.GE(solver.N(5))),
		ConditionalPriorities: []rules.ConditionalPriority{
			cond(solver.Hearts.GT(solver.Spades), openingPriorities.P("LongestMajor")),
		},
		Priority: openingPriorities.P("LowerMajor"),
	}

	oneSpadeOpening = &rules.RuleDef{
		Name:              "OneSpadeOpening",
		Parents:           []*rules.RuleDef{opening},
		CallNames:         []string{"1S"},
		SharedConstraints: static(solver.RuleOfTwenty, solver.Spades.GE(solver.N(5))),
		ConditionalPriorities: []rules.ConditionalPriority{
			cond(solver.Spades.GT(solver.Hearts), openingPriorities.P("LongestMajor")),
		},
		Priority: openingPriorities.P("HigherMajor"),
	}

	noTrumpOpening = &rules.RuleDef{
		Name:        "NoTrumpOpening",
		Parents:     []*rules.RuleDef{opening},
		Annotations: []rules.Annotation{rules.AnnNoTrumpSystemsOn},
		Constraints: map[string]rules.CallConstraint{
			"1N": {Constraint: rules.Static(solver.And(
				solver.Points.GE(solver.N(15)), solver.Points.LE(solver.N(17)), solver.Balanced,
			))},
			"2N": {Constraint: rules.Static(solver.And(
				solver.Points.GE(solver.N(20)), solver.Points.LE(solver.N(21)), solver.Balanced,
			))},
		},
		Priority: openingPriorities.P("NoTrumpOpening"),
	}

	strongTwoClubs = &rules.RuleDef{
		Name:              "StrongTwoClubs",
		Parents:           []*rules.RuleDef{opening},
		CallNames:         []string{"2C"},
		SharedConstraints: static(solver.Points.GE(solver.N(22))),
		Priority:          openingPriorities.P("StrongTwoClubs"),
	}
)

// Responses to a suit opening.
var (
	oneDiamondResponse = &rules.RuleDef{
		Name:              "OneDiamondResponse",
		Parents:           []*rules.RuleDef{response},
		CallNames:         []string{"1D"},
		SharedConstraints: static(solver.Points.GE(solver.N(6)), solver.Diamonds.GE(solver.N(4))),
		Priority:          responsePriorities.P("OneDiamondResponse"),
	}

	oneHeartResponse = &rules.RuleDef{
		Name:              "OneHeartResponse",
		Parents:           []*rules.RuleDef{response},
		CallNames:         []string{"1H"},
		SharedConstraints: static(solver.Points.GE(solver.N(6)), solver.Hearts.GE(solver.N(4))),
		ConditionalPriorities: []rules.ConditionalPriority{
			cond(solver.And(solver.Hearts.GE(solver.N(5)), solver.Hearts.GT(solver.Spades)),
				responsePriorities.P("LongestNewMajor")),
			cond(solver.Hearts.GE(solver.N(5)), responsePriorities.P("OneHeartWithFiveResponse")),
		},
		Priority: responsePriorities.P("OneHeartWithFourResponse"),
	}

	oneSpadeResponse = &rules.RuleDef{
		Name:              "OneSpadeResponse",
		Parents:           []*rules.RuleDef{response},
		CallNames:         []string{"1S"},
		SharedConstraints: static(solver.Points.GE(solver.N(6)), solver.Spades.GE(solver.N(4))),
		ConditionalPriorities: []rules.ConditionalPriority{
			cond(solver.Spades.GE(solver.N(5)), responsePriorities.P("OneSpadeWithFiveResponse")),
		},
		Priority: responsePriorities.P("OneSpadeWithFourResponse"),
	}

	oneNotrumpResponse = &rules.RuleDef{
		Name:              "OneNotrumpResponse",
		Parents:           []*rules.RuleDef{response},
		CallNames:         []string{"1N"},
		SharedConstraints: static(solver.Points.GE(solver.N(6))),
		Priority:          responsePriorities.P("OneNotrumpResponse"),
	}

	majorMinimumRaise = &rules.RuleDef{
		Name:      "MajorMinimumRaise",
		Parents:   []*rules.RuleDef{raiseResponse},
		CallNames: []string{"2H", "2S"},
		SharedConstraints: append(
			[]rules.Constraint{rules.MinimumCombinedLength(8)},
			static(solver.Points.GE(solver.N(6)))...,
		),
		Priority: responsePriorities.P("MajorMinimumRaise"),
	}

	majorLimitRaise = &rules.RuleDef{
		Name:      "MajorLimitRaise",
		Parents:   []*rules.RuleDef{raiseResponse},
		CallNames: []string{"3H", "3S"},
		SharedConstraints: append(
			[]rules.Constraint{rules.MinimumCombinedLength(8)},
			static(solver.Points.GE(solver.N(10)))...,
		),
		Priority: responsePriorities.P("MajorLimitRaise"),
	}

	newSuitAtTheTwoLevel = &rules.RuleDef{
		Name:    "NewSuitAtTheTwoLevel",
		Parents: []*rules.RuleDef{response},
		Preconditions: []rules.Precondition{
			rules.UnbidSuit(),
			rules.NotJumpFromLastContract(),
		},
		Constraints: map[string]rules.CallConstraint{
			"2C": {Constraint: rules.Static(solver.Clubs.GE(solver.N(4))), Priority: responsePriorities.P("TwoClubNewSuitResponse")},
			"2D": {Constraint: rules.Static(solver.Diamonds.GE(solver.N(4))), Priority: responsePriorities.P("TwoDiamondNewSuitResponse")},
			"2H": {Constraint: rules.Static(solver.Hearts.GE(solver.N(5))), Priority: responsePriorities.P("TwoHeartNewSuitResponse")},
			"2S": {Constraint: rules.Static(solver.Spades.GE(solver.N(5))), Priority: responsePriorities.P("TwoSpadeNewSuitResponse")},
		},
		SharedConstraints: static(solver.Points.GE(solver.N(10))),
	}
)

// Responses inside the no-trump system.
var (
	basicStayman = &rules.RuleDef{
		Name:        "BasicStayman",
		Parents:     []*rules.RuleDef{noTrumpResponse},
		CallNames:   []string{"2C"},
		Annotations: []rules.Annotation{rules.AnnStayman},
		SharedConstraints: static(
			solver.Points.GE(solver.N(8)),
			solver.Or(solver.Hearts.GE(solver.N(4)), solver.Spades.GE(solver.N(4))),
		),
		Priority: ntResponsePriorities.P("Stayman"),
	}

	jacobyTransferToHearts = &rules.RuleDef{
		Name:              "JacobyTransferToHearts",
		Parents:           []*rules.RuleDef{noTrumpResponse},
		CallNames:         []string{"2D"},
		Annotations:       []rules.Annotation{rules.AnnTransferToHearts},
		SharedConstraints: static(solver.Hearts.GE(solver.N(5))),
		ConditionalPriorities: []rules.ConditionalPriority{
			cond(solver.Hearts.GT(solver.Spades), ntResponsePriorities.P("JacobyTransferToLongerMajor")),
			cond(solver.And(solver.Hearts.EQ(solver.Spades), solver.Points.GE(solver.N(10))),
				ntResponsePriorities.P("JacobyTransferToHeartsWithGameForcingValues")),
		},
		Priority: ntResponsePriorities.P("JacobyTransferToHearts"),
	}

	jacobyTransferToSpades = &rules.RuleDef{
		Name:              "JacobyTransferToSpades",
		Parents:           []*rules.RuleDef{noTrumpResponse},
		CallNames:         []string{"2H"},
		Annotations:       []rules.Annotation{rules.AnnTransferToSpades},
		SharedConstraints: static(solver.Spades.GE(solver.N(5))),
		ConditionalPriorities: []rules.ConditionalPriority{
			cond(solver.Spades.GT(solver.Hearts), ntResponsePriorities.P("JacobyTransferToLongerMajor")),
			cond(solver.And(solver.Hearts.EQ(solver.Spades), solver.Points.GE(solver.N(10))),
				ntResponsePriorities.P("JacobyTransferToSpadesWithGameForcingValues")),
		},
		Priority: ntResponsePriorities.P("JacobyTransferToSpades"),
	}

	staymanResponse = &rules.RuleDef{
		Name:          "StaymanResponse",
		Preconditions: []rules.Precondition{rules.LastBidHasAnnotation(types.Partner, rules.AnnStayman)},
		Constraints: map[string]rules.CallConstraint{
			"2D": {Constraint: rules.NoConstraints, Priority: staymanResponsePriorities.P("DiamondStaymanResponse")},
			"2H": {Constraint: rules.Static(solver.Hearts.GE(solver.N(4))), Priority: staymanResponsePriorities.P("HeartStaymanResponse")},
			"2S": {Constraint: rules.Static(solver.Spades.GE(solver.N(4))), Priority: staymanResponsePriorities.P("SpadeStaymanResponse")},
		},
	}
)

// Competitive calls and gadgets.
var (
	oneLevelOvercall = &rules.RuleDef{
		Name:      "OneLevelOvercall",
		Parents:   []*rules.RuleDef{directOvercall},
		CallNames: []string{"1D", "1H", "1S"},
		SharedConstraints: append(
			[]rules.Constraint{rules.MinLength(5)},
			static(solver.Points.GE(solver.N(8)))...,
		),
	}

	gerberForAces = &rules.RuleDef{
		Name:      "GerberForAces",
		Parents:   []*rules.RuleDef{gerber},
		CallNames: []string{"4C"},
		Preconditions: []rules.Precondition{
			rules.LastBidHasStrain(types.Partner, types.NoTrump),
			rules.Not(rules.LastBidHasAnnotation(types.Partner, rules.AnnArtificial)),
		},
	}

	gerberForKings = &rules.RuleDef{
		Name:      "GerberForKings",
		Parents:   []*rules.RuleDef{gerber},
		CallNames: []string{"5C"},
		Preconditions: []rules.Precondition{
			rules.LastBidHasAnnotation(types.Me, rules.AnnGerber),
		},
	}
)

// registry lists every concrete rule, in a fixed order. Rule order does not
// affect selection (categories and priorities do), but a fixed list keeps
// compiled systems reproducible.
var registry = []*rules.RuleDef{
	oneClubOpening,
	oneDiamondOpening,
	oneHeartOpening,
	oneSpadeOpening,
	noTrumpOpening,
	strongTwoClubs,
	oneDiamondResponse,
	oneHeartResponse,
	oneSpadeResponse,
	oneNotrumpResponse,
	majorMinimumRaise,
	majorLimitRaise,
	newSuitAtTheTwoLevel,
	basicStayman,
	jacobyTransferToHearts,
	jacobyTransferToSpades,
	staymanResponse,
	oneLevelOvercall,
	gerberForAces,
	gerberForKings,
}

var (
	once   sync.Once
	system *rules.System
	sysErr error
)

// System compiles the SAYC table on first use and caches it for the life
// of the process. Compilation failure is a configuration defect and is
// returned on every call.
func System() (*rules.System, error) {
	once.Do(func() {
		ordering := rules.NewOrdering()
		ordering.AddBelow(responsePriorities, ntResponsePriorities)
		system, sysErr = rules.NewSystem("sayc", ordering, registry...)
	})
	return system, sysErr
}

// Names lists the bidding systems this build knows.
func Names() []string { return []string{"sayc"} }

// ByName resolves a configured system name.
func ByName(name string) (*rules.System, error) {
	if name == "sayc" {
		return System()
	}
	return nil, fmt.Errorf("%w: %q", types.ErrUnknownSystem, name)
}
