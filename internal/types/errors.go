package types

import "errors"

// Sentinel errors for kibitz operations.
//
// The compile-time family surfaces malformed rule definitions when the
// convention table is built, before any history or selector exists; a bad
// convention must never silently misfire at the table. ErrAmbiguousRules and
// ErrSearchBudget are runtime conditions and always arrive wrapped with the
// rule, call, or position involved.
var (
	// ErrUnknownCall indicates call notation that does not parse.
	ErrUnknownCall = errors.New("unknown call")

	// ErrMissingConstraints indicates a rule that declares neither shared
	// nor per-call constraints. Such a rule would say nothing about a hand.
	ErrMissingConstraints = errors.New("rule declares no constraints")

	// ErrDuplicateCallKey indicates a call targeted twice across a rule's
	// flattened constraint or priority maps.
	ErrDuplicateCallKey = errors.New("call listed twice in rule map")

	// ErrConditionalPriorities indicates rule-level conditional priorities
	// combined with a constraints map or missing explicit call names, which
	// makes the call-to-priority mapping ambiguous.
	ErrConditionalPriorities = errors.New("conditional priorities require explicit call names and no constraints map")

	// ErrNoKnownCalls indicates a rule whose known-call set resolved empty.
	ErrNoKnownCalls = errors.New("rule resolves no known calls")

	// ErrAmbiguousRules indicates two rules claiming the same call at the
	// same category; the system has no way to pick one.
	ErrAmbiguousRules = errors.New("two rules claim the same call at equal category")

	// ErrSearchBudget indicates a solver query exceeded the configured step
	// budget before reaching an answer.
	ErrSearchBudget = errors.New("solver search budget exceeded")

	// ErrUnknownSystem indicates a bidding system name with no registry entry.
	ErrUnknownSystem = errors.New("unknown bidding system")
)
