// internal/rules/preconditions.go
package rules

import (
	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Precondition variants.
 *
 * A Precondition gates whether a rule applies to a candidate call in a given
 * history. Variants are stateless beyond their own parameters and dispatch
 * through the interface, never through type inspection. Evaluation can fail,
 * since some variants consult the history's solver contexts, and failures
 * propagate with context rather than masking as "does not fit".
 */

// Precondition is a boolean predicate over a history and a candidate call.
type Precondition interface {
	Name() string
	Fits(h *History, call types.Call) (bool, error)
}

// NoOpening fits while nobody has opened the bidding.
func NoOpening() Precondition { return noOpening{} }

type noOpening struct{}

func (noOpening) Name() string { return "NoOpening" }

func (noOpening) Fits(h *History, _ types.Call) (bool, error) {
	for _, a := range h.Annotations() {
		if a == AnnOpening {
			return false, nil
		}
	}
	return true, nil
}

// Opened fits when the given position has made an opening call.
func Opened(pos types.Position) Precondition { return opened{pos: pos} }

type opened struct{ pos types.Position }

func (p opened) Name() string { return "Opened(" + p.pos.String() + ")" }

func (p opened) Fits(h *History, _ types.Call) (bool, error) {
	for _, a := range h.AnnotationsForPosition(p.pos) {
		if a == AnnOpening {
			return true, nil
		}
	}
	return false, nil
}

// LastBidHasAnnotation fits when the position's most recent call carries the
// annotation.
func LastBidHasAnnotation(pos types.Position, ann Annotation) Precondition {
	return lastBidHasAnnotation{pos: pos, ann: ann}
}

type lastBidHasAnnotation struct {
	pos types.Position
	ann Annotation
}

func (p lastBidHasAnnotation) Name() string {
	return "LastBidHasAnnotation(" + p.pos.String() + ", " + string(p.ann) + ")"
}

func (p lastBidHasAnnotation) Fits(h *History, _ types.Call) (bool, error) {
	for _, a := range h.AnnotationsForLastCall(p.pos) {
		if a == p.ann {
			return true, nil
		}
	}
	return false, nil
}

// LastBidHasStrain fits when the position's most recent call bid the strain.
func LastBidHasStrain(pos types.Position, strain types.Strain) Precondition {
	return lastBidHasStrain{pos: pos, strain: strain}
}

type lastBidHasStrain struct {
	pos    types.Position
	strain types.Strain
}

func (p lastBidHasStrain) Name() string {
	return "LastBidHasStrain(" + p.pos.String() + ", " + p.strain.String() + ")"
}

func (p lastBidHasStrain) Fits(h *History, _ types.Call) (bool, error) {
	last, ok := h.LastCallBy(p.pos)
	return ok && last.IsContract() && last.Strain == p.strain, nil
}

// RaiseOfPartnersLastSuit fits when the candidate call bids the suit
// partner last bid and partner has shown at least three cards there.
func RaiseOfPartnersLastSuit() Precondition { return raiseOfPartnersLastSuit{} }

type raiseOfPartnersLastSuit struct{}

func (raiseOfPartnersLastSuit) Name() string { return "RaiseOfPartnersLastSuit" }

func (raiseOfPartnersLastSuit) Fits(h *History, call types.Call) (bool, error) {
	last, ok := h.LastCallBy(types.Partner)
	if !ok || !last.IsContract() || !last.Strain.IsSuit() {
		return false, nil
	}
	if !call.IsContract() || call.Strain != last.Strain {
		return false, nil
	}
	promised, err := h.MinLengthFor(types.Partner, last.Strain)
	if err != nil {
		return false, err
	}
	return promised >= 3, nil
}

// UnbidSuit fits when the candidate call bids a suit no position has shown.
func UnbidSuit() Precondition { return unbidSuit{} }

type unbidSuit struct{}

func (unbidSuit) Name() string { return "UnbidSuit" }

func (unbidSuit) Fits(h *History, call types.Call) (bool, error) {
	if !call.IsContract() || !call.Strain.IsSuit() {
		return false, nil
	}
	return h.IsUnbidSuit(call.Strain)
}

// Not inverts a precondition.
func Not(p Precondition) Precondition { return inverted{p: p} }

type inverted struct{ p Precondition }

func (i inverted) Name() string { return "Not" + i.p.Name() }

func (i inverted) Fits(h *History, call types.Call) (bool, error) {
	fits, err := i.p.Fits(h, call)
	if err != nil {
		return false, err
	}
	return !fits, nil
}

// Jump preconditions compare the candidate call's level against a reference
// call. A bid in a lower-or-equal strain must clear more than one level to
// jump; a bid in a higher strain jumps as soon as it leaves the reference
// level. Doubles and redoubles are measured against the standing contract.

type jumpSource int8

const (
	fromLastContract jumpSource = iota
	fromMyLastBid
	fromPartnerLastBid
)

type jump struct {
	source jumpSource
	exact  int
	sized  bool
}

// JumpFromLastContract fits any jump over the standing contract.
func JumpFromLastContract() Precondition { return jump{source: fromLastContract} }

// NotJumpFromLastContract fits only non-jumps over the standing contract.
func NotJumpFromLastContract() Precondition {
	return jump{source: fromLastContract, exact: 0, sized: true}
}

// JumpFromMyLastBid fits any jump over my own previous call.
func JumpFromMyLastBid() Precondition { return jump{source: fromMyLastBid} }

// NotJumpFromMyLastBid fits only non-jumps over my own previous call.
func NotJumpFromMyLastBid() Precondition {
	return jump{source: fromMyLastBid, exact: 0, sized: true}
}

// JumpFromPartnerLastBid fits any jump over partner's previous call.
func JumpFromPartnerLastBid() Precondition { return jump{source: fromPartnerLastBid} }

// NotJumpFromPartnerLastBid fits only non-jumps over partner's previous call.
func NotJumpFromPartnerLastBid() Precondition {
	return jump{source: fromPartnerLastBid, exact: 0, sized: true}
}

func (j jump) Name() string {
	base := [...]string{"JumpFromLastContract", "JumpFromMyLastBid", "JumpFromPartnerLastBid"}[j.source]
	if j.sized && j.exact == 0 {
		return "Not" + base
	}
	return base
}

func (j jump) Fits(h *History, call types.Call) (bool, error) {
	if call.IsPass() {
		return false, nil
	}
	if call.Kind == types.KindDouble || call.Kind == types.KindRedouble {
		contract, ok := h.Auction().LastContract()
		if !ok {
			return false, nil
		}
		call = contract
	}

	var last types.Call
	var ok bool
	switch j.source {
	case fromLastContract:
		last, ok = h.Auction().LastContract()
	case fromMyLastBid:
		last, ok = h.LastCallBy(types.Me)
	case fromPartnerLastBid:
		last, ok = h.LastCallBy(types.Partner)
	}
	if !ok || !last.IsContract() {
		return false, nil
	}

	size := int(call.Level) - int(last.Level)
	if call.Strain <= last.Strain {
		size--
	}
	if !j.sized {
		return size != 0, nil
	}
	return size == j.exact, nil
}
