// internal/auction/auction.go
package auction

import (
	"strings"

	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * The auction: an append-only sequence of calls with seat arithmetic.
 *
 * Call zero is the dealer's; call i is made by seat i mod 4. Extend copies,
 * never mutates, so ascending prefixes of one auction can be walked while
 * the full auction is still in use. Legality follows contract bridge: a
 * contract bid must outrank the standing contract, a double hits an
 * opponent's contract, a redouble an opponent's double.
 */

// Auction is an immutable ordered list of calls.
type Auction struct {
	calls []types.Call
}

// New builds an auction from calls in table order, dealer first.
func New(calls ...types.Call) Auction {
	return Auction{calls: append([]types.Call(nil), calls...)}
}

// Parse reads space-separated call notation: "1H P 2H".
// An empty string is the auction before any call.
func Parse(s string) (Auction, error) {
	fields := strings.Fields(s)
	calls := make([]types.Call, 0, len(fields))
	for _, f := range fields {
		c, err := types.ParseCall(f)
		if err != nil {
			return Auction{}, err
		}
		calls = append(calls, c)
	}
	return Auction{calls: calls}, nil
}

// Len returns the number of calls made.
func (a Auction) Len() int { return len(a.calls) }

// Calls returns a copy of the call sequence.
func (a Auction) Calls() []types.Call {
	return append([]types.Call(nil), a.calls...)
}

// Extend returns a new auction with one more call.
func (a Auction) Extend(c types.Call) Auction {
	calls := make([]types.Call, 0, len(a.calls)+1)
	calls = append(calls, a.calls...)
	return Auction{calls: append(calls, c)}
}

// CallerOf returns the table seat (0-3, dealer first) that made call i.
func (a Auction) CallerOf(i int) int { return i % 4 }

// LastCall returns the most recent call, if any.
func (a Auction) LastCall() (types.Call, bool) {
	if len(a.calls) == 0 {
		return types.Call{}, false
	}
	return a.calls[len(a.calls)-1], true
}

// LastContract returns the most recent contract bid, if any.
func (a Auction) LastContract() (types.Call, bool) {
	for i := len(a.calls) - 1; i >= 0; i-- {
		if a.calls[i].IsContract() {
			return a.calls[i], true
		}
	}
	return types.Call{}, false
}

// AscendingPrefixes returns every prefix of the auction that ends in a call,
// shortest first: the one-call prefix through the full auction.
func (a Auction) AscendingPrefixes() []Auction {
	prefixes := make([]Auction, 0, len(a.calls))
	for i := 1; i <= len(a.calls); i++ {
		prefixes = append(prefixes, Auction{calls: a.calls[:i:i]})
	}
	return prefixes
}

// IsComplete reports whether the auction is over: at least four calls with
// three trailing passes.
func (a Auction) IsComplete() bool {
	n := len(a.calls)
	if n < 4 {
		return false
	}
	return a.calls[n-1].IsPass() && a.calls[n-2].IsPass() && a.calls[n-3].IsPass()
}

func (a Auction) String() string {
	parts := make([]string, len(a.calls))
	for i, c := range a.calls {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// lastNonPass returns the index of the most recent non-pass call, or -1.
func (a Auction) lastNonPass() int {
	for i := len(a.calls) - 1; i >= 0; i-- {
		if !a.calls[i].IsPass() {
			return i
		}
	}
	return -1
}

// byOpponent reports whether call index i was made by an opponent of the
// player about to act (an odd number of seats back).
func (a Auction) byOpponent(i int) bool {
	return (len(a.calls)-i)%2 == 1
}

// LegalCalls enumerates the structurally legal next calls in a fixed order:
// pass, double, redouble, then contract bids ascending by rank. The order is
// load bearing: it is the deterministic tie-break among equally preferred
// calls downstream.
func LegalCalls(a Auction) []types.Call {
	if a.IsComplete() {
		return nil
	}
	legal := []types.Call{types.Pass}
	if i := a.lastNonPass(); i >= 0 && a.byOpponent(i) {
		switch a.calls[i].Kind {
		case types.KindBid:
			legal = append(legal, types.Dbl)
		case types.KindDouble:
			legal = append(legal, types.Rdbl)
		}
	}
	minRank := -1
	if contract, ok := a.LastContract(); ok {
		minRank = contract.Rank()
	}
	for level := 1; level <= 7; level++ {
		for _, strain := range []types.Strain{types.Clubs, types.Diamonds, types.Hearts, types.Spades, types.NoTrump} {
			bid := types.NewBid(level, strain)
			if bid.Rank() > minRank {
				legal = append(legal, bid)
			}
		}
	}
	return legal
}
