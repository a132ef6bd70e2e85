// Package types provides domain values shared across kibitz components.
//
// Zero-dependency design: calls, strains, positions, and hands are plain
// value types with no serialization or transport concern. Inference code in
// internal/rules and internal/solver references these values but never
// mutates them; a Call is comparable and usable as a map key.
package types

import (
	"fmt"
	"strings"
)

// Strain is the denomination of a contract bid. Suits order clubs lowest,
// no-trump highest, matching bidding rank.
type Strain int8

const (
	Clubs Strain = iota
	Diamonds
	Hearts
	Spades
	NoTrump
)

// Suits lists the four suit strains in ascending bidding rank.
var Suits = [4]Strain{Clubs, Diamonds, Hearts, Spades}

// IsSuit reports whether the strain is one of the four suits.
func (s Strain) IsSuit() bool {
	return s >= Clubs && s <= Spades
}

func (s Strain) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	case NoTrump:
		return "N"
	}
	return fmt.Sprintf("Strain(%d)", int(s))
}

// Name returns the long form used in explanation output.
func (s Strain) Name() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	case NoTrump:
		return "notrump"
	}
	return s.String()
}

// CallKind distinguishes contract bids from the three auxiliary calls.
type CallKind int8

const (
	KindBid CallKind = iota
	KindPass
	KindDouble
	KindRedouble
)

// Call identifies one bidding turn's choice: pass, double, redouble, or a
// leveled bid of a strain. The zero value is the one-club bid placeholder
// and is never produced by ParseCall; use the exported constructors.
type Call struct {
	Kind   CallKind
	Level  int8
	Strain Strain
}

// Pass, Dbl, and Rdbl are the three non-contract calls.
var (
	Pass = Call{Kind: KindPass}
	Dbl  = Call{Kind: KindDouble}
	Rdbl = Call{Kind: KindRedouble}
)

// NewBid constructs a contract bid. Level must be 1..7.
func NewBid(level int, strain Strain) Call {
	return Call{Kind: KindBid, Level: int8(level), Strain: strain}
}

// IsContract reports whether the call is a leveled bid.
func (c Call) IsContract() bool { return c.Kind == KindBid }

// IsPass reports whether the call is a pass.
func (c Call) IsPass() bool { return c.Kind == KindPass }

// Rank orders contract bids by bidding rank: 1C is 0, 7N is 34. The
// auxiliary calls rank below every contract bid (pass lowest) so that a
// single ordering covers enumeration order for legal calls.
func (c Call) Rank() int {
	switch c.Kind {
	case KindPass:
		return -3
	case KindDouble:
		return -2
	case KindRedouble:
		return -1
	}
	return (int(c.Level)-1)*5 + int(c.Strain)
}

// Beats reports whether c outranks other at the table; only meaningful for
// contract bids.
func (c Call) Beats(other Call) bool {
	return c.IsContract() && other.IsContract() && c.Rank() > other.Rank()
}

func (c Call) String() string {
	switch c.Kind {
	case KindPass:
		return "P"
	case KindDouble:
		return "X"
	case KindRedouble:
		return "XX"
	}
	return fmt.Sprintf("%d%s", c.Level, c.Strain)
}

// ParseCall parses the compact call notation: "P", "X", "XX", or a level
// digit followed by a strain letter ("1C", "2N"). Case-insensitive.
func ParseCall(s string) (Call, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "P", "PASS":
		return Pass, nil
	case "X", "DBL":
		return Dbl, nil
	case "XX", "RDBL":
		return Rdbl, nil
	}
	t := strings.ToUpper(strings.TrimSpace(s))
	if len(t) != 2 {
		return Call{}, fmt.Errorf("%w: %q", ErrUnknownCall, s)
	}
	level := int(t[0] - '0')
	if level < 1 || level > 7 {
		return Call{}, fmt.Errorf("%w: %q", ErrUnknownCall, s)
	}
	var strain Strain
	switch t[1] {
	case 'C':
		strain = Clubs
	case 'D':
		strain = Diamonds
	case 'H':
		strain = Hearts
	case 'S':
		strain = Spades
	case 'N':
		strain = NoTrump
	default:
		return Call{}, fmt.Errorf("%w: %q", ErrUnknownCall, s)
	}
	return NewBid(level, strain), nil
}

// MustCall parses a call and panics on failure. For static rule tables and
// tests only; the table is validated at startup, never from runtime input.
func MustCall(s string) Call {
	c, err := ParseCall(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Position is a seat relative to the player about to act. The rotation
// order matches the auction: RHO made the most recent call, Me acts next.
type Position int8

const (
	RHO Position = iota
	Partner
	LHO
	Me
)

// Positions lists all four relative seats.
var Positions = [4]Position{RHO, Partner, LHO, Me}

func (p Position) String() string {
	switch p {
	case RHO:
		return "RHO"
	case Partner:
		return "Partner"
	case LHO:
		return "LHO"
	case Me:
		return "Me"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}
