package types

import (
	"fmt"
	"strings"
)

// Hand is a concrete 13-card hand, built from the four suit holdings in
// descending-suit order (spades.hearts.diamonds.clubs, PBN style).
// Hands are immutable values; the bidding core only ever reads the two
// derived measures, suit length and high-card points.
type Hand struct {
	suits [4]string // indexed by Strain, Clubs..Spades
}

var handRanks = "AKQJT98765432"

// ParseHand parses "AKQ52.T87.32.K54" (spades.hearts.diamonds.clubs).
// An empty suit is written as an empty segment ("AKQJT98765.32..2").
func ParseHand(s string) (Hand, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return Hand{}, fmt.Errorf("hand %q: want four dot-separated suits, got %d", s, len(parts))
	}
	var h Hand
	total := 0
	// parts arrive spades-first; suits array is indexed clubs-first.
	for i, part := range parts {
		holding := strings.ToUpper(part)
		seen := map[byte]bool{}
		for j := 0; j < len(holding); j++ {
			r := holding[j]
			if !strings.ContainsRune(handRanks, rune(r)) {
				return Hand{}, fmt.Errorf("hand %q: invalid card %q", s, string(r))
			}
			if seen[r] {
				return Hand{}, fmt.Errorf("hand %q: duplicate card %q", s, string(r))
			}
			seen[r] = true
		}
		h.suits[int(Spades)-i] = holding
		total += len(holding)
	}
	if total != 13 {
		return Hand{}, fmt.Errorf("hand %q: want 13 cards, got %d", s, total)
	}
	return h, nil
}

// MustHand parses a hand and panics on failure. Test helper.
func MustHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(err)
	}
	return h
}

// SuitLength returns the number of cards held in the given suit.
func (h Hand) SuitLength(s Strain) int {
	if !s.IsSuit() {
		return 0
	}
	return len(h.suits[s])
}

// HighCardPoints returns the Milton Work count: A=4, K=3, Q=2, J=1.
func (h Hand) HighCardPoints() int {
	points := 0
	for _, holding := range h.suits {
		for i := 0; i < len(holding); i++ {
			switch holding[i] {
			case 'A':
				points += 4
			case 'K':
				points += 3
			case 'Q':
				points += 2
			case 'J':
				points++
			}
		}
	}
	return points
}

func (h Hand) String() string {
	return strings.Join([]string{h.suits[Spades], h.suits[Hearts], h.suits[Diamonds], h.suits[Clubs]}, ".")
}
