// internal/types/types_test.go
package types

import (
	"errors"
	"testing"
)

func TestParseCall_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want Call
	}{
		{"P", Pass},
		{"pass", Pass},
		{"X", Dbl},
		{"dbl", Dbl},
		{"XX", Rdbl},
		{"1C", NewBid(1, Clubs)},
		{"1c", NewBid(1, Clubs)},
		{"2N", NewBid(2, NoTrump)},
		{"7S", NewBid(7, Spades)},
		{" 3H ", NewBid(3, Hearts)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCall(tt.in)
			if err != nil {
				t.Fatalf("ParseCall(%q) error = %v, want nil", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCall(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCall_Invalid(t *testing.T) {
	for _, in := range []string{"", "0C", "8C", "1Z", "10C", "NT", "??"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCall(in)
			if !errors.Is(err, ErrUnknownCall) {
				t.Fatalf("ParseCall(%q) error = %v, want ErrUnknownCall", in, err)
			}
		})
	}
}

func TestCall_Rank(t *testing.T) {
	if Pass.Rank() >= Dbl.Rank() || Dbl.Rank() >= Rdbl.Rank() {
		t.Errorf("auxiliary calls out of order: P=%d X=%d XX=%d", Pass.Rank(), Dbl.Rank(), Rdbl.Rank())
	}
	if got := NewBid(1, Clubs).Rank(); got != 0 {
		t.Errorf("1C rank = %d, want 0", got)
	}
	if got := NewBid(7, NoTrump).Rank(); got != 34 {
		t.Errorf("7N rank = %d, want 34", got)
	}

	prev := -100
	for level := 1; level <= 7; level++ {
		for _, strain := range []Strain{Clubs, Diamonds, Hearts, Spades, NoTrump} {
			r := NewBid(level, strain).Rank()
			if r <= prev {
				t.Fatalf("rank not strictly ascending at %d%s: %d after %d", level, strain, r, prev)
			}
			prev = r
		}
	}
}

func TestCall_Beats(t *testing.T) {
	if !NewBid(1, Diamonds).Beats(NewBid(1, Clubs)) {
		t.Errorf("1D should beat 1C")
	}
	if NewBid(1, Clubs).Beats(NewBid(1, Clubs)) {
		t.Errorf("a bid must not beat itself")
	}
	if Dbl.Beats(NewBid(1, Clubs)) {
		t.Errorf("double is not a contract and beats nothing")
	}
}

func TestCall_RoundTrip(t *testing.T) {
	for level := 1; level <= 7; level++ {
		for _, strain := range []Strain{Clubs, Diamonds, Hearts, Spades, NoTrump} {
			c := NewBid(level, strain)
			got, err := ParseCall(c.String())
			if err != nil {
				t.Fatalf("ParseCall(%q) error = %v, want nil", c.String(), err)
			}
			if got != c {
				t.Errorf("round trip %v = %v", c, got)
			}
		}
	}
}

func TestParseHand(t *testing.T) {
	h, err := ParseHand("AKQ52.T87.32.K54")
	if err != nil {
		t.Fatalf("ParseHand() error = %v, want nil", err)
	}
	if got := h.SuitLength(Spades); got != 5 {
		t.Errorf("SuitLength(Spades) = %d, want 5", got)
	}
	if got := h.SuitLength(Clubs); got != 3 {
		t.Errorf("SuitLength(Clubs) = %d, want 3", got)
	}
	if got := h.HighCardPoints(); got != 12 {
		t.Errorf("HighCardPoints() = %d, want 12", got)
	}
	if got := h.String(); got != "AKQ52.T87.32.K54" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseHand_Void(t *testing.T) {
	h, err := ParseHand("AKQJT98765.32..2")
	if err != nil {
		t.Fatalf("ParseHand() error = %v, want nil", err)
	}
	if got := h.SuitLength(Diamonds); got != 0 {
		t.Errorf("SuitLength(Diamonds) = %d, want 0", got)
	}
}

func TestParseHand_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"three suits", "AKQ52.T87.32"},
		{"twelve cards", "AKQ52.T87.32.K5"},
		{"fourteen cards", "AKQ52.T87.432.K54"},
		{"bad card", "AKQ5Z.T87.32.K54"},
		{"duplicate card", "AKQ55.T87.32.K54"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHand(tt.in); err == nil {
				t.Fatalf("ParseHand(%q) error = nil, want error", tt.in)
			}
		})
	}
}

func TestHand_HighCardPoints_Max(t *testing.T) {
	h := MustHand("AKQJ.AKQJ.AKQJ.A")
	if got := h.HighCardPoints(); got != 34 {
		t.Errorf("HighCardPoints() = %d, want 34", got)
	}
}
