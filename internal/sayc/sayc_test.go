// internal/sayc/sayc_test.go
package sayc

import (
	"errors"
	"testing"

	"github.com/kibitz-bridge/kibitz/internal/auction"
	"github.com/kibitz-bridge/kibitz/internal/rules"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

func mustSystem(t *testing.T) *rules.System {
	t.Helper()
	system, err := System()
	if err != nil {
		t.Fatalf("System() error = %v, want nil", err)
	}
	return system
}

func findCall(t *testing.T, hand, calls string) (types.Call, bool) {
	t.Helper()
	auct, err := auction.Parse(calls)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v, want nil", calls, err)
	}
	bidder := rules.Bidder{System: mustSystem(t)}
	call, ok, err := bidder.FindCall(types.MustHand(hand), auct)
	if err != nil {
		t.Fatalf("FindCall(%q, %q) error = %v, want nil", hand, calls, err)
	}
	return call, ok
}

func TestSystem_CompilesOnce(t *testing.T) {
	first := mustSystem(t)
	second := mustSystem(t)
	if first != second {
		t.Fatalf("System() should return the cached table")
	}
	if first.Name != "sayc" {
		t.Errorf("Name = %q, want sayc", first.Name)
	}
	if len(first.Rules) == 0 {
		t.Fatalf("compiled system has no rules")
	}
}

func TestSystem_EveryRuleHasPriority(t *testing.T) {
	for _, rule := range mustSystem(t).Rules {
		if rule.DefaultPriority().IsZero() {
			t.Errorf("rule %s compiled without a default priority", rule.Name())
		}
		if len(rule.KnownCalls()) == 0 {
			t.Errorf("rule %s knows no calls", rule.Name())
		}
	}
}

func TestByName(t *testing.T) {
	if _, err := ByName("sayc"); err != nil {
		t.Fatalf("ByName(sayc) error = %v, want nil", err)
	}
	_, err := ByName("acol")
	if !errors.Is(err, types.ErrUnknownSystem) {
		t.Fatalf("ByName(acol) error = %v, want ErrUnknownSystem", err)
	}
}

func TestOpening(t *testing.T) {
	tests := []struct {
		name string
		hand string
		want string
	}{
		// five spades over four hearts: longest major first
		{"longest major", "AKQ52.T874.32.K5", "1S"},
		// five hearts over four spades
		{"lower longest major", "T874.AKQ52.32.K5", "1H"},
		// no five-card major, longer minor
		{"longest minor", "AK52.T87.3.KQ542", "1C"},
		// three-three in the minors opens the lower one
		{"three three minors", "AK5.QT87.J32.K54", "1C"},
		// balanced 15-17 prefers the notrump opening
		{"one notrump", "AK52.KQ87.Q32.K5", "1N"},
		// 22+ goes through the strong two clubs
		{"strong two clubs", "AKQJ.AKQJ.A32.54", "2C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := findCall(t, tt.hand, "")
			if !ok {
				t.Fatalf("FindCall() found nothing, want %s", tt.want)
			}
			if call != types.MustCall(tt.want) {
				t.Errorf("FindCall() = %v, want %s", call, tt.want)
			}
		})
	}
}

func TestOpening_SubMinimumPassesOut(t *testing.T) {
	// eight points, no shape: fails the rule of twenty, no rule fires
	_, ok := findCall(t, "Q852.T87.432.K54", "")
	if ok {
		t.Fatalf("FindCall() found a call for a sub-minimum hand")
	}
}

func TestResponse_MajorRaise(t *testing.T) {
	// four-card support with six points raises to two
	call, ok := findCall(t, "T87.9542.AQ32.43", "1H P")
	if !ok {
		t.Fatalf("FindCall() found nothing, want 2H")
	}
	if call != types.MustCall("2H") {
		t.Errorf("FindCall() = %v, want 2H", call)
	}
}

func TestResponse_LimitRaise(t *testing.T) {
	// support with ten points jumps to three
	call, ok := findCall(t, "T87.9542.AQ32.AJ", "1H P")
	if !ok {
		t.Fatalf("FindCall() found nothing, want 3H")
	}
	if call != types.MustCall("3H") {
		t.Errorf("FindCall() = %v, want 3H", call)
	}
}

func TestResponse_NewMajorWithoutSupport(t *testing.T) {
	// five spades and no heart support: bid the major
	call, ok := findCall(t, "AQT85.95.Q432.42", "1H P")
	if !ok {
		t.Fatalf("FindCall() found nothing, want 1S")
	}
	if call != types.MustCall("1S") {
		t.Errorf("FindCall() = %v, want 1S", call)
	}
}

func TestResponse_OneNotrumpCatchall(t *testing.T) {
	// seven points, no support, no biddable new suit at the one level
	call, ok := findCall(t, "T8.954.QJ32.A432", "1S P")
	if !ok {
		t.Fatalf("FindCall() found nothing, want 1N")
	}
	if call != types.MustCall("1N") {
		t.Errorf("FindCall() = %v, want 1N", call)
	}
}

func TestNoTrumpResponse_StaymanOverNaturalResponse(t *testing.T) {
	// four spades with invitational values: Stayman outranks the natural
	// one spade response across the declared scale ordering
	call, ok := findCall(t, "KQ52.876.A432.92", "1N P")
	if !ok {
		t.Fatalf("FindCall() found nothing, want 2C")
	}
	if call != types.MustCall("2C") {
		t.Errorf("FindCall() = %v, want 2C", call)
	}
}

func TestNoTrumpResponse_JacobyTransfer(t *testing.T) {
	// five hearts transfer via two diamonds
	call, ok := findCall(t, "K52.Q8764.432.92", "1N P")
	if !ok {
		t.Fatalf("FindCall() found nothing, want 2D")
	}
	if call != types.MustCall("2D") {
		t.Errorf("FindCall() = %v, want 2D", call)
	}
}

func TestStaymanResponse(t *testing.T) {
	tests := []struct {
		name string
		hand string
		want string
	}{
		{"four hearts", "K52.Q876.A432.A2", "2H"},
		{"four spades", "K752.Q86.A432.A2", "2S"},
		{"no major", "K52.Q86.A432.A32", "2D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, ok := findCall(t, tt.hand, "1N P 2C P")
			if !ok {
				t.Fatalf("FindCall() found nothing, want %s", tt.want)
			}
			if call != types.MustCall(tt.want) {
				t.Errorf("FindCall() = %v, want %s", call, tt.want)
			}
		})
	}
}

func TestOvercall_OneLevel(t *testing.T) {
	// five spades and eight points over an opponent's opening
	call, ok := findCall(t, "AQT85.954.Q32.43", "1H")
	if !ok {
		t.Fatalf("FindCall() found nothing, want 1S")
	}
	if call != types.MustCall("1S") {
		t.Errorf("FindCall() = %v, want 1S", call)
	}
}

func TestFindCall_Deterministic(t *testing.T) {
	first, ok := findCall(t, "AKQ52.T874.32.K5", "")
	if !ok {
		t.Fatalf("FindCall() found nothing")
	}
	for i := 0; i < 3; i++ {
		again, ok := findCall(t, "AKQ52.T874.32.K5", "")
		if !ok || again != first {
			t.Fatalf("FindCall() run %d = %v %v, want stable %v", i, again, ok, first)
		}
	}
}

func TestFindCall_SelfConsistent(t *testing.T) {
	// whatever the bidder chooses, the interpreted meaning of that call must
	// admit the hand that chose it
	hands := []string{
		"AKQ52.T874.32.K5",
		"T874.AKQ52.32.K5",
		"AK52.KQ87.Q32.K5",
		"AKQJ.AKQJ.A32.54",
		"AK5.QT87.J32.K54",
	}
	for _, hs := range hands {
		t.Run(hs, func(t *testing.T) {
			hand := types.MustHand(hs)
			call, ok := findCall(t, hs, "")
			if !ok {
				t.Fatalf("FindCall() found nothing")
			}

			auct := auction.New(call)
			interpreter := rules.Interpreter{System: mustSystem(t)}
			history, err := interpreter.History(auct)
			if err != nil {
				t.Fatalf("History() error = %v, want nil", err)
			}

			// one call in: the bidder is RHO of the seat about to act
			for _, strain := range types.Suits {
				min, err := history.RHO().MinLength(strain)
				if err != nil {
					t.Fatalf("MinLength(%v) error = %v, want nil", strain, err)
				}
				max, err := history.RHO().MaxLength(strain)
				if err != nil {
					t.Fatalf("MaxLength(%v) error = %v, want nil", strain, err)
				}
				held := hand.SuitLength(strain)
				if held < min || held > max {
					t.Errorf("%v after %v: held %d outside inferred %d-%d", strain, call, held, min, max)
				}
			}
			minPts, maxPts, err := history.RHO().PointRange()
			if err != nil {
				t.Fatalf("PointRange() error = %v, want nil", err)
			}
			if hcp := hand.HighCardPoints(); hcp < minPts || hcp > maxPts {
				t.Errorf("points after %v: held %d outside inferred %d-%d", call, hcp, minPts, maxPts)
			}
		})
	}
}

func TestInterpret_NoTrumpOpeningRange(t *testing.T) {
	auct, err := auction.Parse("1N P")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	interpreter := rules.Interpreter{System: mustSystem(t)}
	history, err := interpreter.History(auct)
	if err != nil {
		t.Fatalf("History() error = %v, want nil", err)
	}

	// two calls in: the opener is Partner of the seat about to act
	min, max, err := history.Partner().PointRange()
	if err != nil {
		t.Fatalf("PointRange() error = %v, want nil", err)
	}
	if min != 15 || max != 17 {
		t.Errorf("opener point range = %d-%d, want 15-17", min, max)
	}
	for _, strain := range types.Suits {
		length, err := history.Partner().MinLength(strain)
		if err != nil {
			t.Fatalf("MinLength(%v) error = %v, want nil", strain, err)
		}
		if length < 2 {
			t.Errorf("balanced opener MinLength(%v) = %d, want at least 2", strain, length)
		}
	}
}

func TestInterpret_SituationalExclusion(t *testing.T) {
	// a one club opening denies the higher-priority major openings, so the
	// opener cannot hold a five-card spade suit
	auct, err := auction.Parse("1C")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	interpreter := rules.Interpreter{System: mustSystem(t)}
	history, err := interpreter.History(auct)
	if err != nil {
		t.Fatalf("History() error = %v, want nil", err)
	}

	max, err := history.RHO().MaxLength(types.Spades)
	if err != nil {
		t.Fatalf("MaxLength() error = %v, want nil", err)
	}
	if max > 4 {
		t.Errorf("opener max spades = %d, want at most 4 after denying 1S", max)
	}
	min, err := history.RHO().MinLength(types.Clubs)
	if err != nil {
		t.Fatalf("MinLength() error = %v, want nil", err)
	}
	if min < 3 {
		t.Errorf("opener min clubs = %d, want at least 3", min)
	}
}

func TestInterpret_StaymanAnnotations(t *testing.T) {
	auct, err := auction.Parse("1N P 2C")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	interpreter := rules.Interpreter{System: mustSystem(t)}
	history, err := interpreter.History(auct)
	if err != nil {
		t.Fatalf("History() error = %v, want nil", err)
	}

	// three calls in: the Stayman bidder is RHO
	anns := history.RHO().AnnotationsForLastCall()
	var hasStayman, hasArtificial bool
	for _, a := range anns {
		hasStayman = hasStayman || a == rules.AnnStayman
		hasArtificial = hasArtificial || a == rules.AnnArtificial
	}
	if !hasStayman {
		t.Errorf("2C annotations = %v, want Stayman", anns)
	}
	if !hasArtificial {
		t.Errorf("2C annotations = %v, want implied Artificial", anns)
	}
}
