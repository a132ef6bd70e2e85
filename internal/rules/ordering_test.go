// internal/rules/ordering_test.go
package rules

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/kibitz-bridge/kibitz/internal/types"
)

func TestScale_WithinScaleOrder(t *testing.T) {
	s := NewScale("s", "best", "good", "poor")
	o := NewOrdering()

	if !o.LessThan(s.P("poor"), s.P("best")) {
		t.Errorf("poor should rank below best")
	}
	if o.LessThan(s.P("best"), s.P("poor")) {
		t.Errorf("best must not rank below poor")
	}
	if o.LessThan(s.P("good"), s.P("good")) {
		t.Errorf("ordering must be strict")
	}
}

func TestOrdering_CrossScale(t *testing.T) {
	low := NewScale("low", "a", "b")
	high := NewScale("high", "a", "b")
	o := NewOrdering()

	if o.LessThan(low.P("a"), high.P("b")) {
		t.Errorf("undeclared scales must be incomparable")
	}
	o.AddBelow(low, high)
	if !o.LessThan(low.P("a"), high.P("b")) {
		t.Errorf("declared fact should order every value pair")
	}
	if o.LessThan(high.P("b"), low.P("a")) {
		t.Errorf("the declared fact is one-directional")
	}
}

func TestOrdering_TransitiveChain(t *testing.T) {
	bottom := NewScale("bottom", "x")
	middle := NewScale("middle", "x")
	top := NewScale("top", "x")
	o := NewOrdering()

	// declared bottom-up so AddBelow can fold the known chain
	o.AddBelow(middle, top)
	o.AddBelow(bottom, middle)

	if !o.LessThan(bottom.P("x"), top.P("x")) {
		t.Errorf("bottom should rank below top through the chain")
	}
}

func TestOrdering_ZeroPriorityIncomparable(t *testing.T) {
	s := NewScale("s", "a")
	o := NewOrdering()
	if o.LessThan(Priority{}, s.P("a")) || o.LessThan(s.P("a"), Priority{}) {
		t.Errorf("the zero priority compares with nothing")
	}
}

func TestPossibleCalls_MaximalDominance(t *testing.T) {
	s := NewScale("s", "high", "mid", "low")
	o := NewOrdering()

	p := NewPossibleCalls(o)
	p.Add(types.MustCall("1C"), s.P("low"))
	p.Add(types.MustCall("1H"), s.P("high"))
	p.Add(types.MustCall("1D"), s.P("mid"))

	maximal := p.Maximal()
	if len(maximal) != 1 {
		t.Fatalf("len(Maximal()) = %d, want 1", len(maximal))
	}
	if maximal[0].Call != types.MustCall("1H") {
		t.Errorf("Maximal() = %v, want 1H", maximal[0].Call)
	}
}

func TestPossibleCalls_IncomparableSurviveTogether(t *testing.T) {
	a := NewScale("a", "x")
	b := NewScale("b", "x")
	o := NewOrdering()

	p := NewPossibleCalls(o)
	p.Add(types.MustCall("1C"), a.P("x"))
	p.Add(types.MustCall("1D"), b.P("x"))

	maximal := p.Maximal()
	if len(maximal) != 2 {
		t.Fatalf("len(Maximal()) = %d, want both incomparable candidates", len(maximal))
	}
}

func TestPossibleCalls_EqualPrioritiesKept(t *testing.T) {
	s := NewScale("s", "only")
	o := NewOrdering()

	p := NewPossibleCalls(o)
	p.Add(types.MustCall("1C"), s.P("only"))
	p.Add(types.MustCall("1D"), s.P("only"))

	if got := len(p.Maximal()); got != 2 {
		t.Fatalf("len(Maximal()) = %d, want 2 equal candidates kept", got)
	}
}

func TestPossibleCalls_MaximalIsFrontier(t *testing.T) {
	scale := NewScale("frontier", "v0", "v1", "v2", "v3", "v4")
	other := NewScale("other", "w0", "w1", "w2")
	ordering := NewOrdering()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	calls := []types.Call{
		types.MustCall("1C"), types.MustCall("1D"), types.MustCall("1H"),
		types.MustCall("1S"), types.MustCall("1N"), types.MustCall("2C"),
	}

	properties.Property("no survivor is dominated, every loser is", prop.ForAll(
		func(ordinals []int) bool {
			p := NewPossibleCalls(ordering)
			var all []CallPriority
			for i, ord := range ordinals {
				var priority Priority
				if ord < 5 {
					priority = scale.P(scale.values[ord])
				} else {
					priority = other.P(other.values[ord-5])
				}
				call := calls[i%len(calls)]
				p.Add(call, priority)
				all = append(all, CallPriority{Call: call, Priority: priority})
			}
			maximal := p.Maximal()

			for _, kept := range maximal {
				for _, cand := range all {
					if ordering.LessThan(kept.Priority, cand.Priority) {
						return false
					}
				}
			}
			for _, cand := range all {
				inFrontier := false
				for _, kept := range maximal {
					if kept.Call == cand.Call && kept.Priority == cand.Priority {
						inFrontier = true
						break
					}
				}
				if inFrontier {
					continue
				}
				dominated := false
				for _, kept := range maximal {
					if ordering.LessThan(cand.Priority, kept.Priority) {
						dominated = true
						break
					}
				}
				if !dominated {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(6, gen.IntRange(0, 7)),
	))

	properties.TestingRun(t)
}
