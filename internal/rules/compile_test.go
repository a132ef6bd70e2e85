// internal/rules/compile_test.go
package rules

import (
	"errors"
	"testing"

	"github.com/kibitz-bridge/kibitz/internal/solver"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

var testScale = NewScale("compiletest", "high", "mid", "low")

func TestCompile_SimpleRule(t *testing.T) {
	def := &RuleDef{
		Name:              "simple",
		CallNames:         []string{"1H"},
		SharedConstraints: []Constraint{Static(solver.Hearts.GE(solver.N(5)))},
		Priority:          testScale.P("mid"),
	}

	compiled, err := Compile(def)
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	if compiled.Name() != "simple" {
		t.Errorf("Name() = %v, want simple", compiled.Name())
	}
	if got := compiled.KnownCalls(); len(got) != 1 || got[0] != types.MustCall("1H") {
		t.Errorf("KnownCalls() = %v, want [1H]", got)
	}
	if compiled.Category() != CategoryDefault {
		t.Errorf("Category() = %v, want Default", compiled.Category())
	}
	if compiled.DefaultPriority() != testScale.P("mid") {
		t.Errorf("DefaultPriority() = %v", compiled.DefaultPriority())
	}
}

func TestCompile_MissingConstraints(t *testing.T) {
	def := &RuleDef{
		Name:      "empty",
		CallNames: []string{"1H"},
	}
	_, err := Compile(def)
	if !errors.Is(err, types.ErrMissingConstraints) {
		t.Fatalf("Compile() error = %v, want ErrMissingConstraints", err)
	}
}

func TestCompile_NoKnownCalls(t *testing.T) {
	def := &RuleDef{
		Name:              "nocalls",
		SharedConstraints: []Constraint{NoConstraints},
	}
	_, err := Compile(def)
	if !errors.Is(err, types.ErrNoKnownCalls) {
		t.Fatalf("Compile() error = %v, want ErrNoKnownCalls", err)
	}
}

func TestCompile_DuplicateCallKey(t *testing.T) {
	def := &RuleDef{
		Name: "dup",
		Constraints: map[string]CallConstraint{
			"2H 2S": {Constraint: NoConstraints},
			"2H":    {Constraint: Static(solver.Hearts.GE(solver.N(4)))},
		},
	}
	_, err := Compile(def)
	if !errors.Is(err, types.ErrDuplicateCallKey) {
		t.Fatalf("Compile() error = %v, want ErrDuplicateCallKey", err)
	}
}

func TestCompile_ConditionalsRejectConstraintsMap(t *testing.T) {
	def := &RuleDef{
		Name: "conflicted",
		Constraints: map[string]CallConstraint{
			"1H": {Constraint: NoConstraints},
		},
		ConditionalPriorities: []ConditionalPriority{
			{Condition: NoConstraints, Priority: testScale.P("high")},
		},
	}
	_, err := Compile(def)
	if !errors.Is(err, types.ErrConditionalPriorities) {
		t.Fatalf("Compile() error = %v, want ErrConditionalPriorities", err)
	}
}

func TestCompile_ConditionalsRequireCallNames(t *testing.T) {
	def := &RuleDef{
		Name:              "nameless",
		SharedConstraints: []Constraint{NoConstraints},
		PrioritiesPerCall: map[string]Priority{"1H": testScale.P("low")},
		ConditionalPriorities: []ConditionalPriority{
			{Condition: NoConstraints, Priority: testScale.P("high")},
		},
	}
	_, err := Compile(def)
	if !errors.Is(err, types.ErrConditionalPriorities) {
		t.Fatalf("Compile() error = %v, want ErrConditionalPriorities", err)
	}
}

func TestCompile_MultiCallKeyExpansion(t *testing.T) {
	def := &RuleDef{
		Name: "raise",
		Constraints: map[string]CallConstraint{
			"2H 2S": {Constraint: NoConstraints, Priority: testScale.P("mid")},
		},
	}
	compiled, err := Compile(def)
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	calls := compiled.KnownCalls()
	if len(calls) != 2 || calls[0] != types.MustCall("2H") || calls[1] != types.MustCall("2S") {
		t.Fatalf("KnownCalls() = %v, want [2H 2S] ascending", calls)
	}
	for _, c := range calls {
		if got := compiled.resolvedPriority(c); got != testScale.P("mid") {
			t.Errorf("resolvedPriority(%v) = %v, want mid", c, got)
		}
	}
}

func TestCompile_ParentJoining(t *testing.T) {
	parent := &RuleDef{
		Name:          "parent",
		Category:      CategoryNoTrumpSystem,
		Annotations:   []Annotation{AnnOpening},
		Preconditions: []Precondition{NoOpening()},
	}
	child := &RuleDef{
		Name:              "child",
		Parents:           []*RuleDef{parent},
		CallNames:         []string{"1N"},
		SharedConstraints: []Constraint{Static(solver.Balanced)},
	}

	compiled, err := Compile(child)
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	if compiled.Category() != CategoryNoTrumpSystem {
		t.Errorf("Category() = %v, want NoTrumpSystem from parent", compiled.Category())
	}
	if len(compiled.preconditions) != 1 {
		t.Errorf("len(preconditions) = %d, want 1 inherited", len(compiled.preconditions))
	}
	anns := compiled.AnnotationsFor(types.MustCall("1N"))
	if len(anns) != 1 || anns[0] != AnnOpening {
		t.Errorf("AnnotationsFor(1N) = %v, want [Opening]", anns)
	}
}

func TestCompile_ChildOverridesCategory(t *testing.T) {
	parent := &RuleDef{Name: "parent", Category: CategoryNatural}
	child := &RuleDef{
		Name:              "child",
		Parents:           []*RuleDef{parent},
		Category:          CategoryGadget,
		CallNames:         []string{"4C"},
		SharedConstraints: []Constraint{NoConstraints},
	}
	compiled, err := Compile(child)
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	if compiled.Category() != CategoryGadget {
		t.Errorf("Category() = %v, want Gadget from child", compiled.Category())
	}
}

func TestCompile_ArtificialImplication(t *testing.T) {
	def := &RuleDef{
		Name:              "stayman",
		CallNames:         []string{"2C"},
		Annotations:       []Annotation{AnnStayman},
		SharedConstraints: []Constraint{NoConstraints},
	}
	compiled, err := Compile(def)
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	anns := compiled.AnnotationsFor(types.MustCall("2C"))
	var hasStayman, hasArtificial bool
	for _, a := range anns {
		hasStayman = hasStayman || a == AnnStayman
		hasArtificial = hasArtificial || a == AnnArtificial
	}
	if !hasStayman || !hasArtificial {
		t.Errorf("AnnotationsFor(2C) = %v, want Stayman and implied Artificial", anns)
	}
}

func TestCompile_IdentityPriorityFallback(t *testing.T) {
	def := &RuleDef{
		Name:              "anon",
		CallNames:         []string{"1H"},
		SharedConstraints: []Constraint{NoConstraints},
	}
	compiled, err := Compile(def)
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	if compiled.DefaultPriority().IsZero() {
		t.Fatalf("DefaultPriority() is zero, want rule-identity fallback")
	}
}

func TestCompile_KnownCallPrecedence(t *testing.T) {
	// explicit names win over map keys
	def := &RuleDef{
		Name:      "named",
		CallNames: []string{"1S"},
		PrioritiesPerCall: map[string]Priority{
			"1H": testScale.P("low"),
		},
		SharedConstraints: []Constraint{NoConstraints},
	}
	compiled, err := Compile(def)
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	calls := compiled.KnownCalls()
	if len(calls) != 1 || calls[0] != types.MustCall("1S") {
		t.Fatalf("KnownCalls() = %v, want [1S]", calls)
	}
}
