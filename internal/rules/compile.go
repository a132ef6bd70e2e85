// internal/rules/compile.go
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kibitz-bridge/kibitz/internal/types"
)

/*
 * Rule compilation and validation.
 *
 * A RuleDef is a declarative template: preconditions gating when the rule
 * applies, constraints describing what its calls promise about the hand,
 * priorities ranking its calls against alternatives, and annotations tagging
 * the calls it produces. Defs compose through parent pointers: acyclic
 * trait composition, flattened here into one self-contained, immutable
 * CompiledRule per def.
 *
 * Compilation workflow:
 *   1. Walk the lineage ancestor-first and join list properties
 *      (preconditions, shared constraints, annotations); ancestors apply
 *      before descendants, and descendants add, never replace.
 *   2. Resolve singular properties (category, priority, call names, maps)
 *      to the most-derived declaration.
 *   3. Expand multi-call map keys ("2H 2S") one call per key, failing on a
 *      call targeted twice.
 *   4. Derive known calls by precedence: explicit names, then priority-map
 *      keys, then constraint-map keys.
 *   5. Resolve the default priority; a def without one gets a rule-identity
 *      priority, so every known call has a usable ordering key.
 *
 * Why compile-time validation: a malformed convention must fail when the
 * system table is built, not misbid at the table. Every validation failure
 * wraps a sentinel from internal/types with the rule name.
 */

// ConditionalPriority awards a priority when its condition is satisfiable
// for the hand. Conditionals are tried in declaration order; the first
// satisfiable one wins.
type ConditionalPriority struct {
	Condition Constraint
	Priority  Priority
}

// CallConstraint is one constraints-map entry: the extra constraint a
// specific call asserts, and an optional priority override for that call.
type CallConstraint struct {
	Constraint Constraint
	Priority   Priority
}

// RuleDef is the declarative form of a bidding rule. Map keys are call
// names; a key may name several calls separated by spaces.
type RuleDef struct {
	Name    string
	Parents []*RuleDef

	Category         Category
	RequiresPlanning bool

	CallNames         []string
	Constraints       map[string]CallConstraint
	SharedConstraints []Constraint
	Preconditions     []Precondition

	Annotations        []Annotation
	AnnotationsPerCall map[string][]Annotation

	Priority                     Priority
	PrioritiesPerCall            map[string]Priority
	ConditionalPriorities        []ConditionalPriority
	ConditionalPrioritiesPerCall map[string][]ConditionalPriority
}

// CompiledRule is the flattened, ready-to-evaluate form. It knows nothing
// about the def hierarchy it came from.
type CompiledRule struct {
	name             string
	category         Category
	requiresPlanning bool

	knownCalls        []types.Call
	preconditions     []Precondition
	sharedConstraints []Constraint
	constraints       map[string]CallConstraint

	annotations        []Annotation
	annotationsPerCall map[string][]Annotation

	defaultPriority   Priority
	prioritiesPerCall map[string]Priority
	conditionals      []ConditionalPriority
	condsPerCall      map[string][]ConditionalPriority
}

// Compile flattens and validates a rule definition.
func Compile(def *RuleDef) (*CompiledRule, error) {
	lineage := collectLineage(def)

	constraints, err := flattenCallKeys(resolveConstraints(lineage))
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", def.Name, err)
	}
	priorities, err := flattenCallKeys(resolvePriorities(lineage))
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", def.Name, err)
	}
	condsPerCall, err := flattenCallKeys(resolveCondsPerCall(lineage))
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", def.Name, err)
	}
	annsPerCall, err := flattenCallKeys(resolveAnnsPerCall(lineage))
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", def.Name, err)
	}

	shared := joinConstraints(lineage)
	if len(shared) == 0 && len(constraints) == 0 {
		return nil, fmt.Errorf("rule %s: %w", def.Name, types.ErrMissingConstraints)
	}

	callNames := resolveCallNames(lineage)
	conditionals := resolveConditionals(lineage)
	if len(conditionals) > 0 && (len(constraints) > 0 || len(callNames) == 0) {
		return nil, fmt.Errorf("rule %s: %w", def.Name, types.ErrConditionalPriorities)
	}

	knownCalls, err := compileKnownCalls(callNames, priorities, constraints)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", def.Name, err)
	}

	priority := resolvePriority(lineage)
	if priority.IsZero() {
		priority = identityPriority(def.Name)
	}

	return &CompiledRule{
		name:               def.Name,
		category:           resolveCategory(lineage),
		requiresPlanning:   resolvePlanning(lineage),
		knownCalls:         knownCalls,
		preconditions:      joinPreconditions(lineage),
		sharedConstraints:  shared,
		constraints:        constraints,
		annotations:        compileAnnotations(lineage),
		annotationsPerCall: annsPerCall,
		defaultPriority:    priority,
		prioritiesPerCall:  priorities,
		conditionals:       conditionals,
		condsPerCall:       condsPerCall,
	}, nil
}

// collectLineage returns the def's ancestry root-first, the def itself
// last, each def at most once.
func collectLineage(def *RuleDef) []*RuleDef {
	var lineage []*RuleDef
	seen := make(map[*RuleDef]bool)
	var walk func(d *RuleDef)
	walk = func(d *RuleDef) {
		if seen[d] {
			return
		}
		seen[d] = true
		for _, parent := range d.Parents {
			walk(parent)
		}
		lineage = append(lineage, d)
	}
	walk(def)
	return lineage
}

func joinPreconditions(lineage []*RuleDef) []Precondition {
	var out []Precondition
	for _, d := range lineage {
		out = append(out, d.Preconditions...)
	}
	return out
}

func joinConstraints(lineage []*RuleDef) []Constraint {
	var out []Constraint
	for _, d := range lineage {
		out = append(out, d.SharedConstraints...)
	}
	return out
}

// compileAnnotations unions lineage annotations and adds AnnArtificial when
// any artificial-implying annotation is present. Declaration order is kept.
func compileAnnotations(lineage []*RuleDef) []Annotation {
	var out []Annotation
	seen := make(map[Annotation]bool)
	artificial := false
	for _, d := range lineage {
		for _, a := range d.Annotations {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
			if impliesArtificial[a] {
				artificial = true
			}
		}
	}
	if artificial && !seen[AnnArtificial] {
		out = append(out, AnnArtificial)
	}
	return out
}

// Singular properties resolve to the most-derived declaration.

func resolveCategory(lineage []*RuleDef) Category {
	c := CategoryDefault
	for _, d := range lineage {
		if d.Category != CategoryUnset {
			c = d.Category
		}
	}
	return c
}

func resolvePlanning(lineage []*RuleDef) bool {
	for _, d := range lineage {
		if d.RequiresPlanning {
			return true
		}
	}
	return false
}

func resolvePriority(lineage []*RuleDef) Priority {
	var p Priority
	for _, d := range lineage {
		if !d.Priority.IsZero() {
			p = d.Priority
		}
	}
	return p
}

func resolveCallNames(lineage []*RuleDef) []string {
	var names []string
	for _, d := range lineage {
		if len(d.CallNames) > 0 {
			names = d.CallNames
		}
	}
	return names
}

func resolveConstraints(lineage []*RuleDef) map[string]CallConstraint {
	var m map[string]CallConstraint
	for _, d := range lineage {
		if len(d.Constraints) > 0 {
			m = d.Constraints
		}
	}
	return m
}

func resolvePriorities(lineage []*RuleDef) map[string]Priority {
	var m map[string]Priority
	for _, d := range lineage {
		if len(d.PrioritiesPerCall) > 0 {
			m = d.PrioritiesPerCall
		}
	}
	return m
}

func resolveConditionals(lineage []*RuleDef) []ConditionalPriority {
	var c []ConditionalPriority
	for _, d := range lineage {
		if len(d.ConditionalPriorities) > 0 {
			c = d.ConditionalPriorities
		}
	}
	return c
}

func resolveCondsPerCall(lineage []*RuleDef) map[string][]ConditionalPriority {
	var m map[string][]ConditionalPriority
	for _, d := range lineage {
		if len(d.ConditionalPrioritiesPerCall) > 0 {
			m = d.ConditionalPrioritiesPerCall
		}
	}
	return m
}

func resolveAnnsPerCall(lineage []*RuleDef) map[string][]Annotation {
	var m map[string][]Annotation
	for _, d := range lineage {
		if len(d.AnnotationsPerCall) > 0 {
			m = d.AnnotationsPerCall
		}
	}
	return m
}

// flattenCallKeys expands multi-call keys ("2H 2S") into one entry per
// call, failing if any call is targeted twice.
func flattenCallKeys[V any](m map[string]V) (map[string]V, error) {
	if len(m) == 0 {
		return nil, nil
	}
	flat := make(map[string]V, len(m))
	for key, value := range m {
		for _, name := range strings.Fields(key) {
			if _, dup := flat[name]; dup {
				return nil, fmt.Errorf("%w: %s", types.ErrDuplicateCallKey, name)
			}
			flat[name] = value
		}
	}
	return flat, nil
}

// compileKnownCalls derives the known-call set by precedence: explicit
// names, then priority-map keys, then constraint-map keys.
func compileKnownCalls(callNames []string, priorities map[string]Priority, constraints map[string]CallConstraint) ([]types.Call, error) {
	var names []string
	switch {
	case len(callNames) > 0:
		names = callNames
	case len(priorities) > 0:
		for name := range priorities {
			names = append(names, name)
		}
	default:
		for name := range constraints {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, types.ErrNoKnownCalls
	}
	calls := make([]types.Call, 0, len(names))
	for _, name := range names {
		call, err := types.ParseCall(name)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	sort.Slice(calls, func(i, j int) bool { return calls[i].Rank() < calls[j].Rank() })
	return calls, nil
}
