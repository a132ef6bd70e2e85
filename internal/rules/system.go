// internal/rules/system.go
package rules

import "fmt"

// System is a compiled bidding system: the process-wide, read-only rule
// table plus the priority ordering relating its scales. Built once at
// startup, before any history or selector exists, and never mutated.
type System struct {
	Name     string
	Rules    []*CompiledRule
	Ordering *Ordering
}

// NewSystem compiles the given definitions into a system. The definition
// list is the explicit registry: every concrete rule is named here, in a
// fixed order. Compilation failures are fatal configuration errors.
func NewSystem(name string, ordering *Ordering, defs ...*RuleDef) (*System, error) {
	rules := make([]*CompiledRule, 0, len(defs))
	for _, def := range defs {
		compiled, err := Compile(def)
		if err != nil {
			return nil, fmt.Errorf("system %s: %w", name, err)
		}
		rules = append(rules, compiled)
	}
	return &System{Name: name, Rules: rules, Ordering: ordering}, nil
}
