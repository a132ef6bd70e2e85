// internal/rules/annotations.go
package rules

import "fmt"

// Annotation is a semantic tag carried by a compiled rule and, through
// interpretation, by the call it produced in a specific history branch.
// Later preconditions query annotations to ask things like "did partner's
// last call open the bidding".
type Annotation string

const (
	AnnOpening          Annotation = "Opening"
	AnnNoTrumpSystemsOn Annotation = "NoTrumpSystemsOn"
	AnnArtificial       Annotation = "Artificial"
	AnnStayman          Annotation = "Stayman"
	AnnGerber           Annotation = "Gerber"
	AnnTransferToHearts Annotation = "TransferToHearts"
	AnnTransferToSpades Annotation = "TransferToSpades"
)

// impliesArtificial lists annotations that mark a call conventional; a rule
// carrying any of them is compiled with AnnArtificial added.
var impliesArtificial = map[Annotation]bool{
	AnnStayman:          true,
	AnnGerber:           true,
	AnnTransferToHearts: true,
	AnnTransferToSpades: true,
}

// Category is the coarse selection rank deciding which rule owns a call
// when several claim it. Higher wins; equal claims are a configuration
// error. CategoryUnset resolves to CategoryDefault at compile time.
type Category int8

const (
	CategoryUnset Category = iota
	CategoryDefaultPass
	CategoryNaturalPass
	CategoryLawOfTotalTricks
	CategoryNatural
	CategoryDefault
	CategoryNoTrumpSystem
	CategoryGadget
	CategoryRelay
)

func (c Category) String() string {
	switch c {
	case CategoryDefaultPass:
		return "DefaultPass"
	case CategoryNaturalPass:
		return "NaturalPass"
	case CategoryLawOfTotalTricks:
		return "LawOfTotalTricks"
	case CategoryNatural:
		return "Natural"
	case CategoryDefault:
		return "Default"
	case CategoryNoTrumpSystem:
		return "NoTrumpSystem"
	case CategoryGadget:
		return "Gadget"
	case CategoryRelay:
		return "Relay"
	}
	return fmt.Sprintf("Category(%d)", int8(c))
}
