package formula

import (
	"strconv"

	"chem-calc-api/internal/sigfig"
)

// NodeKind tags the variants of a formula tree node.
type NodeKind int

const (
	// KindAtom is an element symbol with a multiplicity; no children.
	KindAtom NodeKind = iota
	// KindCompound is the top-level grouping for one side of a combined
	// formula.
	KindCompound
	// KindPolyatomicIon is a bracketed group, explicit or inferred.
	KindPolyatomicIon
	// KindMonatomicIon is reserved for charge-aware parsing; nothing
	// produces it yet.
	KindMonatomicIon
)

var nodeKindNames = [...]string{
	KindAtom:          "Atom",
	KindCompound:      "Compound",
	KindPolyatomicIon: "PolyatomicIon",
	KindMonatomicIon:  "MonatomicIon",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// Phase is a compound's physical-state annotation.
type Phase int

const (
	PhaseUnspecified Phase = iota
	PhaseSolid
	PhaseLiquid
	PhaseGas
	PhaseAqueous
)

var phaseSuffixes = map[string]Phase{
	"s":  PhaseSolid,
	"l":  PhaseLiquid,
	"g":  PhaseGas,
	"aq": PhaseAqueous,
}

func phaseFromSuffix(s string) (Phase, bool) {
	p, ok := phaseSuffixes[s]
	return p, ok
}

// String returns the formula suffix for the phase, empty for unspecified.
func (p Phase) String() string {
	for s, v := range phaseSuffixes {
		if v == p {
			return s
		}
	}
	return ""
}

// Node is one node of the parsed formula tree. Symbol holds the element
// letters for an atom and the reconstructed canonical formula text for a
// compound or polyatomic ion. Count is always an exact rational multiplicity.
type Node struct {
	Kind     NodeKind
	Symbol   string
	Count    sigfig.Exact
	Phase    Phase
	Children []*Node
}

// Root is the parsed form of a whole formula string: one Compound node per
// side of a '*'-combined formula. It is the only long-lived output of a
// parse; token streams and grouping lists never escape the call.
type Root struct {
	Formula   string
	Compounds []*Node
}

// Flatten reduces the tree to a mapping from element symbol to total count
// across all compounds and nesting levels, multiplying each node's
// multiplicity into its descendants on the way down. Map iteration order is
// not significant.
func (r *Root) Flatten() map[string]sigfig.Exact {
	totals := make(map[string]sigfig.Exact)
	for _, c := range r.Compounds {
		flattenInto(c, sigfig.ExactInt(1), totals)
	}
	return totals
}

func flattenInto(n *Node, mult sigfig.Exact, totals map[string]sigfig.Exact) {
	m := mult.Mul(n.Count)
	if n.Kind == KindAtom {
		totals[n.Symbol] = totals[n.Symbol].Add(m)
		return
	}
	for _, child := range n.Children {
		flattenInto(child, m, totals)
	}
}
