// Package ptable provides the periodic-table and polyatomic-ion reference
// data. Both tables are embedded TOML, parsed once at startup into maps that
// are never mutated afterwards, so every lookup is safe for concurrent use
// without locking.
package ptable

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed data/elements.toml
var elementsTOML []byte

//go:embed data/ions.toml
var ionsTOML []byte

// Element is one periodic-table entry. AtomicMass is kept as text so the
// table's significant digits survive until a caller parses it into a
// measured value.
type Element struct {
	Symbol     string `toml:"symbol"`
	Name       string `toml:"name"`
	AtomicMass string `toml:"atomic_mass"`
}

// Ion is one polyatomic-ion entry.
type Ion struct {
	Symbol string `toml:"symbol"`
	Name   string `toml:"name"`
	Charge int    `toml:"charge"`
}

var (
	elements   map[string]Element
	ionsBySym  map[string]Ion
	ionsByName map[string]Ion
)

func init() {
	var edoc struct {
		Elements []Element `toml:"elements"`
	}
	if err := toml.Unmarshal(elementsTOML, &edoc); err != nil {
		panic(fmt.Sprintf("ptable: parsing elements table: %v", err))
	}
	elements = make(map[string]Element, len(edoc.Elements))
	for _, e := range edoc.Elements {
		elements[e.Symbol] = e
	}

	var idoc struct {
		Ions []Ion `toml:"ions"`
	}
	if err := toml.Unmarshal(ionsTOML, &idoc); err != nil {
		panic(fmt.Sprintf("ptable: parsing ions table: %v", err))
	}
	ionsBySym = make(map[string]Ion, len(idoc.Ions))
	ionsByName = make(map[string]Ion, len(idoc.Ions))
	for _, ion := range idoc.Ions {
		ionsBySym[ion.Symbol] = ion
		ionsByName[strings.ToLower(ion.Name)] = ion
	}
}

// LookupElement returns the periodic-table entry for an element symbol.
func LookupElement(symbol string) (Element, bool) {
	e, ok := elements[symbol]
	return e, ok
}

// LookupIon returns the ion whose symbol or name matches. Names are matched
// case-insensitively.
func LookupIon(symbolOrName string) (Ion, bool) {
	if ion, ok := ionsBySym[symbolOrName]; ok {
		return ion, true
	}
	ion, ok := ionsByName[strings.ToLower(symbolOrName)]
	return ion, ok
}

// ContainsIon reports whether the symbol names a known polyatomic ion. This
// is the lookup the tokenizer's implicit-grouping heuristic runs against.
func ContainsIon(symbol string) bool {
	_, ok := ionsBySym[symbol]
	return ok
}

// ionSet adapts the package tables to the formula package's IonSet
// capability without coupling this package to it.
type ionSet struct{}

func (ionSet) ContainsIon(symbol string) bool { return ContainsIon(symbol) }

// Ions is the package-level ion set handed to the formula parser.
var Ions = ionSet{}
