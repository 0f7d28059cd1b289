package chem

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"chem-calc-api/internal/formula"
	"chem-calc-api/internal/ptable"
	"chem-calc-api/internal/sigfig"
)

// ErrUnknownElement reports a formula symbol absent from the periodic table.
var ErrUnknownElement = errors.New("unknown element")

func errUnitMismatch(a, b string) error {
	return fmt.Errorf("unit mismatch: %q vs %q", a, b)
}

// MolarMass parses a formula and sums per-element atomic masses weighted by
// their exact atom counts, in grams per mole. Each atomic mass keeps the
// periodic table's significant digits through the exact-count
// multiplication; the summation then applies the usual minimum-digit rule.
func MolarMass(formulaText string) (Measurement, error) {
	root, err := formula.Parse(formulaText, ptable.Ions)
	if err != nil {
		return Measurement{}, err
	}
	return MolarMassOf(root)
}

// MolarMassOf computes the molar mass of an already parsed formula.
func MolarMassOf(root *formula.Root) (Measurement, error) {
	counts := root.Flatten()
	if len(counts) == 0 {
		return Measurement{}, fmt.Errorf("no atoms in formula %q", root.Formula)
	}

	var total sigfig.Scinot
	// Sorted iteration keeps rounding deterministic across calls.
	for _, symbol := range slices.Sorted(maps.Keys(counts)) {
		e, ok := ptable.LookupElement(symbol)
		if !ok {
			return Measurement{}, fmt.Errorf("%w: %q in %q", ErrUnknownElement, symbol, root.Formula)
		}
		mass, err := sigfig.ParseScinot(e.AtomicMass)
		if err != nil {
			return Measurement{}, fmt.Errorf("atomic mass of %s: %w", symbol, err)
		}
		total = total.Add(mass.MulExact(counts[symbol]))
	}
	return Measurement{Value: total, Units: "g/mol"}, nil
}

// FlattenFormula parses a formula and renders its per-element totals as a
// stable, sorted listing like "H:2,O:1".
func FlattenFormula(formulaText string) (string, error) {
	root, err := formula.Parse(formulaText, ptable.Ions)
	if err != nil {
		return "", err
	}
	counts := root.Flatten()

	var b strings.Builder
	for i, symbol := range slices.Sorted(maps.Keys(counts)) {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(symbol)
		b.WriteString(":")
		b.WriteString(counts[symbol].String())
	}
	return b.String(), nil
}
