// Package chem implements the chemistry calculations and HTTP endpoints
// built on top of the formula parser: molar mass with significant-figure
// propagation, flattened atom counts, and the batch command surface.
package chem

import (
	"chem-calc-api/internal/sigfig"
)

// Measurement is a measured value with a unit label. The value carries its
// own significant digits; the unit string is combined symbolically.
type Measurement struct {
	Value sigfig.Scinot
	Units string
}

// Mul returns the product of two measurements with multiplied units.
func (m Measurement) Mul(o Measurement) Measurement {
	return Measurement{Value: m.Value.Mul(o.Value), Units: mulUnits(m.Units, o.Units)}
}

// Div returns the quotient of two measurements with divided units.
func (m Measurement) Div(o Measurement) (Measurement, error) {
	v, err := m.Value.Div(o.Value)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Units: divUnits(m.Units, o.Units)}, nil
}

// MulExact scales the measurement by an exact count, leaving units and the
// significant-digit count unchanged.
func (m Measurement) MulExact(e sigfig.Exact) Measurement {
	return Measurement{Value: m.Value.MulExact(e), Units: m.Units}
}

// Add returns the sum of two measurements. Units must already agree.
func (m Measurement) Add(o Measurement) (Measurement, error) {
	if m.Units != o.Units {
		return Measurement{}, errUnitMismatch(m.Units, o.Units)
	}
	return Measurement{Value: m.Value.Add(o.Value), Units: m.Units}, nil
}

// String renders the plain decimal value followed by the units.
func (m Measurement) String() string {
	if m.Units == "" {
		return m.Value.Decimal()
	}
	return m.Value.Decimal() + " " + m.Units
}

func mulUnits(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "*" + b
	}
}

func divUnits(a, b string) string {
	switch {
	case b == "":
		return a
	case a == b:
		return ""
	case a == "":
		return "1/" + b
	default:
		return a + "/" + b
	}
}
