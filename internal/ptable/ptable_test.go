package ptable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chem-calc-api/internal/sigfig"
)

func TestTablesLoad(t *testing.T) {
	assert.Len(t, elements, 118)
	assert.NotEmpty(t, ionsBySym)
}

func TestLookupElement(t *testing.T) {
	fe, ok := LookupElement("Fe")
	require.True(t, ok)
	assert.Equal(t, "Iron", fe.Name)
	assert.Equal(t, "55.845", fe.AtomicMass)

	_, ok = LookupElement("Xx")
	assert.False(t, ok)
}

func TestAtomicMassesParseAsMeasurements(t *testing.T) {
	for symbol, e := range elements {
		mass, err := sigfig.ParseScinot(e.AtomicMass)
		require.NoError(t, err, "atomic mass of %s", symbol)
		assert.False(t, mass.IsZero(), "atomic mass of %s", symbol)
		assert.False(t, mass.Neg(), "atomic mass of %s", symbol)
	}
}

func TestLookupIon(t *testing.T) {
	bySym, ok := LookupIon("SO4")
	require.True(t, ok)
	assert.Equal(t, "sulfate", bySym.Name)
	assert.Equal(t, -2, bySym.Charge)

	byName, ok := LookupIon("Sulfate")
	require.True(t, ok)
	assert.Equal(t, bySym, byName)

	_, ok = LookupIon("unobtainium")
	assert.False(t, ok)
}

func TestContainsIon(t *testing.T) {
	assert.True(t, ContainsIon("CO3"))
	assert.True(t, Ions.ContainsIon("OH"))
	assert.False(t, ContainsIon("H2O"))
	// Monatomic species never appear in the implicit-grouping table.
	assert.False(t, ContainsIon("Cl"))
}
