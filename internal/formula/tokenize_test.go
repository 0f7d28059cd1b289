package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testIons is a small stand-in for the real ion table.
var testIons = IonSetFunc(func(symbol string) bool {
	switch symbol {
	case "OH", "CO3", "SO4", "NO3", "C2H3O2":
		return true
	}
	return false
})

func TestTokenizeSimpleCompound(t *testing.T) {
	got, err := Tokenize("H2O", nil)
	require.NoError(t, err)

	want := []Token{
		{Kind: TokenSymbol, Value: "H", Pos: 0},
		{Kind: TokenSubscript, Value: "2", Pos: 1},
		{Kind: TokenSymbol, Value: "O", Pos: 2},
	}
	assert.Equal(t, want, got)
}

func TestTokenizeExplicitPolyatomicGroup(t *testing.T) {
	got, err := Tokenize("Mg(OH)2", nil)
	require.NoError(t, err)

	want := []Token{
		{Kind: TokenSymbol, Value: "Mg", Pos: 0},
		{Kind: TokenPolyatomicStart, Value: "(", Pos: 2},
		{Kind: TokenSymbol, Value: "O", Pos: 3},
		{Kind: TokenSymbol, Value: "H", Pos: 4},
		{Kind: TokenPolyatomicEnd, Value: ")", Pos: 5},
		{Kind: TokenSubscript, Value: "2", Pos: 6},
	}
	assert.Equal(t, want, got)
}

func TestTokenizeImplicitIonDependsOnTable(t *testing.T) {
	t.Run("ion in table is bracketed", func(t *testing.T) {
		got, err := Tokenize("Na2CO3", testIons)
		require.NoError(t, err)

		want := []Token{
			{Kind: TokenSymbol, Value: "Na", Pos: 0},
			{Kind: TokenSubscript, Value: "2", Pos: 2},
			{Kind: TokenPolyatomicStart, Value: "(", Pos: 3},
			{Kind: TokenSymbol, Value: "C", Pos: 3},
			{Kind: TokenSymbol, Value: "O", Pos: 4},
			{Kind: TokenSubscript, Value: "3", Pos: 5},
			{Kind: TokenPolyatomicEnd, Value: ")", Pos: 6},
		}
		assert.Equal(t, want, got)
	})

	t.Run("ion absent parses as independent atoms", func(t *testing.T) {
		got, err := Tokenize("Na2CO3", nil)
		require.NoError(t, err)

		want := []Token{
			{Kind: TokenSymbol, Value: "Na", Pos: 0},
			{Kind: TokenSubscript, Value: "2", Pos: 2},
			{Kind: TokenSymbol, Value: "C", Pos: 3},
			{Kind: TokenSymbol, Value: "O", Pos: 4},
			{Kind: TokenSubscript, Value: "3", Pos: 5},
		}
		assert.Equal(t, want, got)
	})
}

func TestTokenizeImplicitIonNarrowsWindow(t *testing.T) {
	// NaOH: the three-unit window Na,O,H misses, then the narrowed O,H
	// window hits hydroxide.
	got, err := Tokenize("NaOH", testIons)
	require.NoError(t, err)

	want := []Token{
		{Kind: TokenSymbol, Value: "Na", Pos: 0},
		{Kind: TokenPolyatomicStart, Value: "(", Pos: 2},
		{Kind: TokenSymbol, Value: "O", Pos: 2},
		{Kind: TokenSymbol, Value: "H", Pos: 3},
		{Kind: TokenPolyatomicEnd, Value: ")", Pos: 4},
	}
	assert.Equal(t, want, got)
}

func TestTokenizeImplicitIonThreeUnits(t *testing.T) {
	toks, err := Tokenize("NaC2H3O2", testIons)
	require.NoError(t, err)

	// Acetate spans three symbol units; the bracket must open before C.
	require.True(t, len(toks) > 2)
	assert.Equal(t, TokenSymbol, toks[0].Kind)
	assert.Equal(t, "Na", toks[0].Value)
	assert.Equal(t, TokenPolyatomicStart, toks[1].Kind)
	assert.Equal(t, TokenPolyatomicEnd, toks[len(toks)-1].Kind)
}

func TestTokenizeCombinedCompound(t *testing.T) {
	got, err := Tokenize("CuSO4*5H2O", testIons)
	require.NoError(t, err)

	want := []Token{
		{Kind: TokenSymbol, Value: "Cu", Pos: 0},
		{Kind: TokenPolyatomicStart, Value: "(", Pos: 2},
		{Kind: TokenSymbol, Value: "S", Pos: 2},
		{Kind: TokenSymbol, Value: "O", Pos: 3},
		{Kind: TokenSubscript, Value: "4", Pos: 4},
		{Kind: TokenPolyatomicEnd, Value: ")", Pos: 5},
		{Kind: TokenCombinedWith, Value: "*", Pos: 5},
		{Kind: TokenCoefficient, Value: "5", Pos: 6},
		{Kind: TokenSymbol, Value: "H", Pos: 7},
		{Kind: TokenSubscript, Value: "2", Pos: 8},
		{Kind: TokenSymbol, Value: "O", Pos: 9},
	}
	assert.Equal(t, want, got)
}

func TestTokenizeBracketedCoefficient(t *testing.T) {
	got, err := Tokenize("[2]H2O", nil)
	require.NoError(t, err)

	want := []Token{
		{Kind: TokenCoefficient, Value: "2", Pos: 1},
		{Kind: TokenSymbol, Value: "H", Pos: 3},
		{Kind: TokenSubscript, Value: "2", Pos: 4},
		{Kind: TokenSymbol, Value: "O", Pos: 5},
	}
	assert.Equal(t, want, got)
}

func TestTokenizeRatioCoefficientReduces(t *testing.T) {
	got, err := Tokenize("[1/3]Fe", nil)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, TokenCoefficient, got[0].Kind)
	assert.Equal(t, "0.333", got[0].Value)
	assert.Equal(t, "Fe", got[1].Value)
}

func TestTokenizeStateSuffix(t *testing.T) {
	tests := []struct {
		in    string
		state string
	}{
		{in: "NaCl(aq)", state: "aq"},
		{in: "H2O(l)", state: "l"},
		{in: "CO2(g)", state: "g"},
		{in: "Fe(s)", state: "s"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Tokenize(tc.in, nil)
			require.NoError(t, err)

			last := got[len(got)-1]
			assert.Equal(t, TokenState, last.Kind)
			assert.Equal(t, tc.state, last.Value)
			for _, tok := range got[:len(got)-1] {
				assert.NotEqual(t, TokenPolyatomicStart, tok.Kind)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "bare leading coefficient", in: "2H"},
		{name: "unterminated group", in: "(OH"},
		{name: "invalid character", in: "H$O"},
		{name: "empty coefficient", in: "[]H"},
		{name: "unterminated coefficient", in: "H[2"},
		{name: "coefficient without symbol", in: "[2]"},
		{name: "non-symbol after coefficient", in: "[2]2"},
		{name: "empty formula", in: ""},
		{name: "lowercase start", in: "water"},
		{name: "unmatched close", in: "OH)"},
		{name: "trailing combination", in: "H2O*"},
		{name: "unknown state suffix", in: "(xy)"},
		{name: "malformed ratio", in: "[1/2/3]Fe"},
		{name: "ratio by zero", in: "[1/0]Fe"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize(tc.in, testIons)
			require.Error(t, err)

			var terr *TokenizeError
			assert.ErrorAs(t, err, &terr)
		})
	}
}
