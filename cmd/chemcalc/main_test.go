package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseCmdPrintsCanonicalForm(t *testing.T) {
	tests := []struct {
		formula string
		want    string
	}{
		{formula: "NaOH", want: "Na(OH)\n"},
		{formula: "Mg(OH)2", want: "Mg(OH)2\n"},
		{formula: "CuSO4*5H2O", want: "Cu(SO4)*[5]H2O\n"},
		{formula: "H2O(l)", want: "H2O(l)\n"},
		{formula: "[2]H2O", want: "[2]H2O\n"},
	}

	for _, tc := range tests {
		t.Run(tc.formula, func(t *testing.T) {
			out, err := runCmd(t, "parse", tc.formula)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestParseCmdRejectsMalformedFormula(t *testing.T) {
	_, err := runCmd(t, "parse", "(OH")
	require.Error(t, err)
}

func TestMassCmd(t *testing.T) {
	out, err := runCmd(t, "mass", "H2O")
	require.NoError(t, err)
	assert.Equal(t, "18.02 g/mol (1.802x10^1, 4 sig digits)\n", out)
}

func TestAtomsCmd(t *testing.T) {
	out, err := runCmd(t, "atoms", "Mg(OH)2")
	require.NoError(t, err)
	assert.Equal(t, "H:2,Mg:1,O:2\n", out)
}
