package sigfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactArithmeticIsExact(t *testing.T) {
	third := ExactFrac(1, 3)

	sum := third.Add(third).Add(third)
	assert.True(t, sum.IsOne(), "1/3 + 1/3 + 1/3 should be exactly 1")

	product := ExactFrac(2, 3).Mul(ExactFrac(3, 2))
	assert.True(t, product.IsOne())
}

func TestExactEqualityIsByValue(t *testing.T) {
	assert.True(t, ExactFrac(2, 4).Equal(ExactFrac(1, 2)))
	assert.True(t, ExactFrac(-3, 3).Equal(ExactInt(-1)))
	assert.False(t, ExactFrac(1, 2).Equal(ExactFrac(1, 3)))
}

func TestExactCmp(t *testing.T) {
	assert.Equal(t, -1, ExactFrac(1, 3).Cmp(ExactFrac(1, 2)))
	assert.Equal(t, 0, ExactInt(5).Cmp(ExactFrac(10, 2)))
	assert.Equal(t, 1, ExactInt(1).Cmp(ExactInt(0)))
}

func TestExactTruncate(t *testing.T) {
	assert.Equal(t, int64(3), ExactFrac(7, 2).Truncate())
	assert.Equal(t, int64(-3), ExactFrac(-7, 2).Truncate())
	assert.Equal(t, int64(5), ExactInt(5).Truncate())
}

func TestExactZeroValueBehavesAsZero(t *testing.T) {
	var zero Exact
	assert.Equal(t, 0, zero.Sign())
	assert.True(t, zero.Add(ExactInt(2)).Equal(ExactInt(2)))
	assert.Equal(t, "0", zero.String())
}

func TestExactFracPanicsOnZeroDenominator(t *testing.T) {
	assert.Panics(t, func() { ExactFrac(1, 0) })
}

func TestParseExact(t *testing.T) {
	tests := []struct {
		in   string
		want Exact
	}{
		{in: "3", want: ExactInt(3)},
		{in: "5/2", want: ExactFrac(5, 2)},
		{in: "0.333", want: ExactFrac(333, 1000)},
		{in: "-2", want: ExactInt(-2)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseExact(tc.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want))
		})
	}

	for _, in := range []string{"", "x", "1/0", "1e3"} {
		t.Run("bad "+in, func(t *testing.T) {
			_, err := ParseExact(in)
			require.Error(t, err)
		})
	}
}

func TestExactString(t *testing.T) {
	assert.Equal(t, "3", ExactInt(3).String())
	assert.Equal(t, "1/2", ExactFrac(2, 4).String())
	assert.Equal(t, "7/2", ExactFrac(7, 2).String())
}
