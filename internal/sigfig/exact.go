// Package sigfig implements the two numeric types chemistry arithmetic is
// built on: Scinot, a scientific-notation value that tracks significant
// digits through every operation, and Exact, a rational count that never
// loses precision and never participates in significant-figure accounting.
package sigfig

import (
	"fmt"
	"math/big"
	"strings"
)

// Exact is an exact rational quantity, used for atom multiplicities and
// stoichiometric coefficients. Values are immutable; every operation
// returns a new Exact. The zero value is 0.
type Exact struct {
	r *big.Rat
}

// ExactInt returns the Exact equal to n.
func ExactInt(n int64) Exact {
	return Exact{r: big.NewRat(n, 1)}
}

// ExactFrac returns the Exact equal to num/den. Panics if den is zero.
func ExactFrac(num, den int64) Exact {
	if den == 0 {
		panic("sigfig: zero denominator")
	}
	return Exact{r: big.NewRat(num, den)}
}

// ParseExact parses a decimal literal ("3", "0.333") or a ratio of two
// integers ("5/2") as an exact rational.
func ParseExact(s string) (Exact, error) {
	if strings.ContainsAny(s, "eE") {
		return Exact{}, fmt.Errorf("malformed exact count %q", s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Exact{}, fmt.Errorf("malformed exact count %q", s)
	}
	return Exact{r: r}, nil
}

// rat returns the underlying rational, treating the zero value as 0.
func (e Exact) rat() *big.Rat {
	if e.r == nil {
		return new(big.Rat)
	}
	return e.r
}

// Add returns e + o.
func (e Exact) Add(o Exact) Exact {
	return Exact{r: new(big.Rat).Add(e.rat(), o.rat())}
}

// Mul returns e × o.
func (e Exact) Mul(o Exact) Exact {
	return Exact{r: new(big.Rat).Mul(e.rat(), o.rat())}
}

// Cmp compares e and o, returning -1, 0, or +1.
func (e Exact) Cmp(o Exact) int {
	return e.rat().Cmp(o.rat())
}

// Equal reports whether e and o have the same value. Equality is by value,
// never by representation.
func (e Exact) Equal(o Exact) bool {
	return e.Cmp(o) == 0
}

// IsOne reports whether e equals 1.
func (e Exact) IsOne() bool {
	return e.rat().Cmp(big.NewRat(1, 1)) == 0
}

// Sign returns -1, 0, or +1 depending on the sign of e.
func (e Exact) Sign() int {
	return e.rat().Sign()
}

// Truncate returns e rounded toward zero to an integer.
func (e Exact) Truncate() int64 {
	q := new(big.Int).Quo(e.rat().Num(), e.rat().Denom())
	return q.Int64()
}

// Float64 returns the nearest float64 to e.
func (e Exact) Float64() float64 {
	f, _ := e.rat().Float64()
	return f
}

// String renders integers without a denominator and everything else as "n/d".
func (e Exact) String() string {
	r := e.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}
