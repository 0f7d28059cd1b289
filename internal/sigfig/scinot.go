package sigfig

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ErrMalformedNumber reports a literal that could not be parsed as a plain
// decimal or scientific-notation value.
var ErrMalformedNumber = errors.New("malformed scientific notation literal")

// ErrDivideByZero reports division by a zero-valued operand.
var ErrDivideByZero = errors.New("division by zero")

// Scinot is a measured quantity in normalized scientific notation. Digits are
// stored as text so that no binary floating-point error ever enters a value,
// and the significant-digit count is exactly the digits stored.
//
// Invariant: the value equals ±integral.fractional × 10^exponent, and
// integral is a single non-zero digit except for the literal zero value.
// Values are immutable; every operation returns a new Scinot.
type Scinot struct {
	neg        bool
	integral   string
	fractional string
	exponent   int
}

// mantissaSeps are the accepted separators between mantissa and exponent.
// Order matters: the multi-byte forms must be tried before "e"/"E".
var mantissaSeps = []string{"x10^", "X10^", "*10^", "e", "E"}

// ParseScinot parses a plain decimal ("125", "0.00125", "-4.0") or a
// scientific-notation literal ("1.25x10^2", "6.022e23") and normalizes it to
// single-leading-digit form. Trailing zeros in the fractional part are kept:
// they are significant.
func ParseScinot(s string) (Scinot, error) {
	text := s
	neg := false
	switch {
	case strings.HasPrefix(text, "-"):
		neg = true
		text = text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}

	mant := text
	exp := 0
	for _, sep := range mantissaSeps {
		i := strings.Index(text, sep)
		if i < 0 {
			continue
		}
		e, err := strconv.Atoi(text[i+len(sep):])
		if err != nil {
			return Scinot{}, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
		}
		mant = text[:i]
		exp = e
		break
	}

	intPart, fracPart, hasPoint := strings.Cut(mant, ".")
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return Scinot{}, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	if intPart == "" && fracPart == "" {
		return Scinot{}, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	if hasPoint && fracPart == "" {
		return Scinot{}, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return normalize(neg, intPart, fracPart, exp), nil
}

// MustScinot is ParseScinot for literals known at compile time. Panics on error.
func MustScinot(s string) Scinot {
	v, err := ParseScinot(s)
	if err != nil {
		panic(err)
	}
	return v
}

// normalize builds a Scinot from raw digit strings where the value is
// intDigits.fracDigits × 10^exp. Leading zeros are absorbed into the
// exponent until a non-zero leading digit is found; if every digit is zero
// the result is the canonical zero value.
func normalize(neg bool, intDigits, fracDigits string, exp int) Scinot {
	digits := intDigits + fracDigits
	e := exp + len(intDigits) - 1
	i := 0
	for i < len(digits) && digits[i] == '0' {
		i++
		e--
	}
	if i == len(digits) {
		return Scinot{integral: "0"}
	}
	digits = digits[i:]
	return Scinot{neg: neg, integral: digits[:1], fractional: digits[1:], exponent: e}
}

// SigDigits returns the significant-digit count: one for a bare integral
// digit, otherwise every stored digit counts.
func (s Scinot) SigDigits() int {
	if s.fractional == "" {
		return 1
	}
	return len(s.integral) + len(s.fractional)
}

// IsZero reports whether s is the zero value.
func (s Scinot) IsZero() bool {
	return s.integral == "0" || s.integral == ""
}

// Neg reports whether s is negative.
func (s Scinot) Neg() bool {
	return s.neg
}

// Exponent returns the decimal exponent.
func (s Scinot) Exponent() int {
	return s.exponent
}

// rat returns the exact value of s as a rational.
func (s Scinot) rat() *big.Rat {
	if s.IsZero() {
		return new(big.Rat)
	}
	n, _ := new(big.Int).SetString(s.integral+s.fractional, 10)
	r := new(big.Rat).SetInt(n)
	r.Mul(r, pow10(s.exponent-len(s.fractional)))
	if s.neg {
		r.Neg(r)
	}
	return r
}

// Mul returns s × o rounded to the smaller operand's significant-digit count.
func (s Scinot) Mul(o Scinot) Scinot {
	return fromRat(new(big.Rat).Mul(s.rat(), o.rat()), min(s.SigDigits(), o.SigDigits()))
}

// Div returns s ÷ o rounded to the smaller operand's significant-digit count.
func (s Scinot) Div(o Scinot) (Scinot, error) {
	if o.rat().Sign() == 0 {
		return Scinot{}, fmt.Errorf("%w: %s / %s", ErrDivideByZero, s, o)
	}
	return fromRat(new(big.Rat).Quo(s.rat(), o.rat()), min(s.SigDigits(), o.SigDigits())), nil
}

// MulExact returns s × e. An exact count carries no measurement precision, so
// the result keeps the receiver's own significant-digit count.
func (s Scinot) MulExact(e Exact) Scinot {
	return fromRat(new(big.Rat).Mul(s.rat(), e.rat()), s.SigDigits())
}

// DivExact returns s ÷ e, keeping the receiver's significant-digit count.
func (s Scinot) DivExact(e Exact) (Scinot, error) {
	if e.rat().Sign() == 0 {
		return Scinot{}, fmt.Errorf("%w: %s / %s", ErrDivideByZero, s, e)
	}
	return fromRat(new(big.Rat).Quo(s.rat(), e.rat()), s.SigDigits()), nil
}

// Add returns s + o rounded to the smaller operand's significant-digit count.
// This is the min-digit rule, not decimal-place alignment. A zero operand
// carries no precision and does not participate in the minimum, so a zero
// accumulator never collapses a sum to one digit.
func (s Scinot) Add(o Scinot) Scinot {
	return fromRat(new(big.Rat).Add(s.rat(), o.rat()), sumDigits(s, o))
}

// Sub returns s - o rounded to the smaller operand's significant-digit count,
// skipping zero operands like Add.
func (s Scinot) Sub(o Scinot) Scinot {
	return fromRat(new(big.Rat).Sub(s.rat(), o.rat()), sumDigits(s, o))
}

// sumDigits is the significant-digit count for a sum or difference: the
// minimum over the non-zero operands.
func sumDigits(s, o Scinot) int {
	switch {
	case s.IsZero():
		return o.SigDigits()
	case o.IsZero():
		return s.SigDigits()
	default:
		return min(s.SigDigits(), o.SigDigits())
	}
}

// Round returns s rounded to n significant digits, zero-padding on the right
// when s carries fewer digits than n.
func (s Scinot) Round(n int) Scinot {
	return fromRat(s.rat(), n)
}

// Equal reports field-exact equality: same sign, digits, and exponent.
// Numerically equal values with different significant-digit counts are not
// Equal.
func (s Scinot) Equal(o Scinot) bool {
	return s.neg == o.neg &&
		s.integral == o.integral &&
		s.fractional == o.fractional &&
		s.exponent == o.exponent
}

// EqualInt reports whether s equals the integer n. Unlike Equal, any
// representation whose fractional part is empty or all zeros is accepted.
func (s Scinot) EqualInt(n int64) bool {
	if !allZeros(s.fractional) {
		return false
	}
	return s.rat().Cmp(big.NewRat(n, 1)) == 0
}

// Float64 returns the nearest float64 to s.
func (s Scinot) Float64() float64 {
	f, _ := s.rat().Float64()
	return f
}

// String renders the canonical scientific form, e.g. "1.25x10^2".
func (s Scinot) String() string {
	var b strings.Builder
	if s.neg {
		b.WriteByte('-')
	}
	b.WriteString(s.integral)
	if s.fractional != "" {
		b.WriteByte('.')
		b.WriteString(s.fractional)
	}
	fmt.Fprintf(&b, "x10^%d", s.exponent)
	return b.String()
}

// Decimal renders the plain positional form, e.g. "125" or "0.00125".
// Trailing significant zeros are kept.
func (s Scinot) Decimal() string {
	digits := s.integral + s.fractional
	var out string
	switch {
	case s.exponent >= 0:
		point := s.exponent + 1
		if point >= len(digits) {
			out = digits + strings.Repeat("0", point-len(digits))
		} else {
			out = digits[:point] + "." + digits[point:]
		}
	default:
		out = "0." + strings.Repeat("0", -s.exponent-1) + digits
	}
	if s.neg {
		out = "-" + out
	}
	return out
}

// fromRat converts an exact rational produced by an arithmetic step into a
// Scinot rounded to n significant digits. The digit sequence is computed
// exactly (one guard digit past the cutoff), then rounded half-up with carry
// propagation, then re-normalized so integral is one non-zero digit.
func fromRat(r *big.Rat, n int) Scinot {
	if n < 1 {
		n = 1
	}
	if r.Sign() == 0 {
		return Scinot{integral: "0"}
	}
	neg := r.Sign() < 0
	abs := new(big.Rat).Abs(r)
	e := decimalExponent(abs)

	// abs × 10^(n-e) lies in [10^n, 10^(n+1)), so flooring it yields
	// exactly n+1 digits: the n we keep plus the rounding guard.
	scaled := new(big.Rat).Mul(abs, pow10(n-e))
	t := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	digits := []byte(t.String())

	kept, carried := roundHalfUp(digits[:n], digits[n])
	if carried {
		e++
	}
	return Scinot{neg: neg, integral: string(kept[:1]), fractional: string(kept[1:]), exponent: e}
}

// roundHalfUp rounds the kept digits up when the guard digit is 5 or more,
// carrying through any run of trailing 9s. The second result reports a carry
// past the leading digit, in which case the digits are 1 followed by zeros
// and the caller must increment the exponent.
func roundHalfUp(kept []byte, guard byte) ([]byte, bool) {
	out := append([]byte(nil), kept...)
	if guard < '5' {
		return out, false
	}
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != '9' {
			out[i]++
			return out, false
		}
		out[i] = '0'
	}
	out[0] = '1'
	return out, true
}

// decimalExponent returns the largest e with 10^e <= r. r must be positive.
func decimalExponent(r *big.Rat) int {
	e := len(r.Num().String()) - len(r.Denom().String())
	for r.Cmp(pow10(e)) < 0 {
		e--
	}
	for r.Cmp(pow10(e+1)) >= 0 {
		e++
	}
	return e
}

func pow10(k int) *big.Rat {
	abs := k
	if abs < 0 {
		abs = -abs
	}
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs)), nil)
	if k >= 0 {
		return new(big.Rat).SetInt(p)
	}
	return new(big.Rat).SetFrac(big.NewInt(1), p)
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allZeros(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}
