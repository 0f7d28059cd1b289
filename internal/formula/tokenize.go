package formula

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
)

// lexState enumerates the tokenizer's states. Each state is consumed by one
// dispatch method that reads the current character and returns the next
// state, so no transition depends on hidden cross-state variables.
type lexState int

const (
	lexStart lexState = iota
	lexCoefficient
	lexSymbol
	lexExpectSymbol
	lexSubscript
	lexGroupEnd
)

// stateSuffixes are the physical-state words recognized inside parentheses.
var stateSuffixes = map[string]struct{}{
	"s":  {},
	"l":  {},
	"g":  {},
	"aq": {},
}

// windowEntry is one completed symbol(+subscript) unit retained by the
// implicit polyatomic-ion lookback.
type windowEntry struct {
	idx  int    // index of the unit's Symbol token in toks
	pos  int    // source position of the unit
	text string // symbol text plus any subscript digits
}

type tokenizer struct {
	src  string
	ions IonSet
	pos  int
	toks []Token

	buf       []byte // text of the token being accumulated
	bufStart  int    // source position of buf[0]
	depth     int    // explicit polyatomic nesting depth
	bracketed bool   // current coefficient is the [...] form

	// Implicit-ion lookback: the trailing symbol units, oldest first,
	// never more than three. ownsPending marks that the newest entry may
	// still receive subscript digits before its unit is complete.
	window      []windowEntry
	ownsPending bool
}

// Tokenize converts a formula string into a token stream. Implicit
// polyatomic-ion groupings are materialized as explicit
// PolyatomicStart/PolyatomicEnd pairs, so the parser never needs tokenizer
// state. A nil IonSet disables implicit grouping.
func Tokenize(formula string, ions IonSet) ([]Token, error) {
	t := &tokenizer{src: formula, ions: ions}
	st := lexStart
	var err error
	for t.pos < len(t.src) {
		switch st {
		case lexStart:
			st, err = t.stepStart()
		case lexCoefficient:
			st, err = t.stepCoefficient()
		case lexSymbol:
			st, err = t.stepSymbol()
		case lexExpectSymbol:
			st, err = t.stepExpectSymbol()
		case lexSubscript:
			st, err = t.stepSubscript()
		case lexGroupEnd:
			st, err = t.stepGroupEnd()
		}
		if err != nil {
			return nil, err
		}
	}
	if err := t.finish(st); err != nil {
		return nil, err
	}
	return t.toks, nil
}

func (t *tokenizer) cur() byte { return t.src[t.pos] }

// accum appends the current character to the token buffer and advances.
func (t *tokenizer) accum() {
	if len(t.buf) == 0 {
		t.bufStart = t.pos
	}
	t.buf = append(t.buf, t.src[t.pos])
	t.pos++
}

func (t *tokenizer) emit(kind TokenKind, value string, pos int) {
	t.toks = append(t.toks, Token{Kind: kind, Value: value, Pos: pos})
}

// flush emits the buffered text as a token of the given kind.
func (t *tokenizer) flush(kind TokenKind) {
	t.emit(kind, string(t.buf), t.bufStart)
	t.buf = t.buf[:0]
}

func (t *tokenizer) errInvalid(c byte) error {
	return &TokenizeError{Pos: t.pos, Msg: fmt.Sprintf("invalid character %q", c)}
}

func (t *tokenizer) stepStart() (lexState, error) {
	c := t.cur()
	switch {
	case isUpper(c):
		t.accum()
		return lexSymbol, nil
	case isLower(c) && t.depth > 0:
		// Inside parentheses a lowercase run may be a state suffix.
		t.accum()
		return lexSymbol, nil
	case c == '[':
		t.clearWindow()
		t.bracketed = true
		t.pos++
		return lexCoefficient, nil
	case isDigit(c):
		// A bare coefficient is only valid after a combination marker,
		// e.g. the 5 in CuSO4*5H2O.
		if n := len(t.toks); n > 0 && t.toks[n-1].Kind == TokenCombinedWith {
			t.bracketed = false
			t.accum()
			return lexCoefficient, nil
		}
		return 0, &TokenizeError{Pos: t.pos, Msg: fmt.Sprintf("bare coefficient %q must be bracketed", c)}
	case c == '(':
		t.openGroup()
		return lexStart, nil
	default:
		return 0, t.errInvalid(c)
	}
}

func (t *tokenizer) stepCoefficient() (lexState, error) {
	c := t.cur()
	if t.bracketed {
		switch {
		case isDigit(c), c == '.', c == '/':
			t.accum()
			return lexCoefficient, nil
		case c == ']':
			if len(t.buf) == 0 {
				return 0, &TokenizeError{Pos: t.pos, Msg: "empty coefficient"}
			}
			value, err := t.coefficientValue(string(t.buf))
			if err != nil {
				return 0, err
			}
			t.emit(TokenCoefficient, value, t.bufStart)
			t.buf = t.buf[:0]
			t.pos++
			return lexExpectSymbol, nil
		default:
			return 0, t.errInvalid(c)
		}
	}
	switch {
	case isDigit(c):
		t.accum()
		return lexCoefficient, nil
	case isUpper(c):
		t.flush(TokenCoefficient)
		t.accum()
		return lexSymbol, nil
	case c == '(':
		t.flush(TokenCoefficient)
		t.openGroup()
		return lexStart, nil
	default:
		return 0, t.errInvalid(c)
	}
}

func (t *tokenizer) stepExpectSymbol() (lexState, error) {
	c := t.cur()
	if isUpper(c) {
		t.accum()
		return lexSymbol, nil
	}
	return 0, &TokenizeError{Pos: t.pos, Msg: fmt.Sprintf("expected element symbol after coefficient, found %q", c)}
}

func (t *tokenizer) stepSymbol() (lexState, error) {
	c := t.cur()
	switch {
	case isLower(c):
		t.accum()
		return lexSymbol, nil
	case isUpper(c):
		t.flushSymbol(true)
		t.accum()
		return lexSymbol, nil
	case isDigit(c):
		t.flushSymbol(false)
		t.accum()
		return lexSubscript, nil
	case c == '(':
		t.flushSymbol(true)
		t.openGroup()
		return lexStart, nil
	case c == ')':
		return t.closeGroupFromSymbol()
	case c == '*':
		t.flushSymbol(true)
		return t.combine()
	case c == '[':
		t.flushSymbol(true)
		t.clearWindow()
		t.bracketed = true
		t.pos++
		return lexCoefficient, nil
	default:
		return 0, t.errInvalid(c)
	}
}

func (t *tokenizer) stepSubscript() (lexState, error) {
	c := t.cur()
	switch {
	case isDigit(c):
		t.accum()
		return lexSubscript, nil
	case isUpper(c):
		t.flushSubscript()
		t.accum()
		return lexSymbol, nil
	case c == '(':
		t.flushSubscript()
		t.openGroup()
		return lexStart, nil
	case c == ')':
		if t.depth == 0 {
			return 0, &TokenizeError{Pos: t.pos, Msg: "unmatched ')'"}
		}
		t.flushSubscript()
		t.emit(TokenPolyatomicEnd, ")", t.pos)
		t.depth--
		t.pos++
		return lexGroupEnd, nil
	case c == '*':
		t.flushSubscript()
		return t.combine()
	case c == '[':
		t.flushSubscript()
		t.clearWindow()
		t.bracketed = true
		t.pos++
		return lexCoefficient, nil
	default:
		return 0, t.errInvalid(c)
	}
}

func (t *tokenizer) stepGroupEnd() (lexState, error) {
	c := t.cur()
	switch {
	case isDigit(c):
		t.accum()
		return lexSubscript, nil
	case isUpper(c):
		t.accum()
		return lexSymbol, nil
	case c == '(':
		t.openGroup()
		return lexStart, nil
	case c == ')':
		if t.depth == 0 {
			return 0, &TokenizeError{Pos: t.pos, Msg: "unmatched ')'"}
		}
		t.emit(TokenPolyatomicEnd, ")", t.pos)
		t.depth--
		t.pos++
		return lexGroupEnd, nil
	case c == '*':
		return t.combine()
	default:
		return 0, t.errInvalid(c)
	}
}

func (t *tokenizer) finish(st lexState) error {
	switch st {
	case lexSymbol:
		t.flushSymbol(true)
	case lexSubscript:
		t.flushSubscript()
	case lexGroupEnd:
	case lexStart:
		if len(t.toks) == 0 {
			return &TokenizeError{Pos: 0, Msg: "empty formula"}
		}
		return &TokenizeError{Pos: len(t.src), Msg: "unexpected formula termination"}
	default:
		return &TokenizeError{Pos: len(t.src), Msg: "unexpected formula termination"}
	}
	if t.depth > 0 {
		return &TokenizeError{Pos: len(t.src), Msg: "unexpected formula termination"}
	}
	t.checkWindow(true)
	return nil
}

// openGroup starts an explicit polyatomic group. Entering one resets the
// implicit-ion lookback.
func (t *tokenizer) openGroup() {
	t.clearWindow()
	t.emit(TokenPolyatomicStart, "(", t.pos)
	t.depth++
	t.pos++
}

// closeGroupFromSymbol handles ')' while a symbol is buffered. When the
// buffered word is a state suffix immediately inside the opening bracket,
// the whole group is reinterpreted as a state annotation and the
// PolyatomicStart token is discarded.
func (t *tokenizer) closeGroupFromSymbol() (lexState, error) {
	word := string(t.buf)
	if n := len(t.toks); n > 0 && t.toks[n-1].Kind == TokenPolyatomicStart {
		if _, ok := stateSuffixes[word]; ok {
			t.toks = t.toks[:n-1]
			t.emit(TokenState, word, t.bufStart)
			t.buf = t.buf[:0]
			t.depth--
			t.pos++
			return lexGroupEnd, nil
		}
	}
	if len(word) > 0 && isLower(word[0]) {
		return 0, &TokenizeError{Pos: t.bufStart, Msg: fmt.Sprintf("unknown state suffix %q", word)}
	}
	if t.depth == 0 {
		return 0, &TokenizeError{Pos: t.pos, Msg: "unmatched ')'"}
	}
	t.flushSymbol(true)
	t.emit(TokenPolyatomicEnd, ")", t.pos)
	t.depth--
	t.pos++
	return lexGroupEnd, nil
}

// combine terminates the current compound with a CombinedWith token.
func (t *tokenizer) combine() (lexState, error) {
	if t.depth > 0 {
		return 0, &TokenizeError{Pos: t.pos, Msg: "'*' inside polyatomic group"}
	}
	t.clearWindow()
	t.emit(TokenCombinedWith, "*", t.pos)
	t.pos++
	return lexStart, nil
}

// coefficientValue reduces a ratio coefficient "a/b" to a 3-decimal-place
// quotient; plain coefficients pass through unchanged.
func (t *tokenizer) coefficientValue(text string) (string, error) {
	num, den, found := strings.Cut(text, "/")
	if !found {
		return text, nil
	}
	if strings.Contains(den, "/") {
		return "", &TokenizeError{Pos: t.bufStart, Msg: fmt.Sprintf("malformed coefficient ratio %q", text)}
	}
	a, okA := new(big.Rat).SetString(num)
	b, okB := new(big.Rat).SetString(den)
	if !okA || !okB || b.Sign() == 0 {
		return "", &TokenizeError{Pos: t.bufStart, Msg: fmt.Sprintf("malformed coefficient ratio %q", text)}
	}
	return new(big.Rat).Quo(a, b).FloatString(3), nil
}

// flushSymbol emits the buffered symbol and, outside explicit groups,
// records it in the lookback window. complete marks that no subscript can
// follow, which is when the window is tested.
func (t *tokenizer) flushSymbol(complete bool) {
	text := string(t.buf)
	idx := len(t.toks)
	pos := t.bufStart
	t.flush(TokenSymbol)
	if t.depth > 0 {
		return
	}
	t.window = append(t.window, windowEntry{idx: idx, pos: pos, text: text})
	t.ownsPending = true
	if complete {
		t.checkWindow(false)
		t.ownsPending = false
	}
}

// flushSubscript emits the buffered subscript. A subscript completing a
// windowed symbol unit extends that unit's text and triggers the window
// test; a subscript attached to a closed group does not touch the window.
func (t *tokenizer) flushSubscript() {
	owned := t.ownsPending && t.depth == 0 && len(t.window) > 0
	if owned {
		t.window[len(t.window)-1].text += string(t.buf)
	}
	t.flush(TokenSubscript)
	if owned {
		t.checkWindow(false)
		t.ownsPending = false
	}
}

func (t *tokenizer) clearWindow() {
	t.window = t.window[:0]
	t.ownsPending = false
}

// checkWindow tests the concatenated lookback window against the ion table,
// narrowing from the oldest entry on a miss. Mid-scan a two-entry window is
// kept on a miss so a later unit can still widen it to three; at end of
// input the narrowing runs to exhaustion. Windows of fewer than two entries
// are never tested, so a trailing ion spanning a single unit or more than
// three is not detected.
func (t *tokenizer) checkWindow(final bool) {
	if t.ions == nil {
		return
	}
	for len(t.window) >= 2 {
		var text strings.Builder
		for _, e := range t.window {
			text.WriteString(e.text)
		}
		if t.ions.ContainsIon(text.String()) {
			t.insertImplicitGroup()
			return
		}
		if !final && len(t.window) == 2 {
			return
		}
		t.window = t.window[1:]
	}
}

// insertImplicitGroup retroactively brackets the window's span with
// PolyatomicStart/End tokens.
func (t *tokenizer) insertImplicitGroup() {
	first := t.window[0]
	t.toks = slices.Insert(t.toks, first.idx, Token{Kind: TokenPolyatomicStart, Value: "(", Pos: first.pos})
	t.emit(TokenPolyatomicEnd, ")", t.pos)
	t.clearWindow()
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
