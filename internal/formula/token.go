// Package formula parses chemical-formula strings into a typed tree of
// compounds, polyatomic ions, and atoms. Parsing runs in three stages: a
// character-level tokenizer, a grouping pass that nests polyatomic spans and
// splits combined compounds, and a tree-construction pass that produces the
// Root consumed by downstream chemistry calculations.
package formula

import (
	"fmt"
	"strconv"
)

// TokenKind classifies a lexical unit of a formula string.
type TokenKind int

const (
	// TokenSymbol is an element name: one uppercase letter followed by
	// zero or more lowercase letters.
	TokenSymbol TokenKind = iota
	// TokenSubscript is a digit run following a symbol or closing bracket.
	TokenSubscript
	// TokenCoefficient is a leading multiplier, bracketed ("[2]", "[1/2]")
	// or bare after a combination marker ("*5H2O").
	TokenCoefficient
	// TokenCombinedWith separates combined compounds, e.g. a hydrate's
	// water of crystallization.
	TokenCombinedWith
	// TokenPolyatomicStart and TokenPolyatomicEnd delimit a polyatomic
	// group, whether written explicitly or inferred from the ion table.
	TokenPolyatomicStart
	TokenPolyatomicEnd
	// TokenState is a physical-state suffix: s, l, g, or aq.
	TokenState
)

var tokenKindNames = [...]string{
	TokenSymbol:          "Symbol",
	TokenSubscript:       "Subscript",
	TokenCoefficient:     "Coefficient",
	TokenCombinedWith:    "CombinedWith",
	TokenPolyatomicStart: "PolyatomicStart",
	TokenPolyatomicEnd:   "PolyatomicEnd",
	TokenState:           "State",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a classified lexical unit with its raw text and the byte offset
// where it began in the source formula.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Value + "@" + strconv.Itoa(t.Pos)
}

// IonSet is the reference-data capability the tokenizer consults to decide
// whether a trailing run of symbols forms a known polyatomic ion. The
// implementation must be safe for concurrent use.
type IonSet interface {
	ContainsIon(symbol string) bool
}

// IonSetFunc adapts a plain function to the IonSet interface.
type IonSetFunc func(symbol string) bool

func (f IonSetFunc) ContainsIon(symbol string) bool { return f(symbol) }

// TokenizeError reports a character the tokenizer could not accept. Pos is
// the byte offset of the offending character, or the formula length when the
// input ended unexpectedly.
type TokenizeError struct {
	Pos int
	Msg string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize: %s at position %d", e.Msg, e.Pos)
}

// ParseError reports a token that arrived in a state that could not accept
// it. Index is the position of the offending token in the token stream.
type ParseError struct {
	Index int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %s at token %d", e.Msg, e.Index)
}
