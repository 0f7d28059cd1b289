package formula

import (
	"strings"

	"chem-calc-api/internal/sigfig"
)

// Parse runs the tokenizer, the grouping pass, and tree construction over a
// formula string, returning the parsed Root. ions is the polyatomic-ion
// lookup consulted for implicit groupings; nil disables them.
func Parse(formulaText string, ions IonSet) (*Root, error) {
	toks, err := Tokenize(formulaText, ions)
	if err != nil {
		return nil, err
	}
	groups, err := group(toks)
	if err != nil {
		return nil, err
	}
	root := &Root{Formula: formulaText}
	for _, g := range groups {
		n, err := build(g, false)
		if err != nil {
			return nil, err
		}
		root.Compounds = append(root.Compounds, n)
	}
	return root, nil
}

// item is one element of a token group: a token, or a nested group for a
// polyatomic span. idx is the token-stream index of the token (for a nested
// group, of its PolyatomicStart), so errors report stream positions.
type item struct {
	tok    Token
	idx    int
	kids   []item
	nested bool
}

// group is parser pass one: it splits the token stream on CombinedWith into
// one group per compound, collapses PolyatomicStart/End spans into nested
// groups, and hoists state annotations to the front of their compound.
func group(toks []Token) ([][]item, error) {
	var compounds [][]item
	var stack [][]item
	var starts []int
	cur := []item{}
	for i, tok := range toks {
		switch tok.Kind {
		case TokenPolyatomicStart:
			stack = append(stack, cur)
			starts = append(starts, i)
			cur = []item{}
		case TokenPolyatomicEnd:
			if len(stack) == 0 {
				return nil, &ParseError{Index: i, Msg: "polyatomic group end without start"}
			}
			parent := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			start := starts[len(starts)-1]
			starts = starts[:len(starts)-1]
			cur = append(parent, item{kids: cur, idx: start, nested: true})
		case TokenCombinedWith:
			if len(stack) > 0 {
				return nil, &ParseError{Index: i, Msg: "combination marker inside polyatomic group"}
			}
			if len(cur) == 0 {
				return nil, &ParseError{Index: i, Msg: "empty compound"}
			}
			compounds = append(compounds, cur)
			cur = []item{}
		case TokenState:
			if len(stack) > 0 {
				return nil, &ParseError{Index: i, Msg: "state annotation inside polyatomic group"}
			}
			cur = append([]item{{tok: tok, idx: i}}, cur...)
		default:
			cur = append(cur, item{tok: tok, idx: i})
		}
	}
	if len(stack) > 0 {
		return nil, &ParseError{Index: len(toks), Msg: "unterminated polyatomic group"}
	}
	if len(cur) == 0 {
		return nil, &ParseError{Index: len(toks), Msg: "empty compound"}
	}
	return append(compounds, cur), nil
}

// buildState enumerates the tree-construction states.
type buildState int

const (
	buildStart buildState = iota
	buildCoefficient
	buildSymbol
	buildSubscript
)

// build is parser pass two: it converts one token group into a Compound or
// PolyatomicIon node, closing each symbol as an atom child when its
// multiplicity is known and reconstructing the canonical formula text as it
// goes.
func build(items []item, polyatomic bool) (*Node, error) {
	node := &Node{Kind: KindCompound, Count: sigfig.ExactInt(1)}
	if polyatomic {
		node.Kind = KindPolyatomicIon
	}

	var (
		st      = buildStart
		pending string          // symbol awaiting its multiplicity
		sym     strings.Builder // canonical formula text
		lastIon *Node           // folded group that may still take a subscript
	)

	closePending := func(count sigfig.Exact) {
		child := &Node{Kind: KindAtom, Symbol: pending, Count: count}
		node.Children = append(node.Children, child)
		sym.WriteString(pending)
		if !count.IsOne() {
			sym.WriteString(count.String())
		}
		pending = ""
	}

	for _, it := range items {
		if it.nested {
			if pending != "" {
				closePending(sigfig.ExactInt(1))
			}
			child, err := build(it.kids, true)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
			sym.WriteString("(")
			sym.WriteString(child.Symbol)
			sym.WriteString(")")
			lastIon = child
			st = buildSymbol
			continue
		}

		tok := it.tok
		switch tok.Kind {
		case TokenCoefficient:
			if st != buildStart {
				return nil, &ParseError{Index: it.idx, Msg: "coefficient not at start of group"}
			}
			count, err := sigfig.ParseExact(tok.Value)
			if err != nil {
				return nil, &ParseError{Index: it.idx, Msg: err.Error()}
			}
			if count.Sign() <= 0 {
				return nil, &ParseError{Index: it.idx, Msg: "coefficient must be positive"}
			}
			node.Count = count
			st = buildCoefficient

		case TokenSymbol:
			if pending != "" {
				closePending(sigfig.ExactInt(1))
			}
			pending = tok.Value
			lastIon = nil
			st = buildSymbol

		case TokenSubscript:
			count, err := sigfig.ParseExact(tok.Value)
			if err != nil {
				return nil, &ParseError{Index: it.idx, Msg: err.Error()}
			}
			if count.Sign() <= 0 {
				return nil, &ParseError{Index: it.idx, Msg: "subscript must be positive"}
			}
			switch {
			case pending != "":
				closePending(count)
			case lastIon != nil:
				lastIon.Count = count
				if !count.IsOne() {
					sym.WriteString(count.String())
				}
				lastIon = nil
			default:
				return nil, &ParseError{Index: it.idx, Msg: "subscript with nothing to modify"}
			}
			st = buildSubscript

		case TokenState:
			if polyatomic {
				return nil, &ParseError{Index: it.idx, Msg: "state annotation inside polyatomic ion"}
			}
			ph, ok := phaseFromSuffix(tok.Value)
			if !ok {
				return nil, &ParseError{Index: it.idx, Msg: "unknown state suffix " + tok.Value}
			}
			node.Phase = ph

		default:
			return nil, &ParseError{Index: it.idx, Msg: "unexpected token " + tok.String()}
		}
	}

	if pending != "" {
		closePending(sigfig.ExactInt(1))
	}
	node.Symbol = sym.String()
	return node, nil
}
