package opexpr

import (
	"unicode/utf8"
)

// Expr is a parsed expression. It is immutable and may be evaluated any number
// of times, including concurrently.
type Expr[T any] struct {
	// n is the root node of the expression.
	n *node[T]
}

// Parse tokenizes and parses an expression.
func (e *Engine[T]) Parse(src string) (*Expr[T], error) {
	toks, err := e.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return e.ParseTokens(toks)
}

// ParseTokens builds an expression from tokens, normally the result of
// Tokenize. Space tokens are skipped. Tokens of unknown kind and operation
// tokens without an operation give a *TokenError.
//
// Operators wait on a stack until an operator that binds no tighter arrives,
// at which point they are reduced against the nearest operands. Prefix
// operators and constants never force a reduction, since their operand (if
// any) is still to their right. Infix and postfix operators reduce everything
// on the stack that binds at least as tightly, so operators of equal
// precedence group left to right.
func (e *Engine[T]) ParseTokens(toks []Token[T]) (*Expr[T], error) {
	var p parser[T]
	for _, tok := range toks {
		switch tok.Kind {
		case TokenSpace:
			// do nothing
		case TokenPrimitive:
			p.terms = append(p.terms, &node[T]{kind: nodePrimitive, tok: tok, val: tok.Value})
		case TokenOpen:
			p.ops = append(p.ops, tok)
		case TokenClose:
			if err := p.close(tok); err != nil {
				return nil, err
			}
		case TokenOperation:
			if tok.Op == nil {
				return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Kind: tok.Kind}
			}
			if k := tok.Op.Kind(); k == Infix || k == Postfix {
				for p.top(tok.Op.Precedence()) {
					if err := p.reduce(); err != nil {
						return nil, err
					}
				}
			}
			p.ops = append(p.ops, tok)
		default:
			return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Kind: tok.Kind}
		}
	}
	for len(p.ops) > 0 {
		if top := p.ops[len(p.ops)-1]; top.Kind == TokenOpen {
			return nil, &BracketError{Col: top.Pos, Left: "("}
		}
		if err := p.reduce(); err != nil {
			return nil, err
		}
	}
	switch len(p.terms) {
	case 0:
		return nil, &EmptyExpressionError{Col: end(toks)}
	case 1:
		return &Expr[T]{n: p.terms[0]}, nil
	default:
		t := p.second()
		return nil, &DanglingError{Col: t.Pos, Text: t.DisplayText(), Trees: len(p.terms)}
	}
}

// parser holds the two stacks of the precedence parser.
type parser[T any] struct {
	// ops holds open brackets and operators awaiting operands.
	ops []Token[T]
	// terms holds complete subtrees.
	terms []*node[T]
}

// top returns whether the top of the operator stack is an operator binding at
// least as tightly as prec.
func (p *parser[T]) top(prec Precedence) bool {
	if len(p.ops) == 0 {
		return false
	}
	t := p.ops[len(p.ops)-1]
	return t.Kind == TokenOperation && t.Op.Precedence() >= prec
}

// close reduces operators back to the open bracket matching tok.
func (p *parser[T]) close(tok Token[T]) error {
	for {
		if len(p.ops) == 0 {
			return &BracketError{Col: tok.Pos, Right: ")"}
		}
		if p.ops[len(p.ops)-1].Kind == TokenOpen {
			p.ops = p.ops[:len(p.ops)-1]
			return nil
		}
		if err := p.reduce(); err != nil {
			return err
		}
	}
}

// reduce pops an operator and combines it with its operands into a new term.
// Constants are evaluated immediately.
func (p *parser[T]) reduce() error {
	tok := p.ops[len(p.ops)-1]
	p.ops = p.ops[:len(p.ops)-1]
	op := tok.Op
	n := op.Arity()
	if len(p.terms) < n {
		return &OperandError{Col: tok.Pos, Operator: op.Signature(), Want: n, Have: len(p.terms)}
	}
	switch n {
	case 0:
		v, err := op.Apply(nil)
		if err != nil {
			return &EvalError{Col: tok.Pos, Operator: op.Signature(), Err: err}
		}
		p.terms = append(p.terms, &node[T]{kind: nodePrimitive, tok: tok, val: v})
	case 1:
		x := p.pop()
		p.terms = append(p.terms, &node[T]{kind: nodeUnary, tok: tok, left: x})
	case 2:
		r := p.pop()
		l := p.pop()
		p.terms = append(p.terms, &node[T]{kind: nodeBinary, tok: tok, left: l, right: r})
	default:
		panic("opexpr: operator " + op.Signature() + " has invalid arity")
	}
	return nil
}

// second returns the first token of the second tree from the left in the
// input. There must be at least two trees.
func (p *parser[T]) second() Token[T] {
	a, b := p.terms[0].first(), p.terms[1].first()
	if b.Pos < a.Pos {
		a, b = b, a
	}
	for _, n := range p.terms[2:] {
		t := n.first()
		switch {
		case t.Pos < a.Pos:
			a, b = t, a
		case t.Pos < b.Pos:
			b = t
		}
	}
	return b
}

func (p *parser[T]) pop() *node[T] {
	n := p.terms[len(p.terms)-1]
	p.terms = p.terms[:len(p.terms)-1]
	return n
}

// end returns the rune index just past the last token.
func end[T any](toks []Token[T]) int {
	if len(toks) == 0 {
		return 0
	}
	t := toks[len(toks)-1]
	return t.Pos + utf8.RuneCountInString(t.DisplayText())
}

// Eval evaluates the expression.
func (x *Expr[T]) Eval() (T, error) {
	return x.n.eval()
}

// String formats the expression with every term parenthesized. The result
// parses to an equivalent expression with the same engine.
func (x *Expr[T]) String() string {
	return x.n.String()
}
