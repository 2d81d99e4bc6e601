package opexpr

import (
	"strconv"
	"strings"
)

// lexState is the class of the token the lexer is accumulating.
type lexState int8

const (
	stateEmpty lexState = iota
	statePrimitive
	stateOperation
	stateSpace
)

type lexer[T any] struct {
	e   *Engine[T]
	out []Token[T]
	buf strings.Builder
	// state is the class of the text in buf.
	state lexState
	// pos is the rune index where the text in buf starts.
	pos int
}

// Tokenize splits src into tokens. Every token is extended as far as the
// recognizer or some operator signature allows before it is finalized.
// Positions are rune indices, so multi-byte input reports columns a reader
// would count.
func (e *Engine[T]) Tokenize(src string) ([]Token[T], error) {
	l := lexer[T]{e: e}
	i := 0
	for _, r := range src {
		if err := l.step(i, r); err != nil {
			return nil, err
		}
		i++
	}
	if err := l.collect(); err != nil {
		return nil, err
	}
	return l.out, nil
}

// step feeds one rune to the lexer.
func (l *lexer[T]) step(pos int, r rune) error {
	switch {
	case l.state == stateEmpty:
		return l.start(pos, r)
	case l.accepts(r):
		l.buf.WriteRune(r)
		return nil
	case l.state == statePrimitive && l.e.canBeOperation(l.extended(r)):
		// The literal stops being one, but the whole text may yet become an
		// operator.
		l.state = stateOperation
		l.buf.WriteRune(r)
		return nil
	}
	if err := l.collect(); err != nil {
		return err
	}
	return l.start(pos, r)
}

// start begins a new token with r. Parentheses are emitted immediately.
func (l *lexer[T]) start(pos int, r rune) error {
	l.buf.Reset()
	l.state = stateEmpty
	l.pos = pos
	s := string(r)
	switch {
	case r == ' ':
		l.state = stateSpace
	case r == '(':
		l.out = append(l.out, Token[T]{Kind: TokenOpen, Pos: pos, Text: s})
		return nil
	case r == ')':
		l.out = append(l.out, Token[T]{Kind: TokenClose, Pos: pos, Text: s})
		return nil
	case l.e.rec.CanStartWith(s):
		l.state = statePrimitive
	case l.e.canBeOperation(s):
		l.state = stateOperation
	default:
		return &LexError{Text: s, Col: pos}
	}
	l.buf.WriteRune(r)
	return nil
}

// accepts returns whether r extends the current token without changing its
// class.
func (l *lexer[T]) accepts(r rune) bool {
	switch l.state {
	case stateSpace:
		return r == ' '
	case statePrimitive:
		return l.e.rec.CanStartWith(l.extended(r))
	case stateOperation:
		return l.e.canBeOperation(l.extended(r))
	default:
		return false
	}
}

// extended returns the accumulated text followed by r.
func (l *lexer[T]) extended(r rune) string {
	return l.buf.String() + string(r)
}

// collect finalizes the accumulated text into a token, if there is any.
func (l *lexer[T]) collect() error {
	text := l.buf.String()
	tok := Token[T]{Pos: l.pos, Text: text}
	switch l.state {
	case stateEmpty:
		return nil
	case stateSpace:
		tok.Kind = TokenSpace
	case statePrimitive:
		v, err := l.e.rec.FromString(text)
		if err != nil {
			return &LexError{Text: text, Kind: "literal", Col: l.pos, Err: err}
		}
		tok.Kind = TokenPrimitive
		tok.Value = v
	case stateOperation:
		op, err := l.resolve(text)
		if err != nil {
			return err
		}
		tok.Kind = TokenOperation
		tok.Op = op
	default:
		panic("opexpr: invalid lexer state")
	}
	l.out = append(l.out, tok)
	l.state = stateEmpty
	l.buf.Reset()
	return nil
}

// last returns the last token emitted that is not whitespace.
func (l *lexer[T]) last() (Token[T], bool) {
	for i := len(l.out) - 1; i >= 0; i-- {
		if l.out[i].Kind != TokenSpace {
			return l.out[i], true
		}
	}
	return Token[T]{}, false
}

// resolve chooses the operation for operator text from the previous token.
// Kinds are tried in the order prefix, postfix, infix, constant.
func (l *lexer[T]) resolve(text string) (*Operation[T], error) {
	prev, ok := l.last()
	var prefix, operand bool
	switch {
	case !ok:
		prefix = true
	case prev.Kind == TokenOpen:
		prefix = true
	case prev.Kind == TokenClose, prev.Kind == TokenPrimitive:
		operand = true
	case prev.Kind == TokenOperation:
		k := prev.Op.Kind()
		prefix = k != Constant
		operand = k == Constant || k == Postfix
	}
	if prefix {
		if op := l.e.Lookup(text, Prefix); op != nil {
			return op, nil
		}
	}
	if operand {
		if op := l.e.Lookup(text, Postfix); op != nil {
			return op, nil
		}
		if op := l.e.Lookup(text, Infix); op != nil {
			return op, nil
		}
	}
	if op := l.e.Lookup(text, Constant); op != nil {
		return op, nil
	}
	return nil, &OperatorError{Col: l.pos, Operator: text, Operand: operand}
}

// LexError indicates input text that is neither a literal nor an operator. It
// implements InputError.
type LexError struct {
	// Text is the offending text: a single rune that starts no token, or a
	// complete token the recognizer rejected.
	Text string
	// Kind is "literal" if the recognizer rejected accumulated text, or the
	// empty string if no token could start with the text.
	Kind string
	// Col is the rune index of the start of Text.
	Col int
	// Err is the recognizer's error for a rejected literal.
	Err error
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "unrecognized text "+strconv.Quote(err.Text))
	}
	msg := "invalid " + err.Kind + " " + strconv.Quote(err.Text)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return errpos(err.Col, msg)
}

func (err *LexError) Unwrap() error {
	return err.Err
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Source() string {
	return err.Text
}

