package opexpr

import "strconv"

// TokenKind is the lexical class of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenSpace is a run of spaces. The parser skips it.
	TokenSpace
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenPrimitive is a literal recognized by the engine's Recognizer.
	TokenPrimitive
	// TokenOperation is a registered operator with its kind resolved.
	TokenOperation
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case TokenSpace:
		return "Space"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenPrimitive:
		return "Primitive"
	case TokenOperation:
		return "Operation"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one lexical unit of an expression.
type Token[T any] struct {
	// Kind is the token's lexical class.
	Kind TokenKind
	// Pos is the 0-based index of the token's first rune in the input.
	Pos int
	// Text is the source text of the token.
	Text string
	// Value is the parsed literal for primitive tokens.
	Value T
	// Op is the resolved operator for operation tokens. It is the engine's
	// own Operation, not a copy.
	Op *Operation[T]
}

// Position returns the 0-based rune index of the token in its input.
func (t Token[T]) Position() int {
	return t.Pos
}

// DisplayText returns the text to show for the token in diagnostics.
func (t Token[T]) DisplayText() string {
	switch t.Kind {
	case TokenOpen:
		return "("
	case TokenClose:
		return ")"
	case TokenOperation:
		return t.Op.Signature()
	default:
		return t.Text
	}
}

func (t Token[T]) String() string {
	return strconv.Quote(t.DisplayText()) + " at position " + strconv.Itoa(t.Pos)
}
