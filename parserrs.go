package opexpr

import "strconv"

// OperatorError is an error indicating operator text that has no registered
// operation valid at its position. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the text that was not understood.
	Operator string
	// Operand is whether the preceding token completed an operand, so that a
	// postfix or infix operator was expected rather than a prefix one.
	Operand bool
}

func (err *OperatorError) Error() string {
	s := "prefix or constant"
	if err.Operand {
		s = "postfix, infix, or constant"
	}
	return errpos(err.Col, "no "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Source() string {
	return err.Operator
}

// BracketError is an error indicating an unmatched parenthesis. It implements
// InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the open bracket, or empty for an unmatched close bracket.
	Left string
	// Right is the close bracket, or empty for an unmatched open bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Source() string {
	return err.Left + err.Right
}

// OperandError is an error indicating an operator with fewer operands
// available than it takes. It implements InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator's signature.
	Operator string
	// Want is the operator's arity.
	Want int
	// Have is the number of operands that were available.
	Have int
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" needs "+strconv.Itoa(err.Want)+" operands but has "+strconv.Itoa(err.Have))
}

func (err *OperandError) Pos() int {
	return err.Col
}

func (err *OperandError) Source() string {
	return err.Operator
}

// EmptyExpressionError is an error indicating input with no expression in it.
// It implements InputError.
type EmptyExpressionError struct {
	// Col is the length of the input in runes.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Source() string {
	return ""
}

// DanglingError is an error indicating an expression that did not reduce to a
// single tree, e.g. two literals with no operator between them. It implements
// InputError.
type DanglingError struct {
	// Col is the position of the first token of the second tree.
	Col int
	// Text is that token's text.
	Text string
	// Trees is the number of trees left after parsing.
	Trees int
}

func (err *DanglingError) Error() string {
	return errpos(err.Col, "expression ends with "+strconv.Itoa(err.Trees)+" separate terms, second starts at "+strconv.Quote(err.Text))
}

func (err *DanglingError) Pos() int {
	return err.Col
}

func (err *DanglingError) Source() string {
	return err.Text
}

// TokenError is an error indicating a token that could not have come from
// Tokenize, e.g. a zero Token or an operation token with no Operation. It
// implements InputError.
type TokenError struct {
	// Col is the token's position.
	Col int
	// Text is the token's text.
	Text string
	// Kind is the token's kind.
	Kind TokenKind
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "invalid "+err.Kind.String()+" token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Source() string {
	return err.Text
}

// EvalError is an error returned by an operator's Combiner. It implements
// InputError and unwraps to the combiner's error.
type EvalError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator's signature.
	Operator string
	// Err is the error from the combiner.
	Err error
}

func (err *EvalError) Error() string {
	return errpos(err.Col, "evaluating "+strconv.Quote(err.Operator)+": "+err.Err.Error())
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

func (err *EvalError) Pos() int {
	return err.Col
}

func (err *EvalError) Source() string {
	return err.Operator
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based rune index of the token that caused the error.
	Pos() int
	// Source returns the text of the token that caused the error.
	Source() string
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*DanglingError)(nil)
	_ InputError = (*EvalError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*TokenError)(nil)
)
