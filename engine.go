package opexpr

import (
	"strconv"
	"strings"
)

// Recognizer recognizes literal text for values of type T.
//
// Recognition must be monotonic: once CanStartWith rejects some text, it must
// reject every extension of that text. FromString should accept exactly the
// complete literals that CanStartWith admits.
type Recognizer[T any] interface {
	// FromString parses a complete literal.
	FromString(text string) (T, error)
	// CanStartWith returns whether text is a prefix of some valid literal,
	// including a complete literal itself.
	CanStartWith(text string) bool
}

// Engine tokenizes, parses, and evaluates expressions over values of type T
// using a set of registered operators and a Recognizer for literals.
//
// Operators are registered with the Add methods before the engine is used.
// After that, an Engine is read-only: Tokenize, Parse, and Eval may be called
// concurrently as long as the registered combiners are safe for concurrent
// use.
type Engine[T any] struct {
	ops []*Operation[T]
	rec Recognizer[T]
}

// New creates an engine with no operators which recognizes literals with rec.
func New[T any](rec Recognizer[T]) *Engine[T] {
	if rec == nil {
		panic("opexpr: nil Recognizer")
	}
	return &Engine[T]{rec: rec}
}

// Add registers an operator. arity must be the arity of kind. No check is made
// for duplicate signatures; lookups find the earliest registration of a given
// signature and kind.
func (e *Engine[T]) Add(signature, description string, kind Kind, fn Combiner[T], arity int, prec Precedence) {
	if signature == "" {
		panic("opexpr: empty operator signature")
	}
	if strings.ContainsAny(signature, " ()") {
		panic("opexpr: operator signature " + strconv.Quote(signature) + " contains space or parenthesis")
	}
	if fn == nil {
		panic("opexpr: nil Combiner for " + strconv.Quote(signature))
	}
	if k := kind.Arity(); k != arity {
		panic("opexpr: " + kind.String() + " operator " + strconv.Quote(signature) + " with arity " + strconv.Itoa(arity) + ", want " + strconv.Itoa(k))
	}
	e.ops = append(e.ops, &Operation[T]{
		signature:   signature,
		description: description,
		kind:        kind,
		arity:       arity,
		prec:        prec,
		fn:          fn,
	})
}

// AddConstant registers a named value. Constants have Ultimate precedence and
// are folded into literals when an expression is parsed.
func (e *Engine[T]) AddConstant(signature, description string, value T) {
	e.Add(signature, description, Constant, constant[T]{value}, 0, Ultimate)
}

// AddPrefix registers a unary operator written before its operand.
func (e *Engine[T]) AddPrefix(signature, description string, fn func(T) T, prec Precedence) {
	e.Add(signature, description, Prefix, unary[T]{fn}, 1, prec)
}

// AddPostfix registers a unary operator written after its operand.
func (e *Engine[T]) AddPostfix(signature, description string, fn func(T) T, prec Precedence) {
	e.Add(signature, description, Postfix, unary[T]{fn}, 1, prec)
}

// AddInfix registers a binary operator written between its operands.
func (e *Engine[T]) AddInfix(signature, description string, fn func(T, T) T, prec Precedence) {
	e.Add(signature, description, Infix, binary[T]{fn}, 2, prec)
}

// Lookup returns the first registered operation with the given signature and
// kind, or nil if there is none.
func (e *Engine[T]) Lookup(signature string, kind Kind) *Operation[T] {
	for _, op := range e.ops {
		if op.signature == signature && op.kind == kind {
			return op
		}
	}
	return nil
}

// Operations returns the registered operations in registration order.
func (e *Engine[T]) Operations() []*Operation[T] {
	return append([]*Operation[T](nil), e.ops...)
}

// Recognizer returns the engine's literal recognizer.
func (e *Engine[T]) Recognizer() Recognizer[T] {
	return e.rec
}

// canBeOperation returns whether text is a prefix of any registered signature.
func (e *Engine[T]) canBeOperation(text string) bool {
	for _, op := range e.ops {
		if strings.HasPrefix(op.signature, text) {
			return true
		}
	}
	return false
}

// Eval tokenizes, parses, and evaluates an expression.
func (e *Engine[T]) Eval(src string) (T, error) {
	x, err := e.Parse(src)
	if err != nil {
		var zero T
		return zero, err
	}
	return x.Eval()
}
