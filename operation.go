package opexpr

import "strconv"

// Kind is the syntactic placement of an operator. It fixes the operator's
// arity.
type Kind int8

const (
	// Constant is a named value with no operands, e.g. pi.
	Constant Kind = iota
	// Prefix is a unary operator written before its operand, e.g. -x.
	Prefix
	// Postfix is a unary operator written after its operand, e.g. x!.
	Postfix
	// Infix is a binary operator written between its operands, e.g. x+y.
	Infix
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	case Infix:
		return "infix"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Arity returns the number of operands an operator of kind k takes.
func (k Kind) Arity() int {
	switch k {
	case Constant:
		return 0
	case Prefix, Postfix:
		return 1
	case Infix:
		return 2
	default:
		panic("opexpr: invalid operator kind " + k.String())
	}
}

// Precedence is the binding strength of an operator. Higher binds tighter.
type Precedence uint8

// Conventional precedence bands. Nothing enforces their use; they exist so
// that calculators agree on what "low" means.
const (
	Lowest   Precedence = 10
	Low      Precedence = 20
	Medium   Precedence = 30
	High     Precedence = 40
	Highest  Precedence = 50
	Ultimate Precedence = 255
)

// Combiner computes the value of an operator applied to its operands. The
// operands slice has exactly as many elements as the operator's arity.
// Combiners must not modify the operands, which may be shared with other
// evaluations of the same tree, and should be pure. A combiner may return an
// error for operands outside its domain, e.g. division by zero.
type Combiner[T any] interface {
	Combine(operands []T) (T, error)
}

// CombineFunc adapts a function to a Combiner.
type CombineFunc[T any] func(operands []T) (T, error)

// Combine calls f.
func (f CombineFunc[T]) Combine(operands []T) (T, error) {
	return f(operands)
}

type unary[T any] struct {
	f func(T) T
}

func (u unary[T]) Combine(operands []T) (T, error) {
	return u.f(operands[0]), nil
}

type binary[T any] struct {
	f func(T, T) T
}

func (b binary[T]) Combine(operands []T) (T, error) {
	return b.f(operands[0], operands[1]), nil
}

type constant[T any] struct {
	v T
}

func (c constant[T]) Combine([]T) (T, error) {
	return c.v, nil
}

// Operation is one registered operator variant. Operations are created by an
// Engine's builder methods and never change afterward; tokens and parsed
// expressions refer to the Engine's Operation rather than copying it.
type Operation[T any] struct {
	signature   string
	description string
	kind        Kind
	arity       int
	prec        Precedence
	fn          Combiner[T]
}

// Signature returns the text that identifies the operator in input.
func (op *Operation[T]) Signature() string {
	return op.signature
}

// Description returns the human-readable description of the operator.
func (op *Operation[T]) Description() string {
	return op.description
}

// Kind returns the operator's placement.
func (op *Operation[T]) Kind() Kind {
	return op.kind
}

// Arity returns the number of operands the operator takes.
func (op *Operation[T]) Arity() int {
	return op.arity
}

// Precedence returns the operator's binding strength.
func (op *Operation[T]) Precedence() Precedence {
	return op.prec
}

// Apply combines operands with the operator's function. Panics if the number
// of operands differs from the operator's arity.
func (op *Operation[T]) Apply(operands []T) (T, error) {
	if len(operands) != op.arity {
		panic("opexpr: " + op.signature + " applied to " + strconv.Itoa(len(operands)) + " operands, want " + strconv.Itoa(op.arity))
	}
	return op.fn.Combine(operands)
}

// String formats the operator with placeholder operands, e.g. "x+y" or
// "sqrt(x)".
func (op *Operation[T]) String() string {
	switch op.kind {
	case Prefix:
		return op.signature + "(x)"
	case Postfix:
		return "x" + op.signature
	case Infix:
		return "x" + op.signature + "y"
	default:
		return op.signature
	}
}
