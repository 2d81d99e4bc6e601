package opexpr

import (
	"strings"
)

// node is a node in the evaluation tree of an expression.
type node[T any] struct {
	kind nodeKind
	// tok is the token that produced the node: the literal for primitives,
	// the operator otherwise. Folded constants keep their operator token.
	tok Token[T]
	// val is the value of a primitive node.
	val T

	left  *node[T]
	right *node[T]
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodePrimitive // push val
	nodeUnary     // evaluate left, apply op
	nodeBinary    // evaluate left, evaluate right, apply op
)

// eval computes the node's value in post-order. Nodes are never modified.
func (n *node[T]) eval() (T, error) {
	switch n.kind {
	case nodePrimitive:
		return n.val, nil
	case nodeUnary:
		x, err := n.left.eval()
		if err != nil {
			return x, err
		}
		return n.apply([]T{x})
	case nodeBinary:
		l, err := n.left.eval()
		if err != nil {
			return l, err
		}
		r, err := n.right.eval()
		if err != nil {
			return r, err
		}
		return n.apply([]T{l, r})
	default:
		panic("opexpr: invalid node kind")
	}
}

func (n *node[T]) apply(operands []T) (T, error) {
	r, err := n.tok.Op.Apply(operands)
	if err != nil {
		var zero T
		return zero, &EvalError{Col: n.tok.Pos, Operator: n.tok.Op.Signature(), Err: err}
	}
	return r, nil
}

// first returns the leftmost token of the subtree.
func (n *node[T]) first() Token[T] {
	for {
		switch {
		case n.kind == nodeBinary:
			n = n.left
		case n.kind == nodeUnary && n.tok.Op.Kind() == Postfix:
			n = n.left
		default:
			return n.tok
		}
	}
}

func (n *node[T]) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node[T]) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodePrimitive:
		b.WriteString(n.tok.DisplayText())
	case nodeUnary:
		if n.tok.Op.Kind() == Postfix {
			n.left.fmt(b)
			b.WriteString(n.tok.Op.Signature())
			return
		}
		b.WriteString(n.tok.Op.Signature())
		n.left.fmt(b)
	case nodeBinary:
		n.left.fmt(b)
		b.WriteString(n.tok.Op.Signature())
		n.right.fmt(b)
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	}
}
