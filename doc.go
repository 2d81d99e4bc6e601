// Package opexpr implements a toolkit for small calculators over arbitrary
// value types.
//
// An Engine holds a set of operators, each with a signature such as "+" or
// "sqrt", a kind (constant, prefix, postfix, or infix), a precedence, and a
// function combining operand values, plus a Recognizer for literals of the
// value type. With those, the engine tokenizes text, parses it into an
// expression tree, and evaluates the tree.
//
// The same signature may be registered with several kinds. Which one a token
// means is decided by the token before it: "-" at the start of an expression
// or after an open bracket or another operator is prefix negation, while "-"
// after a literal, a close bracket, a constant, or a postfix operator is
// subtraction. Higher precedence binds tighter, and operators of equal
// precedence group left to right, so "2-3-4" is "(2-3)-4".
//
// Errors from invalid input implement InputError, which reports the 0-based
// rune index and text of the offending token.
//
package opexpr
