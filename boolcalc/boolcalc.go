// Package boolcalc provides a boolean calculator.
//
// Literals are true and false in any case. ! is negation; |, &, and ^ are OR,
// AND, and XOR, all at the same precedence and grouping left to right.
package boolcalc

import "github.com/zephyrtronium/opexpr"

// New creates a boolean calculator.
func New() *opexpr.Engine[bool] {
	e := opexpr.New[bool](opexpr.RecognizeWords(map[string]bool{"true": true, "false": false}))
	e.AddInfix("|", "OR", func(x, y bool) bool { return x || y }, opexpr.Low)
	e.AddInfix("&", "AND", func(x, y bool) bool { return x && y }, opexpr.Low)
	e.AddInfix("^", "XOR", func(x, y bool) bool { return x != y }, opexpr.Low)
	e.AddPrefix("!", "NOT", func(x bool) bool { return !x }, opexpr.High)
	return e
}
