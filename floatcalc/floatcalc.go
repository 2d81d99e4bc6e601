// Package floatcalc provides a float64 calculator.
//
// Literals are unsigned decimals such as 2, 2.5, or 2.5e-3. Negative numbers
// are written with prefix negation.
package floatcalc

import (
	"errors"
	"math"
	"strconv"

	"github.com/zephyrtronium/opexpr"
	"github.com/zephyrtronium/opexpr/internal/numlit"
)

// ErrIncomplete is the error for a literal with an unfinished exponent, such
// as "1e" or "1e+".
var ErrIncomplete = errors.New("incomplete exponent")

// Recognizer recognizes float64 literals.
type Recognizer struct{}

// FromString parses a complete literal.
func (Recognizer) FromString(text string) (float64, error) {
	if !numlit.Complete(text) {
		return 0, ErrIncomplete
	}
	return strconv.ParseFloat(text, 64)
}

// CanStartWith returns whether text begins a literal.
func (Recognizer) CanStartWith(text string) bool {
	return numlit.CanStartWith(text)
}

// New creates a float64 calculator.
func New() *opexpr.Engine[float64] {
	e := opexpr.New[float64](Recognizer{})
	e.AddPrefix("-", "Negation", func(x float64) float64 { return -x }, opexpr.High)

	e.AddInfix("+", "Addition", func(x, y float64) float64 { return x + y }, opexpr.Lowest)
	e.AddInfix("-", "Subtraction", func(x, y float64) float64 { return x - y }, opexpr.Lowest)
	e.AddInfix("*", "Multiplication", func(x, y float64) float64 { return x * y }, opexpr.Low)
	e.AddInfix("/", "Division", func(x, y float64) float64 { return x / y }, opexpr.Low)
	e.AddInfix("^", "Power", math.Pow, opexpr.Medium)

	e.AddPrefix("sqrt", "Square root", math.Sqrt, opexpr.Highest)
	e.AddPrefix("sin", "Sine", math.Sin, opexpr.Highest)
	e.AddPrefix("cos", "Cosine", math.Cos, opexpr.Highest)
	e.AddPrefix("ln", "Natural logarithm", math.Log, opexpr.Highest)
	e.AddPrefix("log10", "Common logarithm", math.Log10, opexpr.Highest)
	e.AddPrefix("log2", "Binary logarithm", math.Log2, opexpr.Highest)
	e.AddPrefix("exp", "Exponential", math.Exp, opexpr.Highest)

	e.AddConstant("pi", "Constant pi=3.1415...", math.Pi)
	e.AddConstant("e", "Constant e=2.7182...", math.E)
	return e
}
