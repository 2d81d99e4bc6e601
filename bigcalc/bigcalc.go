// Package bigcalc provides an arbitrary-precision floating-point calculator.
//
// Values are *big.Float at a fixed precision chosen when the calculator is
// created. Operators never modify their operands, so literals and folded
// constants can be shared by every evaluation of an expression.
package bigcalc

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/opexpr"
	"github.com/zephyrtronium/opexpr/internal/numlit"
)

// DefaultPrec is the precision used when New is given 0.
const DefaultPrec = 64

// ErrIncomplete is the error for a literal with an unfinished exponent.
var ErrIncomplete = errors.New("incomplete exponent")

// Recognizer recognizes decimal literals as *big.Float.
type Recognizer struct {
	// Prec is the precision of parsed literals in bits.
	Prec uint
}

// FromString parses a complete literal.
func (r Recognizer) FromString(text string) (*big.Float, error) {
	if !numlit.Complete(text) {
		return nil, ErrIncomplete
	}
	f, _, err := new(big.Float).SetPrec(r.Prec).Parse(text, 10)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CanStartWith returns whether text begins a literal.
func (r Recognizer) CanStartWith(text string) bool {
	return numlit.CanStartWith(text)
}

// New creates a calculator computing to prec bits. If prec is 0, DefaultPrec
// is used.
func New(prec uint) *opexpr.Engine[*big.Float] {
	if prec == 0 {
		prec = DefaultPrec
	}
	c := calc{prec: prec}
	e := opexpr.New[*big.Float](Recognizer{Prec: prec})
	e.Add("-", "Negation", opexpr.Prefix, c.monadic("-", c.neg), 1, opexpr.High)

	e.Add("+", "Addition", opexpr.Infix, c.dyadic("+", c.add), 2, opexpr.Lowest)
	e.Add("-", "Subtraction", opexpr.Infix, c.dyadic("-", c.sub), 2, opexpr.Lowest)
	e.Add("*", "Multiplication", opexpr.Infix, c.dyadic("*", c.mul), 2, opexpr.Low)
	e.Add("/", "Division", opexpr.Infix, c.dyadic("/", c.quo), 2, opexpr.Low)
	e.Add("^", "Power", opexpr.Infix, c.dyadic("^", c.pow), 2, opexpr.Medium)

	e.Add("sqrt", "Square root", opexpr.Prefix, c.monadic("sqrt", c.sqrt), 1, opexpr.Highest)
	e.Add("exp", "Exponential", opexpr.Prefix, c.monadic("exp", c.exp), 1, opexpr.Highest)
	e.Add("ln", "Natural logarithm", opexpr.Prefix, c.monadic("ln", c.ln), 1, opexpr.Highest)
	e.Add("log", "Common logarithm", opexpr.Prefix, c.monadic("log", c.log), 1, opexpr.Highest)

	e.AddConstant("pi", "Constant pi=3.1415...", bigfloat.Pi(c.new()))
	e.AddConstant("e", "Constant e=2.7182...", bigfloat.Exp(c.new(), big.NewFloat(1)))
	return e
}

type calc struct {
	prec uint
}

// new allocates a result at the calculator's precision.
func (c calc) new() *big.Float {
	return new(big.Float).SetPrec(c.prec)
}

// monadic wraps f into a Combiner, converting big.ErrNaN panics into
// DomainErrors.
func (c calc) monadic(name string, f func(x *big.Float) (*big.Float, error)) opexpr.CombineFunc[*big.Float] {
	return func(operands []*big.Float) (r *big.Float, err error) {
		defer catchNaN(name, operands[0], &err)
		return f(operands[0])
	}
}

// dyadic is like monadic for functions of two variables.
func (c calc) dyadic(name string, f func(x, y *big.Float) (*big.Float, error)) opexpr.CombineFunc[*big.Float] {
	return func(operands []*big.Float) (r *big.Float, err error) {
		defer catchNaN(name, operands[1], &err)
		return f(operands[0], operands[1])
	}
}

// catchNaN recovers a big.ErrNaN panic into a DomainError. Other panics are
// not ours to handle.
func catchNaN(name string, x *big.Float, err *error) {
	r := recover()
	if r == nil {
		return
	}
	if nan, ok := r.(big.ErrNaN); ok {
		*err = &DomainError{X: x, Func: name, Msg: nan.Error()}
		return
	}
	panic(r)
}

func (c calc) neg(x *big.Float) (*big.Float, error) {
	return c.new().Neg(x), nil
}

func (c calc) add(x, y *big.Float) (*big.Float, error) {
	return c.new().Add(x, y), nil
}

func (c calc) sub(x, y *big.Float) (*big.Float, error) {
	return c.new().Sub(x, y), nil
}

func (c calc) mul(x, y *big.Float) (*big.Float, error) {
	return c.new().Mul(x, y), nil
}

func (c calc) quo(x, y *big.Float) (*big.Float, error) {
	// Guard against invalid divisions, 0/0 or inf/inf.
	if x.Sign() == 0 && y.Sign() == 0 || x.IsInf() && y.IsInf() {
		return nil, &DomainError{X: y, Func: "/"}
	}
	return c.new().Quo(x, y), nil
}

func (c calc) pow(x, y *big.Float) (*big.Float, error) {
	switch {
	case y.Sign() == 0:
		return c.new().SetInt64(1), nil
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return nil, &DomainError{X: x, Func: "^"}
		}
		return c.new(), nil
	case x.Signbit():
		// Negative bases only have real powers for integer exponents.
		if !y.IsInt() {
			return nil, &DomainError{X: x, Func: "^"}
		}
		n, _ := y.Int(nil)
		r := bigfloat.Pow(c.new(), c.new().Neg(x), y)
		if n.Bit(0) == 1 {
			r.Neg(r)
		}
		return r, nil
	}
	return bigfloat.Pow(c.new(), x, y), nil
}

func (c calc) sqrt(x *big.Float) (*big.Float, error) {
	if x.Signbit() && x.Sign() != 0 {
		return nil, &DomainError{X: x, Func: "sqrt"}
	}
	return c.new().Sqrt(x), nil
}

func (c calc) exp(x *big.Float) (*big.Float, error) {
	return bigfloat.Exp(c.new(), x), nil
}

func (c calc) ln(x *big.Float) (*big.Float, error) {
	switch x.Sign() {
	case -1:
		return nil, &DomainError{X: x, Func: "ln"}
	case 0:
		return c.new().SetInf(true), nil
	}
	return bigfloat.Log(c.new(), x), nil
}

func (c calc) log(x *big.Float) (*big.Float, error) {
	r, err := c.ln(x)
	if err != nil {
		if d, ok := err.(*DomainError); ok {
			d.Func = "log"
		}
		return nil, err
	}
	if r.IsInf() {
		return r, nil
	}
	ten := bigfloat.Log(c.new(), big.NewFloat(10))
	return r.Quo(r, ten), nil
}

// DomainError is an error returned when an operator is applied to operands
// outside its domain.
type DomainError struct {
	// X is the out-of-domain operand.
	X *big.Float
	// Func is the operator's signature.
	Func string
	// Msg is additional detail, if any.
	Msg string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + strconv.Quote(err.Func)
	}
	if err.Msg != "" {
		r += " (" + err.Msg + ")"
	}
	return r
}
