// Package intcalc provides an int64 calculator with checked arithmetic.
//
// Literals are unsigned decimal integers. Every operator reports ErrOverflow
// rather than wrapping.
package intcalc

import (
	"errors"
	"math"
	"strconv"

	"github.com/zephyrtronium/opexpr"
)

var (
	// ErrDivisionByZero is the error for x/0 and x%0.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeExponent is the error for x^y with y < 0.
	ErrNegativeExponent = errors.New("negative exponent")
	// ErrNegativeFactorial is the error for x! with x < 0.
	ErrNegativeFactorial = errors.New("factorial of negative number")
	// ErrOverflow is the error for a result outside the range of int64.
	ErrOverflow = errors.New("integer overflow")
)

// Recognizer recognizes int64 literals.
type Recognizer struct{}

// FromString parses a decimal integer.
func (Recognizer) FromString(text string) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}

// CanStartWith returns whether text is all decimal digits.
func (Recognizer) CanStartWith(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || '9' < text[i] {
			return false
		}
	}
	return true
}

// New creates an int64 calculator.
func New() *opexpr.Engine[int64] {
	e := opexpr.New[int64](Recognizer{})
	e.Add("-", "Negation", opexpr.Prefix, monadic(neg), 1, opexpr.High)
	e.Add("abs", "Absolute value", opexpr.Prefix, monadic(abs), 1, opexpr.Highest)
	e.Add("!", "Factorial", opexpr.Postfix, monadic(fact), 1, opexpr.Highest)

	e.Add("+", "Addition", opexpr.Infix, dyadic(add), 2, opexpr.Lowest)
	e.Add("-", "Subtraction", opexpr.Infix, dyadic(sub), 2, opexpr.Lowest)
	e.Add("*", "Multiplication", opexpr.Infix, dyadic(mul), 2, opexpr.Low)
	e.Add("/", "Truncated division", opexpr.Infix, dyadic(quo), 2, opexpr.Low)
	e.Add("%", "Remainder", opexpr.Infix, dyadic(rem), 2, opexpr.Low)
	e.Add("^", "Power", opexpr.Infix, dyadic(pow), 2, opexpr.Medium)
	return e
}

func monadic(f func(x int64) (int64, error)) opexpr.CombineFunc[int64] {
	return func(operands []int64) (int64, error) {
		return f(operands[0])
	}
}

func dyadic(f func(x, y int64) (int64, error)) opexpr.CombineFunc[int64] {
	return func(operands []int64) (int64, error) {
		return f(operands[0], operands[1])
	}
}

func neg(x int64) (int64, error) {
	if x == math.MinInt64 {
		return 0, ErrOverflow
	}
	return -x, nil
}

func abs(x int64) (int64, error) {
	if x < 0 {
		return neg(x)
	}
	return x, nil
}

func fact(x int64) (int64, error) {
	if x < 0 {
		return 0, ErrNegativeFactorial
	}
	r := int64(1)
	for i := int64(2); i <= x; i++ {
		var err error
		if r, err = mul(r, i); err != nil {
			return 0, err
		}
	}
	return r, nil
}

func add(x, y int64) (int64, error) {
	r := x + y
	if (x >= 0) == (y >= 0) && (r >= 0) != (x >= 0) {
		return 0, ErrOverflow
	}
	return r, nil
}

func sub(x, y int64) (int64, error) {
	r := x - y
	if (x >= 0) != (y >= 0) && (r >= 0) != (x >= 0) {
		return 0, ErrOverflow
	}
	return r, nil
}

func mul(x, y int64) (int64, error) {
	if x == 0 || y == 0 {
		return 0, nil
	}
	if x == -1 && y == math.MinInt64 || y == -1 && x == math.MinInt64 {
		return 0, ErrOverflow
	}
	r := x * y
	if r/y != x {
		return 0, ErrOverflow
	}
	return r, nil
}

func quo(x, y int64) (int64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	if x == math.MinInt64 && y == -1 {
		return 0, ErrOverflow
	}
	return x / y, nil
}

func rem(x, y int64) (int64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	if y == -1 {
		return 0, nil
	}
	return x % y, nil
}

// pow computes x^y by squaring.
func pow(x, y int64) (int64, error) {
	if y < 0 {
		return 0, ErrNegativeExponent
	}
	r := int64(1)
	var err error
	for y > 0 {
		if y&1 != 0 {
			if r, err = mul(r, x); err != nil {
				return 0, err
			}
		}
		y >>= 1
		if y > 0 {
			if x, err = mul(x, x); err != nil {
				return 0, err
			}
		}
	}
	return r, nil
}
