package floatcalc_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/cel-go/cel"

	"github.com/zephyrtronium/opexpr"
	"github.com/zephyrtronium/opexpr/floatcalc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"frac", "2.5", 2.5},
		{"exp-literal", "2.5e2", 250},
		{"exp-literal-neg", "2.5E-1", 0.25},
		{"neg", "-3", -3},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/5/8", 4.0 / 5.0 / 8.0},
		{"prec", "1+2*3", 7},
		{"paren", "(1+2)*3", 9},
		{"pow", "2^10", 1024},
		{"powneg", "2^-1", 0.5},
		{"negpow", "-2^2", 4},
		{"sqrt", "sqrt 16", 4},
		{"sqrt-paren", "sqrt(16)", 4},
		{"sqrt-add", "sqrt 16 + 1", 5},
		{"log10", "log10 1000", 3},
		{"log2", "log2(8)", 3},
		{"ln", "ln e", 1},
		{"exp", "exp 0", 1},
		{"cos", "cos 0", 1},
		{"sin", "sin 0", 0},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"pi-mul", "2*pi", 2 * math.Pi},
		{"spaces", "  1   +   2  ", 3},
		{"subneg", "1--1", 2},
		{"divzero", "1/0", math.Inf(1)},
	}
	calc := floatcalc.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Eval(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if math.Abs(r-c.r) > 1e-12 && r != c.r {
				t.Errorf("%q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  opexpr.InputError
		pos  int
	}{
		{"incomplete-exp", "1e+", new(opexpr.LexError), 0},
		{"unknown", "1 $ 2", new(opexpr.LexError), 2},
		{"leading-dot", ".5", new(opexpr.LexError), 0},
		{"dangling-op", "1+", new(opexpr.OperandError), 1},
		{"two-terms", "1 2", new(opexpr.DanglingError), 2},
		{"const-then-term", "pi 2", new(opexpr.DanglingError), 3},
		{"open", "sqrt(2", new(opexpr.BracketError), 4},
		{"close", "2)", new(opexpr.BracketError), 1},
		{"empty", "", new(opexpr.EmptyExpressionError), 0},
		{"nonprefix", "*2", new(opexpr.OperatorError), 0},
	}
	calc := floatcalc.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calc.Eval(c.src)
			if err == nil {
				t.Fatalf("%q gave no error", c.src)
			}
			var ie opexpr.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%#v is not an InputError", err)
			}
			if fmt.Sprintf("%T", ie) != fmt.Sprintf("%T", c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, ie)
			}
			if ie.Pos() != c.pos {
				t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
			}
		})
	}
}

func TestIncompleteExponent(t *testing.T) {
	_, err := floatcalc.New().Eval("1e")
	if !errors.Is(err, floatcalc.ErrIncomplete) {
		t.Errorf("want ErrIncomplete, got %v", err)
	}
}

// TestAgainstCEL compares results with CEL, whose arithmetic on doubles has
// the same precedence and grouping as the calculator.
func TestAgainstCEL(t *testing.T) {
	cases := []string{
		"1.0 + 2.0",
		"1.0 - 2.0 - 3.0",
		"8.0 / 4.0 / 2.0",
		"1.5 * 2.0 - 3.0 / 4.0",
		"2.0 * (3.0 + 4.0) * 5.0",
		"-2.0 * 3.0",
		"10.0 - -2.5",
		"((1.0 + 2.0) * (3.0 - 4.0)) / 5.0",
		"1.0 + 2.0 * 3.0 - 4.0 / 8.0 + 9.0",
		"100.0 / 3.0 / 7.0 * 21.0",
	}
	env, err := cel.NewEnv()
	if err != nil {
		t.Fatal(err)
	}
	calc := floatcalc.New()
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			ast, iss := env.Compile(src)
			if iss != nil && iss.Err() != nil {
				t.Fatalf("cel compile: %v", iss.Err())
			}
			prg, err := env.Program(ast)
			if err != nil {
				t.Fatalf("cel program: %v", err)
			}
			out, _, err := prg.Eval(map[string]interface{}{})
			if err != nil {
				t.Fatalf("cel eval: %v", err)
			}
			want, ok := out.Value().(float64)
			if !ok {
				t.Fatalf("cel result %v is %T, not float64", out, out.Value())
			}
			got, err := calc.Eval(src)
			if err != nil {
				t.Fatalf("%q failed: %v", src, err)
			}
			if got != want {
				t.Errorf("%q: cel gives %g, calculator gives %g", src, want, got)
			}
		})
	}
}

func Example() {
	calc := floatcalc.New()
	for _, src := range []string{"1 + 2 * 3", "(1 + 2) * 3", "2^-2", "sqrt 2 * sqrt 2"} {
		r, err := calc.Eval(src)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%s = %.6g\n", src, r)
	}

	// Output:
	// 1 + 2 * 3 = 7
	// (1 + 2) * 3 = 9
	// 2^-2 = 0.25
	// sqrt 2 * sqrt 2 = 2
}
