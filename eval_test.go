package opexpr_test

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/zephyrtronium/opexpr"
	"github.com/zephyrtronium/opexpr/intcalc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    int64
	}{
		{"num", "1", 1},
		{"left", "2+3-7", -2},
		{"left-spaced", "2+3 -7", -2},
		{"quo", "4+6/2", 7},
		{"paren", "4+(6/2)", 7},
		{"paren-first", "(4+6)/2", 5},
		{"nested", "(((1))+(1))", 2},
		{"negs", "---2", -2},
		{"neg-sub", "2 - -2", 4},
		{"pow", "2^3^2", 64},
		{"fact", "3!!", 720},
		{"abs", "abs -5 + 1", 6},
		{"mod", "17 % 5 * 2", 4},
	}
	e := intcalc.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := e.Eval(c.src)
			if err != nil {
				t.Fatalf("error evaluating %q: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("wrong result from %q: want %d, got %d", c.src, c.r, r)
			}
		})
	}
}

// plusOnly creates an engine whose only operator is addition.
func plusOnly() *opexpr.Engine[int64] {
	e := opexpr.New[int64](intcalc.Recognizer{})
	e.AddInfix("+", "addition", func(x, y int64) int64 { return x + y }, opexpr.Lowest)
	return e
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		e    *opexpr.Engine[int64]
		src  string
		err  opexpr.InputError
		pos  int
		text string
	}{
		{"unknown-op", plusOnly(), "4+(6/2)", new(opexpr.LexError), 4, "/"},
		{"unknown-name", plusOnly(), "4+d", new(opexpr.LexError), 2, "d"},
		{"unclosed", plusOnly(), "4+(2", new(opexpr.BracketError), 2, "("},
		{"unopened", plusOnly(), "4+2)", new(opexpr.BracketError), 3, ")"},
		{"quo-zero", intcalc.New(), "1 + 4/0", new(opexpr.EvalError), 5, "/"},
		{"quo-zero-inner", intcalc.New(), "(1/(2-2))*3", new(opexpr.EvalError), 2, "/"},
		{"fact-neg", intcalc.New(), "(0-3)!", new(opexpr.EvalError), 5, "!"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.e.Eval(c.src)
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			ie := err.(opexpr.InputError)
			if ie.Pos() != c.pos || ie.Source() != c.text {
				t.Errorf("evaluating %q: want %q at %d, got %q at %d", c.src, c.text, c.pos, ie.Source(), ie.Pos())
			}
			if !strings.HasPrefix(err.Error(), strconv.Itoa(c.pos)+": ") {
				t.Errorf("error message %q lacks position", err.Error())
			}
		})
	}
}

func TestEvalUnwraps(t *testing.T) {
	_, err := intcalc.New().Eval("1/0")
	if !errors.Is(err, intcalc.ErrDivisionByZero) {
		t.Errorf("%v does not wrap %v", err, intcalc.ErrDivisionByZero)
	}
}

func TestEngineUsableAfterError(t *testing.T) {
	e := intcalc.New()
	for _, src := range []string{"1/0", "(", ")", "", "1 1", "$"} {
		if _, err := e.Eval(src); err == nil {
			t.Errorf("no error from %q", src)
		}
	}
	r, err := e.Eval("6*7")
	if err != nil || r != 42 {
		t.Errorf("wrong result after errors: want 42, got %d (%v)", r, err)
	}
}

func TestAddPanics(t *testing.T) {
	f := opexpr.CombineFunc[int64](func(v []int64) (int64, error) { return 0, nil })
	cases := []struct {
		name  string
		sig   string
		kind  opexpr.Kind
		fn    opexpr.Combiner[int64]
		arity int
	}{
		{"empty", "", opexpr.Prefix, f, 1},
		{"space", "a b", opexpr.Prefix, f, 1},
		{"paren", "f(", opexpr.Prefix, f, 1},
		{"nil", "f", opexpr.Prefix, nil, 1},
		{"arity-prefix", "f", opexpr.Prefix, f, 2},
		{"arity-infix", "f", opexpr.Infix, f, 1},
		{"arity-constant", "f", opexpr.Constant, f, 1},
		{"kind", "f", opexpr.Kind(9), f, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("no panic")
				}
			}()
			e := opexpr.New[int64](intcalc.Recognizer{})
			e.Add(c.sig, "", c.kind, c.fn, c.arity, opexpr.Medium)
		})
	}
}

func TestNewNilRecognizer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("no panic")
		}
	}()
	opexpr.New[int64](nil)
}

func TestLookup(t *testing.T) {
	e := opexpr.New[int64](intcalc.Recognizer{})
	e.AddInfix("-", "first", func(x, y int64) int64 { return x - y }, opexpr.Lowest)
	e.AddInfix("-", "second", func(x, y int64) int64 { return y - x }, opexpr.Lowest)
	e.AddPrefix("-", "negation", func(x int64) int64 { return -x }, opexpr.High)
	if op := e.Lookup("-", opexpr.Infix); op == nil || op.Description() != "first" {
		t.Errorf("wrong infix operation %v", op)
	}
	if op := e.Lookup("-", opexpr.Prefix); op == nil || op.Description() != "negation" {
		t.Errorf("wrong prefix operation %v", op)
	}
	if op := e.Lookup("-", opexpr.Postfix); op != nil {
		t.Errorf("found nonexistent postfix operation %v", op)
	}
	if op := e.Lookup("+", opexpr.Infix); op != nil {
		t.Errorf("found nonexistent operation %v", op)
	}
	r, err := e.Eval("5-3")
	if err != nil || r != 2 {
		t.Errorf("duplicate signature used later registration: got %d (%v)", r, err)
	}
	ops := e.Operations()
	if len(ops) != 3 {
		t.Fatalf("want 3 operations, got %d", len(ops))
	}
	ops[0] = nil
	if e.Operations()[0] == nil {
		t.Errorf("Operations returned the engine's own slice")
	}
}

func TestOperation(t *testing.T) {
	e := intcalc.New()
	cases := []struct {
		sig   string
		kind  opexpr.Kind
		arity int
		str   string
	}{
		{"-", opexpr.Prefix, 1, "-(x)"},
		{"-", opexpr.Infix, 2, "x-y"},
		{"!", opexpr.Postfix, 1, "x!"},
		{"abs", opexpr.Prefix, 1, "abs(x)"},
	}
	for _, c := range cases {
		op := e.Lookup(c.sig, c.kind)
		if op == nil {
			t.Errorf("no %v %q", c.kind, c.sig)
			continue
		}
		if op.Signature() != c.sig || op.Kind() != c.kind || op.Arity() != c.arity {
			t.Errorf("wrong operation for %v %q: %q %v %d", c.kind, c.sig, op.Signature(), op.Kind(), op.Arity())
		}
		if op.String() != c.str {
			t.Errorf("wrong string for %v %q: want %q, got %q", c.kind, c.sig, c.str, op.String())
		}
		if op.Description() == "" {
			t.Errorf("%v %q has no description", c.kind, c.sig)
		}
	}
}

func TestApplyArity(t *testing.T) {
	op := intcalc.New().Lookup("+", opexpr.Infix)
	r, err := op.Apply([]int64{2, 3})
	if err != nil || r != 5 {
		t.Errorf("wrong result: want 5, got %d (%v)", r, err)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("no panic")
		}
	}()
	op.Apply([]int64{1})
}

func TestRecognizeWords(t *testing.T) {
	r := opexpr.RecognizeWords(map[string]int{"yes": 1, "No": 0, "maybe": 2})
	prefixes := []string{"y", "YE", "yes", "n", "nO", "m", "mayb"}
	for _, s := range prefixes {
		if !r.CanStartWith(s) {
			t.Errorf("%q not recognized as a prefix", s)
		}
	}
	for _, s := range []string{"", "x", "yess", "nope", "may be"} {
		if s != "" && r.CanStartWith(s) {
			t.Errorf("%q recognized as a prefix", s)
		}
		if _, err := r.FromString(s); err == nil {
			t.Errorf("%q recognized as a word", s)
		}
	}
	v, err := r.FromString("MAYBE")
	if err != nil || v != 2 {
		t.Errorf("wrong value: want 2, got %d (%v)", v, err)
	}
	var we *opexpr.WordError
	if _, err := r.FromString("x"); !errors.As(err, &we) || we.Text != "x" {
		t.Errorf("wrong error %#v", err)
	}
}
