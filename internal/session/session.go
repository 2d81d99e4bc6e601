// Package session binds a calculator name to an engine and runs expressions
// for the command line.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zephyrtronium/opexpr"
	"github.com/zephyrtronium/opexpr/bigcalc"
	"github.com/zephyrtronium/opexpr/boolcalc"
	"github.com/zephyrtronium/opexpr/floatcalc"
	"github.com/zephyrtronium/opexpr/intcalc"
)

// Session evaluates expressions with one calculator. The value type is hidden
// so that callers can choose a calculator at run time.
type Session interface {
	// Eval evaluates an expression and formats the result.
	Eval(src string) (Result, error)
	// Define registers a constant whose value is the result of an expression.
	// A name already used by any operator is an error.
	Define(name, value, description string) error
	// Ops describes the registered operators in registration order.
	Ops() []Op
}

// Result is a formatted evaluation result.
type Result struct {
	// Tree is the fully parenthesized form of the expression.
	Tree string
	// Value is the formatted value.
	Value string
}

// Op describes a registered operator.
type Op struct {
	Form        string
	Kind        opexpr.Kind
	Precedence  opexpr.Precedence
	Description string
}

// Options configure a session.
type Options struct {
	// Prec is the precision in bits for the big calculator.
	Prec uint
	// Format is a Printf verb for numeric results. Empty selects a default
	// per calculator.
	Format string
	// Logger receives debug and warning logs. Nil disables logging.
	Logger *zap.Logger
}

// New creates a session for the named calculator.
func New(calc string, opts Options) (Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("calc", calc))
	verb := func(def string) string {
		if opts.Format != "" {
			return opts.Format
		}
		return def
	}
	switch calc {
	case "bool":
		return &runner[bool]{e: boolcalc.New(), format: strconv.FormatBool, logger: logger}, nil
	case "float":
		f := verb("%g")
		return &runner[float64]{e: floatcalc.New(), format: func(x float64) string { return fmt.Sprintf(f, x) }, logger: logger}, nil
	case "int":
		f := verb("%d")
		return &runner[int64]{e: intcalc.New(), format: func(x int64) string { return fmt.Sprintf(f, x) }, logger: logger}, nil
	case "big":
		if opts.Prec == 0 {
			opts.Prec = bigcalc.DefaultPrec
		}
		f := verb("%g")
		return &runner[*big.Float]{e: bigcalc.New(opts.Prec), format: func(x *big.Float) string { return fmt.Sprintf(f, x) }, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown calculator %q", calc)
	}
}

// runner is a Session over an engine with values of type T.
type runner[T any] struct {
	e      *opexpr.Engine[T]
	format func(T) string
	logger *zap.Logger
}

func (r *runner[T]) Eval(src string) (Result, error) {
	toks, err := r.e.Tokenize(src)
	if err != nil {
		return Result{}, err
	}
	x, err := r.e.ParseTokens(toks)
	if err != nil {
		return Result{}, err
	}
	v, err := x.Eval()
	if err != nil {
		return Result{Tree: x.String()}, err
	}
	res := Result{Tree: x.String(), Value: r.format(v)}
	r.logger.Debug("evaluated expression",
		zap.String("src", src),
		zap.Int("tokens", len(toks)),
		zap.String("result", res.Value),
	)
	return res, nil
}

func (r *runner[T]) Define(name, value, description string) error {
	if name == "" || strings.ContainsAny(name, " ()") {
		return fmt.Errorf("invalid constant name %q", name)
	}
	if r.e.Recognizer().CanStartWith(name) {
		return fmt.Errorf("constant name %q would be read as a literal", name)
	}
	for _, k := range []opexpr.Kind{opexpr.Constant, opexpr.Prefix, opexpr.Postfix, opexpr.Infix} {
		if r.e.Lookup(name, k) != nil {
			return fmt.Errorf("%q is already defined as a %v operator", name, k)
		}
	}
	v, err := r.e.Eval(value)
	if err != nil {
		return fmt.Errorf("defining %s: %w", name, err)
	}
	if description == "" {
		description = "Constant " + name + "=" + value
	}
	r.e.AddConstant(name, description, v)
	r.logger.Debug("defined constant", zap.String("name", name), zap.String("value", r.format(v)))
	return nil
}

func (r *runner[T]) Ops() []Op {
	ops := r.e.Operations()
	d := make([]Op, len(ops))
	for i, op := range ops {
		d[i] = Op{
			Form:        op.String(),
			Kind:        op.Kind(),
			Precedence:  op.Precedence(),
			Description: op.Description(),
		}
	}
	return d
}

// Run evaluates each non-blank line of in as an expression and writes one
// line of output per expression to out. With echo, results are preceded by the
// parsed tree. Errors in expressions are written to out with a marker under
// the offending position; Run returns the number of expressions that failed
// and any error reading in.
func Run(s Session, in io.Reader, out io.Writer, echo bool, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sc := bufio.NewScanner(in)
	failed := 0
	line := 0
	for sc.Scan() {
		line++
		src := sc.Text()
		if strings.TrimSpace(src) == "" {
			continue
		}
		if !Eval(s, src, out, echo) {
			failed++
			logger.Warn("expression failed", zap.Int("line", line), zap.String("src", src))
		}
	}
	return failed, sc.Err()
}

// Eval evaluates one expression and writes its result or error to out. It
// returns whether evaluation succeeded.
func Eval(s Session, src string, out io.Writer, echo bool) bool {
	r, err := s.Eval(src)
	if err != nil {
		fmt.Fprintln(out, src)
		var ie opexpr.InputError
		if errors.As(err, &ie) {
			fmt.Fprintln(out, Marker(src, ie))
		}
		fmt.Fprintln(out, "error:", err)
		return false
	}
	if echo {
		fmt.Fprintf(out, "%s : ", r.Tree)
	}
	fmt.Fprintln(out, r.Value)
	return true
}

// Marker returns a line with a caret under each rune of the text an error
// refers to, or a single caret for errors at the end of the input.
func Marker(src string, err opexpr.InputError) string {
	n := len([]rune(err.Source()))
	if n == 0 {
		n = 1
	}
	return strings.Repeat(" ", err.Pos()) + strings.Repeat("^", n)
}
