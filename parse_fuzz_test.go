package opexpr_test

import (
	"testing"
	"unicode/utf8"

	"github.com/zephyrtronium/opexpr"
	"github.com/zephyrtronium/opexpr/floatcalc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("-1 - -1")
	f.Add("1×2")
	f.Add("sin cos(2)")
	e := floatcalc.New()
	f.Fuzz(func(t *testing.T, s string) {
		x, err := e.Parse(s)
		if err != nil {
			ie, ok := err.(opexpr.InputError)
			if !ok {
				t.Fatalf("%q gave non-positioned error %#v", s, err)
			}
			if ie.Pos() < 0 || ie.Pos() > utf8.RuneCountInString(s) {
				t.Fatalf("%q gave error at %d: %v", s, ie.Pos(), err)
			}
			return
		}
		// Whatever parses must reparse from its string form.
		if _, err := e.Parse(x.String()); err != nil {
			t.Fatalf("%q formatted as %q which does not parse: %v", s, x.String(), err)
		}
	})
}
