// Package numlit recognizes decimal number literals incrementally.
package numlit

import "regexp"

var (
	// mantissa matches an integer or a decimal with a possibly empty
	// fraction, e.g. "12" or "12.".
	mantissa = regexp.MustCompile(`^(\d+|\d+\.\d*)$`)
	// exponent matches a mantissa followed by a possibly incomplete
	// exponent, e.g. "1.5e" or "1.5e-3".
	exponent = regexp.MustCompile(`^(\d+|\d+\.\d+)[eE][-+]?\d*$`)
)

// CanStartWith returns whether text is a prefix of a decimal literal. Literals
// start with a digit; a sign is never part of one.
func CanStartWith(text string) bool {
	return mantissa.MatchString(text) || exponent.MatchString(text)
}

// Complete returns whether text is a whole decimal literal, i.e. it does not
// end in a dangling exponent marker or sign.
func Complete(text string) bool {
	if mantissa.MatchString(text) {
		return true
	}
	if !exponent.MatchString(text) {
		return false
	}
	last := text[len(text)-1]
	return '0' <= last && last <= '9'
}
