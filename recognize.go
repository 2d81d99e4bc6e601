package opexpr

import (
	"strconv"
	"strings"
)

// WordRecognizer recognizes a fixed set of words, ignoring case.
type WordRecognizer[T any] struct {
	words []string
	vals  []T
}

// RecognizeWords creates a Recognizer for the keys of words. Keys are matched
// without regard to case.
func RecognizeWords[T any](words map[string]T) *WordRecognizer[T] {
	r := WordRecognizer[T]{
		words: make([]string, 0, len(words)),
		vals:  make([]T, 0, len(words)),
	}
	for k, v := range words {
		r.words = append(r.words, strings.ToLower(k))
		r.vals = append(r.vals, v)
	}
	return &r
}

// FromString returns the value of a complete word.
func (r *WordRecognizer[T]) FromString(text string) (T, error) {
	text = strings.ToLower(text)
	for i, w := range r.words {
		if w == text {
			return r.vals[i], nil
		}
	}
	var zero T
	return zero, &WordError{Text: text}
}

// CanStartWith returns whether text is a prefix of any word.
func (r *WordRecognizer[T]) CanStartWith(text string) bool {
	text = strings.ToLower(text)
	for _, w := range r.words {
		if strings.HasPrefix(w, text) {
			return true
		}
	}
	return false
}

// WordError is the error a WordRecognizer returns for text that is not one of
// its words.
type WordError struct {
	// Text is the rejected text.
	Text string
}

func (err *WordError) Error() string {
	return "unknown word " + strconv.Quote(err.Text)
}
