// Package tokenizer estimates how many LLM tokens a piece of text costs.
// The exact BPE encoding is resolved once at startup; when it cannot be
// loaded the package degrades to a word-count approximation.
package tokenizer

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE encoding used for exact counting.
const DefaultEncoding = "cl100k_base"

// wordTokenRatio is the tokens-per-word factor of the fallback estimate.
const wordTokenRatio = 1.3

// Counter converts arbitrary text into an approximate token count.
// Implementations accept any input and never fail.
type Counter interface {
	// Count returns a non-negative token estimate for text.
	Count(text string) int
	// Name identifies the counting strategy, e.g. "cl100k_base" or "word-estimate".
	Name() string
}

// Resolve picks the token counting strategy for the whole process.
// It never returns a nil Counter: when the requested encoding cannot be
// loaded, the returned Counter estimates by word count and the error
// reports why the exact encoder was unavailable. Callers resolve once and
// inject the result; the choice is not revisited per call.
func Resolve(encoding string) (Counter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return wordEstimate{}, err
	}
	return bpeCounter{enc: enc, name: encoding}, nil
}

// Estimate returns the fallback word-count Counter directly.
func Estimate() Counter {
	return wordEstimate{}
}

type bpeCounter struct {
	enc  *tiktoken.Tiktoken
	name string
}

func (c bpeCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

func (c bpeCounter) Name() string { return c.name }

type wordEstimate struct{}

// Count approximates tokens as whitespace-separated words times 1.3,
// truncated. Empty text yields 0.
func (wordEstimate) Count(text string) int {
	words := len(strings.Fields(text))
	return int(float64(words) * wordTokenRatio)
}

func (wordEstimate) Name() string { return "word-estimate" }
