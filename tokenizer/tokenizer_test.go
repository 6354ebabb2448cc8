package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/marsdev/ctxbench/tokenizer"
)

func TestEstimate_EmptyText(t *testing.T) {
	c := tokenizer.Estimate()
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		if got := c.Count(text); got != 0 {
			t.Errorf("Count(%q) = %d, want 0", text, got)
		}
	}
}

func TestEstimate_WordFactor(t *testing.T) {
	c := tokenizer.Estimate()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"one word", "hello", 1},
		{"two words", "hello world", 2},
		{"three words", "a b c", 3},
		{"ten words", strings.Repeat("word ", 10), 13},
		{"twenty words", strings.Repeat("word ", 20), 26},
		{"mixed whitespace", "  a\t\tb\nc  ", 3},
	}

	for _, tt := range tests {
		if got := c.Count(tt.text); got != tt.want {
			t.Errorf("%s: Count(%q) = %d, want %d", tt.name, tt.text, got, tt.want)
		}
	}
}

func TestEstimate_TruncatesNotRounds(t *testing.T) {
	c := tokenizer.Estimate()
	// 2 words * 1.3 = 2.6, which truncates to 2.
	if got := c.Count("hello world"); got != 2 {
		t.Errorf("Count = %d, want 2 (truncated)", got)
	}
}

func TestEstimate_Name(t *testing.T) {
	if got := tokenizer.Estimate().Name(); got != "word-estimate" {
		t.Errorf("Name() = %q, want word-estimate", got)
	}
}

func TestResolve_UnknownEncodingFallsBack(t *testing.T) {
	c, err := tokenizer.Resolve("no-such-encoding")
	if err == nil {
		t.Fatal("expected an error explaining why the exact encoder is unavailable")
	}
	if c == nil {
		t.Fatal("Resolve must always return a usable Counter")
	}
	if got := c.Count("hello world"); got != 2 {
		t.Errorf("fallback Count = %d, want 2", got)
	}
	if c.Name() != "word-estimate" {
		t.Errorf("fallback Name() = %q, want word-estimate", c.Name())
	}
}
