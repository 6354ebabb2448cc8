package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
)

// ReadAll reads all entries from the NDJSON history file at historyPath.
// Malformed lines are skipped with a warning to stderr.
// Returns an empty slice (not an error) when the file does not exist.
func ReadAll(historyPath string) ([]Entry, error) {
	f, err := os.Open(historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: open: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			fmt.Fprintf(os.Stderr, "history: skipping malformed line %d: %v\n", lineNum, err)
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return entries, fmt.Errorf("history: read: %w", err)
	}
	return entries, nil
}

// Summarize aggregates entries into a Summary.
func Summarize(entries []Entry) Summary {
	s := Summary{
		TotalRuns:          len(entries),
		BaselineTokens:     lo.SumBy(entries, func(e Entry) int { return e.BaselineTokens }),
		ExperimentalTokens: lo.SumBy(entries, func(e Entry) int { return e.ExperimentalTokens }),
		ByTokenizer:        lo.CountValuesBy(entries, func(e Entry) string { return e.Tokenizer }),
	}
	s.TokensSaved = s.BaselineTokens - s.ExperimentalTokens
	if s.BaselineTokens > 0 {
		s.SavingsPct = float64(s.TokensSaved) / float64(s.BaselineTokens) * 100
	}
	return s
}

// Recent returns up to limit entries, most recent first. Entries are
// appended chronologically, so file order is reversed. A limit of zero
// or less means no limit.
func Recent(entries []Entry, limit int) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
