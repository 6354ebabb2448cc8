package report_test

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/marsdev/ctxbench/bench"
	"github.com/marsdev/ctxbench/report"
)

func makeResult(t *testing.T, name string, tokens []int, durations []time.Duration) *bench.Result {
	t.Helper()
	res := bench.NewResult(name)
	for i, tok := range tokens {
		var d time.Duration
		if i < len(durations) {
			d = durations[i]
		}
		res.Append(bench.Step{
			Tool:      "tool",
			Command:   fmt.Sprintf("tool arg-%d", i),
			Tokens:    tok,
			Duration:  d,
			OutputLen: tok,
		})
	}
	return res
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 0.05 {
		t.Errorf("%s = %.4f, want %.4f", name, got, want)
	}
}

func TestCompare_ReferenceScenario(t *testing.T) {
	baseline := makeResult(t, bench.BaselineName, []int{100, 200, 50}, nil)
	experimental := makeResult(t, bench.ExperimentalName, []int{30, 40}, nil)

	c := report.Compare(baseline, experimental)

	if c.BaselineTokens != 350 || c.ExperimentalTokens != 70 {
		t.Errorf("tokens = %d vs %d, want 350 vs 70", c.BaselineTokens, c.ExperimentalTokens)
	}
	if c.BaselineSteps != 3 || c.ExperimentalSteps != 2 {
		t.Errorf("steps = %d vs %d, want 3 vs 2", c.BaselineSteps, c.ExperimentalSteps)
	}
	approx(t, "TokensPct", c.TokensPct, -80.0)
	approx(t, "StepsPct", c.StepsPct, -33.3333)
	approx(t, "BaselineAvg", c.BaselineAvg, 116.6667)
	approx(t, "ExperimentalAvg", c.ExperimentalAvg, 35.0)
	approx(t, "AvgPct", c.AvgPct, -70.0)
}

func TestCompare_ZeroBaselineYieldsZeroPercents(t *testing.T) {
	baseline := bench.NewResult(bench.BaselineName)
	experimental := makeResult(t, bench.ExperimentalName, []int{10}, nil)

	c := report.Compare(baseline, experimental)

	if c.TokensPct != 0 || c.StepsPct != 0 || c.AvgPct != 0 {
		t.Errorf("percent changes = %.1f/%.1f/%.1f, want all 0 for empty baseline",
			c.TokensPct, c.StepsPct, c.AvgPct)
	}
	if c.BaselineAvg != 0 {
		t.Errorf("BaselineAvg = %f, want 0", c.BaselineAvg)
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		newVal, oldVal, want float64
	}{
		{70, 350, -80},
		{350, 70, 400},
		{0, 100, -100},
		{123, 0, 0},
		{0, 0, 0},
	}
	for _, tc := range tests {
		got := report.PercentChange(tc.newVal, tc.oldVal)
		if math.Abs(got-tc.want) > 0.0001 {
			t.Errorf("PercentChange(%v, %v) = %v, want %v", tc.newVal, tc.oldVal, got, tc.want)
		}
	}
}

func TestGenerate_PlainTable(t *testing.T) {
	baseline := makeResult(t, bench.BaselineName, []int{100, 200, 50},
		[]time.Duration{time.Second, time.Second, 500 * time.Millisecond})
	experimental := makeResult(t, bench.ExperimentalName, []int{30, 40},
		[]time.Duration{600 * time.Millisecond, 400 * time.Millisecond})

	var buf bytes.Buffer
	report.Generate(&buf, baseline, experimental, report.Options{Styled: false})
	out := buf.String()

	if !strings.Contains(out, "BENCHMARK REPORT") {
		t.Fatalf("missing report banner:\n%s", out)
	}

	wantHeader := fmt.Sprintf("%-25s | %-20s | %-20s | %-15s",
		"Metric", bench.BaselineName, bench.ExperimentalName, "Improvement")
	if !strings.Contains(out, wantHeader) {
		t.Errorf("missing header row %q in:\n%s", wantHeader, out)
	}
	if !strings.Contains(out, strings.Repeat("-", 90)) {
		t.Errorf("missing separator rule in:\n%s", out)
	}

	wantRows := []string{
		fmt.Sprintf("%-25s | %-20s | %-20s | %-15s", "Total Search Tokens", "350", "70", "-80.0%"),
		fmt.Sprintf("%-25s | %-20s | %-20s | %-15s", "Steps to Solution", "3", "2", "-33.3%"),
		fmt.Sprintf("%-25s | %-20s | %-20s | %-15s", "Avg Tokens/Step", "116.7", "35.0", "-70.0%"),
		fmt.Sprintf("%-25s | %-20s | %-20s | %-15s", "Total Time (s)", "2.50", "1.00", "-1.50s"),
	}
	for _, want := range wantRows {
		if !strings.Contains(out, want) {
			t.Errorf("missing row %q in:\n%s", want, out)
		}
	}
}

func TestGenerate_StyledTableSmoke(t *testing.T) {
	baseline := makeResult(t, bench.BaselineName, []int{100, 200, 50}, nil)
	experimental := makeResult(t, bench.ExperimentalName, []int{30, 40}, nil)

	var buf bytes.Buffer
	report.Generate(&buf, baseline, experimental, report.Options{Styled: true})
	out := buf.String()

	for _, want := range []string{"BENCHMARK REPORT", "Metric", "Total Search Tokens", "Improvement"} {
		if !strings.Contains(out, want) {
			t.Errorf("styled output missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{350, "350"},
		{1234567, "1,234,567"},
	}
	for _, tc := range tests {
		if got := report.FormatInt(tc.n); got != tc.want {
			t.Errorf("FormatInt(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
