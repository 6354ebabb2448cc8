// Package report compares two benchmark results and renders the final
// comparison table, either lipgloss-styled for terminals or as plain
// aligned text for pipes and logs.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marsdev/ctxbench/bench"
)

const (
	bannerLine  = "######################################################"
	bannerTitle = "#                  BENCHMARK REPORT                  #"
)

var tableHeaders = [4]string{"Metric", bench.BaselineName, bench.ExperimentalName, "Improvement"}

// Comparison holds the four report metrics for both workflows plus the
// derived deltas. Percentages are raw relative change from baseline to
// experimental; no sign normalization is applied, so a regression shows
// up as a positive value in the Improvement column.
type Comparison struct {
	BaselineTokens     int
	ExperimentalTokens int
	TokensPct          float64

	BaselineSteps     int
	ExperimentalSteps int
	StepsPct          float64

	BaselineAvg     float64
	ExperimentalAvg float64
	AvgPct          float64

	BaselineSeconds     float64
	ExperimentalSeconds float64
	TimeDiffSeconds     float64
}

// Options controls how Generate renders the table.
type Options struct {
	// Styled selects the lipgloss table. Callers resolve this once from
	// TTY detection, NO_COLOR and flags; Generate never sniffs the
	// environment itself.
	Styled bool
}

// PercentChange returns the relative change from oldVal to newVal as a
// percentage. A zero oldVal yields 0 rather than a division error.
func PercentChange(newVal, oldVal float64) float64 {
	if oldVal == 0 {
		return 0
	}
	return (newVal - oldVal) / oldVal * 100
}

// Compare derives the report metrics from two completed workflow results.
func Compare(baseline, experimental *bench.Result) Comparison {
	c := Comparison{
		BaselineTokens:      baseline.TotalTokens,
		ExperimentalTokens:  experimental.TotalTokens,
		BaselineSteps:       len(baseline.Steps),
		ExperimentalSteps:   len(experimental.Steps),
		BaselineAvg:         baseline.AvgTokensPerStep(),
		ExperimentalAvg:     experimental.AvgTokensPerStep(),
		BaselineSeconds:     baseline.TotalTime.Seconds(),
		ExperimentalSeconds: experimental.TotalTime.Seconds(),
	}
	c.TokensPct = PercentChange(float64(c.ExperimentalTokens), float64(c.BaselineTokens))
	c.StepsPct = PercentChange(float64(c.ExperimentalSteps), float64(c.BaselineSteps))
	c.AvgPct = PercentChange(c.ExperimentalAvg, c.BaselineAvg)
	c.TimeDiffSeconds = c.ExperimentalSeconds - c.BaselineSeconds
	return c
}

// Generate writes the banner and comparison table for the two results.
func Generate(w io.Writer, baseline, experimental *bench.Result, opts Options) {
	c := Compare(baseline, experimental)

	fmt.Fprintf(w, "\n\n%s\n", bannerLine)
	fmt.Fprintln(w, bannerTitle)
	fmt.Fprintln(w, bannerLine)

	if opts.Styled {
		renderStyled(w, c.rows())
	} else {
		renderPlain(w, c.rows())
	}
}

func (c Comparison) rows() [][4]string {
	return [][4]string{
		{
			"Total Search Tokens",
			FormatInt(c.BaselineTokens),
			FormatInt(c.ExperimentalTokens),
			fmt.Sprintf("%.1f%%", c.TokensPct),
		},
		{
			"Steps to Solution",
			fmt.Sprintf("%d", c.BaselineSteps),
			fmt.Sprintf("%d", c.ExperimentalSteps),
			fmt.Sprintf("%.1f%%", c.StepsPct),
		},
		{
			"Avg Tokens/Step",
			fmt.Sprintf("%.1f", c.BaselineAvg),
			fmt.Sprintf("%.1f", c.ExperimentalAvg),
			fmt.Sprintf("%.1f%%", c.AvgPct),
		},
		{
			"Total Time (s)",
			fmt.Sprintf("%.2f", c.BaselineSeconds),
			fmt.Sprintf("%.2f", c.ExperimentalSeconds),
			fmt.Sprintf("%.2fs", c.TimeDiffSeconds),
		},
	}
}

func renderStyled(w io.Writer, rows [][4]string) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	colMetric := lipgloss.NewStyle().Width(25)
	colBase := lipgloss.NewStyle().Width(23)
	colExp := lipgloss.NewStyle().Width(23)
	colDiff := lipgloss.NewStyle().Width(15)

	header := headerStyle.Render(
		colMetric.Render(tableHeaders[0]) +
			colBase.Render(tableHeaders[1]) +
			colExp.Render(tableHeaders[2]) +
			colDiff.Render(tableHeaders[3]))
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("─", 86)))

	for _, row := range rows {
		line := colMetric.Render(row[0]) +
			colBase.Render(row[1]) +
			colExp.Render(row[2]) +
			colDiff.Render(row[3])
		fmt.Fprintln(w, valueStyle.Render(line))
	}
}

func renderPlain(w io.Writer, rows [][4]string) {
	const rowFormat = "%-25s | %-20s | %-20s | %-15s\n"
	fmt.Fprintf(w, rowFormat, tableHeaders[0], tableHeaders[1], tableHeaders[2], tableHeaders[3])
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, row := range rows {
		fmt.Fprintf(w, rowFormat, row[0], row[1], row[2], row[3])
	}
}

// FormatInt renders n with thousands separators, e.g. 1234567 becomes
// "1,234,567".
func FormatInt(n int) string {
	if n == 0 {
		return "0"
	}
	s := fmt.Sprintf("%d", n)
	result := ""
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
