package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/marsdev/ctxbench/config"
	"github.com/marsdev/ctxbench/history"
	"github.com/marsdev/ctxbench/report"
)

var (
	historyJSON  bool
	historyTOON  bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded benchmark runs and aggregate savings",
	Long: `Display locally recorded benchmark runs together with the aggregate
token savings of the git-ai workflow over the grep baseline.

Every completed run appends one entry to .ctxbench/history.jsonl in the
directory ctxbench was invoked from. This command aggregates those
entries and lists the most recent runs.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVarP(&historyJSON, "json", "j", false, "Output results in JSON format")
	historyCmd.Flags().BoolVarP(&historyTOON, "toon", "t", false, "Output results in TOON format (token-efficient for AI agents)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Max runs listed")
	historyCmd.MarkFlagsMutuallyExclusive("json", "toon")
}

// historyOutput pairs the aggregate summary with the most recent runs
// for the machine-readable output modes.
type historyOutput struct {
	Summary history.Summary `json:"summary"`
	Runs    []history.Entry `json:"runs"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	entries, err := history.ReadAll(history.Path(cfg.History.Dir))
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No benchmark runs recorded yet.")
		fmt.Println("Run 'ctxbench run' to record one.")
		return nil
	}

	summary := history.Summarize(entries)
	runs := history.Recent(entries, historyLimit)

	if historyJSON {
		return outputHistoryJSON(summary, runs)
	}
	if historyTOON {
		return outputHistoryTOON(summary, runs)
	}
	return outputHistoryHuman(summary, runs)
}

// outputHistoryJSON renders the summary and recent runs as JSON.
func outputHistoryJSON(summary history.Summary, runs []history.Entry) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(historyOutput{Summary: summary, Runs: runs})
}

// outputHistoryTOON renders the summary and recent runs in TOON format.
func outputHistoryTOON(summary history.Summary, runs []history.Entry) error {
	output, err := gotoon.Encode(historyOutput{Summary: summary, Runs: runs})
	if err != nil {
		return fmt.Errorf("failed to encode TOON: %w", err)
	}
	fmt.Println(output)
	return nil
}

// outputHistoryHuman renders the summary using lipgloss styles.
func outputHistoryHuman(summary history.Summary, runs []history.Entry) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	content := headerStyle.Render("ctxbench history — Token Savings") + "\n\n"

	content += labelStyle.Render("Total runs") + valueStyle.Render(fmt.Sprintf("%d", summary.TotalRuns)) + "\n"
	content += labelStyle.Render("Tokens (baseline)") + valueStyle.Render(report.FormatInt(summary.BaselineTokens)) + "\n"
	content += labelStyle.Render("Tokens (git-ai)") + valueStyle.Render(report.FormatInt(summary.ExperimentalTokens)) + "\n"
	content += labelStyle.Render("Tokens saved") +
		valueStyle.Render(fmt.Sprintf("%s  ▲ %.1f%%", report.FormatInt(summary.TokensSaved), summary.SavingsPct)) + "\n"

	tokLine := "By tokenizer: "
	keys := lo.Keys(summary.ByTokenizer)
	sort.Strings(keys)
	for _, k := range keys {
		tokLine += fmt.Sprintf("%s %d · ", k, summary.ByTokenizer[k])
	}
	content += dimStyle.Render(trimSuffix(tokLine, " · ")) + "\n"

	fmt.Println(boxStyle.Render(content))

	printRunsTable(runs, dimStyle, valueStyle)
	return nil
}

func printRunsTable(runs []history.Entry, dimStyle, valueStyle lipgloss.Style) {
	colWhen := lipgloss.NewStyle().Width(18)
	colTarget := lipgloss.NewStyle().Width(28)
	colTokens := lipgloss.NewStyle().Width(20)
	colSaved := lipgloss.NewStyle().Width(18)

	header := dimStyle.Render(
		colWhen.Render("When") +
			colTarget.Render("Target") +
			colTokens.Render("Base → git-ai") +
			colSaved.Render("Saved"))
	sep := dimStyle.Render(fmt.Sprintf("%-18s %-28s %-20s %-18s",
		"─────────────────", "───────────────────────────", "───────────────────", "─────────────────"))
	fmt.Println(header)
	fmt.Println(sep)

	for _, e := range runs {
		when := e.Timestamp
		if len(when) >= 16 {
			when = strings.Replace(when[:16], "T", " ", 1)
		}
		target := e.TargetDir
		if len(target) > 26 {
			target = "…" + target[len(target)-25:]
		}
		pct := 0.0
		if e.BaselineTokens > 0 {
			pct = float64(e.TokensSaved()) / float64(e.BaselineTokens) * 100
		}
		row := colWhen.Render(when) +
			colTarget.Render(target) +
			colTokens.Render(fmt.Sprintf("%s → %s", report.FormatInt(e.BaselineTokens), report.FormatInt(e.ExperimentalTokens))) +
			colSaved.Render(fmt.Sprintf("%s (%.1f%%)", report.FormatInt(e.TokensSaved()), pct))
		fmt.Println(valueStyle.Render(row))
	}
}

func trimSuffix(s, suffix string) string {
	if len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}
