package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/marsdev/ctxbench/bench"
	"github.com/marsdev/ctxbench/config"
	"github.com/marsdev/ctxbench/history"
	"github.com/marsdev/ctxbench/report"
	"github.com/marsdev/ctxbench/tokenizer"
)

var (
	runPlain      bool
	runPrimeIndex bool
	runNoRecord   bool
)

var runCmd = &cobra.Command{
	Use:   "run [target-dir]",
	Short: "Run both workflows and print the comparison report",
	Long: `Run the baseline (find/grep/cat) and the experimental (git-ai)
workflow against a target repository, then print the comparison table.

The target directory comes from the positional argument, falling back to
the config file and finally the built-in default. Each step's stdout and
stderr are captured, token-counted and timed; command failures are
recorded as steps rather than aborting the benchmark.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runPlain, "plain", false, "Force the plain text table even on a terminal")
	runCmd.Flags().BoolVar(&runPrimeIndex, "prime-index", false, "Run 'git-ai ai index' before measuring (not counted)")
	runCmd.Flags().BoolVar(&runNoRecord, "no-record", false, "Skip writing this run to the local history")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := newLogger()
	out := cmd.OutOrStdout()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	targetDir := cfg.Target
	if len(args) == 1 {
		targetDir = args[0]
	}
	if _, err := os.Stat(targetDir); err != nil {
		return fmt.Errorf("target directory %s does not exist", targetDir)
	}

	counter, err := tokenizer.Resolve(cfg.Tokenizer.Encoding)
	if err != nil {
		fmt.Fprintln(out, "[System] tiktoken unavailable, using simple word count approximation (words * 1.3).")
		logger.Debug("tokenizer fallback", "encoding", cfg.Tokenizer.Encoding, "err", err)
	} else {
		fmt.Fprintf(out, "[System] using tiktoken (%s) for counting.\n", counter.Name())
	}

	runner := bench.NewRunner(targetDir, counter, out, logger)

	if runPrimeIndex {
		bench.PrimeIndex(ctx, runner)
	}

	baseline := bench.RunBaseline(ctx, runner)
	experimental := bench.RunExperimental(ctx, runner)

	report.Generate(out, baseline, experimental, report.Options{Styled: styledOutput(cfg)})

	if cfg.History.Enabled && !runNoRecord {
		recordRun(logger, cfg.History.Dir, targetDir, counter.Name(), baseline, experimental)
	}
	return nil
}

// styledOutput resolves the table mode once per run: explicit plain
// requests and NO_COLOR win, otherwise styling follows TTY detection.
func styledOutput(cfg *config.Config) bool {
	if runPlain || cfg.Report.Plain {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// recordRun appends the completed run to the local history file.
// Recording is best-effort; failures are only visible with --verbose.
func recordRun(logger *slog.Logger, baseDir, targetDir, counterName string, baseline, experimental *bench.Result) {
	rec := history.NewRecorder(baseDir)
	entry := history.Entry{
		RunID:               uuid.NewString(),
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		TargetDir:           targetDir,
		Tokenizer:           counterName,
		BaselineTokens:      baseline.TotalTokens,
		BaselineSteps:       len(baseline.Steps),
		BaselineSeconds:     baseline.TotalTime.Seconds(),
		ExperimentalTokens:  experimental.TotalTokens,
		ExperimentalSteps:   len(experimental.Steps),
		ExperimentalSeconds: experimental.TotalTime.Seconds(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rec.Record(ctx, entry); err != nil {
		logger.Debug("history record failed", "err", err)
	}
}
