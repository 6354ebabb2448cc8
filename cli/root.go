package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version is the ctxbench version, overridden at build time via ldflags.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ctxbench [target-dir]",
	Short: "Benchmark grep-style code exploration against git-ai",
	Long: `ctxbench answers the same code question twice: once with a baseline
workflow built on find/grep/cat, once with the git-ai CLI. Every step is
timed and its output is token-counted the way an AI agent would pay for
it, then both workflows are compared in a single report.

Invoked without a subcommand it behaves like 'ctxbench run'.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runRun,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are printed once here because
// SilenceErrors suppresses cobra's own reporting.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetRootCmd exposes the root command for documentation generation.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

// newLogger returns a stderr logger honoring --verbose. Diagnostics stay
// out of stdout so they never count against measured output.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
