package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/marsdev/ctxbench/tokenizer"
)

// stderrMarker separates captured stdout from stderr in a step's output,
// so command failures surface as extra text instead of aborting the run.
const stderrMarker = "\n[STDERR]\n"

// Runner executes shell command strings in one fixed working directory and
// records each execution as a Step on a Result.
type Runner struct {
	dir     string
	counter tokenizer.Counter
	out     io.Writer
	logger  *slog.Logger
}

// NewRunner creates a Runner rooted at dir. Progress lines go to out; a nil
// logger discards diagnostics. The target directory is announced on out.
func NewRunner(dir string, counter tokenizer.Counter, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fmt.Fprintf(out, "[System] Target Directory: %s\n", dir)
	return &Runner{dir: dir, counter: counter, out: out, logger: logger}
}

// Run executes command through the shell in the runner's directory, records
// one Step on res, and returns the captured output text. Failures never
// escape: a spawn-level error becomes the step's output. The call blocks
// until the process exits; no timeout is applied, so a command that never
// terminates hangs the whole run.
func (r *Runner) Run(ctx context.Context, command string, res *Result) string {
	fmt.Fprintf(r.out, "Running: %s\n", command)

	output, duration := r.execute(ctx, command)

	step := Step{
		Tool:      toolName(command),
		Command:   command,
		Tokens:    r.counter.Count(output),
		Duration:  duration,
		OutputLen: len(output),
	}
	res.Append(step)
	fmt.Fprintf(r.out, "[Step %d] Tool: %s, Tokens: %d, Time: %.4fs, OutputLen: %d\n",
		len(res.Steps), step.Tool, step.Tokens, step.Duration.Seconds(), step.OutputLen)

	return output
}

// execute spawns the command and returns its combined output text and the
// wall-clock duration from just before spawn to process exit. Token
// counting happens outside the measured window.
func (r *Runner) execute(ctx context.Context, command string) (string, time.Duration) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = r.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	output := stdout.String()
	if stderr.Len() > 0 {
		output += stderrMarker + stderr.String()
	}

	// A non-zero exit is normal benchmark output; only a spawn-level
	// failure replaces the captured text with the failure description.
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		output = err.Error()
		r.logger.Debug("spawn failed",
			slog.String("command", command),
			slog.String("error", err.Error()))
	}

	return output, duration
}

// toolName is the first whitespace-delimited token of the command string,
// i.e. the executable name.
func toolName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
