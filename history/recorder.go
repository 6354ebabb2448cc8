package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Recorder appends run entries to the local NDJSON history file.
type Recorder struct {
	historyPath string
	lockPath    string
}

// NewRecorder creates a Recorder that writes under baseDir/.ctxbench.
func NewRecorder(baseDir string) *Recorder {
	return &Recorder{
		historyPath: Path(baseDir),
		lockPath:    LockPath(baseDir),
	}
}

// Record appends one entry to the history NDJSON file.
// The write is protected by a file lock for cross-process safety.
// If the context is cancelled or the write fails, the error is returned
// but recording is best-effort: callers log it at most and carry on.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("history: marshal entry: %w", err)
	}
	line = append(line, '\n')

	if err := os.MkdirAll(filepath.Dir(r.historyPath), 0o755); err != nil {
		return fmt.Errorf("history: create dir: %w", err)
	}

	lockFile, err := os.OpenFile(r.lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		// Proceed without locking rather than failing the caller.
		return r.appendLine(line)
	}
	defer lockFile.Close()

	if err := lockExclusive(lockFile); err != nil {
		return r.appendLine(line)
	}
	defer func() { _ = unlock(lockFile) }()

	return r.appendLine(line)
}

func (r *Recorder) appendLine(line []byte) error {
	f, err := os.OpenFile(r.historyPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("history: open file: %w", err)
	}
	defer f.Close()

	_, err = f.Write(line)
	return err
}
