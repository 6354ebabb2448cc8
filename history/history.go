package history

import "path/filepath"

// Dir is the directory created inside the base directory to hold local
// benchmark state.
const Dir = ".ctxbench"

// FileName is the name of the NDJSON run history file inside Dir.
const FileName = "history.jsonl"

// LockFileName is the name of the lock file used for safe concurrent writes.
const LockFileName = "history.jsonl.lock"

// Entry represents a single completed benchmark run.
type Entry struct {
	RunID               string  `json:"run_id"`
	Timestamp           string  `json:"timestamp"` // RFC3339 UTC
	TargetDir           string  `json:"target_dir"`
	Tokenizer           string  `json:"tokenizer"` // counter name, e.g. cl100k_base or word-estimate
	BaselineTokens      int     `json:"baseline_tokens"`
	BaselineSteps       int     `json:"baseline_steps"`
	BaselineSeconds     float64 `json:"baseline_seconds"`
	ExperimentalTokens  int     `json:"experimental_tokens"`
	ExperimentalSteps   int     `json:"experimental_steps"`
	ExperimentalSeconds float64 `json:"experimental_seconds"`
}

// TokensSaved returns how many tokens the git-ai workflow saved over the
// baseline in this run. Negative when it consumed more.
func (e Entry) TokensSaved() int {
	return e.BaselineTokens - e.ExperimentalTokens
}

// Summary is the aggregated view of all recorded runs.
type Summary struct {
	TotalRuns          int            `json:"total_runs"`
	BaselineTokens     int            `json:"baseline_tokens"`
	ExperimentalTokens int            `json:"experimental_tokens"`
	TokensSaved        int            `json:"tokens_saved"`
	SavingsPct         float64        `json:"savings_pct"`
	ByTokenizer        map[string]int `json:"by_tokenizer"`
}

// Path returns the absolute path of the history NDJSON file under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, Dir, FileName)
}

// LockPath returns the absolute path of the history lock file under baseDir.
func LockPath(baseDir string) string {
	return filepath.Join(baseDir, Dir, LockFileName)
}
