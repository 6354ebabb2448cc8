package bench

import "time"

// Step is one executed command together with its measured outcome.
// Steps are immutable once appended to a Result.
type Step struct {
	Tool      string
	Command   string
	Tokens    int
	Duration  time.Duration
	OutputLen int
}

// Result accumulates the steps of one workflow in execution order together
// with running totals. Step order is meaningful: it is the number of
// actions needed to reach the answer ("steps to solution").
type Result struct {
	Name        string
	Steps       []Step
	TotalTokens int
	TotalTime   time.Duration
}

// NewResult creates an empty tracker for one named workflow.
func NewResult(name string) *Result {
	return &Result{Name: name}
}

// Append records one step and updates the running totals. Steps are never
// removed or reordered afterwards.
func (r *Result) Append(s Step) {
	r.Steps = append(r.Steps, s)
	r.TotalTokens += s.Tokens
	r.TotalTime += s.Duration
}

// AvgTokensPerStep returns the mean token count per recorded step,
// 0 when nothing has been recorded.
func (r *Result) AvgTokensPerStep() float64 {
	if len(r.Steps) == 0 {
		return 0
	}
	return float64(r.TotalTokens) / float64(len(r.Steps))
}
