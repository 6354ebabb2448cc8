// Package history provides run-over-run tracking for ctxbench results.
// It records each completed benchmark locally and computes aggregate
// token savings of the git-ai workflow compared to the grep baseline.
package history
