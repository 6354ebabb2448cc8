// Package bench executes the two measured workflows of the benchmark.
// It runs fixed shell command sequences against one target directory and
// records per-step token, duration and output-size measurements.
package bench
