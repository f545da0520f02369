// Package benchmark holds the data model for benchmark workloads: the
// benchmark unit itself, its declared parameter interface, the process-wide
// suite registry, and the result record exchanged with reporters.
//
// Benchmarks are registered explicitly (typically from an init function or
// a suite setup call) and are immutable once collected for a run. The
// package also implements the two pre-flight stages of a run: unifying the
// parameter interfaces of all collected benchmarks, and validating
// caller-supplied parameters against the unified interface before any
// benchmark side effect occurs.
package benchmark
