// Package job runs one simulation: it owns the job identifier and output
// directory, launches the solver (optionally under MPI) and the visualizer,
// and records what was run in a manifest next to the solver output.
package job
