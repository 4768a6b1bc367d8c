// Package carpcmd composes the command line of the openCARP solver.
//
// A command line is an ordered list of flag/value pairs (Args). Compose
// builds the full list for one run from the parameter model, the mesh tag
// sets and the run options; Strings flattens it for exec.
package carpcmd
