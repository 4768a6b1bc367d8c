// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, decoding blocks
// into the format-agnostic config model and converting cty values of
// free-form options into plain Go values.
package hcl
