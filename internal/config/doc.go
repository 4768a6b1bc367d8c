// Package config defines the format-agnostic simulation parameter model:
// mesh and solver files, conductivity and ionic model regions, stimulus
// electrodes, activation-time post-processing and solver flavors.
//
// `Defaults` returns the built-in parameter set. A `Loader` (see the hcl
// package) produces a partial model from parameter files which is layered
// on top of the defaults with `Merge`.
package config
