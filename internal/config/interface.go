package config

import "context"

// Loader is the interface for a format-specific parameter loader.
type Loader interface {
	// Load reads parameters from the given files or directories and
	// returns them as a partial model. Kinds that are not mentioned in any
	// file are left empty so Merge keeps their defaults.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
