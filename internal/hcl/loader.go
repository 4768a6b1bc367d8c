package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/carpdriver/internal/config"
	"github.com/specialistvlad/carpdriver/internal/ctxlog"
	"github.com/specialistvlad/carpdriver/internal/fsutil"
)

// fileExt is the extension of parameter files picked up from directories.
const fileExt = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL parameter loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every given file, and every .hcl file below given
// directories, and merges their blocks into a single partial model. Files
// are applied in order; a later simulation block or option overrides an
// earlier one, region blocks accumulate.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{Flavors: make(map[string]*config.Flavor)}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := l.translate(&root, model); err != nil {
			return nil, fmt.Errorf("invalid parameters in %s: %w", file, err)
		}
		logger.Debug("HCL file applied.", "file", file)
	}

	logger.Debug("HCL loading complete.",
		"conductivities", len(model.Conductivities),
		"ionic", len(model.Ionic),
		"stimuli", len(model.Stimuli),
		"lats", len(model.LATs),
		"flavors", len(model.Flavors),
		"options", len(model.Options),
	)
	return model, nil
}

// findAllHCLFiles returns a flat, de-duplicated list of parameter files.
// A missing path is an error: a parameter file the
// user named but that does not exist would silently fall back to defaults.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, fileExt)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, p := range found {
			add(p)
		}
	}
	return all, nil
}
