package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/carpdriver/internal/job"
)

// Visualization data sets.
const (
	VisDataVm  = "vm"
	VisDataLAT = "lat"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Tend      float64 // ms
	NP        int
	Flavor    string
	Visualize bool
	Batch     bool
	VisData   string
	Dry       bool

	ID        string // overrides the derived job id
	Overwrite job.Behaviour
	CarpOpts  string

	ParamsPath string // hcl file or directory, optional
	SimDir     string
	OutputRoot string // directory job directories are created in

	Solver     string
	Visualizer string
	MPIExec    string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error
	if math.IsNaN(cfg.Tend) || math.IsInf(cfg.Tend, 0) {
		errs = append(errs, fmt.Errorf("tend must be a finite number, got %v", cfg.Tend))
	} else if cfg.Tend <= 0 {
		errs = append(errs, fmt.Errorf("tend must be positive, got %v", cfg.Tend))
	}
	if cfg.NP < 1 {
		errs = append(errs, fmt.Errorf("np must be at least 1, got %d", cfg.NP))
	}
	if cfg.Flavor == "" {
		errs = append(errs, errors.New("flavor must not be empty"))
	}
	if cfg.VisData != VisDataVm && cfg.VisData != VisDataLAT {
		errs = append(errs, fmt.Errorf("invalid vis-data %q: must be 'vm' or 'lat'", cfg.VisData))
	}
	if cfg.Solver == "" {
		errs = append(errs, errors.New("solver executable must be set"))
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		errs = append(errs, fmt.Errorf("healthcheck-port out of range: %d", cfg.HealthcheckPort))
	}
	if cfg.SimDir == "" {
		cfg.SimDir = "."
	}
	if cfg.Overwrite == "" {
		cfg.Overwrite = job.Overwrite
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
