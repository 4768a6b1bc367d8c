package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/carpdriver/internal/app"
	"github.com/specialistvlad/carpdriver/internal/config"
	"github.com/specialistvlad/carpdriver/internal/job"
)

// BatchEnv marks a batch platform (cluster queue) where no visualizer may
// be started.
const BatchEnv = "CARPDRIVER_BATCH"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode maps an error returned by the application to a process exit
// code. A failed child process passes its own exit code through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var procErr *exec.ExitError
	if errors.As(err, &procErr) && procErr.ExitCode() > 0 {
		return procErr.ExitCode()
	}
	return 1
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return parse(args, output, os.LookupEnv)
}

func parse(args []string, output io.Writer, lookupEnv func(string) (string, bool)) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	batchDefault := false
	if v, ok := lookupEnv(BatchEnv); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid %s=%q: must be a boolean", BatchEnv, v)}
		}
		batchDefault = b
	}

	var (
		cfg       app.Config
		overwrite string
		parsed    bool
	)

	cmd := &cobra.Command{
		Use:   "carpdriver [flags]",
		Short: "Run a monodomain simulation on the ellipsoid example mesh",
		Long: `carpdriver - runs the openCARP solver on a pre-generated mesh.

It reads the region tags of the mesh, composes the solver command line
(physics regions, conductivities, ionic model, stimulus, activation time
detection) and optionally opens the result in meshalyzer.

Simulation parameters default to the built-in example and can be changed
with an HCL parameter file (--params).`,
		Example: `  carpdriver --tend 100 --np 4 --flv pt
  carpdriver --visualize --vis-data lat
  carpdriver --params params.hcl --CARP-opts "-dt 25" --dry`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			parsed = true
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	f := cmd.Flags()
	f.SortFlags = false
	f.Float64Var(&cfg.Tend, "tend", config.DefaultTend, "Duration of simulation (ms). Run for longer to also see repolarization.")
	f.IntVar(&cfg.NP, "np", 1, "Number of processes.")
	f.StringVar(&cfg.Flavor, "flv", config.DefaultFlavor, "Solver flavor, e.g. 'petsc' or 'pt'.")
	f.BoolVar(&cfg.Visualize, "visualize", false, "Write visualization output and open it in the visualizer.")
	f.BoolVar(&cfg.Batch, "batch", batchDefault, "Batch platform: never start the visualizer (default from $"+BatchEnv+").")
	f.StringVar(&cfg.VisData, "vis-data", app.VisDataVm, "Data to visualize. Options: 'vm' or 'lat'.")
	f.BoolVar(&cfg.Dry, "dry", false, "Print the commands instead of running them.")
	f.StringVar(&cfg.ID, "ID", "", "Job ID and output directory name (default derived from date, tend, flavor and np).")
	f.StringVar(&overwrite, "overwrite-behaviour", string(job.Overwrite), "What to do with an existing output directory. Options: 'overwrite', 'append', 'error'.")
	f.StringVar(&cfg.CarpOpts, "CARP-opts", "", "Additional solver options, shell-quoted, e.g. \"-dt 25\".")
	f.StringVarP(&cfg.ParamsPath, "params", "p", "", "HCL parameter file or directory.")
	f.StringVar(&cfg.SimDir, "sim-dir", ".", "Directory the mesh, par and view files are resolved against.")
	f.StringVar(&cfg.OutputRoot, "output-root", "", "Directory job directories are created in (default current directory).")
	f.StringVar(&cfg.Solver, "solver", "openCARP", "Solver executable.")
	f.StringVar(&cfg.Visualizer, "visualizer", "meshalyzer", "Visualizer executable.")
	f.StringVar(&cfg.MPIExec, "mpi-exec", "mpiexec", "MPI launcher used when np > 1.")
	f.StringVar(&cfg.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	f.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	f.IntVar(&cfg.HealthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !parsed {
		// Help was requested and has been printed.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	b, err := job.ParseBehaviour(overwrite)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	cfg.Overwrite = b
	cfg.VisData = strings.ToLower(cfg.VisData)
	slog.Debug("CLI parameter validation complete.")

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", appConfig)
	return appConfig, false, nil
}
