package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/google/uuid"

	"github.com/specialistvlad/carpdriver/internal/carpcmd"
	"github.com/specialistvlad/carpdriver/internal/ctxlog"
)

// Config holds the launcher settings of a job.
type Config struct {
	ID         string
	BaseDir    string // directory the output directory is created in
	NP         int
	Solver     string
	Visualizer string
	MPIExec    string
	Overwrite  Behaviour

	// Dry prints commands to Out instead of running them.
	Dry bool
	Out io.Writer
}

// Job is a single simulation run.
type Job struct {
	ID    string
	RunID uuid.UUID

	cfg    Config
	runner Runner
}

// New creates a job. A nil runner defaults to ExecRunner.
func New(cfg Config, runner Runner) (*Job, error) {
	if cfg.ID == "" {
		return nil, errors.New("job id must not be empty")
	}
	if strings.ContainsAny(cfg.ID, `/\`) {
		return nil, fmt.Errorf("job id %q must not contain path separators", cfg.ID)
	}
	if cfg.NP < 1 {
		return nil, fmt.Errorf("process count must be at least 1, got %d", cfg.NP)
	}
	if cfg.Solver == "" {
		return nil, errors.New("solver executable must be set")
	}
	if cfg.Overwrite == "" {
		cfg.Overwrite = Overwrite
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Job{
		ID:     cfg.ID,
		RunID:  uuid.New(),
		cfg:    cfg,
		runner: runner,
	}, nil
}

// Dir is the output directory of the job.
func (j *Job) Dir() string {
	return filepath.Join(j.cfg.BaseDir, j.ID)
}

// Path returns name inside the output directory.
func (j *Job) Path(name string) string {
	return filepath.Join(j.Dir(), name)
}

// Dry reports whether the job only prints its commands.
func (j *Job) Dry() bool { return j.cfg.Dry }

// Prepare applies the overwrite behaviour to the output directory.
func (j *Job) Prepare(ctx context.Context) error {
	if j.cfg.Dry {
		return nil
	}
	ctxlog.FromContext(ctx).Debug("Preparing output directory.", "dir", j.Dir(), "behaviour", j.cfg.Overwrite)
	return prepareDir(j.Dir(), j.cfg.Overwrite)
}

// SolverCommand returns the program and arguments that run the solver,
// wrapped in the MPI launcher for more than one process.
func (j *Job) SolverCommand(args carpcmd.Args) (string, []string) {
	if j.cfg.NP > 1 {
		launcher := j.cfg.MPIExec
		if launcher == "" {
			launcher = "mpiexec"
		}
		out := append([]string{"-n", strconv.Itoa(j.cfg.NP), j.cfg.Solver}, args.Strings()...)
		return launcher, out
	}
	return j.cfg.Solver, args.Strings()
}

// Carp runs the solver with the composed command line.
func (j *Job) Carp(ctx context.Context, args carpcmd.Args) error {
	name, argv := j.SolverCommand(args)
	if err := j.run(ctx, name, argv); err != nil {
		return fmt.Errorf("simulation %s: %w", j.ID, err)
	}
	return nil
}

// Meshalyzer opens mesh, data and view in the visualizer.
func (j *Job) Meshalyzer(ctx context.Context, mesh, data, view string) error {
	if j.cfg.Visualizer == "" {
		return errors.New("visualizer executable must be set")
	}
	if err := j.run(ctx, j.cfg.Visualizer, []string{mesh, data, view}); err != nil {
		return fmt.Errorf("visualization of %s: %w", j.ID, err)
	}
	return nil
}

func (j *Job) run(ctx context.Context, name string, args []string) error {
	logger := ctxlog.FromContext(ctx)
	if j.cfg.Dry {
		fmt.Fprintln(j.cfg.Out, commandLine(name, args))
		logger.Debug("Dry run, command not executed.", "program", name)
		return nil
	}
	logger.Info("Launching.", "program", name, "arg_count", len(args))
	return j.runner.Run(ctx, name, args...)
}

// commandLine renders a command for copy and paste into a POSIX shell.
func commandLine(name string, args []string) string {
	return shellescape.QuoteCommand(append([]string{name}, args...))
}
