package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/carpdriver/internal/carpcmd"
	"github.com/specialistvlad/carpdriver/internal/ctxlog"
	"github.com/specialistvlad/carpdriver/internal/fsutil"
	"github.com/specialistvlad/carpdriver/internal/job"
	"github.com/specialistvlad/carpdriver/internal/mesh"
)

// Output files the visualizer reads from the job directory.
const (
	vmFile          = "vm.igb.gz"
	intraMeshSuffix = "_i"
)

// Run executes one simulation: read the mesh tags, compose the solver
// command, run the solver and, when requested outside batch mode, open the
// result in the visualizer.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthCheckServer(ctx, a.config.HealthcheckPort); err != nil {
			a.setStage(StageFailed)
			return err
		}
		defer func() {
			if cerr := a.closeHealthCheckServer(ctx); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	// Registered after the server so the failure is visible before shutdown.
	defer func() {
		if err != nil {
			a.setStage(StageFailed)
		}
	}()

	cfg := a.config
	sim := a.params.Simulation
	meshname := mesh.Name(a.resolve(sim.Mesh))

	a.setStage(StageReadingMesh)
	tags, err := mesh.ReadTags(meshname)
	if err != nil {
		return fmt.Errorf("failed to read mesh tags: %w", err)
	}
	a.logger.Info("Mesh tags loaded.", "mesh", meshname, "all", tags.All(), "intra", tags.Intra())

	id := cfg.ID
	if id == "" {
		id = job.ID(a.now(), cfg.Tend, cfg.Flavor, cfg.NP)
	}
	j, err := job.New(job.Config{
		ID:         id,
		BaseDir:    cfg.OutputRoot,
		NP:         cfg.NP,
		Solver:     cfg.Solver,
		Visualizer: cfg.Visualizer,
		MPIExec:    cfg.MPIExec,
		Overwrite:  cfg.Overwrite,
		Dry:        cfg.Dry,
		Out:        a.outW,
	}, a.runner)
	if err != nil {
		return err
	}
	a.setJob(jobRef{id: j.ID, runID: j.RunID.String()})
	ctx = ctxlog.With(ctx, "job", j.ID)

	extra, err := carpcmd.ParseExtra(cfg.CarpOpts)
	if err != nil {
		return err
	}
	args, err := carpcmd.Compose(carpcmd.Input{
		Model:     a.params,
		Tags:      tags,
		SimID:     j.Dir(),
		Mesh:      meshname,
		ParFile:   a.resolve(sim.ParFile),
		Tend:      cfg.Tend,
		Flavor:    cfg.Flavor,
		Visualize: cfg.Visualize,
		Extra:     extra,
	})
	if err != nil {
		return fmt.Errorf("failed to compose solver command: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Solver command composed.", "flag_count", len(args))

	if err := a.prepare(ctx, j); err != nil {
		return err
	}

	a.setStage(StageSimulating)
	started := a.now()
	if err := j.Carp(ctx, args); err != nil {
		return err
	}

	if !j.Dry() {
		program, argv := j.SolverCommand(args)
		path, err := j.WriteManifest(job.Manifest{
			Started:   started,
			Finished:  a.now(),
			Flavor:    cfg.Flavor,
			NP:        cfg.NP,
			Tend:      cfg.Tend,
			Mesh:      meshname,
			IntraTags: tags.Intra(),
			ExtraTags: tags.All(),
			Program:   program,
			Args:      argv,
		})
		if err != nil {
			return err
		}
		ctxlog.FromContext(ctx).Info("🏁 Simulation finished.", "manifest", path)
	}

	if cfg.Visualize && !cfg.Batch {
		a.setStage(StageVisualizing)
		if err := j.Meshalyzer(ctx,
			j.Path(filepath.Base(meshname)+intraMeshSuffix),
			j.Path(a.visDataFile()),
			a.resolve(sim.ViewFile),
		); err != nil {
			return err
		}
	} else if cfg.Visualize {
		ctxlog.FromContext(ctx).Info("Batch mode, skipping visualization.")
	}

	a.setStage(StageDone)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// prepare applies the overwrite behaviour and notes a run being appended to.
func (a *App) prepare(ctx context.Context, j *job.Job) error {
	if a.config.Overwrite == job.Append && !j.Dry() {
		path := filepath.Join(j.Dir(), job.ManifestFile)
		if ok, _ := fsutil.Exists(path); ok {
			prev, err := job.ReadManifest(path)
			if err != nil {
				return err
			}
			ctxlog.FromContext(ctx).Info("Appending to previous run.", "previous_run_id", prev.RunID, "previous_finished", prev.Finished)
		}
	}
	if err := j.Prepare(ctx); err != nil {
		if errors.Is(err, job.ErrOutputExists) {
			return fmt.Errorf("%w (use --overwrite-behaviour=overwrite or append)", err)
		}
		return err
	}
	return nil
}

// resolve makes p relative to the simulation directory unless it is
// absolute. Empty paths stay empty.
func (a *App) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.config.SimDir, p)
}

// visDataFile names the solver output the visualizer displays.
func (a *App) visDataFile() string {
	if a.config.VisData == VisDataLAT {
		// The solver names LAT output after the detector id and its mode.
		return fmt.Sprintf("init_acts_%s-thresh.dat", strings.TrimSpace(a.params.LATs[0].ID))
	}
	return vmFile
}
