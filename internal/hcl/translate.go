package hcl

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/carpdriver/internal/config"
)

// translate merges one decoded file into the model.
func (l *Loader) translate(root *fileRoot, model *config.Model) error {
	for _, s := range root.Simulation {
		if s.Mesh != "" {
			model.Simulation.Mesh = s.Mesh
		}
		if s.ParFile != "" {
			model.Simulation.ParFile = s.ParFile
		}
		if s.ViewFile != "" {
			model.Simulation.ViewFile = s.ViewFile
		}
	}

	for _, c := range root.Conductivities {
		model.Conductivities = append(model.Conductivities, translateConductivity(c))
	}

	for _, r := range root.Ionic {
		model.Ionic = append(model.Ionic, &config.IonicRegion{Model: r.Model, IDs: r.IDs})
	}

	for i, s := range root.Stimuli {
		stim, err := translateStimulus(s)
		if err != nil {
			return fmt.Errorf("stimulus %d: %w", i, err)
		}
		model.Stimuli = append(model.Stimuli, stim)
	}

	for _, lb := range root.LATs {
		model.LATs = append(model.LATs, &config.LAT{
			ID:        lb.ID,
			All:       lb.All,
			Measurand: lb.Measurand,
			Mode:      lb.Mode,
			Threshold: lb.Threshold,
		})
	}

	for _, f := range root.Flavors {
		opts, err := decodeOptions(f.Options)
		if err != nil {
			return fmt.Errorf("flavor %q: %w", f.Name, err)
		}
		model.Flavors[f.Name] = &config.Flavor{Name: f.Name, Options: opts}
	}

	opts, err := decodeOptions(root.Options)
	if err != nil {
		return err
	}
	for _, o := range opts {
		model.Options = setOption(model.Options, o)
	}
	return nil
}

func translateConductivity(c *conductivityBlock) *config.Conductivity {
	gMult := 1.0
	if c.GMult != nil {
		gMult = *c.GMult
	}
	return &config.Conductivity{
		Name:  c.Name,
		IDs:   c.IDs,
		GEL:   c.GEL,
		GET:   c.GET,
		GEN:   c.GEN,
		GIL:   c.GIL,
		GIT:   c.GIT,
		GIN:   c.GIN,
		GMult: gMult,
	}
}

func translateStimulus(s *stimulusBlock) (*config.Stimulus, error) {
	if len(s.P0) != 3 || len(s.P1) != 3 {
		return nil, errors.New("p0 and p1 must have exactly three coordinates")
	}
	stim := &config.Stimulus{
		Strength: s.Strength,
		Duration: s.Duration,
		Start:    s.Start,
		StimType: s.StimType,
	}
	copy(stim.P0[:], s.P0)
	copy(stim.P1[:], s.P1)
	return stim, nil
}

func setOption(opts []config.Option, opt config.Option) []config.Option {
	for i := range opts {
		if opts[i].Name == opt.Name {
			opts[i] = opt
			return opts
		}
	}
	return append(opts, opt)
}
