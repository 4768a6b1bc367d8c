package config

const (
	// DefaultFlavor is the solver flavor used when none is requested.
	DefaultFlavor = "petsc"

	// DefaultTend is the simulation duration in ms.
	DefaultTend = 20.0
)

// Defaults returns the built-in parameters: an ellipsoid mesh with a single
// myocardium conductivity region, the Courtemanche atrial model on tag 1, a
// planar stimulus at z = 5 mm and activation-time detection at -10 mV.
func Defaults() *Model {
	return &Model{
		Simulation: Simulation{
			Mesh:     "meshes/mesh2/ellipsoid",
			ParFile:  "simple.par",
			ViewFile: "simple.mshz",
		},
		Conductivities: []*Conductivity{{
			Name:  "myocardium",
			IDs:   []int{0},
			GEL:   0.625,
			GET:   0.236,
			GEN:   0.236,
			GIL:   0.174,
			GIT:   0.019,
			GIN:   0.019,
			GMult: 0.5,
		}},
		Ionic: []*IonicRegion{{
			Model: "Courtemanche",
			IDs:   []int{1},
		}},
		Stimuli: []*Stimulus{{
			P0: [3]float64{-10000, -10000, 5000},
			P1: [3]float64{10000, 10000, 5000},
		}},
		LATs: []*LAT{{
			ID:        "activation",
			All:       0,
			Measurand: 0,
			Mode:      0,
			Threshold: -10,
		}},
		Flavors: map[string]*Flavor{
			"petsc": {
				Name: "petsc",
				Options: []Option{
					{Name: "ellip_use_pt", Value: int64(0)},
					{Name: "parab_use_pt", Value: int64(0)},
				},
			},
			"pt": {
				Name: "pt",
				Options: []Option{
					{Name: "ellip_use_pt", Value: int64(1)},
					{Name: "parab_use_pt", Value: int64(1)},
				},
			},
		},
	}
}

// Merge layers override on top of base and returns the result. Region kinds
// present in override replace that kind entirely, while flavors and options
// are merged by name.
func Merge(base, override *Model) *Model {
	out := *base
	if override == nil {
		return &out
	}

	if override.Simulation.Mesh != "" {
		out.Simulation.Mesh = override.Simulation.Mesh
	}
	if override.Simulation.ParFile != "" {
		out.Simulation.ParFile = override.Simulation.ParFile
	}
	if override.Simulation.ViewFile != "" {
		out.Simulation.ViewFile = override.Simulation.ViewFile
	}

	if len(override.Conductivities) > 0 {
		out.Conductivities = override.Conductivities
	}
	if len(override.Ionic) > 0 {
		out.Ionic = override.Ionic
	}
	if len(override.Stimuli) > 0 {
		out.Stimuli = override.Stimuli
	}
	if len(override.LATs) > 0 {
		out.LATs = override.LATs
	}

	out.Flavors = make(map[string]*Flavor, len(base.Flavors)+len(override.Flavors))
	for name, f := range base.Flavors {
		out.Flavors[name] = f
	}
	for name, f := range override.Flavors {
		out.Flavors[name] = f
	}

	out.Options = append([]Option(nil), base.Options...)
	for _, opt := range override.Options {
		out.Options = setOption(out.Options, opt)
	}
	return &out
}

func setOption(opts []Option, opt Option) []Option {
	for i := range opts {
		if opts[i].Name == opt.Name {
			opts[i] = opt
			return opts
		}
	}
	return append(opts, opt)
}
