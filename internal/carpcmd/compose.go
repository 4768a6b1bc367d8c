package carpcmd

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/carpdriver/internal/config"
	"github.com/specialistvlad/carpdriver/internal/mesh"
)

// ErrUnknownFlavor is returned when the requested flavor has no option set.
var ErrUnknownFlavor = errors.New("unknown solver flavor")

// gridoutSurfaceAndVolume asks the solver to write both the surface and the
// volumetric intracellular mesh, which the visualizer needs.
const gridoutSurfaceAndVolume = 3

// Input is everything Compose needs for one run.
type Input struct {
	Model *config.Model
	Tags  mesh.TagSet

	SimID   string
	Mesh    string // mesh name as passed to -meshname
	ParFile string // empty to skip +F
	Tend    float64
	Flavor  string

	Visualize bool

	// Extra options override anything composed before them.
	Extra Args
}

// Compose builds the full solver command line.
func Compose(in Input) (Args, error) {
	if in.Model == nil {
		return nil, errors.New("compose: model is required")
	}
	m := in.Model

	var a Args
	if in.ParFile != "" {
		a.Add("+F", in.ParFile)
	}

	flavor, ok := m.Flavors[in.Flavor]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlavor, in.Flavor)
	}
	for _, o := range flavor.Options {
		a.Add(o.Name, o.Value)
	}

	a.Add("simID", in.SimID)
	a.Add("meshname", in.Mesh)
	a.Add("tend", in.Tend)

	a = append(a, PhysicsOpts(in.Tags.All(), in.Tags.Intra())...)
	a = append(a, stimulusOpts(m.Stimuli)...)
	a = append(a, conductivityOpts(m.Conductivities)...)
	a = append(a, ionicOpts(m.Ionic)...)
	a = append(a, latOpts(m.LATs)...)

	if in.Visualize {
		a.Add("gridout_i", gridoutSurfaceAndVolume)
	}

	for _, o := range m.Options {
		a.Set(o.Name, o.Value)
	}
	for _, o := range in.Extra {
		a.Set(o.Flag, o.Value)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func stimulusOpts(stims []*config.Stimulus) Args {
	var a Args
	a.Add("num_stim", len(stims))
	for i, s := range stims {
		p := fmt.Sprintf("stim[%d]", i)
		for d := 0; d < 3; d++ {
			a.Add(fmt.Sprintf("%s.elec.p0[%d]", p, d), s.P0[d])
			a.Add(fmt.Sprintf("%s.elec.p1[%d]", p, d), s.P1[d])
		}
		if s.StimType != nil {
			a.Add(p+".crct.type", *s.StimType)
		}
		if s.Strength != nil {
			a.Add(p+".pulse.strength", *s.Strength)
		}
		if s.Duration != nil {
			a.Add(p+".ptcl.duration", *s.Duration)
		}
		if s.Start != nil {
			a.Add(p+".ptcl.start", *s.Start)
		}
	}
	return a
}

func conductivityOpts(regions []*config.Conductivity) Args {
	var a Args
	a.Add("num_gregions", len(regions))
	for i, g := range regions {
		p := fmt.Sprintf("gregion[%d]", i)
		a.Add(p+".name", g.Name)
		a.Add(p+".num_IDs", len(g.IDs))
		for j, id := range g.IDs {
			a.Add(idFlag(p, j, len(g.IDs)), id)
		}
		a.Add(p+".g_el", g.GEL)
		a.Add(p+".g_et", g.GET)
		a.Add(p+".g_en", g.GEN)
		a.Add(p+".g_il", g.GIL)
		a.Add(p+".g_it", g.GIT)
		a.Add(p+".g_in", g.GIN)
		a.Add(p+".g_mult", g.GMult)
	}
	return a
}

func ionicOpts(regions []*config.IonicRegion) Args {
	var a Args
	a.Add("num_imp_regions", len(regions))
	for i, r := range regions {
		p := fmt.Sprintf("imp_region[%d]", i)
		a.Add(p+".im", r.Model)
		a.Add(p+".num_IDs", len(r.IDs))
		for j, id := range r.IDs {
			a.Add(idFlag(p, j, len(r.IDs)), id)
		}
	}
	return a
}

func latOpts(lats []*config.LAT) Args {
	var a Args
	a.Add("num_LATs", len(lats))
	for i, l := range lats {
		p := fmt.Sprintf("lats[%d]", i)
		a.Add(p+".ID", l.ID)
		a.Add(p+".all", l.All)
		a.Add(p+".measurand", l.Measurand)
		a.Add(p+".mode", l.Mode)
		a.Add(p+".threshold", l.Threshold)
	}
	return a
}

// idFlag names the j-th tag of a region. A region with a single tag uses
// the scalar form.
func idFlag(prefix string, j, n int) string {
	if n == 1 {
		return prefix + ".ID"
	}
	return fmt.Sprintf("%s.ID[%d]", prefix, j)
}
