package config

// Model is the unified, format-agnostic representation of all simulation
// parameters the driver turns into solver options.
type Model struct {
	Simulation     Simulation
	Conductivities []*Conductivity
	Ionic          []*IonicRegion
	Stimuli        []*Stimulus
	LATs           []*LAT
	Flavors        map[string]*Flavor
	// Options are free-form solver options appended after everything else.
	Options []Option
}

// Simulation names the files a run works on. Relative paths are resolved
// against the simulation directory.
type Simulation struct {
	Mesh     string // mesh name without extension
	ParFile  string
	ViewFile string
}

// Conductivity is one conductivity region (gregion). Values are in S/m.
type Conductivity struct {
	Name string
	IDs  []int

	GEL float64 // extracellular, longitudinal
	GET float64 // extracellular, transverse
	GEN float64 // extracellular, sheet normal
	GIL float64 // intracellular, longitudinal
	GIT float64 // intracellular, transverse
	GIN float64 // intracellular, sheet normal

	// GMult scales all conductivities, e.g. to slow conduction down.
	GMult float64
}

// IonicRegion attaches an ionic model to a set of tags.
type IonicRegion struct {
	Model string
	IDs   []int
}

// Stimulus is an electrode given by the two corners of a box, in um.
// Optional settings are left to the solver when nil.
type Stimulus struct {
	P0 [3]float64
	P1 [3]float64

	Strength *float64
	Duration *float64
	Start    *float64
	StimType *int
}

// LAT configures one local activation time detector.
type LAT struct {
	ID        string
	All       int // 0: first activation only, 1: all activations
	Measurand int // 0: transmembrane voltage, 1: extracellular potential
	Mode      int // 0: maximum slope crossing, 1: minimum
	Threshold float64
}

// Flavor is a named set of solver options selecting a linear solver backend.
type Flavor struct {
	Name    string
	Options []Option
}

// Option is a single solver flag. Value holds a string, int64, float64 or bool.
type Option struct {
	Name  string
	Value any
}
