package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Simulation     []*simulationBlock   `hcl:"simulation,block"`
	Conductivities []*conductivityBlock `hcl:"conductivity,block"`
	Ionic          []*ionicBlock        `hcl:"ionic,block"`
	Stimuli        []*stimulusBlock     `hcl:"stimulus,block"`
	LATs           []*latBlock          `hcl:"lat,block"`
	Flavors        []*flavorBlock       `hcl:"flavor,block"`
	Options        hcl.Expression       `hcl:"options,optional"`
}

type simulationBlock struct {
	Mesh     string `hcl:"mesh,optional"`
	ParFile  string `hcl:"par_file,optional"`
	ViewFile string `hcl:"view_file,optional"`
}

type conductivityBlock struct {
	Name  string   `hcl:"name,label"`
	IDs   []int    `hcl:"ids"`
	GEL   float64  `hcl:"g_el"`
	GET   float64  `hcl:"g_et"`
	GEN   float64  `hcl:"g_en"`
	GIL   float64  `hcl:"g_il"`
	GIT   float64  `hcl:"g_it"`
	GIN   float64  `hcl:"g_in"`
	GMult *float64 `hcl:"g_mult,optional"`
}

type ionicBlock struct {
	Model string `hcl:"model,label"`
	IDs   []int  `hcl:"ids"`
}

type stimulusBlock struct {
	P0       []float64 `hcl:"p0"`
	P1       []float64 `hcl:"p1"`
	Strength *float64  `hcl:"strength,optional"`
	Duration *float64  `hcl:"duration,optional"`
	Start    *float64  `hcl:"start,optional"`
	StimType *int      `hcl:"stimtype,optional"`
}

type latBlock struct {
	ID        string  `hcl:"id,label"`
	All       int     `hcl:"all,optional"`
	Measurand int     `hcl:"measurand,optional"`
	Mode      int     `hcl:"mode,optional"`
	Threshold float64 `hcl:"threshold"`
}

type flavorBlock struct {
	Name    string         `hcl:"name,label"`
	Options hcl.Expression `hcl:"options"`
}
