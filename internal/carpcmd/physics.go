package carpcmd

import "fmt"

// Physics region types understood by the solver.
const (
	PhysIntracellular = 0
	PhysExtracellular = 1
)

// PhysicsOpts attaches electrophysiology to the mesh: an intracellular
// region over intraTags and an extracellular region over extraTags. A region
// without tags is left out.
func PhysicsOpts(extraTags, intraTags []int) Args {
	type region struct {
		name  string
		ptype int
		tags  []int
	}
	var regions []region
	if len(intraTags) > 0 {
		regions = append(regions, region{"Intracellular domain", PhysIntracellular, intraTags})
	}
	if len(extraTags) > 0 {
		regions = append(regions, region{"Extracellular domain", PhysExtracellular, extraTags})
	}

	var a Args
	a.Add("num_phys_regions", len(regions))
	for i, r := range regions {
		p := fmt.Sprintf("phys_region[%d]", i)
		a.Add(p+".name", r.name)
		a.Add(p+".ptype", r.ptype)
		a.Add(p+".num_IDs", len(r.tags))
		for j, tag := range r.tags {
			a.Add(fmt.Sprintf("%s.ID[%d]", p, j), tag)
		}
	}
	return a
}
