package config

import (
	"errors"
	"fmt"
)

// Validate checks the model for values the solver would reject or
// silently misinterpret.
func (m *Model) Validate() error {
	var errs []error

	if m.Simulation.Mesh == "" {
		errs = append(errs, errors.New("simulation: mesh must be set"))
	}

	for i, c := range m.Conductivities {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("conductivity %d: name must be set", i))
		}
		if len(c.IDs) == 0 {
			errs = append(errs, fmt.Errorf("conductivity %q: at least one tag id is required", c.Name))
		}
		for _, g := range []float64{c.GEL, c.GET, c.GEN, c.GIL, c.GIT, c.GIN, c.GMult} {
			if g < 0 {
				errs = append(errs, fmt.Errorf("conductivity %q: values must not be negative", c.Name))
				break
			}
		}
	}

	for i, r := range m.Ionic {
		if r.Model == "" {
			errs = append(errs, fmt.Errorf("ionic region %d: model must be set", i))
		}
		if len(r.IDs) == 0 {
			errs = append(errs, fmt.Errorf("ionic region %q: at least one tag id is required", r.Model))
		}
	}

	for i, l := range m.LATs {
		if l.ID == "" {
			errs = append(errs, fmt.Errorf("lat %d: id must be set", i))
		}
		if !isBinary(l.All) || !isBinary(l.Measurand) || !isBinary(l.Mode) {
			errs = append(errs, fmt.Errorf("lat %q: all, measurand and mode must be 0 or 1", l.ID))
		}
	}

	for name, f := range m.Flavors {
		if name != f.Name {
			errs = append(errs, fmt.Errorf("flavor %q registered under %q", f.Name, name))
		}
	}

	for _, o := range m.Options {
		if o.Name == "" {
			errs = append(errs, errors.New("options: empty option name"))
		}
	}

	return errors.Join(errs...)
}

func isBinary(v int) bool { return v == 0 || v == 1 }
