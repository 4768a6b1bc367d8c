package carpcmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// ErrDuplicateFlag is returned by Validate when a flag occurs more than once.
var ErrDuplicateFlag = errors.New("duplicate flag")

// Arg is a single solver flag with its value.
type Arg struct {
	Flag  string
	Value any
}

// Args is an ordered solver command line.
type Args []Arg

// Flag normalizes an option name to a solver flag. Names without a leading
// '-' or '+' get a '-' prefix.
func Flag(name string) string {
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, "+") {
		return name
	}
	return "-" + name
}

// Add appends a flag.
func (a *Args) Add(flag string, value any) {
	*a = append(*a, Arg{Flag: Flag(flag), Value: value})
}

// Set replaces the value of flag in place, or appends it when absent.
func (a *Args) Set(flag string, value any) {
	flag = Flag(flag)
	for i := range *a {
		if (*a)[i].Flag == flag {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Arg{Flag: flag, Value: value})
}

// Get returns the value of the first occurrence of flag.
func (a Args) Get(flag string) (any, bool) {
	flag = Flag(flag)
	for _, arg := range a {
		if arg.Flag == flag {
			return arg.Value, true
		}
	}
	return nil, false
}

// Count returns how often flag occurs.
func (a Args) Count(flag string) int {
	flag = Flag(flag)
	n := 0
	for _, arg := range a {
		if arg.Flag == flag {
			n++
		}
	}
	return n
}

// Validate reports every flag that occurs more than once.
func (a Args) Validate() error {
	seen := make(map[string]int, len(a))
	var errs []error
	for _, arg := range a {
		seen[arg.Flag]++
		if seen[arg.Flag] == 2 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateFlag, arg.Flag))
		}
	}
	return errors.Join(errs...)
}

// Strings flattens the command line into exec arguments.
func (a Args) Strings() []string {
	out := make([]string, 0, 2*len(a))
	for _, arg := range a {
		out = append(out, arg.Flag, FormatValue(arg.Value))
	}
	return out
}

// String renders the command line for logs and dry runs.
func (a Args) String() string {
	return strings.Join(a.Strings(), " ")
}

// FormatValue renders a flag value the way the solver parses it. Floats use
// the shortest decimal form without exponent, booleans become 1 or 0.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// ParseExtra splits a shell-quoted option string such as
// `-dt 25 -meshname "my mesh"` into flag/value pairs.
func ParseExtra(s string) (Args, error) {
	tokens, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("failed to split solver options: %w", err)
	}
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("solver options must come in flag/value pairs, got %d tokens", len(tokens))
	}

	var args Args
	for i := 0; i < len(tokens); i += 2 {
		flag := tokens[i]
		if !strings.HasPrefix(flag, "-") && !strings.HasPrefix(flag, "+") {
			return nil, fmt.Errorf("expected a flag at position %d, got %q", i, flag)
		}
		args = append(args, Arg{Flag: flag, Value: tokens[i+1]})
	}
	return args, nil
}
