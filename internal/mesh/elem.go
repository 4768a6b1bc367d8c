package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ElemExt is the file extension of openCARP element files.
const ElemExt = ".elem"

// ErrUnknownElementType is returned when an element line starts with a
// type token the reader does not know.
var ErrUnknownElementType = errors.New("unknown element type")

// nodesPerType maps openCARP element type tokens to their node count.
var nodesPerType = map[string]int{
	"Ln": 2,
	"Tr": 3,
	"Qd": 4,
	"Tt": 4,
	"Py": 5,
	"Pr": 6,
	"Oc": 6,
	"Hx": 8,
}

// Element is a single mesh element.
type Element struct {
	Type  string
	Nodes []int
	Tag   int
}

// ElemPath returns the element file for a mesh name. Mesh names are given
// without extension the way the solver expects them; a name that already
// ends in .elem is returned unchanged.
func ElemPath(meshname string) string {
	return Name(meshname) + ElemExt
}

// Name returns meshname without a trailing .elem, the form the solver and
// the visualizer append their own extensions to.
func Name(meshname string) string {
	return strings.TrimSuffix(meshname, ElemExt)
}

// ReadElem reads and parses an element file.
func ReadElem(path string) ([]Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open element file: %w", err)
	}
	defer f.Close()

	elems, err := ParseElem(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse element file %s: %w", path, err)
	}
	return elems, nil
}

// ParseElem parses element data. The first non-empty line holds the element
// count, every following line one element: a type token, the node indices
// and an optional region tag (0 when absent).
func ParseElem(r io.Reader) ([]Element, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	expected := -1
	var elems []Element

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		if expected < 0 {
			n, err := strconv.Atoi(fields[0])
			if err != nil || n < 0 || len(fields) != 1 {
				return nil, fmt.Errorf("line %d: invalid element count %q", lineNo, line)
			}
			expected = n
			elems = make([]Element, 0, n)
			continue
		}

		el, err := parseElement(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		elems = append(elems, el)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if expected < 0 {
		return nil, errors.New("missing element count header")
	}
	if len(elems) != expected {
		return nil, fmt.Errorf("header declares %d elements, found %d", expected, len(elems))
	}
	return elems, nil
}

func parseElement(fields []string) (Element, error) {
	typ := fields[0]
	n, ok := nodesPerType[typ]
	if !ok {
		return Element{}, fmt.Errorf("%w %q", ErrUnknownElementType, typ)
	}

	rest := fields[1:]
	if len(rest) != n && len(rest) != n+1 {
		return Element{}, fmt.Errorf("element %s expects %d nodes and an optional tag, got %d fields", typ, n, len(rest))
	}

	el := Element{Type: typ, Nodes: make([]int, n)}
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(rest[i])
		if err != nil {
			return Element{}, fmt.Errorf("invalid node index %q", rest[i])
		}
		el.Nodes[i] = v
	}
	if len(rest) == n+1 {
		tag, err := strconv.Atoi(rest[n])
		if err != nil {
			return Element{}, fmt.Errorf("invalid tag %q", rest[n])
		}
		el.Tag = tag
	}
	return el, nil
}
