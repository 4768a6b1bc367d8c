package job

import (
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/carpdriver/internal/fsutil"
)

// ErrOutputExists is returned by Prepare when the output directory exists
// and the overwrite behaviour forbids reusing it.
var ErrOutputExists = errors.New("output directory already exists")

// Behaviour decides what happens to an existing output directory.
type Behaviour string

const (
	Overwrite Behaviour = "overwrite"
	Append    Behaviour = "append"
	Fail      Behaviour = "error"
)

// ParseBehaviour validates a behaviour name.
func ParseBehaviour(s string) (Behaviour, error) {
	switch b := Behaviour(s); b {
	case Overwrite, Append, Fail:
		return b, nil
	default:
		return "", fmt.Errorf("invalid overwrite behaviour %q: must be 'overwrite', 'append' or 'error'", s)
	}
}

func prepareDir(dir string, b Behaviour) error {
	exists, err := fsutil.Exists(dir)
	if err != nil {
		return fmt.Errorf("failed to inspect output directory: %w", err)
	}
	if !exists {
		return nil
	}

	switch b {
	case Overwrite:
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove output directory: %w", err)
		}
		return nil
	case Append:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrOutputExists, dir)
	}
}
