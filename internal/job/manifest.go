package job

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest inside the output directory.
const ManifestFile = "job.yaml"

// Manifest records what a finished run was started with.
type Manifest struct {
	ID        string    `yaml:"id"`
	RunID     string    `yaml:"run_id"`
	Started   time.Time `yaml:"started"`
	Finished  time.Time `yaml:"finished"`
	Flavor    string    `yaml:"flavor"`
	NP        int       `yaml:"np"`
	Tend      float64   `yaml:"tend"`
	Mesh      string    `yaml:"mesh"`
	IntraTags []int     `yaml:"intra_tags,flow"`
	ExtraTags []int     `yaml:"extra_tags,flow"`
	Program   string    `yaml:"program"`
	Args      []string  `yaml:"args"`
}

// WriteManifest stores m in the output directory, creating it if the solver
// did not.
func (j *Job) WriteManifest(m Manifest) (string, error) {
	if err := os.MkdirAll(j.Dir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	m.ID = j.ID
	m.RunID = j.RunID.String()

	data, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(j.Dir(), ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return &m, nil
}
