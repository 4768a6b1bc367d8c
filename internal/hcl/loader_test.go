package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/carpdriver/internal/config"
)

// writeFiles creates the given files below a fresh temp dir and returns it.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

func TestLoad_AllBlocks(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeFiles(t, map[string]string{
		"params.hcl": `
simulation {
  mesh      = "meshes/slab"
  view_file = "slab.mshz"
}

conductivity "ventricle" {
  ids  = [1, 2]
  g_el = 0.625
  g_et = 0.236
  g_en = 0.236
  g_il = 0.174
  g_it = 0.019
  g_in = 0.019
}

ionic "TenTusscherPanfilov" {
  ids = [1]
}

stimulus {
  p0       = [-100, -100, 0]
  p1       = [100, 100, 50.5]
  strength = 250
}

lat "activation" {
  threshold = -20
}

flavor "boomeramg" {
  options = { ellip_use_pt = 0, "ellip_options_file" = "amg.par" }
}

options = {
  dt      = 25
  spacedt = 0.5
}
`,
	})

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), filepath.Join(dir, "params.hcl"))

	// --- Assert ---
	require.NoError(t, err)

	require.Equal(t, config.Simulation{Mesh: "meshes/slab", ViewFile: "slab.mshz"}, model.Simulation)

	require.Len(t, model.Conductivities, 1)
	require.Equal(t, []int{1, 2}, model.Conductivities[0].IDs)
	require.Equal(t, 1.0, model.Conductivities[0].GMult, "g_mult defaults to 1")

	require.Equal(t, []*config.IonicRegion{{Model: "TenTusscherPanfilov", IDs: []int{1}}}, model.Ionic)

	require.Len(t, model.Stimuli, 1)
	stim := model.Stimuli[0]
	require.Equal(t, [3]float64{-100, -100, 0}, stim.P0)
	require.Equal(t, [3]float64{100, 100, 50.5}, stim.P1)
	require.NotNil(t, stim.Strength)
	require.Equal(t, 250.0, *stim.Strength)
	require.Nil(t, stim.Duration)

	require.Equal(t, []*config.LAT{{ID: "activation", Threshold: -20}}, model.LATs)

	expectedFlavor := &config.Flavor{
		Name: "boomeramg",
		Options: []config.Option{
			{Name: "ellip_options_file", Value: "amg.par"},
			{Name: "ellip_use_pt", Value: int64(0)},
		},
	}
	if diff := cmp.Diff(expectedFlavor, model.Flavors["boomeramg"]); diff != "" {
		t.Errorf("flavor mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, []config.Option{
		{Name: "dt", Value: int64(25)},
		{Name: "spacedt", Value: 0.5},
	}, model.Options)
}

func TestLoad_DirectoryMergesFilesInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := writeFiles(t, map[string]string{
		"a.hcl": `
options = { dt = 10 }
ionic "Courtemanche" { ids = [1] }
`,
		"b.hcl": `
options = { dt = 25 }
ionic "MitchellSchaeffer" { ids = [2] }
`,
		"README.md": "not a parameter file",
	})

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []config.Option{{Name: "dt", Value: int64(25)}}, model.Options)
	require.Len(t, model.Ionic, 2)
	require.Equal(t, "Courtemanche", model.Ionic[0].Model)
	require.Equal(t, "MitchellSchaeffer", model.Ionic[1].Model)
}

func TestLoad_EmptyFileLeavesDefaults(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"empty.hcl": ""})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	merged := config.Merge(config.Defaults(), model)
	require.Equal(t, config.Defaults(), merged)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		content   string
		expectErr string
	}{
		{
			name:      "Syntax error",
			content:   `conductivity "x" {`,
			expectErr: "failed to parse HCL file",
		},
		{
			name:      "Unknown block",
			content:   `grid "x" {}`,
			expectErr: "failed to decode HCL file",
		},
		{
			name:      "Missing required attribute",
			content:   `ionic "Courtemanche" {}`,
			expectErr: "failed to decode HCL file",
		},
		{
			name: "Short stimulus corner",
			content: `stimulus {
  p0 = [0, 0]
  p1 = [1, 1, 1]
}`,
			expectErr: "stimulus 0: p0 and p1 must have exactly three coordinates",
		},
		{
			name:      "Options not an object",
			content:   `options = [1, 2]`,
			expectErr: "options must be an object",
		},
		{
			name:      "Nested option value",
			content:   `options = { dt = [1] }`,
			expectErr: `option "dt": unsupported value type`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := writeFiles(t, map[string]string{"params.hcl": tc.content})

			_, err := NewLoader().Load(context.Background(), filepath.Join(dir, "params.hcl"))

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.expectErr)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))

	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
