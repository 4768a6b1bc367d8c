package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/carpdriver/internal/app"
	"github.com/specialistvlad/carpdriver/internal/job"
)

func noEnv(string) (string, bool) { return "", false }

func env(values map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := values[k]
		return v, ok
	}
}

func defaults() *app.Config {
	return &app.Config{
		Tend:       20,
		NP:         1,
		Flavor:     "petsc",
		VisData:    "vm",
		Overwrite:  job.Overwrite,
		SimDir:     ".",
		Solver:     "openCARP",
		Visualizer: "meshalyzer",
		MPIExec:    "mpiexec",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		env            func(string) (string, bool)
		expectExit     bool
		expectErr      string
		expectedConfig func() *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name:           "Defaults",
			args:           []string{},
			expectedConfig: defaults,
		},
		{
			name: "Happy Path with all flags",
			args: []string{
				"--tend", "100",
				"--np=4",
				"--flv", "pt",
				"--visualize",
				"--vis-data=LAT",
				"--dry",
				"--ID", "baseline",
				"--overwrite-behaviour", "append",
				"--CARP-opts", "-dt 25",
				"-p", "params.hcl",
				"--sim-dir", "/sims/ellipsoid",
				"--output-root", "/scratch",
				"--solver", "/opt/openCARP/bin/openCARP",
				"--visualizer", "meshalyzer-qt",
				"--mpi-exec", "mpirun",
				"--log-level=DEBUG",
				"--log-format=json",
				"--healthcheck-port=8080",
			},
			expectedConfig: func() *app.Config {
				return &app.Config{
					Tend:            100,
					NP:              4,
					Flavor:          "pt",
					Visualize:       true,
					VisData:         "lat",
					Dry:             true,
					ID:              "baseline",
					Overwrite:       job.Append,
					CarpOpts:        "-dt 25",
					ParamsPath:      "params.hcl",
					SimDir:          "/sims/ellipsoid",
					OutputRoot:      "/scratch",
					Solver:          "/opt/openCARP/bin/openCARP",
					Visualizer:      "meshalyzer-qt",
					MPIExec:         "mpirun",
					LogLevel:        "debug",
					LogFormat:       "json",
					HealthcheckPort: 8080,
				}
			},
		},
		{
			name: "Batch from environment",
			args: []string{"--visualize"},
			env:  env(map[string]string{BatchEnv: "true"}),
			expectedConfig: func() *app.Config {
				c := defaults()
				c.Visualize = true
				c.Batch = true
				return c
			},
		},
		{
			name: "Flag overrides batch environment",
			args: []string{"--batch=false"},
			env:  env(map[string]string{BatchEnv: "1"}),
			expectedConfig: defaults,
		},
		{
			name:      "Invalid batch environment",
			env:       env(map[string]string{BatchEnv: "sometimes"}),
			expectErr: "invalid CARPDRIVER_BATCH",
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
				require.Contains(t, output, "--tend")
			},
		},
		{
			name:      "Unknown flag",
			args:      []string{"--this-is-not-a-valid-flag"},
			expectErr: "unknown flag: --this-is-not-a-valid-flag",
		},
		{
			name:      "Positional arguments are rejected",
			args:      []string{"mesh.elem"},
			expectErr: "unknown command",
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo"},
			expectErr: "invalid log-level",
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml"},
			expectErr: "invalid log-format",
		},
		{
			name:      "Invalid overwrite behaviour",
			args:      []string{"--overwrite-behaviour=prompt"},
			expectErr: "invalid overwrite behaviour",
		},
		{
			name:      "Non-positive tend",
			args:      []string{"--tend=0"},
			expectErr: "tend must be positive",
		},
		{
			name:      "NaN tend",
			args:      []string{"--tend", "NaN"},
			expectErr: "tend must be a finite number",
		},
		{
			name:      "Infinite tend",
			args:      []string{"--tend=+Inf"},
			expectErr: "tend must be a finite number",
		},
		{
			name:      "Malformed tend",
			args:      []string{"--tend=long"},
			expectErr: "invalid argument",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}
			lookup := tc.env
			if lookup == nil {
				lookup = noEnv
			}

			// --- Act ---
			appConfig, shouldExit, err := parse(tc.args, out, lookup)

			// --- Assert ---
			if tc.expectErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				require.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig(), appConfig); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 1, ExitCode(errors.New("boom")))
	require.Equal(t, 2, ExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: 2, Message: "bad flag"})))

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	procErr := exec.Command("sh", "-c", "exit 7").Run()
	require.Equal(t, 7, ExitCode(fmt.Errorf("simulation x: %w", procErr)))
}
