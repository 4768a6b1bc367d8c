package carpcmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in       any
		expected string
	}{
		{"Courtemanche", "Courtemanche"},
		{3, "3"},
		{int64(-10), "-10"},
		{0.625, "0.625"},
		{20.0, "20"},
		{-10000.0, "-10000"},
		{1e-7, "0.0000001"},
		{true, "1"},
		{false, "0"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, FormatValue(tc.in), "value %#v", tc.in)
	}
}

func TestArgs_SetReplacesInPlace(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var a Args
	a.Add("simID", "run")
	a.Add("tend", 20.0)
	a.Add("dt", 10)

	// --- Act ---
	a.Set("-tend", 50.0)
	a.Set("spacedt", 1)

	// --- Assert ---
	require.Equal(t, []string{"-simID", "run", "-tend", "50", "-dt", "10", "-spacedt", "1"}, a.Strings())
	require.Equal(t, 1, a.Count("tend"))
	v, ok := a.Get("tend")
	require.True(t, ok)
	require.Equal(t, 50.0, v)
}

func TestArgs_ValidateDuplicates(t *testing.T) {
	t.Parallel()

	var a Args
	a.Add("tend", 1.0)
	a.Add("tend", 2.0)
	a.Add("tend", 3.0)
	a.Add("+F", "a.par")

	err := a.Validate()

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateFlag))
	require.Contains(t, err.Error(), "-tend")
}

func TestFlag(t *testing.T) {
	t.Parallel()

	require.Equal(t, "-dt", Flag("dt"))
	require.Equal(t, "-dt", Flag("-dt"))
	require.Equal(t, "+F", Flag("+F"))
}

func TestParseExtra(t *testing.T) {
	t.Parallel()

	a, err := ParseExtra(`-dt 25 -stim[0].elec.p0[0] -500 +F "my file.par"`)

	require.NoError(t, err)
	require.Equal(t, Args{
		{Flag: "-dt", Value: "25"},
		{Flag: "-stim[0].elec.p0[0]", Value: "-500"},
		{Flag: "+F", Value: "my file.par"},
	}, a)
}

func TestParseExtra_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParseExtra("-dt")
	require.ErrorContains(t, err, "flag/value pairs")

	_, err = ParseExtra("dt 25")
	require.ErrorContains(t, err, `expected a flag at position 0, got "dt"`)

	_, err = ParseExtra("")
	require.NoError(t, err)
}
