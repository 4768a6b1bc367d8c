package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagSet_SplitsExtracellular(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	set := NewTagSet(1, 0, 3, 1, 0, 2)

	// --- Act & Assert ---
	require.Equal(t, []int{0, 1, 2, 3}, set.All())
	require.Equal(t, []int{1, 2, 3}, set.Intra())
	require.NotContains(t, set.Intra(), ExtracellularTag)
	require.True(t, set.Contains(0))
	require.Equal(t, 4, set.Len())

	for _, tag := range set.Intra() {
		require.Contains(t, set.All(), tag, "intracellular tags must be a subset of all tags")
	}
}

func TestTagSet_NoExtracellularRegion(t *testing.T) {
	t.Parallel()

	set := NewTagSet(5, 5, 7)

	require.Equal(t, []int{5, 7}, set.All())
	require.Equal(t, []int{5, 7}, set.Intra())
	require.False(t, set.Contains(0))
}

func TestTagSet_AllReturnsCopy(t *testing.T) {
	t.Parallel()

	set := NewTagSet(0, 1)
	all := set.All()
	all[0] = 42

	require.Equal(t, []int{0, 1}, set.All())
}

func TestReadTags(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	meshname := filepath.Join(dir, "ellipsoid")
	content := "4\nTt 0 1 2 3 1\nTt 1 2 3 4 1\nTt 2 3 4 5 0\nTt 3 4 5 6 0\n"
	require.NoError(t, os.WriteFile(meshname+ElemExt, []byte(content), 0o600))

	// --- Act ---
	set, err := ReadTags(meshname)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, set.All())
	require.Equal(t, []int{1}, set.Intra())
}
