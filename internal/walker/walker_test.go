package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomsim/jobtool/internal/config"
	"github.com/atomsim/jobtool/internal/domain"
)

func mkJobfolder(t *testing.T, dir string, log string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "initial.traj"), []byte("traj"), 0644))
	if log != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "log.txt"), []byte(log), 0644))
	}
}

func collect(t *testing.T, w *Walker, root string) []domain.JobResult {
	t.Helper()
	seq, err := w.Walk(root)
	require.NoError(t, err)
	var results []domain.JobResult
	for r := range seq {
		results = append(results, r)
	}
	return results
}

func TestWalk_NestedJobfolders(t *testing.T) {
	root := t.TempDir()

	// Jobfolders at depths 0, 1 and 3; the depth-3 one nests inside the
	// depth-1 one. The depth-2 directory must be descended but not yielded.
	mkJobfolder(t, root, "Date: 2024-01-01\n")
	mkJobfolder(t, filepath.Join(root, "a"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))
	mkJobfolder(t, filepath.Join(root, "a", "b", "c"), "Did not converge!\n")

	w := New(config.Default())
	results := collect(t, w, root)
	require.Len(t, results, 3)

	byPath := map[string]domain.Status{}
	for _, r := range results {
		assert.True(t, filepath.IsAbs(r.Path), "paths must be absolute")
		byPath[r.Path] = r.Status
	}

	absRoot, _ := filepath.Abs(root)
	assert.Equal(t, domain.StatusConverged, byPath[absRoot])
	assert.Equal(t, domain.StatusNotStarted, byPath[filepath.Join(absRoot, "a")])
	assert.Equal(t, domain.StatusNotConverged, byPath[filepath.Join(absRoot, "a", "b", "c")])

	stats := w.Stats()
	assert.Equal(t, 3, stats.Yielded)
	assert.Equal(t, 4, stats.Visited)
	assert.Equal(t, 0, stats.Skipped)
}

func TestWalk_NoJobfolders(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "x", "y"), 0755))

	w := New(config.Default())
	results := collect(t, w, root)
	assert.Empty(t, results)
	assert.Equal(t, 3, w.Stats().Visited)
}

func TestWalk_MissingRoot(t *testing.T) {
	w := New(config.Default())
	_, err := w.Walk(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrInvalidRoot)
}

func TestWalk_RootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	w := New(config.Default())
	_, err := w.Walk(file)
	assert.ErrorIs(t, err, ErrInvalidRoot)
}

func TestWalk_DoesNotFollowSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	mkJobfolder(t, outside, "")
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))

	w := New(config.Default())
	results := collect(t, w, root)
	assert.Empty(t, results, "jobfolders behind symlinks must not be yielded")
}

func TestWalk_SkipsUnreadableSubtree(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	mkJobfolder(t, filepath.Join(root, "good"), "")
	locked := filepath.Join(root, "locked")
	mkJobfolder(t, filepath.Join(locked, "hidden"), "")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	w := New(config.Default())
	results := collect(t, w, root)
	require.Len(t, results, 1)
	assert.Equal(t, domain.StatusNotStarted, results[0].Status)
	assert.Equal(t, 1, w.Stats().Skipped)
}

func TestWalk_SequenceIsSingleUse(t *testing.T) {
	root := t.TempDir()
	mkJobfolder(t, root, "")

	w := New(config.Default())
	first := collect(t, w, root)
	require.Len(t, first, 1)

	// A repeated pass needs a fresh traversal
	second := collect(t, w, root)
	require.Len(t, second, 1)
	assert.Equal(t, 1, w.Stats().Yielded)
}

func TestWalk_EarlyBreak(t *testing.T) {
	root := t.TempDir()
	mkJobfolder(t, filepath.Join(root, "a"), "")
	mkJobfolder(t, filepath.Join(root, "b"), "")
	mkJobfolder(t, filepath.Join(root, "c"), "")

	w := New(config.Default())
	seq, err := w.Walk(root)
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
