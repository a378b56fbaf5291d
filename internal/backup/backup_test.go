package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func TestName(t *testing.T) {
	assert.Equal(t, "/etc/app.json.backup.20240309_140507", Name("/etc/app.json", testTime))
}

func TestCreate(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "config.json")
	data := []byte("{\"Server\": {\"Address\": \"x\"}}\n")

	t.Run("copies bytes", func(t *testing.T) {
		name, err := Create(path, data, 0o600, FixedClock(testTime))
		require.NoError(t, err)
		assert.Equal(t, path+".backup.20240309_140507", name)

		got, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, data, got)

		info, err := os.Stat(name)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("never overwrites", func(t *testing.T) {
		second, err := Create(path, []byte("second"), 0o600, FixedClock(testTime))
		require.NoError(t, err)
		assert.Equal(t, path+".backup.20240309_140507.1", second)

		first, err := os.ReadFile(path + ".backup.20240309_140507")
		require.NoError(t, err)
		assert.Equal(t, data, first)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		_, err := Create(filepath.Join(dir, "missing", "config.json"), data, 0o600, FixedClock(testTime))
		assert.Error(t, err)
	})
}

func TestList(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "config.json")

	for _, ts := range []time.Time{testTime, testTime.Add(time.Hour), testTime.Add(-time.Hour)} {
		_, err := Create(path, []byte("x"), 0o644, FixedClock(ts))
		require.NoError(t, err)
	}
	_, err := Create(path, []byte("x"), 0o644, FixedClock(testTime))
	require.NoError(t, err)

	// Unrelated files must be ignored
	require.NoError(t, os.WriteFile(path+".backup.notes", []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json.backup.20240309_140507"), []byte("x"), 0o644))

	backups, err := List(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		path + ".backup.20240309_150507",
		path + ".backup.20240309_140507.1",
		path + ".backup.20240309_140507",
		path + ".backup.20240309_130507",
	}, backups)
}

func TestListEmpty(t *testing.T) {
	backups, err := List(filepath.Join(tempDir(t), "config.json"))
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestRestore(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("current"), 0o640))

	old, err := Create(path, []byte("original"), 0o640, FixedClock(testTime))
	require.NoError(t, err)

	safety, err := Restore(context.Background(), old, path, FixedClock(testTime.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, path+".backup.20240309_140607", safety)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	saved, err := os.ReadFile(safety)
	require.NoError(t, err)
	assert.Equal(t, "current", string(saved))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestRestoreMissingBackup(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("current"), 0o644))

	_, err := Restore(context.Background(), path+".backup.20240309_140507", path, FixedClock(testTime))
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "current", string(got))
}

func TestRestoreThroughSymlink(t *testing.T) {
	dir := tempDir(t)
	realPath := filepath.Join(dir, "real.json")
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.WriteFile(realPath, []byte("current"), 0o644))
	require.NoError(t, os.Symlink(realPath, link))
	resolved, err := filepath.EvalSymlinks(realPath)
	require.NoError(t, err)

	old, err := Create(resolved, []byte("original"), 0o644, FixedClock(testTime))
	require.NoError(t, err)

	safety, err := Restore(context.Background(), old, link, FixedClock(testTime.Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, resolved+".backup.20240309_140607", safety)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	got, err := os.ReadFile(realPath)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	backups, err := List(link)
	require.NoError(t, err)
	assert.Equal(t, []string{safety, old}, backups)
}

func TestResolve(t *testing.T) {
	missing := filepath.Join(tempDir(t), "absent.json")
	got, err := Resolve(missing)
	require.NoError(t, err)
	assert.Equal(t, missing, got)
}

// tempDir returns a test directory with symlinks in its own path resolved
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}
