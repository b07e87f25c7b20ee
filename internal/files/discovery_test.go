package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestFindExcelFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b_sensor.xlsx"))
	touch(t, filepath.Join(dir, "a_sensor.xls"))
	touch(t, filepath.Join(dir, "UPPER.XLSX"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "data.csv"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xlsx"), 0755))

	discovery := NewDiscovery(dir)
	files, err := discovery.FindExcelFiles(dir)
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"UPPER.XLSX", "a_sensor.xls", "b_sensor.xlsx"}, names)
}

func TestFindExcelFiles_NoRecursion(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	touch(t, filepath.Join(sub, "hidden.xlsx"))

	discovery := NewDiscovery(dir)
	files, err := discovery.FindExcelFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindExcelFiles_RelativeDir(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "data"), 0755))
	touch(t, filepath.Join(base, "data", "s1.xlsx"))

	discovery := NewDiscovery(base)
	files, err := discovery.FindExcelFiles("data")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "data", "s1.xlsx"), files[0].Path)
}

func TestFindExcelFiles_MissingDir(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())
	_, err := discovery.FindExcelFiles("does-not-exist")
	assert.Error(t, err)
}

func TestHasExcelExtension(t *testing.T) {
	assert.True(t, hasExcelExtension("a.xlsx"))
	assert.True(t, hasExcelExtension("a.xls"))
	assert.True(t, hasExcelExtension("A.XLS"))
	assert.False(t, hasExcelExtension("a.csv"))
	assert.False(t, hasExcelExtension("axlsx"))
}
