package readings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pm25cli/pkg/contracts/domain"
)

// writeWorkbookAt writes a sensor export into dir under the given name.
func writeWorkbookAt(t *testing.T, dir, name string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, cell))
		}
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, name)))
}

func TestAggregator_LoadFolder(t *testing.T) {
	dir := t.TempDir()
	writeWorkbookAt(t, dir, "S1.xlsx", [][]interface{}{
		sensorHeader(),
		{"2024-01-01 10:00:00", 0},
		{"2024-01-02 10:00:00", 12.5},
	})
	writeWorkbookAt(t, dir, "S2.xlsx", [][]interface{}{
		sensorHeader(),
		{"2024-01-01 10:00:00", 1200.0},
	})
	// Not a spreadsheet; must be ignored, not failed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644))

	agg := NewAggregator(nil, nil)
	combined, failures, err := agg.LoadFolder(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, combined, 3)

	bySensor := make(map[string]int)
	for _, r := range combined {
		bySensor[r.SourceFile]++
	}
	assert.Equal(t, map[string]int{"S1.xlsx": 2, "S2.xlsx": 1}, bySensor)
}

func TestAggregator_LoadFolder_CorruptFileContained(t *testing.T) {
	dir := t.TempDir()
	writeWorkbookAt(t, dir, "good.xlsx", [][]interface{}{
		sensorHeader(),
		{"2024-01-01 10:00:00", 3.0},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.xlsx"), []byte("junk"), 0644))

	agg := NewAggregator(NewParser(nil), nil)
	combined, failures, err := agg.LoadFolder(context.Background(), dir)
	require.NoError(t, err)

	// The corrupt file contributes zero rows but does not stop the run.
	require.Len(t, combined, 1)
	assert.Equal(t, "good.xlsx", combined[0].SourceFile)

	require.Len(t, failures, 1)
	assert.Equal(t, filepath.Join(dir, "corrupt.xlsx"), failures[0].Path)
	assert.Error(t, failures[0].Err)
	assert.Contains(t, failures[0].Error(), "corrupt.xlsx")
}

func TestAggregator_LoadFolder_RelativeDir(t *testing.T) {
	base := t.TempDir()
	exports := filepath.Join(base, "exports")
	require.NoError(t, os.Mkdir(exports, 0755))
	writeWorkbookAt(t, exports, "S1.xlsx", [][]interface{}{
		sensorHeader(),
		{"2024-01-01 10:00:00", 5.0},
	})

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(base))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})

	agg := NewAggregator(nil, nil)
	combined, failures, err := agg.LoadFolder(context.Background(), "exports")
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, combined, 1)
	assert.Equal(t, "S1.xlsx", combined[0].SourceFile)
}

func TestAggregator_LoadFolder_Empty(t *testing.T) {
	agg := NewAggregator(nil, nil)
	combined, failures, err := agg.LoadFolder(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, combined)
	assert.Empty(t, failures)
}

func TestAggregator_LoadFolder_MissingDir(t *testing.T) {
	agg := NewAggregator(nil, nil)
	_, _, err := agg.LoadFolder(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestAggregator_LoadFolder_SourceTagSurvivesConcat(t *testing.T) {
	dir := t.TempDir()
	writeWorkbookAt(t, dir, "A.xlsx", [][]interface{}{sensorHeader(), {"2024-01-01", 1.0}})
	writeWorkbookAt(t, dir, "B.xlsx", [][]interface{}{sensorHeader(), {"2024-01-01", 2.0}})

	agg := NewAggregator(nil, nil)
	combined, _, err := agg.LoadFolder(context.Background(), dir)
	require.NoError(t, err)

	sources := make(map[string]struct{})
	for _, r := range combined {
		sources[r.SourceFile] = struct{}{}
	}
	assert.Contains(t, sources, "A.xlsx")
	assert.Contains(t, sources, "B.xlsx")
	for _, r := range combined {
		assert.NotEqual(t, domain.Reading{}, r)
	}
}
