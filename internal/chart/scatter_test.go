package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm25cli/internal/errors"
	"pm25cli/pkg/contracts/domain"
)

func extremeReading(sensor string, ts time.Time, value float64) domain.Reading {
	return domain.Reading{Timestamp: &ts, PM25: value, SourceFile: sensor}
}

func TestRenderer_RenderExtremes(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "charts", "extremes.html")

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	data := []domain.Reading{
		extremeReading("S1.xlsx", base, 0),
		extremeReading("S1.xlsx", base.Add(time.Hour), 1500),
		extremeReading("S2.xlsx", base.Add(2*time.Hour), 2200),
		{Timestamp: nil, PM25: 0, SourceFile: "S3.xlsx"}, // unplottable
	}

	r := NewRenderer(nil)
	require.NoError(t, r.RenderExtremes(context.Background(), data, out))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(content)

	assert.Contains(t, html, "S1.xlsx")
	assert.Contains(t, html, "S2.xlsx")
	// The sensor with only a nil timestamp contributes no series.
	assert.NotContains(t, html, "S3.xlsx")
	assert.Contains(t, html, "Threshold")
	assert.Contains(t, html, "markLine")
}

func TestRenderer_RenderExtremes_NoPlottableData(t *testing.T) {
	r := NewRenderer(nil)
	out := filepath.Join(t.TempDir(), "out.html")

	err := r.RenderExtremes(context.Background(), nil, out)
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeValidation, appErr.Type)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSeriesCount_AllTimestampsMissing(t *testing.T) {
	// Extreme readings whose timestamps never parsed carry a nil Timestamp.
	// They form no series, so callers can detect the case and skip rendering
	// instead of treating it as a failure.
	data := []domain.Reading{
		{Timestamp: nil, PM25: 0, SourceFile: "x.xlsx"},
		{Timestamp: nil, PM25: 2400, SourceFile: "x.xlsx"},
		{Timestamp: nil, PM25: 0, SourceFile: "y.xlsx"},
	}

	assert.Equal(t, 0, SeriesCount(data))
	assert.Empty(t, groupBySensor(data))
}

func TestGroupBySensor(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	data := []domain.Reading{
		extremeReading("a.xlsx", base, 0),
		extremeReading("a.xlsx", base.Add(time.Hour), 1200),
		extremeReading("b.xlsx", base, 3000),
		{Timestamp: nil, PM25: 0, SourceFile: "c.xlsx"},
	}

	series := groupBySensor(data)
	require.Len(t, series, 2)
	assert.Len(t, series["a.xlsx"], 2)
	assert.Len(t, series["b.xlsx"], 1)

	assert.Equal(t, 2, SeriesCount(data))

	point := series["a.xlsx"][0]
	values, ok := point.Value.([]interface{})
	require.True(t, ok)
	assert.Equal(t, "2024-03-01 00:00:00", values[0])
	assert.Equal(t, 0.0, values[1])
}
