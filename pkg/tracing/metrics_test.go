package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"
)

func registerViews(t *testing.T) {
	t.Helper()
	require.NoError(t, view.Register(Views...))
	t.Cleanup(func() { view.Unregister(Views...) })
}

func sumOf(t *testing.T, name string) float64 {
	t.Helper()
	rows, err := view.RetrieveData(name)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0].Data.(*view.SumData).Value
}

func TestRecordHandOff(t *testing.T) {
	registerViews(t)
	ctx := context.Background()

	RecordHandOff(ctx, 3, 1)
	RecordHandOff(ctx, 2, 0)

	assert.Equal(t, 5.0, sumOf(t, "pagekit/campaign/pages_generated"))
	assert.Equal(t, 1.0, sumOf(t, "pagekit/campaign/pages_failed"))
}

func TestRecordImportCommit(t *testing.T) {
	registerViews(t)

	RecordImportCommit(context.Background(), 7)
	assert.Equal(t, 7.0, sumOf(t, "pagekit/import/records"))
}

func TestRecordPageRender_BySurface(t *testing.T) {
	registerViews(t)
	ctx := context.Background()

	RecordPageRender(ctx, SurfaceView)
	RecordPageRender(ctx, SurfaceView)
	RecordPageRender(ctx, SurfacePreview)

	rows, err := view.RetrieveData("pagekit/render/pages")
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, row := range rows {
		require.Len(t, row.Tags, 1)
		counts[row.Tags[0].Value] = row.Data.(*view.CountData).Value
	}
	assert.Equal(t, map[string]int64{SurfaceView: 2, SurfacePreview: 1}, counts)
}
