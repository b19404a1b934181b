package tracing

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// Measures recorded by the page services
var (
	PagesGenerated = stats.Int64("pagekit/campaign/pages_generated", "Personalized pages generated by a campaign hand-off", stats.UnitDimensionless)
	PagesFailed    = stats.Int64("pagekit/campaign/pages_failed", "Records that could not be turned into a page", stats.UnitDimensionless)
	ImportRecords  = stats.Int64("pagekit/import/records", "Records handed off by committed imports", stats.UnitDimensionless)
	PageRenders    = stats.Int64("pagekit/render/pages", "Pages rendered for visitors", stats.UnitDimensionless)
)

// KeySurface tells the builder preview apart from personalized links
var KeySurface = tag.MustNewKey("surface")

// Surfaces a page is rendered on
const (
	SurfacePreview = "preview"
	SurfaceView    = "view"
)

// Views aggregates the measures above; InitTracing registers them
var Views = []*view.View{
	{Name: "pagekit/campaign/pages_generated", Measure: PagesGenerated, Aggregation: view.Sum()},
	{Name: "pagekit/campaign/pages_failed", Measure: PagesFailed, Aggregation: view.Sum()},
	{Name: "pagekit/import/records", Measure: ImportRecords, Aggregation: view.Sum()},
	{Name: "pagekit/render/pages", Measure: PageRenders, Aggregation: view.Count(), TagKeys: []tag.Key{KeySurface}},
}

// RecordHandOff records the outcome of one campaign page generation run
func RecordHandOff(ctx context.Context, succeeded, failed int) {
	stats.Record(ctx, PagesGenerated.M(int64(succeeded)), PagesFailed.M(int64(failed)))
}

// RecordImportCommit records how many records an import handed off
func RecordImportCommit(ctx context.Context, records int) {
	stats.Record(ctx, ImportRecords.M(int64(records)))
}

// RecordPageRender counts one rendered page on surface
func RecordPageRender(ctx context.Context, surface string) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeySurface, surface)}, PageRenders.M(1))
}
