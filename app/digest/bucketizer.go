package digest

// BrowserChangeEntry is one flattened (feature, browser) implementation
// change, tagged with its originating feature for link construction.
type BrowserChangeEntry struct {
	FeatureID   string
	FeatureName string
	Browser     BrowserName
	Change      BrowserChange
}

// Buckets groups highlights into the named sections the template layer
// consumes directly.
type Buckets struct {
	BaselineNewlyChanges      []Highlight
	BaselineWidelyChanges     []Highlight
	BaselineRegressionChanges []Highlight
	AllBrowserChanges         []BrowserChangeEntry
	AddedFeatures             []Highlight
	RemovedFeatures           []Highlight
	DeletedFeatures           []Highlight
	MovedFeatures             []Highlight
	SplitFeatures             []Highlight
}

// Empty reports whether no bucket received any entry.
func (b *Buckets) Empty() bool {
	return len(b.BaselineNewlyChanges) == 0 &&
		len(b.BaselineWidelyChanges) == 0 &&
		len(b.BaselineRegressionChanges) == 0 &&
		len(b.AllBrowserChanges) == 0 &&
		len(b.AddedFeatures) == 0 &&
		len(b.RemovedFeatures) == 0 &&
		len(b.DeletedFeatures) == 0 &&
		len(b.MovedFeatures) == 0 &&
		len(b.SplitFeatures) == 0
}

type Bucketizer struct{}

func NewBucketizer() *Bucketizer {
	return &Bucketizer{}
}

// Run classifies filtered highlights into buckets. Highlight.Type is
// authoritative for added/removed/deleted/moved/split highlights; everything
// else routes by its change detail. A highlight carrying both a baseline
// change and browser changes lands in both sections: every change the user
// asked about is surfaced.
func (b *Bucketizer) Run(highlights []Highlight) *Buckets {
	buckets := &Buckets{}

	for _, highlight := range highlights {
		switch highlight.Type {
		case HighlightAdded:
			buckets.AddedFeatures = append(buckets.AddedFeatures, highlight)
			continue
		case HighlightRemoved:
			buckets.RemovedFeatures = append(buckets.RemovedFeatures, highlight)
			continue
		case HighlightDeleted:
			buckets.DeletedFeatures = append(buckets.DeletedFeatures, highlight)
			continue
		case HighlightMoved:
			buckets.MovedFeatures = append(buckets.MovedFeatures, highlight)
			continue
		case HighlightSplit:
			buckets.SplitFeatures = append(buckets.SplitFeatures, highlight)
			continue
		}

		if highlight.BaselineChange != nil && highlight.BaselineChange.To != nil {
			switch highlight.BaselineChange.To.Status {
			case BaselineNewly:
				buckets.BaselineNewlyChanges = append(buckets.BaselineNewlyChanges, highlight)
			case BaselineWidely:
				buckets.BaselineWidelyChanges = append(buckets.BaselineWidelyChanges, highlight)
			case BaselineLimited:
				// Moving to limited always means a regression in this model.
				buckets.BaselineRegressionChanges = append(buckets.BaselineRegressionChanges, highlight)
			}
		}

		if len(highlight.BrowserChanges) > 0 {
			buckets.AllBrowserChanges = append(buckets.AllBrowserChanges, flattenBrowserChanges(highlight)...)
		}
	}

	return buckets
}

// flattenBrowserChanges emits one entry per non-nil per-browser change, in
// the fixed browser display order.
func flattenBrowserChanges(highlight Highlight) []BrowserChangeEntry {
	entries := make([]BrowserChangeEntry, 0, len(highlight.BrowserChanges))
	for _, browser := range BrowserDisplayOrder {
		change := highlight.BrowserChanges[browser]
		if change == nil {
			continue
		}
		entries = append(entries, BrowserChangeEntry{
			FeatureID:   highlight.FeatureID,
			FeatureName: highlight.FeatureName,
			Browser:     browser,
			Change:      *change,
		})
	}
	return entries
}
