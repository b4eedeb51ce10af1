package digest

import (
	"testing"
)

func TestBucketizerRunBaselineRouting(t *testing.T) {
	bucketizer := NewBucketizer()

	highlights := []Highlight{
		baselineHighlight("to-newly", BaselineLimited, BaselineNewly),
		baselineHighlight("to-widely", BaselineNewly, BaselineWidely),
		baselineHighlight("to-limited", BaselineNewly, BaselineLimited),
	}

	buckets := bucketizer.Run(highlights)

	if len(buckets.BaselineNewlyChanges) != 1 || buckets.BaselineNewlyChanges[0].FeatureID != "to-newly" {
		t.Errorf("Expected 'to-newly' in newly bucket, got %v", buckets.BaselineNewlyChanges)
	}
	if len(buckets.BaselineWidelyChanges) != 1 || buckets.BaselineWidelyChanges[0].FeatureID != "to-widely" {
		t.Errorf("Expected 'to-widely' in widely bucket, got %v", buckets.BaselineWidelyChanges)
	}
	if len(buckets.BaselineRegressionChanges) != 1 || buckets.BaselineRegressionChanges[0].FeatureID != "to-limited" {
		t.Errorf("Expected 'to-limited' in regression bucket, got %v", buckets.BaselineRegressionChanges)
	}
}

func TestBucketizerRunBrowserChangesFlattened(t *testing.T) {
	bucketizer := NewBucketizer()

	highlights := []Highlight{
		{
			Type:        HighlightChanged,
			FeatureID:   "feature-one",
			FeatureName: "Feature One",
			BrowserChanges: map[BrowserName]*BrowserChange{
				BrowserSafari:        {To: &BrowserState{Status: BrowserAvailable}},
				BrowserChrome:        {To: &BrowserState{Status: BrowserAvailable, Version: "131"}},
				BrowserChromeAndroid: {To: &BrowserState{Status: BrowserAvailable}},
				BrowserFirefox:       nil,
			},
		},
		{
			Type:        HighlightChanged,
			FeatureID:   "feature-two",
			FeatureName: "Feature Two",
			BrowserChanges: map[BrowserName]*BrowserChange{
				BrowserEdge: {To: &BrowserState{Status: BrowserUnavailable}},
			},
		},
	}

	buckets := bucketizer.Run(highlights)

	// Flattened entries keep feature input order and the fixed browser
	// display order within each feature; nil entries are skipped.
	expected := []struct {
		feature string
		browser BrowserName
	}{
		{"feature-one", BrowserChrome},
		{"feature-one", BrowserSafari},
		{"feature-one", BrowserChromeAndroid},
		{"feature-two", BrowserEdge},
	}

	if len(buckets.AllBrowserChanges) != len(expected) {
		t.Fatalf("Expected %d flattened entries, got %d", len(expected), len(buckets.AllBrowserChanges))
	}
	for i, want := range expected {
		entry := buckets.AllBrowserChanges[i]
		if entry.FeatureID != want.feature || entry.Browser != want.browser {
			t.Errorf("Entry %d: expected (%s, %s), got (%s, %s)", i, want.feature, want.browser, entry.FeatureID, entry.Browser)
		}
	}
}

func TestBucketizerRunTypeIsAuthoritative(t *testing.T) {
	bucketizer := NewBucketizer()

	// A stray baseline change on an added highlight must not leak into the
	// baseline buckets.
	highlights := []Highlight{
		{
			Type:      HighlightAdded,
			FeatureID: "added-with-stray-detail",
			BaselineChange: &BaselineChange{
				To: &BaselineState{Status: BaselineNewly},
			},
		},
		{Type: HighlightRemoved, FeatureID: "removed"},
		{Type: HighlightDeleted, FeatureID: "deleted"},
		{Type: HighlightMoved, FeatureID: "moved", Moved: &MovedChange{From: FeatureRef{ID: "moved"}, To: FeatureRef{ID: "dest"}}},
		{Type: HighlightSplit, FeatureID: "split", Split: &SplitChange{From: FeatureRef{ID: "split"}, To: []FeatureRef{{ID: "a"}, {ID: "b"}}}},
	}

	buckets := bucketizer.Run(highlights)

	if len(buckets.AddedFeatures) != 1 {
		t.Errorf("Expected 1 added feature, got %d", len(buckets.AddedFeatures))
	}
	if len(buckets.BaselineNewlyChanges) != 0 {
		t.Errorf("Expected empty newly bucket, got %d entries", len(buckets.BaselineNewlyChanges))
	}
	if len(buckets.RemovedFeatures) != 1 || len(buckets.DeletedFeatures) != 1 {
		t.Errorf("Expected removed and deleted buckets with 1 entry each, got %d and %d", len(buckets.RemovedFeatures), len(buckets.DeletedFeatures))
	}
	if len(buckets.MovedFeatures) != 1 || len(buckets.SplitFeatures) != 1 {
		t.Errorf("Expected moved and split buckets with 1 entry each, got %d and %d", len(buckets.MovedFeatures), len(buckets.SplitFeatures))
	}
}

func TestBucketizerRunMultiBucketMembership(t *testing.T) {
	bucketizer := NewBucketizer()

	// A changed highlight carrying both details surfaces in both sections.
	highlights := []Highlight{
		{
			Type:        HighlightChanged,
			FeatureID:   "both",
			FeatureName: "Both",
			BaselineChange: &BaselineChange{
				From: &BaselineState{Status: BaselineLimited},
				To:   &BaselineState{Status: BaselineNewly},
			},
			BrowserChanges: map[BrowserName]*BrowserChange{
				BrowserChrome: {To: &BrowserState{Status: BrowserAvailable}},
			},
		},
	}

	buckets := bucketizer.Run(highlights)

	if len(buckets.BaselineNewlyChanges) != 1 {
		t.Errorf("Expected highlight in newly bucket, got %d entries", len(buckets.BaselineNewlyChanges))
	}
	if len(buckets.AllBrowserChanges) != 1 {
		t.Errorf("Expected highlight's browser change flattened, got %d entries", len(buckets.AllBrowserChanges))
	}
}

func TestBucketizerRunEmpty(t *testing.T) {
	bucketizer := NewBucketizer()

	buckets := bucketizer.Run(nil)
	if !buckets.Empty() {
		t.Error("Expected empty buckets for no highlights")
	}

	buckets = bucketizer.Run([]Highlight{{Type: HighlightAdded, FeatureID: "a"}})
	if buckets.Empty() {
		t.Error("Expected non-empty buckets")
	}
}
