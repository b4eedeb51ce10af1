package digest

import (
	"encoding/json"
	"strings"
	"testing"
)

const testBaseURL = "https://webstatus.example.com"

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer(testBaseURL)
	if err != nil {
		t.Fatalf("Failed to construct renderer: %v", err)
	}
	return renderer
}

func mustPayload(t *testing.T, summary EventSummary) []byte {
	t.Helper()
	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("Failed to marshal summary: %v", err)
	}
	return data
}

func testJob(payload []byte) Job {
	return Job{
		ID:             "job-1",
		RecipientEmail: "subscriber@example.com",
		SubscriptionID: "sub-1",
		ChannelID:      "css-watchers",
		SummaryPayload: payload,
		UnsubscribeURL: testBaseURL + "/unsubscribe/sub-1",
		ManageURL:      testBaseURL + "/settings/subscriptions",
	}
}

func TestRendererRunDeterministic(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{
		Summary: "2 features changed",
		Highlights: []Highlight{
			baselineHighlight("grid", BaselineLimited, BaselineNewly),
			{
				Type:        HighlightChanged,
				FeatureID:   "has-selector",
				FeatureName: ":has()",
				BrowserChanges: map[BrowserName]*BrowserChange{
					BrowserChrome:  {To: &BrowserState{Status: BrowserAvailable, Version: "105"}},
					BrowserFirefox: {To: &BrowserState{Status: BrowserAvailable, Version: "121"}},
					BrowserSafari:  {To: &BrowserState{Status: BrowserAvailable, Version: "15.4"}},
					BrowserEdge:    {To: &BrowserState{Status: BrowserAvailable, Version: "105"}},
				},
			},
		},
	})
	job := testJob(payload)

	subject1, body1, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	subject2, body2, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Second render failed: %v", err)
	}

	if subject1 != subject2 {
		t.Errorf("Subjects differ between renders: %q vs %q", subject1, subject2)
	}
	if body1 != body2 {
		t.Error("Bodies differ between renders of identical input")
	}
}

func TestRendererRunMalformedPayload(t *testing.T) {
	renderer := newTestRenderer(t)

	job := testJob([]byte(`{broken`))

	_, body, err := renderer.Run(job)
	if err == nil {
		t.Fatal("Expected error for malformed payload")
	}
	if body != "" {
		t.Errorf("Expected empty body on decode failure, got %d bytes", len(body))
	}
}

func TestRendererRunNewlyPromotionScenario(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{
		Highlights: []Highlight{
			{
				Type:        HighlightChanged,
				FeatureID:   "container-queries",
				FeatureName: "Container queries",
				BaselineChange: &BaselineChange{
					From: &BaselineState{Status: BaselineLimited},
					To:   &BaselineState{Status: BaselineNewly, LowDate: "2025-01-01"},
				},
			},
		},
	})
	job := testJob(payload)
	job.Triggers = []JobTrigger{TriggerPromotedToNewly}

	_, body, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(body, "Container queries") {
		t.Error("Expected feature name in rendered body")
	}
	if !strings.Contains(body, "2025-01-01") {
		t.Error("Expected formatted low availability date in rendered body")
	}
	if !strings.Contains(body, "Newly available") {
		t.Error("Expected newly available section in rendered body")
	}
	if !strings.Contains(body, testBaseURL+"/features/container-queries") {
		t.Error("Expected feature link in rendered body")
	}
}

func TestRendererRunTriggersFilterHighlights(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{
		Highlights: []Highlight{
			baselineHighlight("kept-widely", BaselineNewly, BaselineWidely),
			baselineHighlight("dropped-newly", BaselineLimited, BaselineNewly),
		},
	})
	job := testJob(payload)
	job.Triggers = []JobTrigger{TriggerPromotedToWidely}

	_, body, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(body, "kept-widely") {
		t.Error("Expected matching highlight in rendered body")
	}
	if strings.Contains(body, "dropped-newly") {
		t.Error("Filtered highlight leaked into rendered body")
	}
}

func TestRendererRunBrowserChangeMissingFields(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{
		Highlights: []Highlight{
			{
				Type:        HighlightChanged,
				FeatureID:   "anchor-positioning",
				FeatureName: "Anchor positioning",
				BrowserChanges: map[BrowserName]*BrowserChange{
					BrowserFirefox: {To: &BrowserState{Status: BrowserAvailable}},
				},
			},
		},
	})
	job := testJob(payload)

	_, body, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(body, "Firefox") {
		t.Error("Expected browser name in rendered body")
	}
	if !strings.Contains(body, "available") {
		t.Error("Expected implementation status in rendered body")
	}
	if strings.Contains(body, "in version") {
		t.Error("Version suffix rendered despite missing version")
	}
	if strings.Contains(body, " on ") {
		t.Error("Date suffix rendered despite missing date")
	}
	if !strings.Contains(body, testBaseURL+"/public/img/firefox.png") {
		t.Error("Expected browser logo URL in rendered body")
	}
}

func TestRendererRunSplitScenario(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{
		Highlights: []Highlight{
			{
				Type:        HighlightSplit,
				FeatureID:   "feature-to-split",
				FeatureName: "Feature to split",
				Split: &SplitChange{
					From: FeatureRef{ID: "feature-to-split", Name: "Feature to split"},
					To: []FeatureRef{
						{ID: "sub-feature-1", Name: "Sub feature 1"},
						{ID: "sub-feature-2", Name: "Sub feature 2"},
					},
				},
			},
		},
	})
	job := testJob(payload)

	_, body, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(body, "Split into") {
		t.Error("Expected split block in rendered body")
	}
	if !strings.Contains(body, testBaseURL+"/features/sub-feature-1") {
		t.Error("Expected link to first split target")
	}
	if !strings.Contains(body, testBaseURL+"/features/sub-feature-2") {
		t.Error("Expected link to second split target")
	}
}

func TestRendererRunTruncatedSummary(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{
		Truncated: true,
		Highlights: []Highlight{
			{Type: HighlightAdded, FeatureID: "popover", FeatureName: "Popover"},
		},
	})
	job := testJob(payload)

	_, body, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(body, "View All Changes") {
		t.Error("Expected truncation button in rendered body")
	}
	if !strings.Contains(body, testBaseURL+"/saved-searches") {
		t.Error("Expected saved searches link in rendered body")
	}
}

func TestRendererRunEmptySummary(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{})
	job := testJob(payload)

	_, body, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed for zero highlights: %v", err)
	}

	if !strings.HasPrefix(body, "<!DOCTYPE html>") {
		t.Error("Expected DOCTYPE preamble")
	}
	for _, section := range []string{"Newly available", "Widely available", "Added features", "Split features"} {
		if strings.Contains(body, section) {
			t.Errorf("Section %q rendered for empty summary", section)
		}
	}
	// Footer links are always present.
	if !strings.Contains(body, job.UnsubscribeURL) {
		t.Error("Expected unsubscribe link in rendered body")
	}
	if !strings.Contains(body, job.ManageURL) {
		t.Error("Expected manage subscriptions link in rendered body")
	}
}

func TestRendererRunSubject(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{})

	job := testJob(payload)
	subject, _, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if subject != "Web platform updates" {
		t.Errorf("Expected default subject, got %q", subject)
	}

	job.Frequency = "daily"
	job.SearchQuery = "css"
	subject, _, err = renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if subject != `Daily web platform updates for "css"` {
		t.Errorf("Unexpected subject: %q", subject)
	}
}

func TestRendererRunMovedFeature(t *testing.T) {
	renderer := newTestRenderer(t)

	payload := mustPayload(t, EventSummary{
		Highlights: []Highlight{
			{
				Type:        HighlightMoved,
				FeatureID:   "old-home",
				FeatureName: "Old home",
				Moved: &MovedChange{
					From: FeatureRef{ID: "old-home", Name: "Old home"},
					To:   FeatureRef{ID: "new-home", Name: "New home"},
				},
			},
		},
	})
	job := testJob(payload)

	_, body, err := renderer.Run(job)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(body, "Moved to") {
		t.Error("Expected moved block in rendered body")
	}
	if !strings.Contains(body, testBaseURL+"/features/new-home") {
		t.Error("Expected link to move target")
	}
}
