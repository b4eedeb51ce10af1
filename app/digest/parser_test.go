package digest

import (
	"errors"
	"testing"
)

func TestParserRunValidPayload(t *testing.T) {
	parser := NewParser()

	payload := []byte(`{
		"schema_version": "1",
		"summary": "3 features changed",
		"counts": {"added": 1, "updated": 2},
		"truncated": false,
		"highlights": [
			{
				"type": "added",
				"feature_id": "subgrid",
				"feature_name": "Subgrid"
			},
			{
				"type": "changed",
				"feature_id": "container-queries",
				"feature_name": "Container queries",
				"baseline_change": {
					"from": {"status": "limited"},
					"to": {"status": "newly", "low_date": "2025-01-01"}
				}
			}
		]
	}`)

	summary, err := parser.Run(payload)
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}

	if summary.SchemaVersion != "1" {
		t.Errorf("Expected schema version '1', got '%s'", summary.SchemaVersion)
	}
	if summary.Summary != "3 features changed" {
		t.Errorf("Expected summary text '3 features changed', got '%s'", summary.Summary)
	}
	if summary.Counts.Added != 1 || summary.Counts.Updated != 2 {
		t.Errorf("Expected counts added=1 updated=2, got added=%d updated=%d", summary.Counts.Added, summary.Counts.Updated)
	}
	if len(summary.Highlights) != 2 {
		t.Fatalf("Expected 2 highlights, got %d", len(summary.Highlights))
	}

	first := summary.Highlights[0]
	if first.Type != HighlightAdded {
		t.Errorf("Expected first highlight type 'added', got '%s'", first.Type)
	}
	if first.BaselineChange != nil {
		t.Error("Added highlight should carry no baseline change")
	}

	second := summary.Highlights[1]
	if second.BaselineChange == nil || second.BaselineChange.To == nil {
		t.Fatal("Expected second highlight to carry a baseline change")
	}
	if second.BaselineChange.To.Status != BaselineNewly {
		t.Errorf("Expected baseline to-status 'newly', got '%s'", second.BaselineChange.To.Status)
	}
	if second.BaselineChange.To.LowDate != "2025-01-01" {
		t.Errorf("Expected low date '2025-01-01', got '%s'", second.BaselineChange.To.LowDate)
	}
}

func TestParserRunBrowserChanges(t *testing.T) {
	parser := NewParser()

	payload := []byte(`{
		"highlights": [
			{
				"type": "changed",
				"feature_id": "has-selector",
				"feature_name": ":has()",
				"browser_changes": {
					"firefox": {
						"from": {"status": "unavailable"},
						"to": {"status": "available", "version": "121", "date": "2024-12-19"}
					},
					"safari": null
				}
			}
		]
	}`)

	summary, err := parser.Run(payload)
	if err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}

	changes := summary.Highlights[0].BrowserChanges
	if len(changes) != 2 {
		t.Fatalf("Expected 2 browser change entries, got %d", len(changes))
	}
	if changes[BrowserSafari] != nil {
		t.Error("Expected safari entry to be present but nil")
	}
	firefox := changes[BrowserFirefox]
	if firefox == nil || firefox.To == nil {
		t.Fatal("Expected firefox change with to-state")
	}
	if firefox.To.Status != BrowserAvailable || firefox.To.Version != "121" {
		t.Errorf("Expected firefox available in 121, got status '%s' version '%s'", firefox.To.Status, firefox.To.Version)
	}
}

func TestParserRunMalformedPayload(t *testing.T) {
	parser := NewParser()

	for _, payload := range [][]byte{
		[]byte(`not json at all`),
		[]byte(`{"highlights": [`),
		[]byte(`42`),
		nil,
	} {
		summary, err := parser.Run(payload)
		if err == nil {
			t.Errorf("Expected decode error for payload %q", payload)
			continue
		}
		if !errors.Is(err, ErrDecode) {
			t.Errorf("Expected ErrDecode for payload %q, got %v", payload, err)
		}
		if summary != nil {
			t.Errorf("Expected no partial result for payload %q", payload)
		}
	}
}
