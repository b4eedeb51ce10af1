package digest

import (
	"testing"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"2025-01-01", "2025-01-01"},
		{"2024-12-19T00:00:00Z", "2024-12-19"},
		{"not-a-date", "not-a-date"},
	}

	for _, test := range tests {
		result := formatDate(test.input)
		if result != test.expected {
			t.Errorf("formatDate(%q): expected %q, got %q", test.input, test.expected, result)
		}
	}
}

func TestBaselineLabel(t *testing.T) {
	tests := []struct {
		status   BaselineStatus
		expected string
	}{
		{BaselineLimited, "Limited availability"},
		{BaselineNewly, "Newly available"},
		{BaselineWidely, "Widely available"},
		{"mystery", "mystery"},
	}

	for _, test := range tests {
		if result := baselineLabel(test.status); result != test.expected {
			t.Errorf("baselineLabel(%s): expected %q, got %q", test.status, test.expected, result)
		}
	}
}

func TestBrowserLabel(t *testing.T) {
	tests := []struct {
		browser  BrowserName
		expected string
	}{
		{BrowserChrome, "Chrome"},
		{BrowserChromeAndroid, "Chrome Android"},
		{BrowserEdge, "Edge"},
		{BrowserFirefox, "Firefox"},
		{BrowserFirefoxAndroid, "Firefox Android"},
		{BrowserSafari, "Safari"},
		{BrowserSafariIOS, "Safari iOS"},
	}

	for _, test := range tests {
		if result := browserLabel(test.browser); result != test.expected {
			t.Errorf("browserLabel(%s): expected %q, got %q", test.browser, test.expected, result)
		}
	}
}

func TestBadgeColorKnownTitles(t *testing.T) {
	known := []string{
		"Newly available",
		"Widely available",
		"Limited availability",
		"Browser implementation updates",
		"Added features",
		"Removed features",
		"Deleted features",
	}

	fallback := badgeColor("Something else")
	for _, title := range known {
		color := badgeColor(title)
		if color == "" {
			t.Errorf("badgeColor(%q) returned empty color", title)
		}
	}
	if fallback == "" {
		t.Error("badgeColor fallback returned empty color")
	}
	if badgeColor("Newly available") == badgeColor("Limited availability") {
		t.Error("Promotion and regression badges should not share a color")
	}
}

func TestDict(t *testing.T) {
	m, err := dict("Title", "Added features", "Count", 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m["Title"] != "Added features" {
		t.Errorf("Expected Title 'Added features', got %v", m["Title"])
	}
	if m["Count"] != 3 {
		t.Errorf("Expected Count 3, got %v", m["Count"])
	}

	if _, err := dict("odd"); err == nil {
		t.Error("Expected error for odd argument count")
	}
	if _, err := dict(1, "value"); err == nil {
		t.Error("Expected error for non-string key")
	}
}

func TestKnownTrigger(t *testing.T) {
	for _, trigger := range []JobTrigger{
		TriggerFeatureAdded,
		TriggerFeatureRemoved,
		TriggerFeatureDeleted,
		TriggerFeatureMoved,
		TriggerFeatureSplit,
		TriggerPromotedToNewly,
		TriggerPromotedToWidely,
		TriggerRegressedToLimited,
		TriggerBrowserImplAnyComplete,
	} {
		if !KnownTrigger(trigger) {
			t.Errorf("Expected %s to be a known trigger", trigger)
		}
	}

	if KnownTrigger("made_up_trigger") {
		t.Error("Expected unknown trigger to be rejected")
	}
}
