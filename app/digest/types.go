package digest

import (
	"time"
)

type HighlightType string

const (
	HighlightAdded   HighlightType = "added"
	HighlightRemoved HighlightType = "removed"
	HighlightChanged HighlightType = "changed"
	HighlightMoved   HighlightType = "moved"
	HighlightSplit   HighlightType = "split"
	HighlightDeleted HighlightType = "deleted"
)

type BaselineStatus string

const (
	BaselineLimited BaselineStatus = "limited"
	BaselineNewly   BaselineStatus = "newly"
	BaselineWidely  BaselineStatus = "widely"
)

type BrowserName string

const (
	BrowserChrome         BrowserName = "chrome"
	BrowserChromeAndroid  BrowserName = "chrome_android"
	BrowserEdge           BrowserName = "edge"
	BrowserFirefox        BrowserName = "firefox"
	BrowserFirefoxAndroid BrowserName = "firefox_android"
	BrowserSafari         BrowserName = "safari"
	BrowserSafariIOS      BrowserName = "safari_ios"
)

// BrowserDisplayOrder is the fixed rendering order for browser-keyed data.
// Desktop browsers first, then mobile variants. Iterating the
// BrowserChanges map directly would be non-deterministic.
var BrowserDisplayOrder = []BrowserName{
	BrowserChrome,
	BrowserEdge,
	BrowserFirefox,
	BrowserSafari,
	BrowserChromeAndroid,
	BrowserFirefoxAndroid,
	BrowserSafariIOS,
}

type BrowserImplStatus string

const (
	BrowserAvailable   BrowserImplStatus = "available"
	BrowserUnavailable BrowserImplStatus = "unavailable"
)

// EventSummary is the decoded notification payload produced by the upstream
// event summarization pipeline.
type EventSummary struct {
	SchemaVersion string         `json:"schema_version"`
	Summary       string         `json:"summary"`
	Counts        CategoryCounts `json:"counts"`
	Truncated     bool           `json:"truncated"`
	Highlights    []Highlight    `json:"highlights"`
}

type CategoryCounts struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Updated int `json:"updated"`
	Moved   int `json:"moved"`
	Split   int `json:"split"`
	Deleted int `json:"deleted"`
}

// Highlight is a single feature-level change. At most one of the change
// detail fields is populated, consistent with Type. Added, Removed and
// Deleted highlights carry none.
type Highlight struct {
	Type           HighlightType                   `json:"type"`
	FeatureID      string                          `json:"feature_id"`
	FeatureName    string                          `json:"feature_name"`
	DocLinks       []string                        `json:"doc_links,omitempty"`
	BaselineChange *BaselineChange                 `json:"baseline_change,omitempty"`
	BrowserChanges map[BrowserName]*BrowserChange  `json:"browser_changes,omitempty"`
	Moved          *MovedChange                    `json:"moved,omitempty"`
	Split          *SplitChange                    `json:"split,omitempty"`
	NameChange     *NameChange                     `json:"name_change,omitempty"`
}

type BaselineChange struct {
	From *BaselineState `json:"from,omitempty"`
	To   *BaselineState `json:"to,omitempty"`
}

type BaselineState struct {
	Status BaselineStatus `json:"status"`
	// Dates arrive as YYYY-MM-DD strings and stay strings end to end;
	// the renderer normalizes them for display.
	LowDate  string `json:"low_date,omitempty"`
	HighDate string `json:"high_date,omitempty"`
}

// BrowserChange holds a per-browser implementation change. Map entries may
// be present but nil to indicate no change for that browser.
type BrowserChange struct {
	From *BrowserState `json:"from,omitempty"`
	To   *BrowserState `json:"to,omitempty"`
}

type BrowserState struct {
	Status  BrowserImplStatus `json:"status"`
	Version string            `json:"version,omitempty"`
	Date    string            `json:"date,omitempty"`
}

type FeatureRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MovedChange struct {
	From FeatureRef `json:"from"`
	To   FeatureRef `json:"to"`
}

type SplitChange struct {
	From FeatureRef   `json:"from"`
	To   []FeatureRef `json:"to"`
}

type NameChange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// JobTrigger is a notification condition a subscription can request.
type JobTrigger string

const (
	TriggerFeatureAdded               JobTrigger = "feature_added"
	TriggerFeatureRemoved             JobTrigger = "feature_removed"
	TriggerFeatureDeleted             JobTrigger = "feature_deleted"
	TriggerFeatureMoved               JobTrigger = "feature_moved"
	TriggerFeatureSplit               JobTrigger = "feature_split"
	TriggerPromotedToNewly            JobTrigger = "feature_promoted_to_newly"
	TriggerPromotedToWidely           JobTrigger = "feature_promoted_to_widely"
	TriggerRegressedToLimited         JobTrigger = "feature_regressed_to_limited"
	TriggerBrowserImplAnyComplete     JobTrigger = "browser_implementation_any_complete"
)

var knownTriggers = map[JobTrigger]bool{
	TriggerFeatureAdded:           true,
	TriggerFeatureRemoved:         true,
	TriggerFeatureDeleted:         true,
	TriggerFeatureMoved:           true,
	TriggerFeatureSplit:           true,
	TriggerPromotedToNewly:        true,
	TriggerPromotedToWidely:       true,
	TriggerRegressedToLimited:     true,
	TriggerBrowserImplAnyComplete: true,
}

// KnownTrigger reports whether t is a recognized trigger value.
func KnownTrigger(t JobTrigger) bool {
	return knownTriggers[t]
}

// Job is one digest rendering request. All structures are constructed fresh
// per job and discarded after the caller extracts (subject, body).
type Job struct {
	ID             string
	RecipientEmail string
	SubscriptionID string
	ChannelID      string
	SearchQuery    string
	Frequency      string
	EventID        string
	SearchID       string
	GeneratedAt    *time.Time
	Triggers       []JobTrigger
	SummaryPayload []byte
	UnsubscribeURL string
	ManageURL      string
}
