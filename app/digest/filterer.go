package digest

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run retains highlights matching at least one requested trigger, preserving
// input order. An empty trigger list means the subscriber wants everything.
func (f *Filterer) Run(highlights []Highlight, triggers []JobTrigger) []Highlight {
	if len(triggers) == 0 {
		return highlights
	}

	filtered := make([]Highlight, 0, len(highlights))
	for _, highlight := range highlights {
		if f.matchesAny(highlight, triggers) {
			filtered = append(filtered, highlight)
		}
	}

	return filtered
}

func (f *Filterer) matchesAny(highlight Highlight, triggers []JobTrigger) bool {
	for _, trigger := range triggers {
		if f.matches(highlight, trigger) {
			return true
		}
	}
	return false
}

func (f *Filterer) matches(highlight Highlight, trigger JobTrigger) bool {
	switch trigger {
	case TriggerFeatureAdded:
		return highlight.Type == HighlightAdded
	case TriggerFeatureRemoved:
		return highlight.Type == HighlightRemoved
	case TriggerFeatureDeleted:
		return highlight.Type == HighlightDeleted
	case TriggerFeatureMoved:
		return highlight.Type == HighlightMoved
	case TriggerFeatureSplit:
		return highlight.Type == HighlightSplit
	case TriggerPromotedToNewly:
		return baselineStatusIs(highlight, BaselineNewly)
	case TriggerPromotedToWidely:
		return baselineStatusIs(highlight, BaselineWidely)
	case TriggerRegressedToLimited:
		if !baselineStatusIs(highlight, BaselineLimited) {
			return false
		}
		from := highlight.BaselineChange.From
		return from != nil && (from.Status == BaselineNewly || from.Status == BaselineWidely)
	case TriggerBrowserImplAnyComplete:
		for _, browser := range BrowserDisplayOrder {
			change := highlight.BrowserChanges[browser]
			if change != nil && change.To != nil && change.To.Status == BrowserAvailable {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func baselineStatusIs(highlight Highlight, status BaselineStatus) bool {
	return highlight.BaselineChange != nil &&
		highlight.BaselineChange.To != nil &&
		highlight.BaselineChange.To.Status == status
}
