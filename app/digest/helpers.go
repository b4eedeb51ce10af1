package digest

import (
	"fmt"
	"time"
)

const displayDateFormat = "2006-01-02"

// formatDate normalizes a payload date string for display. Dates arrive as
// YYYY-MM-DD or RFC3339; anything unparseable is rendered as-is rather than
// failing template execution.
func formatDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range []string{displayDateFormat, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayDateFormat)
		}
	}
	return raw
}

func baselineLabel(status BaselineStatus) string {
	switch status {
	case BaselineLimited:
		return "Limited availability"
	case BaselineNewly:
		return "Newly available"
	case BaselineWidely:
		return "Widely available"
	default:
		return string(status)
	}
}

func browserLabel(browser BrowserName) string {
	switch browser {
	case BrowserChrome:
		return "Chrome"
	case BrowserChromeAndroid:
		return "Chrome Android"
	case BrowserEdge:
		return "Edge"
	case BrowserFirefox:
		return "Firefox"
	case BrowserFirefoxAndroid:
		return "Firefox Android"
	case BrowserSafari:
		return "Safari"
	case BrowserSafariIOS:
		return "Safari iOS"
	default:
		return string(browser)
	}
}

func browserStatusLabel(status BrowserImplStatus) string {
	switch status {
	case BrowserAvailable:
		return "available"
	case BrowserUnavailable:
		return "unavailable"
	default:
		return string(status)
	}
}

// badgeColor selects the badge background by section title.
func badgeColor(title string) string {
	switch title {
	case "Newly available":
		return "#0969da"
	case "Widely available":
		return "#1a7f37"
	case "Limited availability":
		return "#cf222e"
	case "Browser implementation updates":
		return "#6639ba"
	case "Added features":
		return "#1a7f37"
	case "Removed features", "Deleted features":
		return "#cf222e"
	default:
		return "#59636e"
	}
}

// dict packs key/value pairs into a map so sub-template invocations can take
// multiple named arguments.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments, got %d", len(pairs))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
