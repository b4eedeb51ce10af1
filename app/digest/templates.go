package digest

// The email template set is layered: shared style snippets are spliced into
// reusable components by string concatenation, and the components are parsed
// together with the top-level layout into a single named template set. Email
// clients ignore external stylesheets, so every style is inline.

const (
	styleBody       = "margin:0;padding:0;background-color:#f6f8fa;font-family:'Helvetica Neue',Arial,sans-serif;color:#1f2328;"
	styleContainer  = "max-width:600px;margin:0 auto;padding:24px;"
	styleHeader     = "font-size:22px;font-weight:600;margin:0 0 8px 0;"
	styleSummary    = "font-size:14px;color:#59636e;margin:0 0 16px 0;"
	styleCard       = "background-color:#ffffff;border:1px solid #d1d9e0;border-radius:6px;padding:16px;margin-bottom:16px;"
	styleSection    = "font-size:16px;font-weight:600;margin:0 0 12px 0;"
	styleBadge      = "display:inline-block;padding:2px 10px;border-radius:12px;font-size:12px;font-weight:600;color:#ffffff;"
	styleRow        = "font-size:14px;margin:8px 0 0 0;"
	styleLink       = "color:#0969da;text-decoration:none;font-weight:600;"
	styleDocLink    = "color:#59636e;text-decoration:none;font-size:12px;"
	styleMeta       = "font-size:13px;color:#59636e;margin:4px 0 0 0;"
	styleList       = "margin:4px 0 0 0;padding-left:20px;"
	styleListItem   = "font-size:13px;margin:2px 0;"
	styleLogo       = "width:16px;height:16px;vertical-align:middle;margin-right:6px;"
	styleBanner     = "background-color:#fff8c5;border:1px solid #d4a72c;border-radius:6px;padding:16px;margin-bottom:16px;text-align:center;"
	styleBannerText = "font-size:14px;margin:0 0 12px 0;"
	styleButton     = "display:inline-block;padding:10px 20px;border-radius:6px;background-color:#0969da;color:#ffffff;text-decoration:none;font-weight:600;"
	styleFooter     = "font-size:12px;color:#59636e;text-align:center;padding:16px 0 0 0;"
	styleFooterText = "margin:4px 0;"
)

const componentBadge = `{{define "badge"}}<span style="` + styleBadge + `background-color:{{badgeColor .Title}}">{{.Title}}</span>{{end}}`

const componentButton = `{{define "button"}}<a href="{{.URL}}" style="` + styleButton + `">{{.Label}}</a>{{end}}`

const componentFeatureTitleRow = `{{define "featureTitleRow"}}<p style="` + styleRow + `"><a href="{{featureURL .FeatureID}}" style="` + styleLink + `">{{.FeatureName}}</a>{{range .DocLinks}} <a href="{{.}}" style="` + styleDocLink + `">docs</a>{{end}}</p>{{end}}`

const componentBrowserItem = `{{define "browserItem"}}<p style="` + styleRow + `"><img src="{{browserLogo .Browser}}" alt="{{browserLabel .Browser}}" style="` + styleLogo + `"><a href="{{featureURL .FeatureID}}" style="` + styleLink + `">{{.FeatureName}}</a>: {{browserLabel .Browser}}{{with .Change.To}} is {{browserStatusLabel .Status}}{{with .Version}} in version {{.}}{{end}}{{with .Date}} on {{formatDate .}}{{end}}{{end}}</p>{{end}}`

const componentBaselineSection = `{{define "baselineSection"}}<div style="` + styleCard + `">
<h2 style="` + styleSection + `">{{template "badge" dict "Title" .Title}}</h2>
{{range .Items}}{{template "featureTitleRow" .}}
{{with .BaselineChange}}<p style="` + styleMeta + `">{{with .From}}{{baselineLabel .Status}} to {{end}}{{with .To}}{{baselineLabel .Status}}{{with .LowDate}} since {{formatDate .}}{{end}}{{end}}</p>
{{end}}{{end}}</div>
{{end}}`

const componentBrowserSection = `{{define "browserSection"}}<div style="` + styleCard + `">
<h2 style="` + styleSection + `">{{template "badge" dict "Title" "Browser implementation updates"}}</h2>
{{range .Items}}{{template "browserItem" .}}
{{end}}</div>
{{end}}`

const componentFeatureListSection = `{{define "featureListSection"}}<div style="` + styleCard + `">
<h2 style="` + styleSection + `">{{template "badge" dict "Title" .Title}}</h2>
{{range .Items}}{{template "featureTitleRow" .}}
{{end}}</div>
{{end}}`

const componentMovedSection = `{{define "movedSection"}}<div style="` + styleCard + `">
<h2 style="` + styleSection + `">{{template "badge" dict "Title" "Moved features"}}</h2>
{{range .Items}}{{template "featureTitleRow" .}}
{{with .Moved}}<p style="` + styleMeta + `">Moved to <a href="{{featureURL .To.ID}}" style="` + styleLink + `">{{.To.Name}}</a></p>
{{end}}{{end}}</div>
{{end}}`

const componentSplitSection = `{{define "splitSection"}}<div style="` + styleCard + `">
<h2 style="` + styleSection + `">{{template "badge" dict "Title" "Split features"}}</h2>
{{range .Items}}{{template "featureTitleRow" .}}
{{with .Split}}<p style="` + styleMeta + `">Split into</p>
<ul style="` + styleList + `">{{range .To}}<li style="` + styleListItem + `"><a href="{{featureURL .ID}}" style="` + styleLink + `">{{.Name}}</a></li>{{end}}</ul>
{{end}}{{end}}</div>
{{end}}`

const componentTruncationBanner = `{{define "truncationBanner"}}<div style="` + styleBanner + `">
<p style="` + styleBannerText + `">Some changes were omitted from this digest.</p>
{{template "button" dict "URL" .ViewAllURL "Label" "View All Changes"}}
</div>
{{end}}`

const componentFooter = `{{define "footer"}}<div style="` + styleFooter + `">
<p style="` + styleFooterText + `">You are receiving this email because you subscribed to web platform updates{{with .SearchQuery}} for &quot;{{.}}&quot;{{end}}.</p>
<p style="` + styleFooterText + `"><a href="{{.UnsubscribeURL}}" style="` + styleDocLink + `">Unsubscribe</a> &middot; <a href="{{.ManageURL}}" style="` + styleDocLink + `">Manage subscriptions</a></p>
</div>
{{end}}`

const layoutDigest = `{{define "digest"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Subject}}</title>
</head>
<body style="` + styleBody + `">
<div style="` + styleContainer + `">
<h1 style="` + styleHeader + `">Web Platform Digest</h1>
{{with .SummaryText}}<p style="` + styleSummary + `">{{.}}</p>
{{end}}{{with .GeneratedAt}}<p style="` + styleMeta + `">Generated on {{.}}</p>
{{end}}{{if .Buckets.BaselineNewlyChanges}}{{template "baselineSection" dict "Title" "Newly available" "Items" .Buckets.BaselineNewlyChanges}}{{end}}
{{if .Buckets.BaselineWidelyChanges}}{{template "baselineSection" dict "Title" "Widely available" "Items" .Buckets.BaselineWidelyChanges}}{{end}}
{{if .Buckets.BaselineRegressionChanges}}{{template "baselineSection" dict "Title" "Limited availability" "Items" .Buckets.BaselineRegressionChanges}}{{end}}
{{if .Buckets.AllBrowserChanges}}{{template "browserSection" dict "Items" .Buckets.AllBrowserChanges}}{{end}}
{{if .Buckets.AddedFeatures}}{{template "featureListSection" dict "Title" "Added features" "Items" .Buckets.AddedFeatures}}{{end}}
{{if .Buckets.RemovedFeatures}}{{template "featureListSection" dict "Title" "Removed features" "Items" .Buckets.RemovedFeatures}}{{end}}
{{if .Buckets.DeletedFeatures}}{{template "featureListSection" dict "Title" "Deleted features" "Items" .Buckets.DeletedFeatures}}{{end}}
{{if .Buckets.MovedFeatures}}{{template "movedSection" dict "Items" .Buckets.MovedFeatures}}{{end}}
{{if .Buckets.SplitFeatures}}{{template "splitSection" dict "Items" .Buckets.SplitFeatures}}{{end}}
{{if .Truncated}}{{template "truncationBanner" .}}{{end}}
{{template "footer" .}}
</div>
</body>
</html>{{end}}`

// digestTemplateSource composes style snippets, components and layout into a
// single parseable source. Concatenation happens once, before parsing; the
// resulting template set is immutable and safe for concurrent execution.
func digestTemplateSource() string {
	return componentBadge +
		componentButton +
		componentFeatureTitleRow +
		componentBrowserItem +
		componentBaselineSection +
		componentBrowserSection +
		componentFeatureListSection +
		componentMovedSection +
		componentSplitSection +
		componentTruncationBanner +
		componentFooter +
		layoutDigest
}
