package digest

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer turns a digest job into a (subject, HTML body) pair. The template
// set is parsed once at construction and reused read-only, so a single
// Renderer can serve concurrent jobs.
type Renderer struct {
	baseURL    string
	parser     *Parser
	filterer   *Filterer
	bucketizer *Bucketizer
	tmpl       *template.Template
}

type templateData struct {
	Subject        string
	SummaryText    string
	GeneratedAt    string
	SearchQuery    string
	Buckets        *Buckets
	Truncated      bool
	ViewAllURL     string
	UnsubscribeURL string
	ManageURL      string
}

func NewRenderer(baseURL string) (*Renderer, error) {
	r := &Renderer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		parser:     NewParser(),
		filterer:   NewFilterer(),
		bucketizer: NewBucketizer(),
	}

	funcs := template.FuncMap{
		"formatDate":         formatDate,
		"baselineLabel":      baselineLabel,
		"browserLabel":       browserLabel,
		"browserStatusLabel": browserStatusLabel,
		"badgeColor":         badgeColor,
		"dict":               dict,
		"featureURL":         r.featureURL,
		"browserLogo":        r.browserLogoURL,
	}

	tmpl, err := template.New("digest").Funcs(funcs).Parse(digestTemplateSource())
	if err != nil {
		return nil, fmt.Errorf("failed to parse digest templates: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// Run renders one digest. A malformed summary payload is the only expected
// error path; template execution over decoded data is total.
func (r *Renderer) Run(job Job) (string, string, error) {
	summary, err := r.parser.Run(job.SummaryPayload)
	if err != nil {
		return "", "", fmt.Errorf("failed to render digest: %w", err)
	}

	highlights := r.filterer.Run(summary.Highlights, job.Triggers)
	buckets := r.bucketizer.Run(highlights)

	data := templateData{
		Subject:        r.buildSubject(job),
		SummaryText:    summary.Summary,
		SearchQuery:    job.SearchQuery,
		Buckets:        buckets,
		Truncated:      summary.Truncated,
		ViewAllURL:     r.baseURL + "/saved-searches",
		UnsubscribeURL: job.UnsubscribeURL,
		ManageURL:      job.ManageURL,
	}
	if job.GeneratedAt != nil {
		data.GeneratedAt = job.GeneratedAt.UTC().Format(displayDateFormat)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "digest", data); err != nil {
		return "", "", fmt.Errorf("failed to execute digest template: %w", err)
	}

	return data.Subject, buf.String(), nil
}

func (r *Renderer) buildSubject(job Job) string {
	subject := "Web platform updates"
	if job.Frequency != "" {
		// cases.Caser is stateful, so a fresh one per call keeps Run
		// safe for concurrent use.
		subject = cases.Title(language.English).String(job.Frequency) + " web platform updates"
	}
	if job.SearchQuery != "" {
		subject += fmt.Sprintf(" for %q", job.SearchQuery)
	}
	return subject
}

func (r *Renderer) featureURL(featureID string) string {
	return fmt.Sprintf("%s/features/%s", r.baseURL, url.PathEscape(featureID))
}

func (r *Renderer) browserLogoURL(browser BrowserName) string {
	return fmt.Sprintf("%s/public/img/%s.png", r.baseURL, browser)
}
