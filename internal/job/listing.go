// Package job defines the normalized listing model shared by all sources.
package job

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Grouped-digit salary rendering ("USD 70,000 - 90,000").
var salaryPrinter = message.NewPrinter(language.English)

// Listing is one job posting from any source, normalized to a common shape.
// It is immutable once produced by a connector: the pipeline only includes,
// excludes or replaces whole listings.
type Listing struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Description    string     `json:"description"`
	URL            string     `json:"url"`
	Source         string     `json:"source"`
	Location       string     `json:"location,omitempty"`
	RemoteType     string     `json:"remote_type,omitempty"` // "remote", "hybrid", "onsite" or ""
	SalaryMin      *float64   `json:"salary_min,omitempty"`
	SalaryMax      *float64   `json:"salary_max,omitempty"`
	SalaryCurrency string     `json:"salary_currency,omitempty"`
	Seniority      string     `json:"seniority,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	FetchedAt      time.Time  `json:"fetched_at"`
}

// DedupKey is the identity used for merging listings. It is intentionally not
// a unique id: two different roles at the same company with the same title
// collide and merge.
func (l *Listing) DedupKey() string {
	company := strings.ToLower(strings.TrimSpace(l.Company))
	title := strings.ToLower(strings.TrimSpace(l.Title))
	return company + "::" + title
}

// DisplaySalary renders the salary range for humans, empty when unknown.
func (l *Listing) DisplaySalary() string {
	cur := l.SalaryCurrency
	if cur == "" {
		cur = "USD"
	}
	switch {
	case l.SalaryMin != nil && l.SalaryMax != nil:
		return salaryPrinter.Sprintf("%s %.0f - %.0f", cur, *l.SalaryMin, *l.SalaryMax)
	case l.SalaryMin != nil:
		return salaryPrinter.Sprintf("%s %.0f+", cur, *l.SalaryMin)
	}
	return ""
}

// Jobs is a list of listings with a few reporting helpers.
type Jobs struct {
	Items []*Listing
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

// SourceNames returns the distinct source prefixes ("greenhouse:acme" counts
// as "greenhouse") in first-seen order.
func (j *Jobs) SourceNames() []string {
	seen := map[string]bool{}
	names := make([]string, 0)
	for _, l := range j.Items {
		name, _, _ := strings.Cut(l.Source, ":")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
