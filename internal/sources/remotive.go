package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/textproc"
)

const remotiveAPIURL = "https://remotive.com/api/remote-jobs"

// Remotive serves remote-first listings worldwide. Free, no auth.
type Remotive struct {
	client *Client
	search string
}

func NewRemotive(client *Client, search string) *Remotive {
	return &Remotive{client: client, search: search}
}

func (r *Remotive) Name() string { return "remotive" }

func (r *Remotive) Fetch(ctx context.Context) ([]*job.Listing, error) {
	q := url.Values{}
	if r.search != "" {
		q.Set("search", r.search)
	}

	var resp struct {
		Jobs []struct {
			ID                        int64    `json:"id"`
			Title                     string   `json:"title"`
			CompanyName               string   `json:"company_name"`
			Description               string   `json:"description"`
			URL                       string   `json:"url"`
			CandidateRequiredLocation string   `json:"candidate_required_location"`
			Tags                      []string `json:"tags"`
			Salary                    string   `json:"salary"`
			PublicationDate           string   `json:"publication_date"`
		} `json:"jobs"`
	}
	if err := r.client.GetJSON(ctx, remotiveAPIURL, q, &resp); err != nil {
		return nil, err
	}

	listings := make([]*job.Listing, 0, len(resp.Jobs))
	for _, item := range resp.Jobs {
		tags := make([]string, 0, len(item.Tags))
		for _, t := range item.Tags {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				tags = append(tags, t)
			}
		}

		location := item.CandidateRequiredLocation
		if location == "" {
			location = "Worldwide"
		}

		salaryMin, salaryMax := parseSalaryText(item.Salary)

		listings = append(listings, &job.Listing{
			ID:          fmt.Sprintf("remotive-%d", item.ID),
			Title:       item.Title,
			Company:     item.CompanyName,
			Description: textproc.CleanHTML(item.Description),
			URL:         item.URL,
			Source:      "remotive",
			Location:    location,
			RemoteType:  "remote",
			SalaryMin:   salaryMin,
			SalaryMax:   salaryMax,
			Tags:        tags,
			PublishedAt: parseTimestamp(item.PublicationDate),
			FetchedAt:   time.Now().UTC(),
		})
	}
	return listings, nil
}

var salaryNumberPattern = regexp.MustCompile(`\d+`)

// parseSalaryText pulls a range out of free-form salary strings like
// "$70,000 - $90,000". Small numbers are ignored; they are usually hours or
// percentages, not salaries.
func parseSalaryText(text string) (*float64, *float64) {
	if text == "" {
		return nil, nil
	}

	var nums []float64
	for _, m := range salaryNumberPattern.FindAllString(strings.ReplaceAll(text, ",", ""), -1) {
		val, err := strconv.ParseFloat(m, 64)
		if err != nil || val <= 100 {
			continue
		}
		nums = append(nums, val)
	}

	switch {
	case len(nums) >= 2:
		lo, hi := nums[0], nums[0]
		for _, n := range nums[1:] {
			if n < lo {
				lo = n
			}
			if n > hi {
				hi = n
			}
		}
		return &lo, &hi
	case len(nums) == 1:
		return &nums[0], nil
	}
	return nil, nil
}
