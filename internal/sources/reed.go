package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/textproc"
)

const (
	reedSearchAPI   = "https://www.reed.co.uk/api/1.0/search"
	reedPageSize    = 100
	reedMaxResults  = 200
	defaultCurrency = "GBP"
)

// Reed is the UK's largest job board. Its free API authenticates with the
// API key as basic-auth username; register the connector only when a key is
// configured.
type Reed struct {
	client   *Client
	keywords string
	location string
}

func NewReed(client *Client, apiKey, keywords, location string) *Reed {
	return &Reed{
		client:   client.WithBasicAuth(apiKey, ""),
		keywords: keywords,
		location: location,
	}
}

func (r *Reed) Name() string { return "reed" }

func (r *Reed) Fetch(ctx context.Context) ([]*job.Listing, error) {
	var all []*job.Listing

	for skip := 0; skip < reedMaxResults; skip += reedPageSize {
		q := url.Values{}
		q.Set("resultsToTake", strconv.Itoa(reedPageSize))
		q.Set("resultsToSkip", strconv.Itoa(skip))
		if r.keywords != "" {
			q.Set("keywords", r.keywords)
		}
		if r.location != "" {
			q.Set("locationName", r.location)
		}

		var resp struct {
			Results []struct {
				JobID          int64    `json:"jobId"`
				EmployerName   string   `json:"employerName"`
				JobTitle       string   `json:"jobTitle"`
				LocationName   string   `json:"locationName"`
				MinimumSalary  *float64 `json:"minimumSalary"`
				MaximumSalary  *float64 `json:"maximumSalary"`
				Currency       string   `json:"currency"`
				Date           string   `json:"date"`
				JobDescription string   `json:"jobDescription"`
				JobURL         string   `json:"jobUrl"`
			} `json:"results"`
		}
		if err := r.client.GetJSON(ctx, reedSearchAPI, q, &resp); err != nil {
			return nil, err
		}
		if len(resp.Results) == 0 {
			break
		}

		for _, item := range resp.Results {
			currency := item.Currency
			if currency == "" {
				currency = defaultCurrency
			}

			jobURL := item.JobURL
			if jobURL == "" && item.JobID != 0 {
				jobURL = fmt.Sprintf("https://www.reed.co.uk/jobs/%d", item.JobID)
			}

			all = append(all, &job.Listing{
				ID:             fmt.Sprintf("reed-%d", item.JobID),
				Title:          item.JobTitle,
				Company:        item.EmployerName,
				Description:    textproc.CleanHTML(item.JobDescription),
				URL:            jobURL,
				Source:         "reed",
				Location:       item.LocationName,
				SalaryMin:      item.MinimumSalary,
				SalaryMax:      item.MaximumSalary,
				SalaryCurrency: currency,
				PublishedAt:    parseTimestamp(item.Date),
				FetchedAt:      time.Now().UTC(),
			})
		}

		if len(resp.Results) < reedPageSize {
			break
		}
	}

	return all, nil
}
