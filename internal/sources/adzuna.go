package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/textproc"
)

const (
	adzunaSearchAPI = "https://api.adzuna.com/v1/api/jobs/%s/search/%d"
	adzunaPageSize  = 50
	adzunaMaxPages  = 3
)

// Adzuna country codes by the preference country. Anything unknown falls
// back to the UK board.
var adzunaCountryCodes = map[string]string{
	"UK": "gb", "US": "us", "AU": "au", "BR": "br", "CA": "ca",
	"DE": "de", "FR": "fr", "IN": "in", "NL": "nl", "NZ": "nz",
	"PL": "pl", "SG": "sg", "ZA": "za", "AT": "at", "IT": "it",
	"ES": "es",
}

// Adzuna covers the UK, US, EU, AU and more, with salary data on most
// listings. Free API (register at developer.adzuna.com); register the
// connector only when credentials are configured.
type Adzuna struct {
	client   *Client
	appID    string
	appKey   string
	keywords string
	location string
	country  string
}

func NewAdzuna(client *Client, appID, appKey, keywords, location, country string) *Adzuna {
	return &Adzuna{
		client:   client,
		appID:    appID,
		appKey:   appKey,
		keywords: keywords,
		location: location,
		country:  country,
	}
}

func (a *Adzuna) Name() string { return "adzuna" }

func (a *Adzuna) Fetch(ctx context.Context) ([]*job.Listing, error) {
	country := adzunaCountry(a.country)

	currency := "USD"
	if country == "gb" {
		currency = "GBP"
	}

	var all []*job.Listing

	for page := 1; page <= adzunaMaxPages; page++ {
		q := url.Values{}
		q.Set("app_id", a.appID)
		q.Set("app_key", a.appKey)
		q.Set("results_per_page", fmt.Sprintf("%d", adzunaPageSize))
		q.Set("content-type", "application/json")
		if a.keywords != "" {
			q.Set("what", a.keywords)
		}
		if a.location != "" {
			q.Set("where", a.location)
		}

		var resp struct {
			Results []struct {
				ID          string   `json:"id"`
				Title       string   `json:"title"`
				Description string   `json:"description"`
				Created     string   `json:"created"`
				RedirectURL string   `json:"redirect_url"`
				SalaryMin   *float64 `json:"salary_min"`
				SalaryMax   *float64 `json:"salary_max"`
				Location    struct {
					DisplayName string `json:"display_name"`
				} `json:"location"`
				Company struct {
					DisplayName string `json:"display_name"`
				} `json:"company"`
				Category struct {
					Tag string `json:"tag"`
				} `json:"category"`
				ContractType string `json:"contract_type"`
				ContractTime string `json:"contract_time"`
			} `json:"results"`
		}
		if err := a.client.GetJSON(ctx, fmt.Sprintf(adzunaSearchAPI, country, page), q, &resp); err != nil {
			return nil, err
		}
		if len(resp.Results) == 0 {
			break
		}

		for _, item := range resp.Results {
			var tags []string
			if item.Category.Tag != "" {
				tags = append(tags, strings.ReplaceAll(item.Category.Tag, "-", " "))
			}
			if item.ContractType != "" {
				tags = append(tags, item.ContractType)
			}
			if item.ContractTime != "" {
				tags = append(tags, strings.ReplaceAll(item.ContractTime, "_", " "))
			}

			all = append(all, &job.Listing{
				ID:             listingID("adzuna", item.ID),
				Title:          item.Title,
				Company:        item.Company.DisplayName,
				Description:    textproc.CleanHTML(item.Description),
				URL:            item.RedirectURL,
				Source:         "adzuna:" + country,
				Location:       item.Location.DisplayName,
				SalaryMin:      item.SalaryMin,
				SalaryMax:      item.SalaryMax,
				SalaryCurrency: currency,
				Tags:           tags,
				PublishedAt:    parseTimestamp(item.Created),
				FetchedAt:      time.Now().UTC(),
			})
		}

		if len(resp.Results) < adzunaPageSize {
			break
		}
	}

	return all, nil
}

func adzunaCountry(country string) string {
	if code, ok := adzunaCountryCodes[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return code
	}
	return "gb"
}
