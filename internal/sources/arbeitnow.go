package sources

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/textproc"
)

const (
	arbeitnowAPIURL   = "https://www.arbeitnow.com/api/job-board-api"
	arbeitnowMaxPages = 3
)

// Arbeitnow serves European and remote listings. Free, no auth, paginated.
type Arbeitnow struct {
	client *Client
}

func NewArbeitnow(client *Client) *Arbeitnow {
	return &Arbeitnow{client: client}
}

func (a *Arbeitnow) Name() string { return "arbeitnow" }

func (a *Arbeitnow) Fetch(ctx context.Context) ([]*job.Listing, error) {
	var all []*job.Listing

	for page := 1; page <= arbeitnowMaxPages; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))

		var resp struct {
			Data []struct {
				Slug        string   `json:"slug"`
				CompanyName string   `json:"company_name"`
				Title       string   `json:"title"`
				Description string   `json:"description"`
				Remote      bool     `json:"remote"`
				URL         string   `json:"url"`
				Tags        []string `json:"tags"`
				Location    string   `json:"location"`
				CreatedAt   int64    `json:"created_at"`
			} `json:"data"`
			Links struct {
				Next string `json:"next"`
			} `json:"links"`
		}
		if err := a.client.GetJSON(ctx, arbeitnowAPIURL, q, &resp); err != nil {
			return nil, err
		}
		if len(resp.Data) == 0 {
			break
		}

		for _, item := range resp.Data {
			var published *time.Time
			if item.CreatedAt > 0 {
				t := time.Unix(item.CreatedAt, 0).UTC()
				published = &t
			}

			tags := make([]string, 0, len(item.Tags))
			for _, t := range item.Tags {
				if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
					tags = append(tags, t)
				}
			}

			remoteType := ""
			if item.Remote {
				remoteType = "remote"
			}

			rawID := item.Slug
			if rawID == "" {
				rawID = item.URL
			}

			all = append(all, &job.Listing{
				ID:          listingID("arbeitnow", rawID),
				Title:       item.Title,
				Company:     item.CompanyName,
				Description: textproc.CleanHTML(item.Description),
				URL:         item.URL,
				Source:      "arbeitnow",
				Location:    item.Location,
				RemoteType:  remoteType,
				Tags:        tags,
				PublishedAt: published,
				FetchedAt:   time.Now().UTC(),
			})
		}

		if resp.Links.Next == "" {
			break
		}
	}

	return all, nil
}
