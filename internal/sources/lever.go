package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/textproc"
)

const leverPostingsAPI = "https://api.lever.co/v0/postings/%s"

// Lever fetches the public postings API of the configured company slugs.
// Many tech companies run their career boards on it; no auth needed.
type Lever struct {
	client *Client
	slugs  []string
}

func NewLever(client *Client, slugs []string) *Lever {
	return &Lever{client: client, slugs: slugs}
}

func (l *Lever) Name() string { return "lever" }

func (l *Lever) Fetch(ctx context.Context) ([]*job.Listing, error) {
	var all []*job.Listing

	for _, slug := range l.slugs {
		q := url.Values{}
		q.Set("mode", "json")

		var postings []struct {
			ID         string `json:"id"`
			Text       string `json:"text"`
			CreatedAt  int64  `json:"createdAt"` // epoch millis
			HostedURL  string `json:"hostedUrl"`
			ApplyURL   string `json:"applyUrl"`
			Categories struct {
				Location   string `json:"location"`
				Commitment string `json:"commitment"`
				Team       string `json:"team"`
				Department string `json:"department"`
			} `json:"categories"`
			DescriptionPlain string `json:"descriptionPlain"`
			Description      string `json:"description"`
			Lists            []struct {
				Text    string `json:"text"`
				Content string `json:"content"`
			} `json:"lists"`
		}
		err := l.client.GetJSON(ctx, fmt.Sprintf(leverPostingsAPI, slug), q, &postings)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
				continue
			}
			return nil, fmt.Errorf("postings %q: %w", slug, err)
		}

		for _, item := range postings {
			var published *time.Time
			if item.CreatedAt > 0 {
				t := time.UnixMilli(item.CreatedAt).UTC()
				published = &t
			}

			var tags []string
			for _, t := range []string{item.Categories.Commitment, item.Categories.Team, item.Categories.Department} {
				if t != "" {
					tags = append(tags, strings.ToLower(t))
				}
			}

			description := item.DescriptionPlain
			if description == "" {
				description = textproc.CleanHTML(item.Description)
			}
			for _, section := range item.Lists {
				if section.Content != "" {
					description += "\n" + section.Text + "\n" + textproc.CleanHTML(section.Content)
				}
			}

			applyURL := item.HostedURL
			if applyURL == "" {
				applyURL = item.ApplyURL
			}

			all = append(all, &job.Listing{
				ID:          listingID("lever-"+slug, item.ID),
				Title:       item.Text,
				Company:     companyFromSlug(slug),
				Description: strings.TrimSpace(description),
				URL:         applyURL,
				Source:      "lever:" + slug,
				Location:    item.Categories.Location,
				Tags:        tags,
				PublishedAt: published,
				FetchedAt:   time.Now().UTC(),
			})
		}
	}

	return all, nil
}
