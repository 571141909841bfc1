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

const greenhouseBoardAPI = "https://boards-api.greenhouse.io/v1/boards/%s/jobs"

// Greenhouse fetches the public board API of the configured company slugs.
// Unknown slugs 404 and are skipped silently.
type Greenhouse struct {
	client *Client
	slugs  []string
}

func NewGreenhouse(client *Client, slugs []string) *Greenhouse {
	return &Greenhouse{client: client, slugs: slugs}
}

func (g *Greenhouse) Name() string { return "greenhouse" }

func (g *Greenhouse) Fetch(ctx context.Context) ([]*job.Listing, error) {
	var all []*job.Listing

	for _, slug := range g.slugs {
		q := url.Values{}
		q.Set("content", "true")

		var resp struct {
			Jobs []struct {
				ID          int64  `json:"id"`
				Title       string `json:"title"`
				UpdatedAt   string `json:"updated_at"`
				AbsoluteURL string `json:"absolute_url"`
				Content     string `json:"content"`
				Offices     []struct {
					Name string `json:"name"`
				} `json:"offices"`
				Departments []struct {
					Name string `json:"name"`
				} `json:"departments"`
			} `json:"jobs"`
		}
		err := g.client.GetJSON(ctx, fmt.Sprintf(greenhouseBoardAPI, slug), q, &resp)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
				continue
			}
			return nil, fmt.Errorf("board %q: %w", slug, err)
		}

		for _, item := range resp.Jobs {
			var locationParts []string
			for _, office := range item.Offices {
				if office.Name != "" {
					locationParts = append(locationParts, office.Name)
				}
			}

			var tags []string
			for _, dept := range item.Departments {
				if dept.Name != "" {
					tags = append(tags, strings.ToLower(dept.Name))
				}
			}

			description := ""
			if item.Content != "" {
				description = textproc.CleanHTML(item.Content)
			}

			all = append(all, &job.Listing{
				ID:          fmt.Sprintf("greenhouse-%s-%d", slug, item.ID),
				Title:       item.Title,
				Company:     companyFromSlug(slug),
				Description: description,
				URL:         item.AbsoluteURL,
				Source:      "greenhouse:" + slug,
				Location:    strings.Join(locationParts, ", "),
				Tags:        tags,
				PublishedAt: parseTimestamp(item.UpdatedAt),
				FetchedAt:   time.Now().UTC(),
			})
		}
	}

	return all, nil
}

// companyFromSlug turns "acme-corp" into "Acme Corp".
func companyFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
