package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
)

type stubConnector struct {
	name     string
	listings []*job.Listing
	err      error
}

func (s *stubConnector) Name() string { return s.name }

func (s *stubConnector) Fetch(_ context.Context) ([]*job.Listing, error) {
	return s.listings, s.err
}

func TestGetJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") != "golang" {
			t.Errorf("expected the search param, got %q", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != defaultUserAgent {
			t.Errorf("unexpected user agent: %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{"count": 3}`))
	}))
	defer server.Close()

	client := NewClient(nil, nil)

	q := url.Values{}
	q.Set("search", "golang")

	var out struct {
		Count int `json:"count"`
	}
	if err := client.GetJSON(context.Background(), server.URL, q, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 3 {
		t.Fatalf("expected 3, got %d", out.Count)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil, nil)

	err := client.GetJSON(context.Background(), server.URL, nil, nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected a *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", statusErr.Code)
	}
}

func TestGetJSONBlockedByGuard(t *testing.T) {
	t.Parallel()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(nil, NewGuard(sampleCV))

	q := url.Values{}
	q.Set("q", "Jane Doe, 42 Elm Street, Springfield. Senior backend dev")

	err := client.GetJSON(context.Background(), server.URL, q, nil)
	var pv *PrivacyViolationError
	if !errors.As(err, &pv) {
		t.Fatalf("expected a *PrivacyViolationError, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected the request to never leave the process, got %d requests", requests)
	}
}

func TestGetJSONBasicAuth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		if !ok || user != "apikey" {
			t.Errorf("expected basic auth with the api key, got %q", user)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(nil, nil).WithBasicAuth("apikey", "")

	if err := client.GetJSON(context.Background(), server.URL, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	t.Parallel()

	connectors := []Connector{
		&stubConnector{name: "good", listings: []*job.Listing{{ID: "good-1"}, {ID: "good-2"}}},
		&stubConnector{name: "broken", err: errors.New("connection refused")},
		&stubConnector{name: "also-good", listings: []*job.Listing{{ID: "also-good-1"}}},
	}

	listings, errs := FetchAll(context.Background(), connectors, nil)

	if len(listings) != 3 {
		t.Fatalf("expected 3 listings from the working sources, got %d", len(listings))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 source error, got %d", len(errs))
	}
	if errs[0].Source != "broken" {
		t.Fatalf("expected the broken source, got %q", errs[0].Source)
	}
	if !strings.Contains(errs[0].Error(), "broken") {
		t.Fatalf("expected the source name in the error, got %q", errs[0].Error())
	}
}

func TestFetchAllAllFail(t *testing.T) {
	t.Parallel()

	connectors := []Connector{
		&stubConnector{name: "a", err: errors.New("boom")},
		&stubConnector{name: "b", err: errors.New("boom")},
	}

	listings, errs := FetchAll(context.Background(), connectors, nil)
	if len(listings) != 0 {
		t.Fatalf("expected no listings, got %d", len(listings))
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
}

func TestRegistrySelect(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(
		&stubConnector{name: "remotive"},
		&stubConnector{name: "arbeitnow"},
		&stubConnector{name: "reed"},
	)

	all := registry.Select(nil)
	if len(all) != 3 {
		t.Fatalf("expected every connector with no selection, got %d", len(all))
	}

	some := registry.Select([]string{"Reed", "remotive"})
	if len(some) != 2 {
		t.Fatalf("expected 2 connectors, got %d", len(some))
	}
	if some[0].Name() != "remotive" || some[1].Name() != "reed" {
		t.Fatalf("expected registration order, got %q then %q", some[0].Name(), some[1].Name())
	}
}

func TestListingID(t *testing.T) {
	t.Parallel()

	if got := listingID("remotive", "12345"); got != "remotive-12345" {
		t.Fatalf("expected remotive-12345, got %q", got)
	}

	generated := listingID("remotive", " ")
	if !strings.HasPrefix(generated, "remotive-") || len(generated) <= len("remotive-") {
		t.Fatalf("expected a generated id, got %q", generated)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect *time.Time
	}{
		{
			name:   "rfc3339",
			input:  "2026-05-01T10:30:00Z",
			expect: timePtr(time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:   "no zone",
			input:  "2026-05-01T10:30:00",
			expect: timePtr(time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:   "date only",
			input:  "2026-05-01",
			expect: timePtr(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:   "empty",
			input:  "",
			expect: nil,
		},
		{
			name:   "garbage",
			input:  "yesterday",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseTimestamp(tt.input)
			if tt.expect == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil || !got.Equal(*tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestParseSalaryText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectMin *float64
		expectMax *float64
	}{
		{
			name:      "range with currency and commas",
			input:     "$70,000 - $90,000",
			expectMin: floatPtr(70000),
			expectMax: floatPtr(90000),
		},
		{
			name:      "single figure",
			input:     "from 85000 EUR",
			expectMin: floatPtr(85000),
			expectMax: nil,
		},
		{
			name:      "small numbers ignored",
			input:     "40 hours per week",
			expectMin: nil,
			expectMax: nil,
		},
		{
			name:      "empty",
			input:     "",
			expectMin: nil,
			expectMax: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			min, max := parseSalaryText(tt.input)
			if !floatEqual(min, tt.expectMin) || !floatEqual(max, tt.expectMax) {
				t.Fatalf("expected (%v, %v), got (%v, %v)",
					fmtFloat(tt.expectMin), fmtFloat(tt.expectMax), fmtFloat(min), fmtFloat(max))
			}
		})
	}
}

func TestCompanyFromSlug(t *testing.T) {
	t.Parallel()

	if got := companyFromSlug("acme-corp"); got != "Acme Corp" {
		t.Fatalf("expected Acme Corp, got %q", got)
	}
	if got := companyFromSlug("initech"); got != "Initech" {
		t.Fatalf("expected Initech, got %q", got)
	}
}

func timePtr(v time.Time) *time.Time { return &v }

func floatPtr(v float64) *float64 { return &v }

func floatEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
