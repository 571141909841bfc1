package matching

import (
	"testing"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/prefs"
	"github.com/JaimeV365/job-seeker-cheater/internal/profile"
)

func testProfile() *profile.Profile {
	return &profile.Profile{
		RawText: "Senior backend developer with Go, Python and SQL. Built APIs and data pipelines.",
		Skills:  []string{"go", "python", "sql"},
	}
}

func TestScoreJobsEmptyInput(t *testing.T) {
	t.Parallel()

	s := NewScorer()
	if out := s.ScoreJobs(nil, testProfile(), &prefs.Preferences{}); len(out) != 0 {
		t.Fatalf("expected no results, got %d", len(out))
	}
}

func TestScoreJobsEmptyProfile(t *testing.T) {
	t.Parallel()

	jobs := []*job.Listing{
		{ID: "a", Title: "Go Developer", Description: "Go and Python"},
		{ID: "b", Title: "Data Engineer", Description: "SQL pipelines"},
	}

	s := NewScorer()
	out := s.ScoreJobs(jobs, &profile.Profile{}, &prefs.Preferences{})

	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	for _, r := range out {
		if r.Total != 0.0 {
			t.Fatalf("expected zero totals without a profile, got %v", r.Total)
		}
		if len(r.SubScores) != 0 {
			t.Fatalf("expected empty sub-scores, got %v", r.SubScores)
		}
	}
}

func TestScoreJobsSortedDescending(t *testing.T) {
	t.Parallel()

	jobs := []*job.Listing{
		{ID: "poor", Title: "Forklift Operator", Description: "Operate warehouse machinery"},
		{ID: "good", Title: "Backend Developer", Description: "Go, Python and SQL APIs", Tags: []string{"go", "python", "sql"}},
	}

	s := NewScorer()
	out := s.ScoreJobs(jobs, testProfile(), &prefs.Preferences{})

	if out[0].Listing.ID != "good" {
		t.Fatalf("expected the relevant listing first, got %q", out[0].Listing.ID)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Total > out[i-1].Total {
			t.Fatalf("results not sorted at %d: %v then %v", i, out[i-1].Total, out[i].Total)
		}
	}
	for _, r := range out {
		if r.Total < 0 || r.Total > 1 {
			t.Fatalf("total out of range: %v", r.Total)
		}
	}
}

func TestScoreJobsSubScoresPresent(t *testing.T) {
	t.Parallel()

	jobs := []*job.Listing{{ID: "a", Title: "Go Developer", Description: "Go services"}}

	s := NewScorer()
	out := s.ScoreJobs(jobs, testProfile(), &prefs.Preferences{})

	for _, factor := range []string{FactorTextSimilarity, FactorSkillOverlap, FactorPreferenceFit, FactorRecency} {
		if _, ok := out[0].SubScores[factor]; !ok {
			t.Fatalf("expected sub-score %q, got %v", factor, out[0].SubScores)
		}
	}
}

func TestSkillOverlapScore(t *testing.T) {
	t.Parallel()

	skills := map[string]bool{"python": true, "sql": true}

	tests := []struct {
		name    string
		listing *job.Listing
		expect  float64
	}{
		{
			name:    "all skills in tags",
			listing: &job.Listing{Tags: []string{"Python", "SQL", "airflow"}},
			expect:  1.0,
		},
		{
			name:    "one skill via description",
			listing: &job.Listing{Description: "We use Python heavily"},
			expect:  0.5,
		},
		{
			name:    "no overlap",
			listing: &job.Listing{Description: "Rust and C firmware"},
			expect:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := skillOverlapScore(tt.listing, skills); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestPreferenceFitScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		listing *job.Listing
		prefs   *prefs.Preferences
		expect  float64
	}{
		{
			name:    "no preferences set",
			listing: &job.Listing{Title: "Go Developer"},
			prefs:   &prefs.Preferences{},
			expect:  0.0,
		},
		{
			name:    "title and remote both hit",
			listing: &job.Listing{Title: "Senior Backend Engineer", RemoteType: "remote"},
			prefs:   &prefs.Preferences{TargetTitles: []string{"backend engineer"}, RemoteTypes: []string{"remote"}},
			expect:  1.0,
		},
		{
			name:    "remote listing is a partial fit for hybrid",
			listing: &job.Listing{RemoteType: "remote"},
			prefs:   &prefs.Preferences{RemoteTypes: []string{"hybrid"}},
			expect:  0.5,
		},
		{
			name:    "open location gets partial credit",
			listing: &job.Listing{Location: "Worldwide"},
			prefs:   &prefs.Preferences{Locations: []string{"London"}},
			expect:  0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := preferenceFitScore(tt.listing, tt.prefs); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestRecencyScore(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewScorer()
	s.now = func() time.Time { return now }

	published := func(age time.Duration) *time.Time {
		ts := now.Add(-age)
		return &ts
	}

	tests := []struct {
		name    string
		listing *job.Listing
		expect  float64
	}{
		{name: "hours old", listing: &job.Listing{PublishedAt: published(6 * time.Hour)}, expect: 1.0},
		{name: "two days", listing: &job.Listing{PublishedAt: published(2 * 24 * time.Hour)}, expect: 0.9},
		{name: "five days", listing: &job.Listing{PublishedAt: published(5 * 24 * time.Hour)}, expect: 0.7},
		{name: "ten days", listing: &job.Listing{PublishedAt: published(10 * 24 * time.Hour)}, expect: 0.5},
		{name: "three weeks", listing: &job.Listing{PublishedAt: published(21 * 24 * time.Hour)}, expect: 0.3},
		{name: "two months", listing: &job.Listing{PublishedAt: published(60 * 24 * time.Hour)}, expect: 0.1},
		{name: "unknown date", listing: &job.Listing{}, expect: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.recencyScore(tt.listing); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestFresherListingScoresHigher(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	dayOld := now.Add(-20 * time.Hour)
	monthsOld := now.Add(-60 * 24 * time.Hour)

	jobs := []*job.Listing{
		{ID: "stale", Title: "Backend Developer", Description: "Go and SQL", PublishedAt: &monthsOld},
		{ID: "fresh", Title: "Backend Developer", Description: "Go and SQL", PublishedAt: &dayOld},
	}

	s := NewScorer()
	s.now = func() time.Time { return now }

	out := s.ScoreJobs(jobs, testProfile(), &prefs.Preferences{})
	if out[0].Listing.ID != "fresh" {
		t.Fatalf("expected the fresher listing first, got %q", out[0].Listing.ID)
	}
	if out[0].Total <= out[1].Total {
		t.Fatalf("expected a strictly higher score, got %v and %v", out[0].Total, out[1].Total)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	t.Parallel()

	var sum float64
	for _, w := range Weights {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("expected weights to sum to 1.0, got %v", sum)
	}
}
