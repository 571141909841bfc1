package matching

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/prefs"
	"github.com/JaimeV365/job-seeker-cheater/internal/profile"
	"github.com/JaimeV365/job-seeker-cheater/internal/textproc"
)

// Sub-score factor names.
const (
	FactorTextSimilarity = "text_similarity"
	FactorSkillOverlap   = "skill_overlap"
	FactorPreferenceFit  = "preference_fit"
	FactorRecency        = "recency"
)

// Weights are fixed and sum to 1.0.
var Weights = map[string]float64{
	FactorTextSimilarity: 0.35,
	FactorSkillOverlap:   0.30,
	FactorPreferenceFit:  0.20,
	FactorRecency:        0.15,
}

// ScoreResult pairs a listing with its total score and the per-factor
// sub-scores the total was derived from. All values are in [0,1].
type ScoreResult struct {
	Listing   *job.Listing
	Total     float64
	SubScores map[string]float64
}

// Scorer ranks listings against a profile and preferences.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// ScoreJobs scores every listing and returns the results sorted descending by
// total score; equal scores keep their original order. An empty profile or an
// empty input degrades to all-zero totals with empty sub-scores instead of
// attempting text analysis.
func (s *Scorer) ScoreJobs(jobs []*job.Listing, prof *profile.Profile, p *prefs.Preferences) []ScoreResult {
	if len(jobs) == 0 || prof.IsEmpty() {
		out := make([]ScoreResult, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, ScoreResult{Listing: j, Total: 0.0, SubScores: map[string]float64{}})
		}
		return out
	}

	cvText := textproc.NormalizeForMatching(prof.RawText)
	jobTexts := make([]string, len(jobs))
	for i, j := range jobs {
		jobTexts[i] = textproc.NormalizeForMatching(j.Title + " " + j.Description)
	}

	sims := textSimilarities(cvText, jobTexts)
	skillSet := prof.SkillSet()

	results := make([]ScoreResult, 0, len(jobs))
	for i, j := range jobs {
		sub := map[string]float64{
			FactorTextSimilarity: sims[i],
			FactorSkillOverlap:   skillOverlapScore(j, skillSet),
			FactorPreferenceFit:  preferenceFitScore(j, p),
			FactorRecency:        s.recencyScore(j),
		}

		var total float64
		for factor, weight := range Weights {
			total += weight * sub[factor]
		}
		results = append(results, ScoreResult{Listing: j, Total: total, SubScores: sub})
	}

	sort.SliceStable(results, func(a, b int) bool { return results[a].Total > results[b].Total })
	return results
}

// skillOverlapScore is the fraction of profile skills found in the listing's
// tags or anywhere in its description, capped at 1.0.
func skillOverlapScore(j *job.Listing, profileSkills map[string]bool) float64 {
	if len(profileSkills) == 0 {
		return 0.0
	}

	jobTags := make(map[string]bool, len(j.Tags))
	for _, t := range j.Tags {
		jobTags[strings.ToLower(t)] = true
	}
	descLower := strings.ToLower(j.Description)

	matches := 0
	for skill := range profileSkills {
		if jobTags[skill] || strings.Contains(descLower, skill) {
			matches++
		}
	}

	return math.Min(float64(matches)/float64(len(profileSkills)), 1.0)
}

// preferenceFitScore averages over the preference dimensions the user set;
// unset dimensions do not enter the average.
func preferenceFitScore(j *job.Listing, p *prefs.Preferences) float64 {
	var score float64
	checks := 0

	if len(p.TargetTitles) > 0 {
		checks++
		titleLower := strings.ToLower(j.Title)
		for _, t := range p.TargetTitles {
			if strings.Contains(titleLower, strings.ToLower(t)) {
				score += 1.0
				break
			}
		}
	}

	if wanted := p.RemoteType(); wanted != "" {
		checks++
		if j.RemoteType == wanted {
			score += 1.0
		} else if j.RemoteType == "remote" && wanted == "hybrid" {
			// Remote listings are an acceptable partial fit for hybrid seekers.
			score += 0.5
		}
	}

	if len(p.Locations) > 0 {
		checks++
		jobLoc := strings.ToLower(j.Location)
		matched := false
		for _, loc := range p.Locations {
			if strings.Contains(jobLoc, strings.ToLower(loc)) {
				matched = true
				break
			}
		}
		if matched {
			score += 1.0
		} else if openLocations[jobLoc] {
			score += 0.7
		}
	}

	if len(p.Industries) > 0 {
		checks++
		jobText := strings.ToLower(j.Title + " " + j.Description + " " + strings.Join(j.Tags, " "))
		for _, ind := range p.Industries {
			if strings.Contains(jobText, strings.ToLower(ind)) {
				score += 1.0
				break
			}
		}
	}

	if checks == 0 {
		checks = 1
	}
	return score / float64(checks)
}

// recencyScore is a step function of listing age. A missing publication date
// is treated as moderately stale rather than penalized to zero.
func (s *Scorer) recencyScore(j *job.Listing) float64 {
	if j.PublishedAt == nil {
		return 0.3
	}

	age := s.now().Sub(*j.PublishedAt)
	switch {
	case age < 24*time.Hour:
		return 1.0
	case age < 3*24*time.Hour:
		return 0.9
	case age < 7*24*time.Hour:
		return 0.7
	case age < 14*24*time.Hour:
		return 0.5
	case age < 30*24*time.Hour:
		return 0.3
	}
	return 0.1
}
