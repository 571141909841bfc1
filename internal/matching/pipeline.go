package matching

import (
	"go.uber.org/zap"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/prefs"
	"github.com/JaimeV365/job-seeker-cheater/internal/profile"
)

// Match is one fully processed listing: score, sub-scores and explanation.
type Match struct {
	Listing     *job.Listing
	Score       float64
	SubScores   map[string]float64
	Explanation Explanation
}

// Pipeline sequences dedup -> hard filters -> scoring -> explanation over an
// immutable snapshot of listings. It holds no mutable state between runs.
type Pipeline struct {
	logger *zap.Logger
	scorer *Scorer
}

func NewPipeline(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{logger: logger, scorer: NewScorer()}
}

// Run executes the whole pipeline. Without a usable profile there is nothing
// to rank against, so filtering and scoring are skipped and every deduplicated
// listing comes back with the synthetic upload-your-CV explanation.
func (p *Pipeline) Run(jobs []*job.Listing, prof *profile.Profile, preferences *prefs.Preferences) []Match {
	deduped := Deduplicate(jobs)
	p.logStep("deduplicate", len(jobs), len(deduped))

	if prof.IsEmpty() {
		matches := make([]Match, 0, len(deduped))
		for _, j := range deduped {
			matches = append(matches, Match{
				Listing:     j,
				Score:       0.0,
				SubScores:   map[string]float64{},
				Explanation: Explanation{Reasons: []string{UploadCVReason}},
			})
		}
		p.logger.Info("pipeline complete without profile", zap.Int("matches", len(matches)))
		return matches
	}

	filtered := ApplyHardFilters(deduped, preferences)
	p.logStep("hard_filters", len(deduped), len(filtered))

	scored := p.scorer.ScoreJobs(filtered, prof, preferences)

	matches := make([]Match, 0, len(scored))
	for _, r := range scored {
		matches = append(matches, Match{
			Listing:     r.Listing,
			Score:       r.Total,
			SubScores:   r.SubScores,
			Explanation: Explain(r.Listing, prof, preferences, r.SubScores),
		})
	}

	p.logger.Info("pipeline complete", zap.Int("matches", len(matches)))
	return matches
}

func (p *Pipeline) logStep(name string, initial, left int) {
	p.logger.Info("pipeline step",
		zap.String("name", name),
		zap.Int("initial", initial),
		zap.Int("dropped", initial-left),
		zap.Int("left", left),
	)
}
