package matching

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/prefs"
	"github.com/JaimeV365/job-seeker-cheater/internal/profile"
)

// FallbackReason is appended when no specific reason applies.
const FallbackReason = "General match based on overall profile fit"

// UploadCVReason is the synthetic explanation used when no CV was uploaded
// and no personalized scoring happened. The caller substitutes it for every
// listing instead of invoking Explain.
const UploadCVReason = "Upload CV for personalised scoring"

var requiredYearsPattern = regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)`)

// Explanation is the human-readable rendering of a score: positive reasons
// and cautionary gaps, in a deterministic order.
type Explanation struct {
	Reasons []string `json:"reasons"`
	Gaps    []string `json:"gaps"`
}

// Explain derives reasons and gaps from the same signals the scorer computed.
// Construction order is fixed; callers and tests rely on it.
func Explain(j *job.Listing, prof *profile.Profile, p *prefs.Preferences, subScores map[string]float64) Explanation {
	var reasons, gaps []string

	jobTextLower := strings.ToLower(j.Title + " " + j.Description)

	jobTags := make(map[string]bool, len(j.Tags))
	for _, t := range j.Tags {
		jobTags[strings.ToLower(t)] = true
	}

	// 1. Profile skills found among the listing tags.
	matched := intersect(prof.SkillSet(), jobTags)
	if len(matched) > 0 {
		reasons = append(reasons, "Your skills match: "+joinSorted(matched, 8))
	}

	// 2. Required skills: met via tags, mentioned in text, or genuinely absent.
	if len(p.RequiredSkills) > 0 {
		required := make(map[string]bool, len(p.RequiredSkills))
		for _, s := range p.RequiredSkills {
			required[strings.ToLower(s)] = true
		}

		met := intersect(required, jobTags)
		if len(met) > 0 {
			reasons = append(reasons, "Has your required skills: "+joinSorted(met, 5))
		}

		foundInDesc := make(map[string]bool)
		stillMissing := make(map[string]bool)
		for s := range required {
			if jobTags[s] {
				continue
			}
			if strings.Contains(jobTextLower, s) {
				foundInDesc[s] = true
			} else {
				stillMissing[s] = true
			}
		}
		if len(foundInDesc) > 0 {
			reasons = append(reasons, "Description mentions: "+joinSorted(foundInDesc, 5))
		}
		if len(stillMissing) > 0 {
			gaps = append(gaps, "May not require: "+joinSorted(stillMissing, 5))
		}
	}

	// 3. First target title found in the listing title.
	if len(p.TargetTitles) > 0 {
		titleLower := strings.ToLower(j.Title)
		for _, target := range p.TargetTitles {
			if strings.Contains(titleLower, strings.ToLower(target)) {
				reasons = append(reasons, fmt.Sprintf("Title matches your target: '%s'", target))
				break
			}
		}
	}

	// 4. Text similarity tier, strongest match wins.
	if sim := subScores[FactorTextSimilarity]; sim > 0.3 {
		reasons = append(reasons, fmt.Sprintf("Strong CV-to-job text similarity (%.0f%%)", sim*100))
	} else if sim > 0.15 {
		reasons = append(reasons, fmt.Sprintf("Moderate text similarity (%.0f%%)", sim*100))
	}

	// 5. Exact remote preference match.
	if wanted := p.RemoteType(); wanted != "" && j.RemoteType == wanted {
		reasons = append(reasons, fmt.Sprintf("Matches your %s preference", wanted))
	}

	// 6. Salary vs the stated minimum.
	if j.SalaryMin != nil && p.MinSalary != nil {
		if *j.SalaryMin >= *p.MinSalary {
			reasons = append(reasons, fmt.Sprintf("Salary meets your minimum (%s)", j.DisplaySalary()))
		} else {
			gaps = append(gaps, fmt.Sprintf("Salary may be below your minimum (%s)", j.DisplaySalary()))
		}
	}

	// 7. Experience-gap warning: first excessive "<N>+ years" requirement only.
	if prof.YearsExperience != nil && *prof.YearsExperience > 0 {
		descLower := strings.ToLower(j.Description)
		for _, m := range requiredYearsPattern.FindAllStringSubmatch(descLower, -1) {
			requiredYears, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if requiredYears > *prof.YearsExperience+2 {
				gaps = append(gaps, fmt.Sprintf("Asks for %d+ years (you have ~%d)",
					int(requiredYears), int(*prof.YearsExperience)))
				break
			}
		}
	}

	// 8. Never return an empty explanation.
	if len(reasons) == 0 {
		reasons = append(reasons, FallbackReason)
	}

	return Explanation{Reasons: reasons, Gaps: gaps}
}

func intersect(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func joinSorted(set map[string]bool, limit int) string {
	items := make([]string, 0, len(set))
	for s := range set {
		items = append(items, s)
	}
	sort.Strings(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}
