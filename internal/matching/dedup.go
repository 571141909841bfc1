// Package matching implements the core pipeline: deduplication, hard
// filtering, multi-factor scoring and per-listing explanations.
package matching

import "github.com/JaimeV365/job-seeker-cheater/internal/job"

// Deduplicate merges listings that share a dedup key, keeping one listing per
// key in first-occurrence order.
//
// On a collision the candidate replaces the incumbent only when it has a
// non-empty description and the incumbent does not, or it carries a minimum
// salary and the incumbent does not. The comparison is pairwise against the
// current incumbent only, never against all listings seen for the key, so a
// disadvantageous arrival order can keep a weaker listing. Saved reports
// depend on this ordering staying stable, do not "improve" it.
func Deduplicate(jobs []*job.Listing) []*job.Listing {
	seen := make(map[string]int, len(jobs))
	out := make([]*job.Listing, 0, len(jobs))

	for _, j := range jobs {
		key := j.DedupKey()
		if idx, ok := seen[key]; ok {
			if preferNew(j, out[idx]) {
				out[idx] = j
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, j)
	}

	return out
}

func preferNew(candidate, incumbent *job.Listing) bool {
	if candidate.Description != "" && incumbent.Description == "" {
		return true
	}
	if candidate.SalaryMin != nil && incumbent.SalaryMin == nil {
		return true
	}
	return false
}
