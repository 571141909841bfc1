package matching

import (
	"strings"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/prefs"
)

var countryAliases = map[string][]string{
	"uk": {"uk", "united kingdom", "england", "scotland", "wales", "britain"},
	"us": {"us", "usa", "united states", "america"},
	"de": {"germany", "deutschland", "de"},
	"ca": {"canada", "ca"},
	"fr": {"france", "fr"},
	"es": {"spain", "españa", "es"},
	"au": {"australia", "au"},
	"nl": {"netherlands", "holland", "nl"},
	"ie": {"ireland", "ie"},
	"se": {"sweden", "se"},
}

var seniorityKeywords = map[string][]string{
	"junior":    {"junior", "jr", "entry", "graduate", "intern"},
	"mid":       {"mid", "intermediate"},
	"senior":    {"senior", "sr"},
	"lead":      {"lead", "principal", "staff"},
	"executive": {"director", "vp", "head", "chief", "cto", "cfo", "ceo"},
}

// Globally-open location strings that pass any location filter.
var openLocations = map[string]bool{"": true, "worldwide": true, "anywhere": true, "global": true}

// ApplyHardFilters returns the listings that satisfy every active constraint.
// Dimensions are AND-combined; the multi-select inside a dimension is
// OR-combined. Listings with missing data are included, not excluded: absence
// of salary, seniority keywords or country info never rejects a listing.
func ApplyHardFilters(jobs []*job.Listing, p *prefs.Preferences) []*job.Listing {
	filtered := make([]*job.Listing, 0, len(jobs))
	for _, j := range jobs {
		// "Also remote in" bypass: a remote listing located in one of the
		// extra countries is included regardless of every other dimension.
		if len(p.AlsoRemoteIn) > 0 && isRemoteInExtraCountry(j, p.AlsoRemoteIn) {
			filtered = append(filtered, j)
			continue
		}

		if len(p.RemoteTypes) > 0 && !matchesRemote(j, p.RemoteTypes) {
			continue
		}
		if len(p.Locations) > 0 && !matchesLocation(j, p.Locations, p.Country) {
			continue
		}
		if p.MinSalary != nil && !meetsSalary(j, *p.MinSalary) {
			continue
		}
		if len(p.SeniorityLevels) > 0 && !matchesSeniority(j, p.SeniorityLevels) {
			continue
		}
		filtered = append(filtered, j)
	}
	return filtered
}

func isRemoteInExtraCountry(j *job.Listing, extraCountries []string) bool {
	jobRemote := strings.ToLower(j.RemoteType)
	jobLoc := strings.ToLower(j.Location)
	if jobRemote != "remote" && !strings.Contains(jobLoc, "remote") {
		return false
	}
	for _, country := range extraCountries {
		for _, alias := range aliasesFor(country) {
			if strings.Contains(jobLoc, alias) {
				return true
			}
		}
	}
	return false
}

func matchesRemote(j *job.Listing, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	jobRemote := strings.ToLower(j.RemoteType)
	jobLoc := strings.ToLower(j.Location)

	for _, w := range wanted {
		switch w {
		case "remote":
			if jobRemote == "remote" || strings.Contains(jobLoc, "remote") {
				return true
			}
		case "hybrid":
			if jobRemote == "hybrid" || jobRemote == "remote" {
				return true
			}
		case "onsite":
			// Unspecified counts as onsite-compatible.
			if jobRemote == "onsite" || jobRemote == "" {
				return true
			}
		}
	}
	return false
}

func matchesLocation(j *job.Listing, locations []string, country string) bool {
	if len(locations) == 0 {
		return true
	}
	jobLoc := strings.ToLower(j.Location)
	if openLocations[jobLoc] {
		return true
	}

	locMatch := false
	for _, loc := range locations {
		if strings.Contains(jobLoc, strings.ToLower(loc)) {
			locMatch = true
			break
		}
	}
	if locMatch && country != "" {
		for _, alias := range aliasesFor(country) {
			if strings.Contains(jobLoc, alias) {
				return true
			}
		}
		// City matched but the listing carries no country info: include it.
		return locMatch
	}
	return locMatch
}

func aliasesFor(country string) []string {
	c := strings.ToLower(country)
	if aliases, ok := countryAliases[c]; ok {
		return aliases
	}
	return []string{c}
}

func meetsSalary(j *job.Listing, minSalary float64) bool {
	if j.SalaryMax != nil {
		return *j.SalaryMax >= minSalary
	}
	if j.SalaryMin != nil {
		return *j.SalaryMin >= minSalary
	}
	// Missing data is never a rejection reason.
	return true
}

func matchesSeniority(j *job.Listing, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	titleLower := strings.ToLower(j.Title)

	for _, level := range wanted {
		keywords, ok := seniorityKeywords[strings.ToLower(level)]
		if !ok {
			keywords = []string{strings.ToLower(level)}
		}
		for _, kw := range keywords {
			if strings.Contains(titleLower, kw) {
				return true
			}
		}
	}

	// Ambiguous titles (no seniority keyword at all) are included.
	for _, keywords := range seniorityKeywords {
		for _, kw := range keywords {
			if strings.Contains(titleLower, kw) {
				return false
			}
		}
	}
	return true
}
