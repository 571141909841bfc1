package profile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	maxPlausibleYears = 50
	summaryLines      = 5
	summaryMaxRunes   = 300
)

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s+)?(?:experience|exp)`),
	regexp.MustCompile(`(?i)(?:experience|exp)\s*(?:of\s+)?(\d+)\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s+in\b`),
}

// Date-range employment spans: "2015 - 2023", "2019 – Present".
var dateRangePattern = regexp.MustCompile(`(20\d{2})\s*[-–—]\s*(20\d{2}|[Pp]resent|[Cc]urrent|[Nn]ow)`)

var rolePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(senior|sr\.?|lead|principal|staff|chief|head of|director|vp|manager)\s+` +
		`([\w\s]{3,30}?)(?:\n|,|\.|;|\bat\b|\bin\b)`),
	regexp.MustCompile(`(?i)\b(software engineer|data scientist|product manager|project manager|` +
		`devops engineer|frontend developer|backend developer|full.?stack|` +
		`ux designer|ui designer|data analyst|data engineer|ml engineer|` +
		`machine learning engineer|solutions architect|cloud engineer|` +
		`scrum master|business analyst|consultant|account manager|` +
		`customer success manager|marketing manager|sales manager)\b`),
}

// Builder extracts skills, experience and role hints from free CV text. The
// skills dictionary is supplied at construction and never mutated afterwards.
type Builder struct {
	skills   []string
	patterns []*regexp.Regexp
	now      func() time.Time
}

// NewBuilder compiles the skills dictionary into matchers. Longer skills are
// tried first so "machine learning" wins over "machine".
func NewBuilder(skillsDict map[string][]string) *Builder {
	all := make([]string, 0)
	for _, categorySkills := range skillsDict {
		for _, s := range categorySkills {
			all = append(all, strings.ToLower(s))
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return len(all[i]) > len(all[j]) })

	b := &Builder{skills: all, now: time.Now}
	b.patterns = make([]*regexp.Regexp, len(all))
	for i, s := range all {
		b.patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`)
	}
	return b
}

// Build constructs a complete profile from raw CV text.
func (b *Builder) Build(rawText string) *Profile {
	return &Profile{
		RawText:         rawText,
		Skills:          b.ExtractSkills(rawText),
		YearsExperience: b.ExtractYearsExperience(rawText),
		RoleHints:       b.ExtractRoleHints(rawText),
		Summary:         buildSummary(rawText),
	}
}

// ExtractSkills returns every dictionary skill present in the text as a whole
// word, lowercased and sorted.
func (b *Builder) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]bool)
	for i, p := range b.patterns {
		if p.MatchString(lower) {
			found[b.skills[i]] = true
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ExtractYearsExperience finds the largest plausible experience figure, either
// stated outright ("8+ years of experience") or implied by employment date
// ranges. Returns nil when nothing was found.
func (b *Builder) ExtractYearsExperience(text string) *float64 {
	var maxYears float64

	for _, pat := range yearsPatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			years, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if years <= maxPlausibleYears && years > maxYears {
				maxYears = years
			}
		}
	}

	for _, m := range dateRangePattern.FindAllStringSubmatch(text, -1) {
		start, _ := strconv.Atoi(m[1])
		end := b.now().Year()
		if m[2][0] >= '0' && m[2][0] <= '9' {
			end, _ = strconv.Atoi(m[2])
		}
		span := float64(end - start)
		if span > 0 && span <= maxPlausibleYears && span > maxYears {
			maxYears = span
		}
	}

	if maxYears == 0 {
		return nil
	}
	return &maxYears
}

// ExtractRoleHints collects job-title phrases mentioned in the CV, lowercased
// and sorted.
func (b *Builder) ExtractRoleHints(text string) []string {
	roles := make(map[string]bool)
	for _, pat := range rolePatterns {
		for _, m := range pat.FindAllString(text, -1) {
			role := strings.TrimRight(strings.TrimSpace(m), ".,;")
			if len(role) > 3 {
				roles[strings.ToLower(role)] = true
			}
		}
	}

	out := make([]string, 0, len(roles))
	for r := range roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func buildSummary(rawText string) string {
	lines := strings.Split(rawText, "\n")
	if len(lines) > summaryLines {
		lines = lines[:summaryLines]
	}
	summary := strings.TrimSpace(strings.Join(lines, " "))

	runes := []rune(summary)
	if len(runes) > summaryMaxRunes {
		summary = string(runes[:summaryMaxRunes]) + "..."
	}
	return summary
}
