package sources

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	// Fragments come from the head of the CV, chunked into fixed windows.
	guardHeadRunes   = 500
	guardChunkRunes  = 50
	guardMinFragment = 12
)

// PrivacyViolationError reports that an outbound request would have leaked CV
// content. The request is never sent.
type PrivacyViolationError struct {
	Context string
}

func (e *PrivacyViolationError) Error() string {
	return fmt.Sprintf("personal data detected in %s: outbound requests must not contain CV content", e.Context)
}

// Guard holds CV fragments that must never appear in an outbound request URL
// or query parameters. The check runs before any network call, not inside the
// transport.
type Guard struct {
	fragments []string
}

// NewGuard chunks the first 500 characters of the CV into fragments and keeps
// those of at least 12 characters, lowercased for case-insensitive matching.
func NewGuard(cvText string) *Guard {
	runes := []rune(cvText)
	if len(runes) > guardHeadRunes {
		runes = runes[:guardHeadRunes]
	}

	var fragments []string
	for start := 0; start < len(runes); start += guardChunkRunes {
		end := start + guardChunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		frag := strings.TrimSpace(string(runes[start:end]))
		if utf8.RuneCountInString(frag) >= guardMinFragment {
			fragments = append(fragments, strings.ToLower(frag))
		}
	}

	return &Guard{fragments: fragments}
}

// Check returns a *PrivacyViolationError when the URL or the encoded query
// contains a registered fragment. A nil guard permits everything.
func (g *Guard) Check(rawURL string, q url.Values) error {
	if g == nil || len(g.fragments) == 0 {
		return nil
	}
	if err := g.check(rawURL, "URL"); err != nil {
		return err
	}
	// Values are checked unencoded; percent-escaping must not hide a leak.
	for key, values := range q {
		if err := g.check(key+" "+strings.Join(values, " "), "query params"); err != nil {
			return err
		}
	}
	return nil
}

func (g *Guard) check(payload, context string) error {
	lower := strings.ToLower(payload)
	for _, frag := range g.fragments {
		if strings.Contains(lower, frag) {
			return &PrivacyViolationError{Context: context}
		}
	}
	return nil
}
