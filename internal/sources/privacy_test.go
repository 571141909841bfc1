package sources

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

const sampleCV = "Jane Doe, 42 Elm Street, Springfield. Senior backend developer with ten years of experience building services in Go. Previously at Acme Corp and Initech."

func TestGuardBlocksCVFragmentInURL(t *testing.T) {
	t.Parallel()

	g := NewGuard(sampleCV)

	err := g.Check("https://api.example.com/search?q=Jane Doe, 42 Elm Street, Springfield. Senior backend dev", nil)
	if err == nil {
		t.Fatalf("expected a privacy violation")
	}

	var pv *PrivacyViolationError
	if !errors.As(err, &pv) {
		t.Fatalf("expected a *PrivacyViolationError, got %T", err)
	}
	if pv.Context != "URL" {
		t.Fatalf("expected the URL context, got %q", pv.Context)
	}
}

func TestGuardBlocksCVFragmentInQuery(t *testing.T) {
	t.Parallel()

	g := NewGuard(sampleCV)

	q := url.Values{}
	q.Set("search", "Jane Doe, 42 Elm Street, Springfield. Senior backend developer")

	err := g.Check("https://api.example.com/search", q)
	if err == nil {
		t.Fatalf("expected a privacy violation")
	}
}

func TestGuardAllowsCleanRequests(t *testing.T) {
	t.Parallel()

	g := NewGuard(sampleCV)

	q := url.Values{}
	q.Set("search", "golang")

	if err := g.Check("https://remotive.com/api/remote-jobs", q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGuardIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	g := NewGuard("SOME DISTINCTIVE OPENING SENTENCE ABOUT A CAREER IN ENGINEERING LEADERSHIP")

	err := g.Check("https://api.example.com/?q=some distinctive opening sentence about a career in engi", nil)
	if err == nil {
		t.Fatalf("expected a privacy violation despite the case difference")
	}
}

func TestGuardOnlyUsesHeadOfCV(t *testing.T) {
	t.Parallel()

	head := strings.Repeat("a", 500)
	tail := "unique trailing sentence far beyond the head window"
	g := NewGuard(head + tail)

	if err := g.Check("https://api.example.com/"+url.PathEscape(tail), nil); err != nil {
		t.Fatalf("expected tail content to pass, got %v", err)
	}
}

func TestGuardSkipsShortFragments(t *testing.T) {
	t.Parallel()

	// Trimmed chunks under twelve characters would block half the internet.
	g := NewGuard("go dev")
	if err := g.Check("https://api.example.com/search?q=go+dev", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNilGuardPermitsEverything(t *testing.T) {
	t.Parallel()

	var g *Guard
	if err := g.Check("https://api.example.com/anything", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
