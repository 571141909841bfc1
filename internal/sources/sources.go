// Package sources fetches job listings from public board APIs through a
// privacy-guarded HTTP client.
package sources

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
)

// Connector is one job source. Each implementation independently produces
// listings or fails; a failure never aborts the other connectors.
type Connector interface {
	Name() string
	Fetch(ctx context.Context) ([]*job.Listing, error)
}

// SourceError ties a fetch failure to the connector it came from.
type SourceError struct {
	Source string
	Err    error
}

func (e SourceError) Error() string {
	return e.Source + ": " + e.Err.Error()
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Registry holds the configured connectors in registration order.
type Registry struct {
	connectors []Connector
}

func NewRegistry(connectors ...Connector) *Registry {
	return &Registry{connectors: connectors}
}

func (r *Registry) Register(c Connector) {
	r.connectors = append(r.connectors, c)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.connectors))
	for _, c := range r.connectors {
		names = append(names, c.Name())
	}
	return names
}

// Select returns the connectors whose names appear in wanted; an empty wanted
// list selects everything.
func (r *Registry) Select(wanted []string) []Connector {
	if len(wanted) == 0 {
		return r.connectors
	}
	set := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		set[strings.ToLower(w)] = true
	}
	out := make([]Connector, 0, len(r.connectors))
	for _, c := range r.connectors {
		if set[c.Name()] {
			out = append(out, c)
		}
	}
	return out
}

// FetchAll runs every connector sequentially and collects whatever listings
// it got, plus one SourceError per failed source. Partial results from the
// working sources are always returned; when all sources fail the listing
// slice is empty and the error list is complete.
func FetchAll(ctx context.Context, connectors []Connector, logger *zap.Logger) ([]*job.Listing, []SourceError) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var all []*job.Listing
	var errs []SourceError

	for _, c := range connectors {
		listings, err := c.Fetch(ctx)
		if err != nil {
			logger.Warn("source failed",
				zap.String("source", c.Name()),
				zap.Error(err),
			)
			errs = append(errs, SourceError{Source: c.Name(), Err: err})
			continue
		}
		logger.Info("source fetched",
			zap.String("source", c.Name()),
			zap.Int("listings", len(listings)),
		)
		all = append(all, listings...)
	}

	return all, errs
}

// listingID builds a stable per-source id, falling back to a random one when
// the source item carries no usable identifier.
func listingID(source, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return source + "-" + uuid.NewString()
	}
	return source + "-" + raw
}

// parseTimestamp accepts the ISO-ish formats the board APIs emit. Returns nil
// when the value is absent or unparseable; a bad date never fails a fetch.
func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
