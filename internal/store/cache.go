// Package store persists job listings and the user's profile locally. The
// cache holds listings only; personal data never enters it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
)

const DefaultCacheTTL = time.Hour

// Cache is a TTL-bounded sqlite cache of fetched listings, keyed by listing
// id so repeated "fetch & match" runs within the TTL skip the network.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenCache opens (and if needed creates) the cache database at path.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite wants a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id        TEXT PRIMARY KEY,
	data      TEXT NOT NULL,
	cached_at INTEGER NOT NULL
);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating jobs table: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// StoreJobs upserts the listings with the current timestamp.
func (c *Cache) StoreJobs(ctx context.Context, listings []*job.Listing) error {
	now := time.Now().Unix()
	for _, l := range listings {
		data, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("encoding listing %s: %w", l.ID, err)
		}
		if _, err := c.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO jobs (id, data, cached_at) VALUES (?, ?, ?);`,
			l.ID, string(data), now,
		); err != nil {
			return fmt.Errorf("caching listing %s: %w", l.ID, err)
		}
	}
	return nil
}

// GetJobs returns the unexpired listings cached for a source, or nil when the
// cache has nothing fresh for it.
func (c *Cache) GetJobs(ctx context.Context, source string) ([]*job.Listing, error) {
	cutoff := time.Now().Add(-c.ttl).Unix()
	rows, err := c.db.QueryContext(ctx,
		`SELECT data FROM jobs WHERE id LIKE ? AND cached_at > ?;`,
		source+"-%", cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*job.Listing
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var l job.Listing
		if err := json.Unmarshal([]byte(data), &l); err != nil {
			return nil, fmt.Errorf("decoding cached listing: %w", err)
		}
		listings = append(listings, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}

// Clear drops every cached listing.
func (c *Cache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM jobs;`)
	return err
}

// ClearExpired removes listings older than the TTL and reports how many went.
func (c *Cache) ClearExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx, `DELETE FROM jobs WHERE cached_at < ?;`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
