package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/job"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), ttl)
	if err != nil {
		t.Fatalf("opening the cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func testListings() []*job.Listing {
	salary := 90000.0
	return []*job.Listing{
		{ID: "remotive-1", Title: "Go Developer", Company: "Acme", Source: "remotive", SalaryMin: &salary},
		{ID: "remotive-2", Title: "Data Engineer", Company: "Initech", Source: "remotive"},
		{ID: "arbeitnow-abc", Title: "Backend Developer", Company: "Globex", Source: "arbeitnow"},
	}
}

func TestCacheRoundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t, time.Hour)

	if err := cache.StoreJobs(ctx, testListings()); err != nil {
		t.Fatalf("storing: %v", err)
	}

	got, err := cache.GetJobs(ctx, "remotive")
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 remotive listings, got %d", len(got))
	}
	for _, l := range got {
		if l.Source != "remotive" {
			t.Fatalf("expected only remotive listings, got %q", l.Source)
		}
	}

	var withSalary *job.Listing
	for _, l := range got {
		if l.ID == "remotive-1" {
			withSalary = l
		}
	}
	if withSalary == nil || withSalary.SalaryMin == nil || *withSalary.SalaryMin != 90000 {
		t.Fatalf("expected the salary to survive the roundtrip, got %+v", withSalary)
	}
}

func TestCacheMissesOtherSources(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t, time.Hour)

	if err := cache.StoreJobs(ctx, testListings()); err != nil {
		t.Fatalf("storing: %v", err)
	}

	got, err := cache.GetJobs(ctx, "greenhouse")
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no greenhouse listings, got %d", len(got))
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t, time.Nanosecond)

	if err := cache.StoreJobs(ctx, testListings()); err != nil {
		t.Fatalf("storing: %v", err)
	}

	got, err := cache.GetJobs(ctx, "remotive")
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected everything expired, got %d listings", len(got))
	}
}

func TestCacheStoreUpserts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t, time.Hour)

	listings := testListings()
	if err := cache.StoreJobs(ctx, listings); err != nil {
		t.Fatalf("storing: %v", err)
	}

	listings[0].Title = "Principal Go Developer"
	if err := cache.StoreJobs(ctx, listings); err != nil {
		t.Fatalf("restoring: %v", err)
	}

	got, err := cache.GetJobs(ctx, "remotive")
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the second store to replace, got %d listings", len(got))
	}
}

func TestCacheClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t, time.Hour)

	if err := cache.StoreJobs(ctx, testListings()); err != nil {
		t.Fatalf("storing: %v", err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clearing: %v", err)
	}

	got, err := cache.GetJobs(ctx, "remotive")
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected an empty cache, got %d listings", len(got))
	}
}

func TestCacheClearExpiredKeepsFresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := openTestCache(t, time.Hour)

	if err := cache.StoreJobs(ctx, testListings()); err != nil {
		t.Fatalf("storing: %v", err)
	}

	removed, err := cache.ClearExpired(ctx)
	if err != nil {
		t.Fatalf("clearing expired: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected fresh entries to stay, removed %d", removed)
	}
}
