package metacache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"movienight/internal/tmdb"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache", "metacache.db"), ttl)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreGetPutAndExpiry(t *testing.T) {
	store := openTestStore(t, time.Hour)
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	var out []string
	if hit, err := store.Get(ctx, NamespaceWikidataAwards, "tt1", &out); err != nil || hit {
		t.Fatalf("expected miss on empty cache, got hit=%v err=%v", hit, err)
	}
	if err := store.Put(ctx, NamespaceWikidataAwards, "tt1", []string{"Q103360"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if hit, err := store.Get(ctx, NamespaceWikidataAwards, "tt1", &out); err != nil || !hit || len(out) != 1 || out[0] != "Q103360" {
		t.Fatalf("expected hit, got hit=%v out=%v err=%v", hit, out, err)
	}
	if hit, _ := store.Get(ctx, NamespaceTMDBSearch, "tt1", &out); hit {
		t.Fatal("namespaces must not collide")
	}

	now = now.Add(2 * time.Hour)
	if hit, _ := store.Get(ctx, NamespaceWikidataAwards, "tt1", &out); hit {
		t.Fatal("expected expired entry to miss")
	}
	removed, err := store.Prune(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("expected one pruned entry, got %d err=%v", removed, err)
	}
}

func TestOpenValidatesArguments(t *testing.T) {
	if _, err := Open("", time.Hour); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "x.db"), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

type countingSearcher struct {
	searches int
	details  int
	err      error
}

func (c *countingSearcher) SearchMovie(_ context.Context, query string) (*tmdb.Response, error) {
	c.searches++
	if c.err != nil {
		return nil, c.err
	}
	return &tmdb.Response{Results: []tmdb.Result{{ID: 42, Title: query}}}, nil
}

func (c *countingSearcher) GetMovieDetails(_ context.Context, id int64) (*tmdb.MovieDetails, error) {
	c.details++
	if c.err != nil {
		return nil, c.err
	}
	return &tmdb.MovieDetails{ID: id, Title: "Cached", ExternalIDs: tmdb.ExternalIDs{IMDbID: "tt42"}}, nil
}

func TestSearcherCachesSuccessfulLookups(t *testing.T) {
	store := openTestStore(t, time.Hour)
	next := &countingSearcher{}
	cached := NewSearcher(next, store, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := cached.SearchMovie(ctx, "Patton")
		if err != nil || len(resp.Results) != 1 || resp.Results[0].ID != 42 {
			t.Fatalf("SearchMovie: %+v %v", resp, err)
		}
		details, err := cached.GetMovieDetails(ctx, 42)
		if err != nil || details.ExternalIDs.IMDbID != "tt42" {
			t.Fatalf("GetMovieDetails: %+v %v", details, err)
		}
	}
	if next.searches != 1 || next.details != 1 {
		t.Fatalf("expected one upstream call each, got %d searches %d details", next.searches, next.details)
	}
	if _, err := cached.SearchMovie(ctx, "  PATTON "); err != nil || next.searches != 1 {
		t.Fatalf("expected normalized query key to hit, searches=%d err=%v", next.searches, err)
	}
}

func TestSearcherDoesNotCacheFailures(t *testing.T) {
	store := openTestStore(t, time.Hour)
	boom := errors.New("502")
	next := &countingSearcher{err: boom}
	cached := NewSearcher(next, store, nil)

	for i := 0; i < 2; i++ {
		if _, err := cached.SearchMovie(context.Background(), "Patton"); !errors.Is(err, boom) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	}
	if next.searches != 2 {
		t.Fatalf("failures must not be cached, got %d upstream calls", next.searches)
	}
}

type countingAwards struct {
	calls int
	err   error
}

func (c *countingAwards) AwardIDs(_ context.Context, _ string) ([]string, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return nil, nil
}

func TestAwardSourceCachesEmptyResults(t *testing.T) {
	store := openTestStore(t, time.Hour)
	next := &countingAwards{}
	source := NewAwardSource(next, store, nil)

	for i := 0; i < 3; i++ {
		ids, err := source.AwardIDs(context.Background(), "tt0066206")
		if err != nil || ids == nil || len(ids) != 0 {
			t.Fatalf("AwardIDs: %v %v", ids, err)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected empty result cached, got %d calls", next.calls)
	}

	failing := NewAwardSource(&countingAwards{err: errors.New("429")}, store, nil)
	if _, err := failing.AwardIDs(context.Background(), "tt0000001"); err == nil {
		t.Fatal("expected upstream error to surface to the resolver")
	}
}

func TestNilStoreFallsThrough(t *testing.T) {
	next := &countingSearcher{}
	cached := NewSearcher(next, nil, nil)
	for i := 0; i < 2; i++ {
		if _, err := cached.SearchMovie(context.Background(), "Patton"); err != nil {
			t.Fatalf("SearchMovie: %v", err)
		}
	}
	if next.searches != 2 {
		t.Fatalf("expected passthrough without a store, got %d", next.searches)
	}
}
