package catalog_test

import (
	"sync"
	"testing"

	"movienight/internal/catalog"
)

func TestSeenSetClaimOnce(t *testing.T) {
	seen := catalog.NewSeenSet()
	if seen.Has("abcdefghijk") {
		t.Fatal("expected empty set")
	}
	if !seen.Claim("abcdefghijk") {
		t.Fatal("expected first claim to succeed")
	}
	if seen.Claim("abcdefghijk") {
		t.Fatal("expected second claim to fail")
	}
	if !seen.Has("abcdefghijk") || seen.Len() != 1 {
		t.Fatalf("unexpected set state: len=%d", seen.Len())
	}
}

func TestSeenSetConcurrentClaims(t *testing.T) {
	seen := catalog.NewSeenSet()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if seen.Claim("abcdefghijk") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one winning claim, got %d", wins)
	}
}
