package store_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/justbuildpd-sudo/newsbot-sub000/store"
	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

func entry(key string, value any) *types.CacheEntry {
	return &types.CacheEntry{
		Key:      key,
		Value:    value,
		StoredAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestPutGetDelete(t *testing.T) {
	s := store.New()

	if _, ok := s.Get("news"); ok {
		t.Fatal("empty store must not return entries")
	}

	s.Put("news", entry("news", "v1"))
	got, ok := s.Get("news")
	if !ok || got.Value != "v1" {
		t.Fatalf("expected v1, got %v (ok=%v)", got, ok)
	}

	s.Put("news", entry("news", "v2"))
	got, _ = s.Get("news")
	if got.Value != "v2" {
		t.Fatalf("expected replaced value v2, got %v", got.Value)
	}

	s.Delete("news")
	if _, ok := s.Get("news"); ok {
		t.Fatal("deleted entry still present")
	}

	// deleting again must be a no-op
	s.Delete("news")
}

func TestClearAndLen(t *testing.T) {
	s := store.New()
	s.Put("a", entry("a", 1))
	s.Put("b", entry("b", 2))

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty store after Clear, got %d", s.Len())
	}
}

// Entries must be a stable snapshot: writes after the snapshot was taken
// must not show up in it.
func TestEntriesSnapshotIsolation(t *testing.T) {
	s := store.New()
	s.Put("a", entry("a", 1))

	snap := s.Entries()
	s.Put("b", entry("b", 2))
	s.Delete("a")

	want := map[string]*types.CacheEntry{"a": snap["a"]}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("snapshot changed after later writes (-want +got):\n%s", diff)
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s := store.New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		key := fmt.Sprintf("key-%d", i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Put(key, entry(key, j))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Get(key)
				s.Entries()
			}
		}()
	}
	wg.Wait()

	if s.Len() != 8 {
		t.Fatalf("expected 8 entries, got %d", s.Len())
	}
}
