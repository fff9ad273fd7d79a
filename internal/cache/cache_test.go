package cache

import (
	"fmt"
	"testing"
	"time"
)

// fixedClock lets tests advance time manually.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time          { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore() (*Store, *fixedClock) {
	clk := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := New(DefaultTTLs(), DefaultFallbackWindow)
	s.now = clk.now
	return s, clk
}

func TestGet_FreshWithinTTL(t *testing.T) {
	s, clk := newTestStore()
	s.Put(CategoryQuotes, "odds", "payload")

	clk.advance(4 * time.Minute)
	got, fresh := s.Get(CategoryQuotes, "odds")
	if !fresh {
		t.Fatal("entry at age 4m with 5m TTL should be fresh")
	}
	if got != "payload" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestGet_ExpiredAfterTTL(t *testing.T) {
	s, clk := newTestStore()
	s.Put(CategoryQuotes, "odds", "payload")

	clk.advance(6 * time.Minute)
	if _, fresh := s.Get(CategoryQuotes, "odds"); fresh {
		t.Error("entry at age 6m with 5m TTL should not be fresh")
	}
}

func TestGetStale_WithinFallbackWindow(t *testing.T) {
	s, clk := newTestStore()
	s.Put(CategoryQuotes, "odds", "payload")

	clk.advance(6 * time.Minute)
	got, ok := s.GetStale(CategoryQuotes, "odds")
	if !ok {
		t.Fatal("entry at age 6m should still serve as stale fallback (30m window)")
	}
	if got != "payload" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestGetStale_BeyondFallbackWindow(t *testing.T) {
	s, clk := newTestStore()
	s.Put(CategoryQuotes, "odds", "payload")

	clk.advance(31 * time.Minute)
	if _, ok := s.GetStale(CategoryQuotes, "odds"); ok {
		t.Error("entry at age 31m should be evicted, not served")
	}
	if s.Len() != 0 {
		t.Errorf("expected eviction, store still holds %d entries", s.Len())
	}
}

func TestCategoryTTLsAreIndependent(t *testing.T) {
	s, clk := newTestStore()
	s.Put(CategorySchedule, "today", "games")
	s.Put(CategoryForm, "NYY", "form")

	clk.advance(2 * time.Minute)
	if _, fresh := s.Get(CategorySchedule, "today"); fresh {
		t.Error("schedule entry should expire after 1m")
	}
	if _, fresh := s.Get(CategoryForm, "NYY"); !fresh {
		t.Error("form entry should stay fresh for 1h")
	}
}

func TestGet_Miss(t *testing.T) {
	s, _ := newTestStore()
	if _, fresh := s.Get(CategoryForm, "absent"); fresh {
		t.Error("miss reported as fresh")
	}
	if _, ok := s.GetStale(CategoryForm, "absent"); ok {
		t.Error("miss reported as stale hit")
	}
}

func TestPut_Overwrites(t *testing.T) {
	s, clk := newTestStore()
	s.Put(CategoryForm, "NYY", "old")
	clk.advance(59 * time.Minute)
	s.Put(CategoryForm, "NYY", "new")

	got, fresh := s.Get(CategoryForm, "NYY")
	if !fresh || got != "new" {
		t.Errorf("expected refreshed entry, got %v (fresh=%v)", got, fresh)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := newTestStore()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%10)
				s.Put(CategoryQuotes, key, n)
				s.Get(CategoryQuotes, key)
				s.GetStale(CategoryQuotes, key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
