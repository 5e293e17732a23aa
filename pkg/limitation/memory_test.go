package limitation

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStore_CountBasics(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := int64(1_700_000_000)

	res, err := store.Count(ctx, "k", 3, 60, now)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if res.Limited {
		t.Error("first count should not be limited")
	}
	if res.Remaining != 2 {
		t.Errorf("remaining = %d, want 2", res.Remaining)
	}
	if res.Reset != now+60 {
		t.Errorf("reset = %d, want %d", res.Reset, now+60)
	}
}

func TestMemoryStore_ResetStableWithinWindow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	start := int64(1_700_000_000)

	first, _ := store.Count(ctx, "k", 10, 60, start)

	// Later calls inside the window observe a shrinking TTL but the
	// same absolute reset.
	res, _ := store.Count(ctx, "k", 10, 60, start+25)
	if res.Reset != first.Reset {
		t.Errorf("reset moved within the window: %d != %d", res.Reset, first.Reset)
	}
}

func TestMemoryStore_OverLimitKeepsIncrementing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := int64(1_700_000_000)

	for i := 0; i < 5; i++ {
		store.Count(ctx, "k", 2, 60, now)
	}

	store.mu.Lock()
	count := store.counters["k"].count
	store.mu.Unlock()
	if count != 5 {
		t.Errorf("count = %d, want 5: over-limit calls must keep incrementing", count)
	}
}

func TestMemoryStore_ExpiryStartsFreshWindow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	start := int64(1_700_000_000)

	store.Count(ctx, "k", 1, 60, start)
	if res, _ := store.Count(ctx, "k", 1, 60, start+30); !res.Limited {
		t.Fatal("second count within the window should be limited")
	}

	res, _ := store.Count(ctx, "k", 1, 60, start+61)
	if res.Limited {
		t.Error("count after expiry should start a fresh window")
	}
	if res.Reset != start+61+60 {
		t.Errorf("reset = %d, want %d", res.Reset, start+61+60)
	}
}

// Race test
func TestMemoryStore_ThreadSafety(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := int64(1_700_000_000)

	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 100; i++ {
		go func() {
			defer wg.Done()
			store.Count(ctx, "k", 100, 60, now)
		}()
	}
	wg.Wait()

	res, _ := store.Count(ctx, "k", 100, 60, now)
	if !res.Limited {
		t.Error("expected the 101st count to be limited after 100 concurrent counts")
	}
}
