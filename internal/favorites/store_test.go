package favorites

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreToggleAndIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	for _, id := range []string{"l-1", "l-2"} {
		on, err := s.Toggle(ctx, "sess-a", id)
		if err != nil || !on {
			t.Fatalf("Toggle %s: %v %v", id, on, err)
		}
	}
	got, err := s.Load(ctx, "sess-a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Has("l-1") || !got.Has("l-2") || got.Len() != 2 {
		t.Fatalf("unexpected set %v", got.IDs())
	}

	other, _ := s.Load(ctx, "sess-b")
	if other.Len() != 0 {
		t.Fatalf("session b should be empty, got %v", other.IDs())
	}

	off, err := s.Toggle(ctx, "sess-a", "l-1")
	if err != nil || off {
		t.Fatalf("second toggle: %v %v", off, err)
	}
	got, _ = s.Load(ctx, "sess-a")
	if got.Has("l-1") || got.Len() != 1 {
		t.Fatalf("expected only l-2, got %v", got.IDs())
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	_, _ = s.Toggle(ctx, "sess", "l-1")
	now = now.Add(2 * time.Minute)

	got, err := s.Load(ctx, "sess")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != 0 {
		t.Fatalf("expected expired set, got %v", got.IDs())
	}

	on, _ := s.Toggle(ctx, "sess", "l-1")
	if !on {
		t.Fatalf("toggle after expiry should start from an empty set")
	}
}

func TestMemoryStoreConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Toggle(ctx, "sess", fmt.Sprintf("l-%d", i))
		}()
	}
	wg.Wait()

	got, _ := s.Load(ctx, "sess")
	if got.Len() != 50 {
		t.Fatalf("expected 50 favorites, got %d", got.Len())
	}
}
