package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, _, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, hit, err := store.GetOrLoad(context.Background(), "k", loader); err != nil || hit {
		t.Fatalf("first GetOrLoad hit=%v err=%v", hit, err)
	}
	if _, hit, err := store.GetOrLoad(context.Background(), "k", loader); err != nil || !hit {
		t.Fatalf("second GetOrLoad hit=%v err=%v", hit, err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	boom := errors.New("boom")
	var calls atomic.Int32

	failing := func(context.Context) (int, error) {
		calls.Add(1)
		return 0, boom
	}
	if _, _, err := store.GetOrLoad(context.Background(), "k", failing); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	ok := func(context.Context) (int, error) {
		calls.Add(1)
		return 7, nil
	}
	v, _, err := store.GetOrLoad(context.Background(), "k", ok)
	if err != nil || v != 7 {
		t.Fatalf("expected 7, got %d err=%v", v, err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	ctx := context.Background()
	store.Set(ctx, "arsenal|2020", "a")
	store.Set(ctx, "arsenal|2021", "b")
	store.Set(ctx, "chelsea|2020", "c")

	store.DeletePrefix(ctx, "arsenal|")

	if _, ok := store.Get(ctx, "arsenal|2020"); ok {
		t.Fatalf("expected arsenal|2020 removed")
	}
	if _, ok := store.Get(ctx, "chelsea|2020"); !ok {
		t.Fatalf("expected chelsea|2020 kept")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
