package reports

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vaultboard/vaultboard/internal/logging"
)

type stubFetcher struct {
	calls   atomic.Int32
	payload []byte
	err     error
	release chan struct{}

	mu        sync.Mutex
	requested []string
}

func (f *stubFetcher) ListReports(ctx context.Context, chainID int, strategy string) ([]byte, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.requested = append(f.requested, strategy)
	f.mu.Unlock()
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func TestNewKeyNormalizesAddress(t *testing.T) {
	t.Parallel()

	key := NewKey(1, " 0xAbC ")
	if got := key.String(); got != "1:0xabc" {
		t.Fatalf("key = %q", got)
	}
	if key.Strategy != "0xAbC" {
		t.Fatalf("Strategy = %q, want the address as given", key.Strategy)
	}
	if NewKey(1, "0xabc") == NewKey(250, "0xabc") {
		t.Fatal("keys on different chains must differ")
	}
}

func TestCacheDeduplicatesConcurrentFetches(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{
		payload: []byte(`[{"timestamp":"1","results":[{"APR":"0.1"}]}]`),
		release: make(chan struct{}),
	}
	c := NewCache(f, CacheOptions{Logger: logging.Discard()})
	key := NewKey(1, "0xabc")

	const callers = 8
	var wg sync.WaitGroup
	results := make([]float64, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.LatestAPR(context.Background(), key)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(f.release)
	wg.Wait()

	if got := f.calls.Load(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1", got)
	}
	for i, apr := range results {
		if apr != 0.1 {
			t.Fatalf("caller %d APR = %v, want 0.1", i, apr)
		}
	}

	if _, err := c.Get(context.Background(), key); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := f.calls.Load(); got != 1 {
		t.Fatalf("cached lookup refetched: calls = %d", got)
	}
}

func TestCacheSendsAddressAsGivenAndSharesEntryAcrossCasing(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{payload: []byte(`[{"timestamp":1,"results":[{"APR":0.3}]}]`)}
	c := NewCache(f, CacheOptions{Logger: logging.Discard()})

	if _, err := c.Get(context.Background(), NewKey(1, "0xAbC")); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got, ok := c.Peek(NewKey(1, "0xabc")); !ok || LatestAPR(got) != 0.3 {
		t.Fatalf("Peek(lower-cased) = %v, %v", got, ok)
	}
	if len(f.requested) != 1 || f.requested[0] != "0xAbC" {
		t.Fatalf("requested = %v, want [0xAbC]", f.requested)
	}
}

func TestCacheResolveDegradesToNoReports(t *testing.T) {
	t.Parallel()

	c := NewCache(&stubFetcher{err: errors.New("timeout")}, CacheOptions{Logger: logging.Discard()})
	if got := c.Resolve(context.Background(), NewKey(1, "0x1")); got != nil {
		t.Fatalf("Resolve() = %v, want nil", got)
	}
}

func TestCacheTreatsSchemaFailureAsEmpty(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{payload: []byte(`{"message":"oops"}`)}
	c := NewCache(f, CacheOptions{Logger: logging.Discard()})
	key := NewKey(1, "0xabc")

	got, err := c.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("reports = %v, want empty", got)
	}
	if apr := c.LatestAPR(context.Background(), key); apr != 0 {
		t.Fatalf("APR = %v, want 0", apr)
	}
	if _, ok := c.Peek(key); !ok {
		t.Fatal("schema failure should be cached as empty data")
	}
}

func TestCacheDoesNotCacheTransportErrors(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{err: errors.New("connection refused")}
	c := NewCache(f, CacheOptions{Logger: logging.Discard()})
	key := NewKey(10, "0xabc")

	if _, err := c.Get(context.Background(), key); err == nil {
		t.Fatal("expected transport error")
	}
	if apr := c.LatestAPR(context.Background(), key); apr != 0 {
		t.Fatalf("APR = %v, want 0", apr)
	}
	if got := f.calls.Load(); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
	if _, ok := c.Peek(key); ok {
		t.Fatal("transport errors must not be cached")
	}
}

func TestCacheCancelledCallerDoesNotStopSharedFetch(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{
		payload: []byte(`[{"timestamp":"5","results":[{"APR":0.2}]}]`),
		release: make(chan struct{}),
	}
	c := NewCache(f, CacheOptions{Logger: logging.Discard()})
	key := NewKey(1, "0xdef")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Get(ctx, key)
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Get error = %v, want context.Canceled", err)
	}

	close(f.release)
	deadline := time.Now().Add(2 * time.Second)
	for {
		if reports, ok := c.Peek(key); ok {
			if LatestAPR(reports) != 0.2 {
				t.Fatalf("cached APR = %v", LatestAPR(reports))
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("shared fetch never populated the cache")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
