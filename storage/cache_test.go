package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"threadwell-api/domain"
)

type stubBackend struct {
	getFn   func(ctx context.Context) (*domain.BoardState, bool, error)
	setFn   func(ctx context.Context, state *domain.BoardState) error
	closeFn func() error
}

func (s *stubBackend) Get(ctx context.Context) (*domain.BoardState, bool, error) {
	if s.getFn == nil {
		return nil, false, errors.New("unexpected Get call")
	}
	return s.getFn(ctx)
}

func (s *stubBackend) Set(ctx context.Context, state *domain.BoardState) error {
	if s.setFn == nil {
		return errors.New("unexpected Set call")
	}
	return s.setFn(ctx, state)
}

func (s *stubBackend) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func newCacheFixture(t *testing.T, base backend, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(base, client, ttl), mr
}

func TestCacheGetMissThenHit(t *testing.T) {
	ctx := context.Background()
	expected := testState("l1", "l2")

	var calls int
	cache, mr := newCacheFixture(t, &stubBackend{
		getFn: func(ctx context.Context) (*domain.BoardState, bool, error) {
			calls++
			return expected.Clone(), true, nil
		},
	}, time.Minute)

	state, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(state, expected) {
		t.Fatalf("unexpected state: %#v", state)
	}
	if calls != 1 {
		t.Fatalf("expected 1 backend call, got %d", calls)
	}
	if ttl := mr.TTL(snapshotCacheKey); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected TTL: %v", ttl)
	}

	cached, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("cached get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(cached, expected) {
		t.Fatalf("unexpected cached state: %#v", cached)
	}
	if calls != 1 {
		t.Fatalf("expected cached read to avoid backend, calls=%d", calls)
	}
}

func TestCacheGetDoesNotCacheAbsence(t *testing.T) {
	ctx := context.Background()

	var calls int
	cache, mr := newCacheFixture(t, &stubBackend{
		getFn: func(ctx context.Context) (*domain.BoardState, bool, error) {
			calls++
			return nil, false, nil
		},
	}, time.Minute)

	if _, ok, err := cache.Get(ctx); ok || err != nil {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}
	if mr.Exists(snapshotCacheKey) {
		t.Fatal("absence must not be cached")
	}
	if _, ok, _ := cache.Get(ctx); ok {
		t.Fatal("expected absent on second read")
	}
	if calls != 2 {
		t.Fatalf("expected both reads to reach the backend, calls=%d", calls)
	}
}

func TestCacheSetWritesThroughAndEvicts(t *testing.T) {
	ctx := context.Background()
	first := testState("l1")
	second := testState("l2")

	held := first.Clone()
	cache, mr := newCacheFixture(t, &stubBackend{
		getFn: func(ctx context.Context) (*domain.BoardState, bool, error) {
			return held.Clone(), true, nil
		},
		setFn: func(ctx context.Context, state *domain.BoardState) error {
			held = state.Clone()
			return nil
		},
	}, time.Minute)

	if _, ok, err := cache.Get(ctx); !ok || err != nil {
		t.Fatalf("warm read: ok=%v err=%v", ok, err)
	}
	if !mr.Exists(snapshotCacheKey) {
		t.Fatal("expected snapshot cached after read")
	}

	if err := cache.Set(ctx, second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if mr.Exists(snapshotCacheKey) {
		t.Fatal("expected cached snapshot evicted after write")
	}

	state, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("read after write: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(state, second) {
		t.Fatalf("stale snapshot served after write: %#v", state)
	}
}

func TestCacheSetFailureSkipsEviction(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("write refused")

	cache, mr := newCacheFixture(t, &stubBackend{
		getFn: func(ctx context.Context) (*domain.BoardState, bool, error) {
			return testState("l1"), true, nil
		},
		setFn: func(ctx context.Context, state *domain.BoardState) error {
			return boom
		},
	}, time.Minute)

	if _, ok, err := cache.Get(ctx); !ok || err != nil {
		t.Fatalf("warm read: ok=%v err=%v", ok, err)
	}
	if err := cache.Set(ctx, testState("l2")); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if !mr.Exists(snapshotCacheKey) {
		t.Fatal("cache evicted although the write never reached the store")
	}
}

func TestCacheFallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	expected := testState("l1")

	var calls int
	cache, mr := newCacheFixture(t, &stubBackend{
		getFn: func(ctx context.Context) (*domain.BoardState, bool, error) {
			calls++
			return expected.Clone(), true, nil
		},
	}, time.Minute)
	mr.Close()

	state, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("get with redis down: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(state, expected) {
		t.Fatalf("unexpected state: %#v", state)
	}
	if calls != 1 {
		t.Fatalf("expected backend read, calls=%d", calls)
	}
}

func TestCacheDropsUndecodableEntry(t *testing.T) {
	ctx := context.Background()
	expected := testState("l1")

	cache, mr := newCacheFixture(t, &stubBackend{
		getFn: func(ctx context.Context) (*domain.BoardState, bool, error) {
			return expected.Clone(), true, nil
		},
	}, time.Minute)
	if err := mr.Set(snapshotCacheKey, "{not json"); err != nil {
		t.Fatalf("seed bad cache entry: %v", err)
	}

	state, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(state, expected) {
		t.Fatalf("unexpected state: %#v", state)
	}
}
