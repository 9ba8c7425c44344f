package local

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/unkn0wn-root/unreadcache/querycache"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if ok, err := s.Set(ctx, "k", []byte("v"), 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	if v, ok, err := s.Get(ctx, "k"); err != nil || !ok || !bytes.Equal(v, []byte("v")) {
		t.Fatalf("Get: ok=%v err=%v v=%q", ok, err, v)
	}
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, err := s.Set(ctx, "short", []byte("v"), 30*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(60 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "short"); ok {
		t.Fatalf("expired entry should miss")
	}
}

func TestSweepPrunesExpired(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	_, _ = s.Set(ctx, "a", []byte("v"), 10*time.Millisecond)
	_, _ = s.Set(ctx, "b", []byte("v"), 0)
	time.Sleep(30 * time.Millisecond)
	s.sweep()

	if s.Len() != 1 {
		t.Fatalf("sweep should prune expired entries, len=%d", s.Len())
	}
}

func TestInvalidatePrefixDropsEntries(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	_, _ = s.Set(ctx, "unread:nl:count", []byte("a"), 0)
	_, _ = s.Set(ctx, "unread:nl:filtered", []byte("b"), 0)
	_, _ = s.Set(ctx, "tags:nl:list", []byte("c"), 0)

	if err := s.Invalidate(ctx, "unread:nl", querycache.ScopeActive); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "unread:nl:count"); ok {
		t.Fatalf("prefixed entry survived invalidation")
	}
	if _, ok, _ := s.Get(ctx, "unread:nl:filtered"); ok {
		t.Fatalf("prefixed entry survived invalidation")
	}
	if _, ok, _ := s.Get(ctx, "tags:nl:list"); !ok {
		t.Fatalf("unrelated entry was dropped")
	}
}

// Active subscribers refetch on ScopeActive; paused ones only on ScopeAll.
func TestSubscriptionScopes(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	var activeHits, pausedHits int
	active := s.Subscribe("unread:nl", func() { activeHits++ })
	paused := s.Subscribe("unread:nl", func() { pausedHits++ })
	t.Cleanup(active.Close)
	t.Cleanup(paused.Close)
	paused.Pause()

	if err := s.Invalidate(ctx, "unread:nl", querycache.ScopeActive); err != nil {
		t.Fatal(err)
	}
	if activeHits != 1 || pausedHits != 0 {
		t.Fatalf("ScopeActive: active=%d paused=%d", activeHits, pausedHits)
	}

	if err := s.Invalidate(ctx, "unread:nl", querycache.ScopeAll); err != nil {
		t.Fatal(err)
	}
	if activeHits != 2 || pausedHits != 1 {
		t.Fatalf("ScopeAll: active=%d paused=%d", activeHits, pausedHits)
	}

	paused.Resume()
	if err := s.Invalidate(ctx, "unread:nl", querycache.ScopeActive); err != nil {
		t.Fatal(err)
	}
	if pausedHits != 2 {
		t.Fatalf("resumed subscriber should refetch on ScopeActive, hits=%d", pausedHits)
	}
}

func TestSubscriptionPrefixFiltering(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	var unrelated int
	sub := s.Subscribe("tags:nl", func() { unrelated++ })
	t.Cleanup(sub.Close)

	if err := s.Invalidate(ctx, "unread:nl", querycache.ScopeAll); err != nil {
		t.Fatal(err)
	}
	if unrelated != 0 {
		t.Fatalf("subscriber outside the invalidated family was notified")
	}
}

func TestSubscriptionCloseUnsubscribes(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	var hits int
	sub := s.Subscribe("unread:nl", func() { hits++ })
	sub.Close()
	sub.Close() // idempotent

	if err := s.Invalidate(ctx, "unread:nl", querycache.ScopeAll); err != nil {
		t.Fatal(err)
	}
	if hits != 0 {
		t.Fatalf("closed subscription must not refetch")
	}
}
