package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Kade-Lor/goSession/session"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, "gstest", time.Hour), mr
}

func TestRedisCreateAndFind(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Create(ctx, "u1", session.Metadata{IP: "10.0.0.1", UserAgent: "curl"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected assigned id")
	}

	found, err := store.FindByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.UserID != "u1" || found.IP != "10.0.0.1" || found.UserAgent != "curl" {
		t.Fatalf("unexpected record: %+v", found)
	}
	if found.Revoked {
		t.Fatal("new record must start active")
	}
	if !found.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("created_at round-trip mismatch: %v vs %v", found.CreatedAt, rec.CreatedAt)
	}
}

func TestRedisFindUnknown(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.FindByID(context.Background(), "nope"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected session.ErrNotFound, got %v", err)
	}
}

func TestRedisListActiveByUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := store.Create(ctx, "u1", session.Metadata{})
	b, _ := store.Create(ctx, "u1", session.Metadata{})
	if _, err := store.Create(ctx, "u2", session.Metadata{}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := store.Revoke(ctx, a.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	active, err := store.ListActiveByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].ID != b.ID {
		t.Fatalf("expected exactly the still-active record, got %+v", active)
	}
}

func TestRedisListEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	active, err := store.ListActiveByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected empty list, got %+v", active)
	}
}

func TestRedisListCleansStaleIndex(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	rec, _ := store.Create(ctx, "u1", session.Metadata{})
	keep, _ := store.Create(ctx, "u1", session.Metadata{})

	// Simulate the record hash expiring while its set member lingers.
	mr.Del("gstest:sess:" + rec.ID)

	active, err := store.ListActiveByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].ID != keep.ID {
		t.Fatalf("expected stale record filtered, got %+v", active)
	}

	members, _ := mr.SMembers("gstest:user:u1")
	for _, m := range members {
		if m == rec.ID {
			t.Fatal("stale member not removed from user index")
		}
	}
}

func TestRedisRevokeIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec, _ := store.Create(ctx, "u1", session.Metadata{})

	first, err := store.Revoke(ctx, rec.ID)
	if err != nil {
		t.Fatalf("first revoke: %v", err)
	}
	if !first.Revoked {
		t.Fatal("expected revoked=true after first revoke")
	}

	second, err := store.Revoke(ctx, rec.ID)
	if err != nil {
		t.Fatalf("second revoke must succeed: %v", err)
	}
	if !second.Revoked {
		t.Fatal("expected revoked=true after second revoke")
	}
}

func TestRedisRevokeUnknown(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Revoke(context.Background(), "nope"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected session.ErrNotFound, got %v", err)
	}
}

func TestRedisRecordExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	rec, _ := store.Create(ctx, "u1", session.Metadata{})

	mr.FastForward(2 * time.Hour)

	if _, err := store.FindByID(ctx, rec.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected expired record to read as not found, got %v", err)
	}
}

func TestRedisUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(client, "gstest", time.Hour)
	mr.Close()

	if _, err := store.Create(context.Background(), "u1", session.Metadata{}); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := store.FindByID(context.Background(), "x"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
