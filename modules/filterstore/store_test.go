package filterstore

import (
	"context"
	"testing"
	"time"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/view"
	"github.com/redis/go-redis/v9"
)

// Requires Redis running on localhost:6379; skipped otherwise.
const testRedisAddr = "localhost:6379"

func setupTestStore(t *testing.T) (*Store, *redis.Client) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "taskboard:test:filters:"
	cleanup := func() {
		var cursor uint64
		for {
			keys, next, err := client.Scan(ctx, cursor, prefix+"*", 100).Result()
			if err != nil {
				break
			}
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}
	cleanup()
	t.Cleanup(func() {
		cleanup()
		client.Close()
	})

	return NewStore(client, prefix, time.Minute), client
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	cfg := store.Load(ctx, "nobody")
	want := view.DefaultFilterConfig()
	if cfg.Bucket != want.Bucket || cfg.Scope != want.Scope {
		t.Errorf("Load(missing) = %+v, want defaults %+v", cfg, want)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	saved := view.FilterConfig{
		Query:    "login",
		Bucket:   view.BucketOverdue,
		Scope:    view.ScopeAssignedToMe,
		Priority: task.PriorityHigh,
	}
	if err := store.Save(ctx, "alice", saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := store.Load(ctx, "alice")
	if got.Query != "login" || got.Bucket != view.BucketOverdue || got.Scope != view.ScopeAssignedToMe {
		t.Errorf("Load() = %+v, want saved config", got)
	}

	// Another actor's view is untouched.
	other := store.Load(ctx, "bob")
	if other.Bucket != view.BucketAll {
		t.Errorf("Load(other) = %+v, want defaults", other)
	}
}

func TestCorruptPayloadDegradesToDefaults(t *testing.T) {
	store, client := setupTestStore(t)
	ctx := context.Background()

	if err := client.Set(ctx, "taskboard:test:filters:alice", "{not json", time.Minute).Err(); err != nil {
		t.Fatalf("failed to plant corrupt payload: %v", err)
	}

	cfg := store.Load(ctx, "alice")
	if cfg.Bucket != view.BucketAll || cfg.Scope != view.ScopeOwnTeam {
		t.Errorf("Load(corrupt) = %+v, want defaults", cfg)
	}
}

func TestResetDropsSavedConfig(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", view.FilterConfig{Bucket: view.BucketDueToday}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Reset(ctx, "alice"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	cfg := store.Load(ctx, "alice")
	if cfg.Bucket != view.BucketAll {
		t.Errorf("Load() after reset = %+v, want defaults", cfg)
	}
}
