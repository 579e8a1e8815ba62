// Package filterstore persists each actor's board filter configuration in
// Redis so the view survives reloads and devices.
package filterstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/taskboard/domain/view"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Store reads and writes per-actor filter configurations. Loads collapse
// through a singleflight group so a burst of board renders for the same
// actor costs one Redis round trip.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

// NewStore creates a new filter store.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(actorID string) string {
	return s.prefix + actorID
}

// Load returns the actor's saved filter configuration. A missing key, an
// unreadable payload or a Redis failure all degrade to the default
// configuration; a board render never fails because of filter storage.
func (s *Store) Load(ctx context.Context, actorID string) view.FilterConfig {
	v, err, _ := s.group.Do(actorID, func() (any, error) {
		data, err := s.client.Get(ctx, s.key(actorID)).Bytes()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("[filterstore] load failed for %s: %v", actorID, err)
			}
			return view.DefaultFilterConfig(), nil
		}

		var cfg view.FilterConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			log.Printf("[filterstore] corrupt config for %s, using defaults: %v", actorID, err)
			return view.DefaultFilterConfig(), nil
		}
		return cfg.Normalize(), nil
	})
	if err != nil {
		return view.DefaultFilterConfig()
	}
	return v.(view.FilterConfig)
}

// Save persists the actor's filter configuration.
func (s *Store) Save(ctx context.Context, actorID string, cfg view.FilterConfig) error {
	data, err := json.Marshal(cfg.Normalize())
	if err != nil {
		return fmt.Errorf("failed to marshal filter config: %w", err)
	}
	if err := s.client.Set(ctx, s.key(actorID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save filter config: %w", err)
	}
	return nil
}

// Reset drops the actor's saved configuration, falling back to defaults.
func (s *Store) Reset(ctx context.Context, actorID string) error {
	if err := s.client.Del(ctx, s.key(actorID)).Err(); err != nil {
		return fmt.Errorf("failed to reset filter config: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
