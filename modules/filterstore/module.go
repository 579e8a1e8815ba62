package filterstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/domain/view"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "taskboard:filters:"
	// Saved filters outlive sessions but not forgotten accounts.
	configTTL = 90 * 24 * time.Hour
)

// FilterStoreModule provides the filter persistence services.
type FilterStoreModule struct {
	client    *redis.Client
	store     *Store
	redisAddr string
}

// Compile-time interface checks.
var _ mono.Module = (*FilterStoreModule)(nil)
var _ mono.ServiceProviderModule = (*FilterStoreModule)(nil)
var _ mono.HealthCheckableModule = (*FilterStoreModule)(nil)

// NewModule creates a new FilterStoreModule.
func NewModule() *FilterStoreModule {
	redisAddr := os.Getenv("TASKBOARD_REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	return &FilterStoreModule{
		redisAddr: redisAddr,
	}
}

// Name returns the module name.
func (m *FilterStoreModule) Name() string {
	return "filterstore"
}

// Start connects to Redis and creates the store.
func (m *FilterStoreModule) Start(ctx context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	m.store = NewStore(m.client, keyPrefix, configTTL)
	log.Printf("[filterstore] Connected to Redis at %s", m.redisAddr)
	return nil
}

// Stop closes the Redis connection.
func (m *FilterStoreModule) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
	}
	log.Println("[filterstore] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *FilterStoreModule) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}
	if err := m.store.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis": m.redisAddr,
		},
	}
}

// Store exposes the filter store to sibling modules in the same process.
func (m *FilterStoreModule) Store() *Store {
	return m.store
}

// RegisterServices registers request-reply services in the service container.
func (m *FilterStoreModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"filters.get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "filters.get", json.Unmarshal, json.Marshal, m.handleGet)
		}},
		{"filters.save", func() error {
			return helper.RegisterTypedRequestReplyService(container, "filters.save", json.Unmarshal, json.Marshal, m.handleSave)
		}},
		{"filters.reset", func() error {
			return helper.RegisterTypedRequestReplyService(container, "filters.reset", json.Unmarshal, json.Marshal, m.handleReset)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[filterstore] Registered services: get, save, reset")
	return nil
}

func (m *FilterStoreModule) handleGet(ctx context.Context, req GetFiltersRequest, _ *mono.Msg) (GetFiltersResponse, error) {
	if req.ActorID == "" {
		return GetFiltersResponse{}, fmt.Errorf("%w: actor_id is required", task.ErrValidation)
	}
	return GetFiltersResponse{Config: m.store.Load(ctx, req.ActorID)}, nil
}

func (m *FilterStoreModule) handleSave(ctx context.Context, req SaveFiltersRequest, _ *mono.Msg) (SaveFiltersResponse, error) {
	if req.ActorID == "" {
		return SaveFiltersResponse{}, fmt.Errorf("%w: actor_id is required", task.ErrValidation)
	}
	cfg := req.Config.Normalize()
	if err := m.store.Save(ctx, req.ActorID, cfg); err != nil {
		return SaveFiltersResponse{}, err
	}
	return SaveFiltersResponse{Saved: true, Config: cfg}, nil
}

func (m *FilterStoreModule) handleReset(ctx context.Context, req ResetFiltersRequest, _ *mono.Msg) (ResetFiltersResponse, error) {
	if req.ActorID == "" {
		return ResetFiltersResponse{}, fmt.Errorf("%w: actor_id is required", task.ErrValidation)
	}
	if err := m.store.Reset(ctx, req.ActorID); err != nil {
		return ResetFiltersResponse{}, err
	}
	return ResetFiltersResponse{Config: view.DefaultFilterConfig()}, nil
}
