// Package redis provides a Redis-backed store adapter for funnels and
// webhook mappings.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aryarajalves/zapflow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.FunnelStore and ports.MappingStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets an expiration for stored documents. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "zapflow:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) funnelKey(id domain.FunnelID) string {
	return s.prefix + "funnel:" + string(id)
}

func (s *Store) funnelIndexKey() string {
	return s.prefix + "funnel:index"
}

func (s *Store) mappingKey(id string) string {
	return s.prefix + "mapping:" + id
}

// SaveFunnel persists the funnel definition as JSON and registers it in the
// funnel index set.
func (s *Store) SaveFunnel(ctx context.Context, funnel *domain.FunnelDefinition) error {
	data, err := json.Marshal(funnel)
	if err != nil {
		return fmt.Errorf("failed to marshal funnel: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.funnelKey(funnel.ID), data, s.ttl)
	pipe.SAdd(ctx, s.funnelIndexKey(), string(funnel.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save funnel to redis: %w", err)
	}
	return nil
}

// LoadFunnel retrieves a funnel definition.
func (s *Store) LoadFunnel(ctx context.Context, id domain.FunnelID) (*domain.FunnelDefinition, error) {
	val, err := s.client.Get(ctx, s.funnelKey(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrFunnelNotFound
		}
		return nil, fmt.Errorf("failed to get funnel from redis: %w", err)
	}

	var funnel domain.FunnelDefinition
	if err := json.Unmarshal([]byte(val), &funnel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal funnel: %w", err)
	}
	return &funnel, nil
}

// DeleteFunnel removes the funnel and its index entry.
func (s *Store) DeleteFunnel(ctx context.Context, id domain.FunnelID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.funnelKey(id))
	pipe.SRem(ctx, s.funnelIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// ListFunnels returns the IDs in the funnel index.
func (s *Store) ListFunnels(ctx context.Context) ([]domain.FunnelID, error) {
	members, err := s.client.SMembers(ctx, s.funnelIndexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list funnels: %w", err)
	}
	ids := make([]domain.FunnelID, 0, len(members))
	for _, m := range members {
		ids = append(ids, domain.FunnelID(m))
	}
	return ids, nil
}

// SaveMapping persists the webhook mapping as JSON.
func (s *Store) SaveMapping(ctx context.Context, mapping *domain.WebhookMapping) error {
	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}
	if err := s.client.Set(ctx, s.mappingKey(mapping.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save mapping to redis: %w", err)
	}
	return nil
}

// LoadMapping retrieves a webhook mapping.
func (s *Store) LoadMapping(ctx context.Context, id string) (*domain.WebhookMapping, error) {
	val, err := s.client.Get(ctx, s.mappingKey(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrMappingNotFound
		}
		return nil, fmt.Errorf("failed to get mapping from redis: %w", err)
	}

	var mapping domain.WebhookMapping
	if err := json.Unmarshal([]byte(val), &mapping); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mapping: %w", err)
	}
	return &mapping, nil
}

// DeleteMapping removes a mapping.
func (s *Store) DeleteMapping(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.mappingKey(id)).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
