package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/escrowrail/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces plan keys.
const DefaultPrefix = "escrowrail:plan:"

// farFuture is the index score of plans stored without TTL (2100-01-01).
const farFuture = 4102444800

// Store implements ports.PlanStore using Redis.
// Each plan is a JSON string; a sorted set indexes plan IDs by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL sets the expiration for plans.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for plans.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock overrides the clock used to score the expiry index.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
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
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(planID string) string {
	return s.prefix + planID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the plan to Redis.
func (s *Store) Save(ctx context.Context, plan *domain.EscrowPlan) error {
	if plan == nil || plan.ID == "" {
		return fmt.Errorf("plan ID cannot be empty")
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	score := float64(farFuture)
	if s.ttl > 0 {
		score = float64(s.now().Add(s.ttl).Unix())
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(plan.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: plan.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the plan from Redis.
func (s *Store) Load(ctx context.Context, planID string) (*domain.EscrowPlan, error) {
	val, err := s.client.Get(ctx, s.key(planID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlanNotFound, planID)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var plan domain.EscrowPlan
	if err := json.Unmarshal(val, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}

// Delete removes the plan and its index entry.
func (s *Store) Delete(ctx context.Context, planID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(planID))
	pipe.ZRem(ctx, s.indexKey(), planID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns live plan IDs.
// Expired entries are pruned from the index lazily.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(s.now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired plans: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
