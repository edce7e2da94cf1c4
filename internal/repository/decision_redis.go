package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"desdemona/internal/domain/othello"
	errs "desdemona/internal/errors"
)

// RedisDecisionStore keeps decisions as JSON values that expire after ttl.
type RedisDecisionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDecisionStore(client *redis.Client, ttl time.Duration) *RedisDecisionStore {
	return &RedisDecisionStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisDecisionStore) LoadDecision(ctx context.Context, key string) (othello.Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return othello.Decision{}, errs.ErrDecisionNotFound
	}
	if err != nil {
		return othello.Decision{}, fmt.Errorf("redis get %s: %w", key, err)
	}

	var decision othello.Decision
	if err := json.Unmarshal(raw, &decision); err != nil {
		return othello.Decision{}, fmt.Errorf("decode decision %s: %w", key, err)
	}
	return decision, nil
}

func (r *RedisDecisionStore) SaveDecision(ctx context.Context, key string, decision othello.Decision) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	raw, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("encode decision %s: %w", key, err)
	}
	return r.client.Set(ctx, key, raw, r.ttl).Err()
}
