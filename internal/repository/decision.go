package repo

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"desdemona/internal/adapters"
	"desdemona/internal/bootstrap"
	"desdemona/internal/domain/othello"
	errs "desdemona/internal/errors"
)

type DecisionStore interface {
	LoadDecision(ctx context.Context, key string) (othello.Decision, error)
	SaveDecision(ctx context.Context, key string, decision othello.Decision) error
}

// TieredDecisionStore looks decisions up in order, fastest tier first. A hit
// in a later tier is copied into the tiers before it.
type TieredDecisionStore struct {
	tiers []DecisionStore
	log   *zap.SugaredLogger
}

func NewTieredDecisionStore(log *zap.SugaredLogger, tiers ...DecisionStore) *TieredDecisionStore {
	return &TieredDecisionStore{
		tiers: tiers,
		log:   log,
	}
}

func (t *TieredDecisionStore) LoadDecision(ctx context.Context, key string) (othello.Decision, error) {
	var failures []error

	for i, tier := range t.tiers {
		decision, err := tier.LoadDecision(ctx, key)
		if errors.Is(err, errs.ErrDecisionNotFound) {
			continue
		}
		if err != nil {
			failures = append(failures, err)
			continue
		}

		for _, faster := range t.tiers[:i] {
			if err := faster.SaveDecision(ctx, key, decision); err != nil {
				t.log.Warnw("failed to back-fill decision", "key", key, "error", err)
			}
		}
		return decision, nil
	}

	if len(failures) > 0 {
		return othello.Decision{}, errors.Join(failures...)
	}
	return othello.Decision{}, errs.ErrDecisionNotFound
}

func (t *TieredDecisionStore) SaveDecision(ctx context.Context, key string, decision othello.Decision) error {
	var failures []error
	for _, tier := range t.tiers {
		if err := tier.SaveDecision(ctx, key, decision); err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

// NewDecisionStore builds the store for the initialised adapters. It returns
// nil when neither Redis nor MongoDB is available.
func NewDecisionStore(cfg *bootstrap.Config, log *zap.SugaredLogger, redisAdapter *adapters.AdapterRedis, mongoAdapter *adapters.AdapterMongo) DecisionStore {
	var tiers []DecisionStore

	if redisAdapter != nil && redisAdapter.GetClient() != nil {
		tiers = append(tiers, NewRedisDecisionStore(redisAdapter.GetClient(), cfg.DecisionCacheTTL))
	}
	if mongoAdapter != nil && mongoAdapter.Database != nil {
		tiers = append(tiers, NewMongoDecisionStore(mongoAdapter.Database))
	}

	if len(tiers) == 0 {
		return nil
	}
	return NewTieredDecisionStore(log, tiers...)
}
