package encounters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

const (
	// Key patterns
	recordKeyPrefix   = "encounter:"
	sessionRecordsKey = "session:%s:encounters"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
	// TTL expires records and session indexes; zero keeps them forever
	TTL time.Duration
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
	ttl          time.Duration
}

// NewRedisRepository creates a Redis-backed encounter archive
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	tp := cfg.TimeProvider
	if tp == nil {
		tp = NewTimeProvider()
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: tp,
		ttl:          cfg.TTL,
	}
}

// NewRedis creates a Redis archive that never expires records
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func recordKey(id string) string {
	return recordKeyPrefix + id
}

func (r *redisRepo) Save(ctx context.Context, record *Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.timeProvider.Now()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return rerrors.Wrap(err, "failed to marshal encounter record")
	}

	indexKey := fmt.Sprintf(sessionRecordsKey, record.SessionID)

	pipe := r.client.Pipeline()
	pipe.Set(ctx, recordKey(record.ID), string(data), r.ttl)
	pipe.SAdd(ctx, indexKey, record.ID)
	if r.ttl > 0 {
		pipe.Expire(ctx, indexKey, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return rerrors.Wrapf(err, "failed to save encounter %s", record.ID)
	}

	log.Printf("[REDIS] archived encounter %s for session %s", record.ID, record.SessionID)
	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*Record, error) {
	data, err := r.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, rerrors.NotFoundf("encounter not found: %s", id)
		}
		return nil, rerrors.Wrapf(err, "failed to get encounter %s", id)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, rerrors.Wrapf(err, "failed to unmarshal encounter %s", id)
	}
	return &record, nil
}

// ListBySession fetches every indexed record in parallel. IDs whose record
// has expired are skipped.
func (r *redisRepo) ListBySession(ctx context.Context, sessionID string) ([]*Record, error) {
	ids, err := r.client.SMembers(ctx, fmt.Sprintf(sessionRecordsKey, sessionID)).Result()
	if err != nil {
		return nil, rerrors.Wrapf(err, "failed to list encounters for session %s", sessionID)
	}

	found := make([]*Record, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			record, err := r.Get(gctx, id)
			if err != nil {
				if rerrors.IsNotFound(err) {
					return nil
				}
				return err
			}
			found[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(found))
	for _, record := range found {
		if record != nil {
			records = append(records, record)
		}
	}
	sortRecords(records)
	return records, nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	record, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, recordKey(id))
	pipe.SRem(ctx, fmt.Sprintf(sessionRecordsKey, record.SessionID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return rerrors.Wrapf(err, "failed to delete encounter %s", id)
	}
	return nil
}
