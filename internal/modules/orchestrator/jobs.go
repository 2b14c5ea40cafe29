// README: Job status store and per-trip run lock backed by Redis.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"voyage/internal/types"
)

const (
	jobKeyPrefix  = "report:job:%s"
	lockKeyPrefix = "report:lock:%s"
	// Job state outlives any reasonable run; locks must not (a crashed run
	// releases the trip after lockTTL).
	jobTTL  = 30 * 24 * time.Hour
	lockTTL = 10 * time.Minute
)

type RedisJobStore struct {
	redis *redis.Client
}

func NewRedisJobStore(redis *redis.Client) *RedisJobStore {
	return &RedisJobStore{redis: redis}
}

func (s *RedisJobStore) SetStatus(ctx context.Context, tripID types.ID, status JobStatus) error {
	pipe := s.redis.Pipeline()
	pipe.HSet(ctx, jobKey(tripID), map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	pipe.Expire(ctx, jobKey(tripID), jobTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Status returns the stored job status; pending when no job exists yet.
func (s *RedisJobStore) Status(ctx context.Context, tripID types.ID) (JobStatus, error) {
	val, err := s.redis.HGet(ctx, jobKey(tripID), "status").Result()
	if err == redis.Nil {
		return StatusPending, nil
	}
	if err != nil {
		return "", err
	}
	return JobStatus(val), nil
}

// AcquireRunLock takes the per-trip lock; false means a run is in flight.
func (s *RedisJobStore) AcquireRunLock(ctx context.Context, tripID types.ID) (bool, error) {
	return s.redis.SetNX(ctx, lockKey(tripID), "1", lockTTL).Result()
}

func (s *RedisJobStore) ReleaseRunLock(ctx context.Context, tripID types.ID) error {
	return s.redis.Del(ctx, lockKey(tripID)).Err()
}

func jobKey(tripID types.ID) string {
	return fmt.Sprintf(jobKeyPrefix, string(tripID))
}

func lockKey(tripID types.ID) string {
	return fmt.Sprintf(lockKeyPrefix, string(tripID))
}
