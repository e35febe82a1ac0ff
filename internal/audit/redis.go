// internal/audit/redis.go
package audit

import (
	"context"
	"time"

	apperrors "faxgen/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

const reserveKeyPrefix = "faxgen:refid:"

// RedisReserver enforces reference ID uniqueness across engine instances.
// The in-process generator is only best-effort unique, so the engine
// reserves each candidate ID here and regenerates on conflict.
type RedisReserver struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReserver(client *redis.Client, ttl time.Duration) *RedisReserver {
	if ttl <= 0 {
		ttl = 90 * 24 * time.Hour
	}
	return &RedisReserver{client: client, ttl: ttl}
}

// Reserve claims referenceID. It returns false when another instance holds
// the ID already, and an error only for store failures.
func (r *RedisReserver) Reserve(ctx context.Context, referenceID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, reserveKeyPrefix+referenceID, time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		return false, apperrors.NewDatabaseConnectionFailedError(err)
	}
	return ok, nil
}
