package redisrepo

import (
	"context"
	"errors"
	"fmt"

	"task-notes-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type IdempotencyRepository struct {
	rdb *redis.Client
}

// NewIdempotencyRepository stores replay bodies under idem:<collection>:<key>.
// Plain SET gives the upsert-by-key semantics the creation flow needs: the
// caller only writes after the underlying resource exists, so a racing
// duplicate writer produces an equivalent body and last writer wins.
func NewIdempotencyRepository(rdb *redis.Client) contract.IdempotencyRepository {
	return &IdempotencyRepository{rdb: rdb}
}

func idempotencyKey(collection, key string) string {
	return fmt.Sprintf("idem:%s:%s", collection, key)
}

func (r *IdempotencyRepository) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	body, err := r.rdb.Get(ctx, idempotencyKey(collection, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return body, true, nil
}

func (r *IdempotencyRepository) Put(ctx context.Context, collection, key string, body []byte) error {
	return r.rdb.Set(ctx, idempotencyKey(collection, key), body, 0).Err()
}
