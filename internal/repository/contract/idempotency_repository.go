package contract

import "context"

// IdempotencyRepository maps a (collection, client-supplied key) pair to a
// previously produced response body so creation requests can be replayed
// safely.
type IdempotencyRepository interface {
	Get(ctx context.Context, collection, key string) ([]byte, bool, error)
	Put(ctx context.Context, collection, key string, body []byte) error
}
