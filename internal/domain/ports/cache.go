package ports

import (
	"context"

	"cardfx-service/internal/domain/model"
)

// RateCache memoizes normalized rates per provider. Implementations decide
// when an entry is stale; Get never returns expired entries. Unsupported
// outcomes are cacheable: they are deterministic for a (date, pair) key.
type RateCache interface {
	Get(ctx context.Context, key string) (model.CacheEntry, bool)
	Set(ctx context.Context, key string, rate model.Rate) error
}
