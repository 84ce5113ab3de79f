package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/corail-counting/corail/pkg/redis_client"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
)

const overviewCacheKey = "stats:overview"

var overviewCache *cache.Cache[*Overview]

func (overview *Overview) MarshalBinary() ([]byte, error) {
	return json.Marshal(overview)
}

func (overview *Overview) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, overview)
}

// CreateOverviewCache initialises the redis-backed cache for the
// supervisor overview. The TTL is short; the cache only smooths repeated
// dashboard loads, correctness comes from recomputation.
func CreateOverviewCache() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(2*time.Minute))
	overviewCache = cache.New[*Overview](redisStore)
}

// CachedOverview returns the cached overview, recomputing through the
// calculator on a miss. Without an initialised cache it computes directly.
func (calculator *Calculator) CachedOverview(ctx context.Context) (*Overview, error) {
	if overviewCache == nil {
		return calculator.Overview(ctx)
	}

	if cached, err := overviewCache.Get(ctx, overviewCacheKey); err == nil && cached != nil {
		return cached, nil
	}

	overview, err := calculator.Overview(ctx)
	if err != nil {
		return nil, err
	}

	if err := overviewCache.Set(ctx, overviewCacheKey, overview); err != nil {
		log.Error().Err(err).Msg("Failed to cache stats overview")
	}

	return overview, nil
}

// InvalidateOverview drops the cached overview after mission records
// change. Called from the events consumer, never from the engine.
func InvalidateOverview(ctx context.Context) {
	if overviewCache == nil {
		return
	}

	if err := overviewCache.Delete(ctx, overviewCacheKey); err != nil {
		log.Debug().Err(err).Msg("Stats overview cache invalidation")
	}
}
