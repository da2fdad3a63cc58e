package road

import (
	"context"
	"log"

	"route-resilience-service/internal/adapters/cache"
	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/metrics"
	"route-resilience-service/internal/ports"
)

// CachedProvider wraps a road-quality provider with a cache-aside sample
// store keyed by grid cell. Cache failures degrade to misses.
type CachedProvider struct {
	inner  ports.RoadQualityProvider
	store  ports.RoadSampleCache
	logger *log.Logger
}

func NewCachedProvider(inner ports.RoadQualityProvider, store ports.RoadSampleCache, logger *log.Logger) *CachedProvider {
	if logger == nil {
		logger = log.Default()
	}
	return &CachedProvider{inner: inner, store: store, logger: logger}
}

func (p *CachedProvider) Sample(ctx context.Context, point domain.Coordinates, lengthMeters float64) (domain.RoadSample, error) {
	key := cache.GridKey("road", point.Lat, point.Lon)

	sample, hit, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Printf("road cache: get key=%s err=%v", key, err)
	}
	if hit {
		metrics.CacheHitsTotal.WithLabelValues("road").Inc()
		return sample, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("road").Inc()

	sample, err = p.inner.Sample(ctx, point, lengthMeters)
	if err != nil {
		return domain.RoadSample{}, err
	}

	if err := p.store.Put(ctx, key, sample); err != nil {
		p.logger.Printf("road cache: put key=%s err=%v", key, err)
	}
	return sample, nil
}
