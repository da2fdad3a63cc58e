package weather

import (
	"context"
	"log"

	"route-resilience-service/internal/adapters/cache"
	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/metrics"
	"route-resilience-service/internal/ports"
)

// CachedProvider wraps a weather provider with a cache-aside sample store.
// Cache failures are logged and treated as misses; the inner provider stays
// authoritative.
type CachedProvider struct {
	inner  ports.WeatherProvider
	store  ports.WeatherSampleCache
	logger *log.Logger
}

func NewCachedProvider(inner ports.WeatherProvider, store ports.WeatherSampleCache, logger *log.Logger) *CachedProvider {
	if logger == nil {
		logger = log.Default()
	}
	return &CachedProvider{inner: inner, store: store, logger: logger}
}

func (p *CachedProvider) Sample(ctx context.Context, lat, lon float64) (domain.WeatherSample, error) {
	key := cache.GridKey("weather", lat, lon)

	sample, hit, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Printf("weather cache: get key=%s err=%v", key, err)
	}
	if hit {
		metrics.CacheHitsTotal.WithLabelValues("weather").Inc()
		return sample, nil
	}
	metrics.CacheMissesTotal.WithLabelValues("weather").Inc()

	sample, err = p.inner.Sample(ctx, lat, lon)
	if err != nil {
		return domain.WeatherSample{}, err
	}

	if err := p.store.Put(ctx, key, sample); err != nil {
		p.logger.Printf("weather cache: put key=%s err=%v", key, err)
	}
	return sample, nil
}
