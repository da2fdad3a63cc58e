package services

import (
	"context"
	"fmt"
	"log"

	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/ports"
)

// RouteSource acquires candidate routes from a primary provider with a
// single fallback hop. Retries for transient provider errors are the
// providers' concern; this component never retries beyond the one fallback.
type RouteSource struct {
	primary  ports.RouteProvider
	fallback ports.RouteProvider
	logger   *log.Logger
}

func NewRouteSource(primary, fallback ports.RouteProvider, logger *log.Logger) *RouteSource {
	if logger == nil {
		logger = log.Default()
	}
	return &RouteSource{primary: primary, fallback: fallback, logger: logger}
}

// GetRoutes tries the primary provider, then the fallback when the primary
// is unconfigured, fails, or returns nothing. Results are truncated to
// maxAlternatives in provider order (assumed best-first) and each route gets
// a 1-based ordinal and a "Route N" name when the provider supplied none.
// An empty result means both hops came up empty; the caller reports the
// terminal no-routes condition.
func (s *RouteSource) GetRoutes(
	ctx context.Context,
	origin, destination domain.Coordinates,
	maxAlternatives int,
) []domain.Route {
	for _, provider := range []ports.RouteProvider{s.primary, s.fallback} {
		if provider == nil {
			continue
		}
		if !provider.Available() {
			s.logger.Printf("routes: provider=%s skipped (not configured)", provider.Name())
			continue
		}

		routes, err := provider.GetDirections(ctx, origin, destination, maxAlternatives)
		if err != nil {
			s.logger.Printf("routes: provider=%s failed err=%v", provider.Name(), err)
			continue
		}
		if len(routes) == 0 {
			s.logger.Printf("routes: provider=%s returned no routes", provider.Name())
			continue
		}

		if len(routes) > maxAlternatives {
			routes = routes[:maxAlternatives]
		}

		for i := range routes {
			routes[i].Ordinal = i + 1
			if routes[i].Name == "" {
				routes[i].Name = fmt.Sprintf("Route %d", i+1)
			}
			routes[i].Provider = provider.Name()
		}

		s.logger.Printf("routes: provider=%s count=%d", provider.Name(), len(routes))
		return routes
	}

	s.logger.Printf("routes: all providers failed or returned nothing")
	return []domain.Route{}
}
