package ports

import (
	"context"
	"errors"

	"route-resilience-service/internal/domain"
)

// ErrProviderUnavailable marks a collaborator that has no credentials or
// configuration. Callers treat it as never attempted and move on to a
// fallback or a documented default.
var ErrProviderUnavailable = errors.New("provider unavailable")

// Contract for retrieving candidate routes between two points.
// Two interchangeable implementations exist: a primary and a fallback.
type RouteProvider interface {
	Name() string
	// Available reports whether the provider is configured to be called.
	Available() bool
	// Return up to alternatives routes, best first. An empty result with a
	// nil error means the provider genuinely found no routes.
	GetDirections(ctx context.Context, origin, destination domain.Coordinates, alternatives int) ([]domain.Route, error)
}
