package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"route-resilience-service/internal/adapters/rest"
	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/ports"
)

const defaultORSBaseURL = "https://api.openrouteservice.org/v2/directions/driving-car/geojson"

// ORSProvider fetches driving routes from OpenRouteService. It is the
// fallback route provider. ORS speaks GeoJSON, so coordinates travel as
// [lon, lat] pairs on the wire and are flipped at the boundary.
type ORSProvider struct {
	client  *rest.Client
	baseURL string
	apiKey  string
}

func NewORSProvider(apiKey string) *ORSProvider {
	return &ORSProvider{
		client: rest.NewClient("ors", 20*time.Second, map[string]string{
			"Authorization": apiKey,
		}),
		baseURL: defaultORSBaseURL,
		apiKey:  apiKey,
	}
}

// WithBaseURL overrides the API endpoint, used in tests.
func (p *ORSProvider) WithBaseURL(u string) *ORSProvider {
	p.baseURL = u
	return p
}

func (p *ORSProvider) Name() string { return "ors" }

func (p *ORSProvider) Available() bool { return p.apiKey != "" }

type orsRequest struct {
	Coordinates       [][]float64           `json:"coordinates"`
	AlternativeRoutes *orsAlternativeRoutes `json:"alternative_routes,omitempty"`
}

type orsAlternativeRoutes struct {
	TargetCount int     `json:"target_count"`
	ShareFactor float64 `json:"share_factor"`
}

type orsResponse struct {
	Features []orsFeature `json:"features"`
}

type orsFeature struct {
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []orsSegment `json:"segments"`
	} `json:"properties"`
}

type orsSegment struct {
	Steps []orsStep `json:"steps"`
}

type orsStep struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Instruction string  `json:"instruction"`
	WayPoints   []int   `json:"way_points"`
}

func (p *ORSProvider) GetDirections(
	ctx context.Context,
	origin, destination domain.Coordinates,
	alternatives int,
) ([]domain.Route, error) {
	if !p.Available() {
		return nil, ports.ErrProviderUnavailable
	}

	payload := orsRequest{
		Coordinates: [][]float64{origin.LonLat(), destination.LonLat()},
	}
	if alternatives > 1 {
		payload.AlternativeRoutes = &orsAlternativeRoutes{
			TargetCount: alternatives,
			ShareFactor: 0.6,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ors directions: marshal: %w", err)
	}

	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return p.client.NewRequest(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	})
	if err != nil {
		return nil, fmt.Errorf("ors directions: %w", err)
	}
	defer resp.Body.Close()

	var parsed orsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ors directions: decode: %w", err)
	}

	routes := make([]domain.Route, 0, len(parsed.Features))
	for _, f := range parsed.Features {
		routes = append(routes, f.toDomain())
		if len(routes) >= alternatives {
			break
		}
	}
	return routes, nil
}

func (f orsFeature) toDomain() domain.Route {
	geometry := make([]domain.Coordinates, 0, len(f.Geometry.Coordinates))
	for _, pair := range f.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		geometry = append(geometry, domain.Coordinates{Lat: pair[1], Lon: pair[0]})
	}

	route := domain.Route{
		Geometry:        geometry,
		DistanceMeters:  f.Properties.Summary.Distance,
		DurationSeconds: f.Properties.Summary.Duration,
		DistanceText:    fmt.Sprintf("%.1f km", f.Properties.Summary.Distance/1000),
		DurationText:    fmt.Sprintf("%.0f mins", f.Properties.Summary.Duration/60),
	}

	for _, seg := range f.Properties.Segments {
		for _, s := range seg.Steps {
			step := domain.Step{
				DistanceMeters:  s.Distance,
				DurationSeconds: s.Duration,
				Instruction:     s.Instruction,
			}
			if len(s.WayPoints) == 2 {
				if a := s.WayPoints[0]; a >= 0 && a < len(geometry) {
					step.Start = geometry[a]
				}
				if b := s.WayPoints[1]; b >= 0 && b < len(geometry) {
					step.End = geometry[b]
				}
			}
			route.Steps = append(route.Steps, step)
		}
	}

	return route
}
