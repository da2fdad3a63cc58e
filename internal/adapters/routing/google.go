package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/twpayne/go-polyline"

	"route-resilience-service/internal/adapters/rest"
	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/ports"
)

const defaultGoogleBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

// GoogleProvider fetches driving routes from the Google Directions API.
// It is the primary route provider; an empty API key leaves it unconfigured.
type GoogleProvider struct {
	client  *rest.Client
	baseURL string
	apiKey  string
}

func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{
		client:  rest.NewClient("google", 15*time.Second, nil),
		baseURL: defaultGoogleBaseURL,
		apiKey:  apiKey,
	}
}

// WithBaseURL overrides the API endpoint, used in tests.
func (p *GoogleProvider) WithBaseURL(u string) *GoogleProvider {
	p.baseURL = u
	return p
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) Available() bool { return p.apiKey != "" }

type googleResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Routes       []googleRoute `json:"routes"`
}

type googleRoute struct {
	Summary          string      `json:"summary"`
	OverviewPolyline googleLine  `json:"overview_polyline"`
	Legs             []googleLeg `json:"legs"`
}

type googleLine struct {
	Points string `json:"points"`
}

type googleLeg struct {
	Distance googleValue  `json:"distance"`
	Duration googleValue  `json:"duration"`
	Steps    []googleStep `json:"steps"`
}

type googleValue struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

type googleStep struct {
	Distance        googleValue    `json:"distance"`
	Duration        googleValue    `json:"duration"`
	HTMLInstruction string         `json:"html_instructions"`
	StartLocation   googleLocation `json:"start_location"`
	EndLocation     googleLocation `json:"end_location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p *GoogleProvider) GetDirections(
	ctx context.Context,
	origin, destination domain.Coordinates,
	alternatives int,
) ([]domain.Route, error) {
	if !p.Available() {
		return nil, ports.ErrProviderUnavailable
	}

	q := url.Values{}
	q.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	q.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
	q.Set("mode", "driving")
	q.Set("alternatives", "true")
	q.Set("key", p.apiKey)
	reqURL := p.baseURL + "?" + q.Encode()

	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return p.client.NewRequest(ctx, http.MethodGet, reqURL, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("google directions: %w", err)
	}
	defer resp.Body.Close()

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("google directions: decode: %w", err)
	}

	// The API reports failures in-band with a 200 status.
	if body.Status != "OK" {
		if body.Status == "ZERO_RESULTS" {
			return nil, nil
		}
		return nil, fmt.Errorf("google directions: status=%s message=%q", body.Status, body.ErrorMessage)
	}

	routes := make([]domain.Route, 0, len(body.Routes))
	for _, gr := range body.Routes {
		route, err := gr.toDomain()
		if err != nil {
			continue
		}
		routes = append(routes, route)
		if len(routes) >= alternatives {
			break
		}
	}
	return routes, nil
}

func (gr googleRoute) toDomain() (domain.Route, error) {
	coords, _, err := polyline.DecodeCoords([]byte(gr.OverviewPolyline.Points))
	if err != nil {
		return domain.Route{}, fmt.Errorf("decode polyline: %w", err)
	}

	geometry := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		geometry = append(geometry, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}

	route := domain.Route{
		Name:     gr.Summary,
		Geometry: geometry,
	}

	for _, leg := range gr.Legs {
		route.DistanceMeters += leg.Distance.Value
		route.DurationSeconds += leg.Duration.Value
		if route.DistanceText == "" {
			route.DistanceText = leg.Distance.Text
			route.DurationText = leg.Duration.Text
		}
		for _, s := range leg.Steps {
			route.Steps = append(route.Steps, domain.Step{
				DistanceMeters:  s.Distance.Value,
				DurationSeconds: s.Duration.Value,
				Instruction:     s.HTMLInstruction,
				Start:           domain.Coordinates{Lat: s.StartLocation.Lat, Lon: s.StartLocation.Lng},
				End:             domain.Coordinates{Lat: s.EndLocation.Lat, Lon: s.EndLocation.Lng},
			})
		}
	}

	return route, nil
}
