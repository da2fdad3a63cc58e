package ports

import "context"

// Per-route context handed to the summarizer. Path samples are thinned
// geometry points that give the generator geographic grounding.
type SummaryRouteContext struct {
	ID              string      `json:"id"`
	TotalDistance   string      `json:"total_distance"`
	TotalTime       string      `json:"total_time"`
	Scores          SummaryRow  `json:"scores"`
	PathSample      [][]float64 `json:"path_sample"`
	TrafficStatus   string      `json:"traffic_status"`
	RestStopsNearby bool        `json:"rest_stops_nearby"`
}

type SummaryRow struct {
	OverallResilience float64 `json:"overall_resilience"`
	WeatherRisk       float64 `json:"weather_risk"`
	RoadSafety        float64 `json:"road_safety"`
	CarbonEfficiency  float64 `json:"carbon_efficiency"`
}

// Request-level context for the summarizer.
type SummaryOverallContext struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Contract for the free-text-generating external summarizer.
// The returned text carries no schema guarantee; it must pass through the
// summary validator before use.
type SummarizerService interface {
	Available() bool
	Generate(ctx context.Context, routes []SummaryRouteContext, overall SummaryOverallContext) (string, error)
}
