package dto

type CoordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type AnalyzeRequest struct {
	Origin          CoordinatesDTO     `json:"origin"`
	Destination     CoordinatesDTO     `json:"destination"`
	OriginName      string             `json:"origin_name"`
	DestinationName string             `json:"destination_name"`
	Priorities      map[string]float64 `json:"priorities"`
	MaxAlternatives int                `json:"max_alternatives"`
}

type CityResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type SummaryResponse struct {
	RouteName          string         `json:"route_name"`
	ShortSummary       string         `json:"short_summary"`
	Reasoning          string         `json:"reasoning"`
	IntermediateCities []CityResponse `json:"intermediate_cities"`
	WeatherRiskScore   int            `json:"weather_risk_score"`
	RoadSafetyScore    int            `json:"road_safety_score"`
	SocialRiskScore    int            `json:"social_risk_score"`
	TrafficRiskScore   int            `json:"traffic_risk_score"`
}

type WeatherResponse struct {
	AvgRainfallMM  float64 `json:"avg_rainfall_mm"`
	AvgWindspeed   float64 `json:"avg_windspeed"`
	AvgVisibilityM float64 `json:"avg_visibility_m"`
	AvgTemperature float64 `json:"avg_temperature"`
	AvgCloudcover  int     `json:"avg_cloudcover"`
	AvgRisk        float64 `json:"avg_risk"`
	VisibilityRisk float64 `json:"visibility_risk"`
	RainRisk       float64 `json:"rain_risk"`
	WindRisk       float64 `json:"wind_risk"`
}

type RoadResponse struct {
	RoadQualityScore   float64            `json:"road_quality_score"`
	TypeDistributionKM map[string]float64 `json:"type_distribution_km"`
	AvgWidthMeters     float64            `json:"avg_width_meters"`
}

type RouteResponse struct {
	Name            string  `json:"name"`
	Provider        string  `json:"provider"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	DistanceText    string  `json:"distance_text"`
	DurationText    string  `json:"duration_text"`
	SegmentCount    int     `json:"segment_count"`

	RoadSafetyScore float64         `json:"road_safety_score"`
	Weather         WeatherResponse `json:"weather"`
	Road            RoadResponse    `json:"road"`

	CarbonKg        float64 `json:"carbon_kg"`
	TrafficStatus   string  `json:"traffic_status"`
	RestStopsNearby bool    `json:"rest_stops_nearby"`

	OverallResilience     float64            `json:"overall_resilience"`
	ComponentScores       map[string]float64 `json:"component_scores"`
	WeightedContributions map[string]float64 `json:"weighted_contributions"`

	Summary SummaryResponse `json:"summary"`
}

type AnalyzeResponse struct {
	Routes             []RouteResponse `json:"routes"`
	BestRouteName      string          `json:"best_route_name"`
	ReasonForSelection string          `json:"reason_for_selection"`
	RankedRoutes       []string        `json:"ranked_routes"`
}

// NoRoutesResponse is the terminal shape for the no-routes condition:
// an explicit error with empty routes and null scores.
type NoRoutesResponse struct {
	Error            string          `json:"error"`
	Routes           []RouteResponse `json:"routes"`
	ResilienceScores any             `json:"resilience_scores"`
}
