package domain

// Narrative fallbacks used when the summarizer produced no record for a route.
const (
	PendingSummary   = "Analysis pending..."
	PendingReasoning = "Detailed analysis not available."
)

// NeutralScore is the midpoint default for display risk scores that the
// summarizer omitted or mangled.
const NeutralScore = 50

// An intermediate city along a route, as reported by the summarizer.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Validated per-route narrative metadata. All risk scores are integers
// clamped to [0,100]; they are display supplements and never feed back into
// the numeric resilience ranking.
type SummaryRecord struct {
	RouteName          string `json:"route_name"`
	ShortSummary       string `json:"short_summary"`
	Reasoning          string `json:"reasoning"`
	IntermediateCities []City `json:"intermediate_cities"`

	WeatherRiskScore int `json:"weather_risk_score"`
	RoadSafetyScore  int `json:"road_safety_score"`
	SocialRiskScore  int `json:"social_risk_score"`
	TrafficRiskScore int `json:"traffic_risk_score"`
}

// PendingSummaryRecord builds the documented fallback record for a route the
// summarizer did not cover.
func PendingSummaryRecord(routeName string) SummaryRecord {
	return SummaryRecord{
		RouteName:          routeName,
		ShortSummary:       PendingSummary,
		Reasoning:          PendingReasoning,
		IntermediateCities: []City{},
		WeatherRiskScore:   NeutralScore,
		RoadSafetyScore:    NeutralScore,
		SocialRiskScore:    NeutralScore,
		TrafficRiskScore:   NeutralScore,
	}
}
