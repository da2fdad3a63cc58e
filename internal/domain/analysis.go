package domain

// Traffic status classifications derived from average speed and rainfall.
const (
	TrafficLow      = "low"
	TrafficModerate = "moderate"
	TrafficHeavy    = "heavy"
)

// The complete analysis record for one route. Each stage owns the fields it
// produces; downstream stages append, never rewrite.
type RouteAnalysis struct {
	Route        Route
	SegmentCount int
	Safety       SafetyReport
	CarbonKg     float64

	TrafficStatus   string
	RestStopsNearby bool

	Resilience ResilienceResult
	Summary    SummaryRecord
}

// The final output of a full analysis request.
type AnalysisResult struct {
	Routes             []RouteAnalysis
	BestRouteName      string
	ReasonForSelection string
	RankedRoutes       []string
}
