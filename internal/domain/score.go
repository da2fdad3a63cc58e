package domain

// A scoring dimension. Component scores are normalized to [0,1] per route,
// where higher is always better or safer.
type Dimension string

const (
	DimensionTime           Dimension = "time"
	DimensionDistance       Dimension = "distance"
	DimensionCarbonEmission Dimension = "carbon_emission"
	DimensionRoadQuality    Dimension = "road_quality"
	DimensionRoadSafety     Dimension = "road_safety"
)

// WeightedDimensions lists the dimensions that participate in the overall
// resilience score, in presentation order.
var WeightedDimensions = []Dimension{
	DimensionTime,
	DimensionDistance,
	DimensionCarbonEmission,
	DimensionRoadQuality,
}

// Caller-supplied priority weights per dimension. Weights need not sum to 1;
// the overall score is left un-normalized by design.
type Priorities map[Dimension]float64

// DefaultPriorities weights the four scored dimensions equally.
func DefaultPriorities() Priorities {
	return Priorities{
		DimensionTime:           0.25,
		DimensionDistance:       0.25,
		DimensionCarbonEmission: 0.25,
		DimensionRoadQuality:    0.25,
	}
}

// Per-route aggregate produced by the resilience aggregator.
type ResilienceResult struct {
	RouteName             string
	Overall               float64
	ComponentScores       map[Dimension]float64
	WeightedContributions map[Dimension]float64
}

// Mean weather conditions and risks across the sampled points of a route.
type WeatherAnalysis struct {
	Samples        []WeatherSample
	AvgRainfallMM  float64
	AvgWindspeed   float64
	AvgVisibilityM float64
	AvgTemperature float64
	AvgCloudcover  int
	AvgRisk        float64
	VisibilityRisk float64
	RainRisk       float64
	WindRisk       float64
}

// DefaultWeatherAnalysis carries domain-neutral aggregates for routes with
// no weather samples.
func DefaultWeatherAnalysis() WeatherAnalysis {
	return WeatherAnalysis{
		AvgVisibilityM: VisibilityBaseline,
		AvgTemperature: 20,
		AvgCloudcover:  30,
	}
}

// Road-side aggregates for a route. TypeDistributionKM accumulates total
// length in kilometers per road type string, for reporting only.
type RoadAnalysis struct {
	RoadQualityScore   float64
	TypeDistributionKM map[string]float64
	AvgWidthMeters     float64
}

// Output of the safety scorer for one route.
type SafetyReport struct {
	RoadSafetyScore float64
	Weather         WeatherAnalysis
	Road            RoadAnalysis
}

// DefaultSafetyReport is returned for routes with zero segments.
func DefaultSafetyReport() SafetyReport {
	return SafetyReport{
		RoadSafetyScore: 0.5,
		Weather:         DefaultWeatherAnalysis(),
		Road: RoadAnalysis{
			RoadQualityScore:   0.5,
			TypeDistributionKM: map[string]float64{},
		},
	}
}
