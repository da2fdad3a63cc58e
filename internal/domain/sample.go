package domain

// Per-segment road classification produced by a road-quality provider.
// BaseQuality is on a 0-100 scale, higher is better.
type RoadSample struct {
	RoadType    string
	BaseQuality float64
	WidthMeters float64
}

// DefaultRoadSample is returned when the road-quality provider fails or is
// not configured.
func DefaultRoadSample() RoadSample {
	return RoadSample{RoadType: "unknown", BaseQuality: 50, WidthMeters: 5.0}
}

// Risk thresholds for deriving weather sub-risks.
const (
	RainCriticalMM     = 50.0
	WindCriticalMS     = 25.0
	VisibilityBaseline = 10000.0
)

// Point-in-time weather snapshot plus derived risk scores, all in [0,1].
type WeatherSample struct {
	RainfallMM  float64
	Windspeed   float64
	VisibilityM float64
	Temperature float64
	Cloudcover  int

	RiskScore      float64
	VisibilityRisk float64
	RainRisk       float64
	WindRisk       float64
}

// WithRisks derives the three sub-risks and the combined risk score from the
// raw observation fields and returns the completed sample.
func (w WeatherSample) WithRisks() WeatherSample {
	visRisk := 1.0 - w.VisibilityM/VisibilityBaseline
	visRisk = clamp01(visRisk)

	rainRisk := clamp01(w.RainfallMM / RainCriticalMM)
	windRisk := clamp01(w.Windspeed / WindCriticalMS)

	w.VisibilityRisk = visRisk
	w.RainRisk = rainRisk
	w.WindRisk = windRisk
	w.RiskScore = (visRisk + rainRisk + windRisk) / 3
	return w
}

// DefaultWeatherSample is the benign snapshot used when the weather provider
// fails: clear, dry, full visibility.
func DefaultWeatherSample() WeatherSample {
	return WeatherSample{
		RainfallMM:  0,
		Windspeed:   0,
		VisibilityM: VisibilityBaseline,
		Temperature: 20,
		Cloudcover:  0,
	}.WithRisks()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
