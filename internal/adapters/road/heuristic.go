package road

import "strings"

// Base quality per OSM highway classification, 0-100 scale.
var qualityByType = map[string]float64{
	"motorway":     90,
	"trunk":        85,
	"primary":      80,
	"secondary":    70,
	"tertiary":     60,
	"residential":  50,
	"service":      40,
	"unclassified": 45,
	"unknown":      50,
}

// Typical carriageway width in meters per classification.
var widthByType = map[string]float64{
	"motorway":     12.0,
	"trunk":        10.0,
	"primary":      9.0,
	"secondary":    7.5,
	"tertiary":     6.5,
	"residential":  5.5,
	"service":      4.0,
	"unclassified": 5.0,
	"unknown":      5.0,
}

// normalizeType folds OSM link roads onto their base class and maps anything
// unrecognized to "unknown".
func normalizeType(highway string) string {
	t := strings.TrimSuffix(strings.ToLower(highway), "_link")
	if _, ok := qualityByType[t]; !ok {
		return "unknown"
	}
	return t
}

func qualityFor(roadType string) float64 { return qualityByType[normalizeType(roadType)] }

func widthFor(roadType string) float64 { return widthByType[normalizeType(roadType)] }
