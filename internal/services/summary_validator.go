package services

import (
	"encoding/json"
	"log"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"route-resilience-service/internal/domain"
)

var (
	trailingCommaObj = regexp.MustCompile(`,\s*}`)
	trailingCommaArr = regexp.MustCompile(`,\s*]`)
)

// SummaryValidator turns untrusted summarizer output into strict
// SummaryRecords. The three-step parse ladder (strict parse, balanced-brace
// extraction, bounded textual repair) is the full contract: the attempt
// order must not change, and no further repairs are attempted.
type SummaryValidator struct {
	MaxCities int
	logger    *log.Logger
}

func NewSummaryValidator(logger *log.Logger) *SummaryValidator {
	if logger == nil {
		logger = log.Default()
	}
	return &SummaryValidator{MaxCities: 2, logger: logger}
}

// Validate parses raw summarizer text into per-route records plus a ranked
// route-name list. Unparseable input yields an empty map (summaries are a
// non-fatal supplement). A missing ranking is synthesized from the known
// results, sorted by overall score descending, stable on input order.
func (v *SummaryValidator) Validate(raw string, known []domain.ResilienceResult) (map[string]domain.SummaryRecord, []string) {
	parsed := v.parseLoose(raw)

	records := map[string]domain.SummaryRecord{}
	var ranked []string

	if parsed != nil {
		records = v.extractRecords(parsed)
		ranked = extractRanking(parsed)
	}

	if len(ranked) == 0 {
		ranked = synthesizeRanking(known)
	}

	return records, ranked
}

// parseLoose is the bounded repair ladder. It returns nil when every attempt
// fails.
func (v *SummaryValidator) parseLoose(raw string) map[string]any {
	// Attempt 1: the text is already strict JSON.
	var direct map[string]any
	if err := json.Unmarshal([]byte(raw), &direct); err == nil {
		return direct
	}

	// Attempt 2: extract the first balanced {...} block by brace depth.
	// Generators like to wrap JSON in code fences or prose.
	block, ok := firstBalancedBlock(raw)
	if !ok {
		v.logger.Printf("summary: no JSON object found in response")
		return nil
	}

	var fromBlock map[string]any
	if err := json.Unmarshal([]byte(block), &fromBlock); err == nil {
		return fromBlock
	}

	// Attempt 3: normalize quotes and strip trailing commas, then retry once.
	cleaned := strings.ReplaceAll(block, "'", `"`)
	cleaned = trailingCommaObj.ReplaceAllString(cleaned, "}")
	cleaned = trailingCommaArr.ReplaceAllString(cleaned, "]")

	var fromCleaned map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fromCleaned); err == nil {
		return fromCleaned
	}

	v.logger.Printf("summary: could not parse JSON even after cleaning")
	return nil
}

// firstBalancedBlock scans for the first top-level {...} block, tracking
// brace depth character by character.
func firstBalancedBlock(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// extractRecords accepts both generator shapes: a top-level
// {"routes": [...]} list and a direct {"Route 1": {...}} mapping.
func (v *SummaryValidator) extractRecords(parsed map[string]any) map[string]domain.SummaryRecord {
	out := map[string]domain.SummaryRecord{}

	if routes, ok := parsed["routes"].([]any); ok {
		for _, item := range routes {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name := stringField(obj, "route_name", "Unknown Route")
			out[name] = v.buildRecord(name, obj)
		}
		return out
	}

	for key, val := range parsed {
		obj, ok := val.(map[string]any)
		if !ok {
			continue
		}
		out[key] = v.buildRecord(key, obj)
	}

	return out
}

func (v *SummaryValidator) buildRecord(name string, obj map[string]any) domain.SummaryRecord {
	rec := domain.SummaryRecord{
		RouteName:          stringField(obj, "route_name", name),
		ShortSummary:       stringField(obj, "short_summary", "No summary available"),
		Reasoning:          stringField(obj, "reasoning", "No reasoning provided"),
		IntermediateCities: v.extractCities(obj["intermediate_cities"]),
		WeatherRiskScore:   clampScore(obj["weather_risk_score"]),
		RoadSafetyScore:    clampScore(obj["road_safety_score"]),
		SocialRiskScore:    clampScore(obj["social_risk_score"]),
		TrafficRiskScore:   clampScore(obj["traffic_risk_score"]),
	}
	return rec
}

// extractCities keeps only structured entries carrying both lat and lon,
// truncated to the configured cap.
func (v *SummaryValidator) extractCities(raw any) []domain.City {
	items, ok := raw.([]any)
	if !ok {
		return []domain.City{}
	}

	cities := make([]domain.City, 0, v.MaxCities)
	for _, item := range items {
		if len(cities) >= v.MaxCities {
			break
		}

		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		lat, latOK := numericField(obj["lat"])
		lon, lonOK := numericField(obj["lon"])
		if !latOK || !lonOK {
			continue
		}

		cities = append(cities, domain.City{
			Name: stringField(obj, "name", ""),
			Lat:  lat,
			Lon:  lon,
		})
	}

	return cities
}

func extractRanking(parsed map[string]any) []string {
	items, ok := parsed["ranked_routes"].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// synthesizeRanking sorts known routes by overall resilience score
// descending, stable on input order for exact ties.
func synthesizeRanking(known []domain.ResilienceResult) []string {
	idx := make([]int, len(known))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return known[idx[a]].Overall > known[idx[b]].Overall
	})

	out := make([]string, 0, len(known))
	for _, i := range idx {
		out = append(out, known[i].RouteName)
	}
	return out
}

// clampScore coerces any JSON value to an integer in [0,100]. Non-numeric
// values (including NaN) default to the neutral midpoint.
func clampScore(raw any) int {
	f, ok := numericField(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return domain.NeutralScore
	}

	n := int(math.Round(f))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func numericField(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringField(obj map[string]any, key, fallback string) string {
	if s, ok := obj[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
