package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"route-resilience-service/internal/api/dto"
	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/services"
)

type AnalyzeHandler struct {
	Pipeline *services.Pipeline
}

// Analyze runs the full route scoring flow for one origin-destination pair.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AnalyzeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if !validLatLon(req.Origin) || !validLatLon(req.Destination) {
		writeError(w, r, http.StatusBadRequest, "origin and destination must carry valid lat/lon")
		return
	}
	if req.Origin == req.Destination {
		writeError(w, r, http.StatusBadRequest, "origin and destination must differ")
		return
	}

	maxAlternatives := req.MaxAlternatives
	if maxAlternatives == 0 {
		maxAlternatives = 3
	}
	if maxAlternatives < 1 || maxAlternatives > 5 {
		writeError(w, r, http.StatusBadRequest, "max_alternatives must be between 1 and 5")
		return
	}

	priorities, err := parsePriorities(req.Priorities)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Pipeline.Analyze(r.Context(), services.AnalyzeRequest{
		Origin:          domain.Coordinates{Lat: req.Origin.Lat, Lon: req.Origin.Lon},
		Destination:     domain.Coordinates{Lat: req.Destination.Lat, Lon: req.Destination.Lon},
		OriginName:      req.OriginName,
		DestinationName: req.DestinationName,
		Priorities:      priorities,
		MaxAlternatives: maxAlternatives,
	})
	if errors.Is(err, services.ErrNoRoutes) {
		writeJSON(w, r, http.StatusOK, dto.NoRoutesResponse{
			Error:            "no routes found between origin and destination",
			Routes:           []dto.RouteResponse{},
			ResilienceScores: nil,
		})
		return
	}
	if err != nil {
		log.Printf("analyze failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toAnalyzeResponse(result))
}

func validLatLon(c dto.CoordinatesDTO) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// parsePriorities validates caller weights against the scored dimensions.
// Unknown dimension names are rejected rather than silently dropped.
func parsePriorities(raw map[string]float64) (domain.Priorities, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	valid := map[domain.Dimension]bool{}
	for _, d := range domain.WeightedDimensions {
		valid[d] = true
	}

	out := domain.Priorities{}
	for name, weight := range raw {
		d := domain.Dimension(name)
		if !valid[d] {
			return nil, errors.New("unknown priority dimension: " + name)
		}
		if weight < 0 {
			return nil, errors.New("priority weights must be non-negative")
		}
		out[d] = weight
	}
	return out, nil
}

func toAnalyzeResponse(result *domain.AnalysisResult) dto.AnalyzeResponse {
	res := dto.AnalyzeResponse{
		Routes:             make([]dto.RouteResponse, 0, len(result.Routes)),
		BestRouteName:      result.BestRouteName,
		ReasonForSelection: result.ReasonForSelection,
		RankedRoutes:       result.RankedRoutes,
	}

	for _, a := range result.Routes {
		cities := make([]dto.CityResponse, 0, len(a.Summary.IntermediateCities))
		for _, c := range a.Summary.IntermediateCities {
			cities = append(cities, dto.CityResponse{Name: c.Name, Lat: c.Lat, Lon: c.Lon})
		}

		res.Routes = append(res.Routes, dto.RouteResponse{
			Name:            a.Route.Name,
			Provider:        a.Route.Provider,
			DistanceMeters:  a.Route.DistanceMeters,
			DurationSeconds: a.Route.DurationSeconds,
			DistanceText:    a.Route.DistanceText,
			DurationText:    a.Route.DurationText,
			SegmentCount:    a.SegmentCount,

			RoadSafetyScore: a.Safety.RoadSafetyScore,
			Weather: dto.WeatherResponse{
				AvgRainfallMM:  a.Safety.Weather.AvgRainfallMM,
				AvgWindspeed:   a.Safety.Weather.AvgWindspeed,
				AvgVisibilityM: a.Safety.Weather.AvgVisibilityM,
				AvgTemperature: a.Safety.Weather.AvgTemperature,
				AvgCloudcover:  a.Safety.Weather.AvgCloudcover,
				AvgRisk:        a.Safety.Weather.AvgRisk,
				VisibilityRisk: a.Safety.Weather.VisibilityRisk,
				RainRisk:       a.Safety.Weather.RainRisk,
				WindRisk:       a.Safety.Weather.WindRisk,
			},
			Road: dto.RoadResponse{
				RoadQualityScore:   a.Safety.Road.RoadQualityScore,
				TypeDistributionKM: a.Safety.Road.TypeDistributionKM,
				AvgWidthMeters:     a.Safety.Road.AvgWidthMeters,
			},

			CarbonKg:        a.CarbonKg,
			TrafficStatus:   a.TrafficStatus,
			RestStopsNearby: a.RestStopsNearby,

			OverallResilience:     a.Resilience.Overall,
			ComponentScores:       dimensionMap(a.Resilience.ComponentScores),
			WeightedContributions: dimensionMap(a.Resilience.WeightedContributions),

			Summary: dto.SummaryResponse{
				RouteName:          a.Summary.RouteName,
				ShortSummary:       a.Summary.ShortSummary,
				Reasoning:          a.Summary.Reasoning,
				IntermediateCities: cities,
				WeatherRiskScore:   a.Summary.WeatherRiskScore,
				RoadSafetyScore:    a.Summary.RoadSafetyScore,
				SocialRiskScore:    a.Summary.SocialRiskScore,
				TrafficRiskScore:   a.Summary.TrafficRiskScore,
			},
		})
	}

	return res
}

func dimensionMap(m map[domain.Dimension]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for d, v := range m {
		out[string(d)] = v
	}
	return out
}
