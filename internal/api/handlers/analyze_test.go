package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"route-resilience-service/internal/api/dto"
	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/services"
)

type fakeRouteProvider struct {
	routes []domain.Route
}

func (f *fakeRouteProvider) Name() string    { return "fake" }
func (f *fakeRouteProvider) Available() bool { return true }

func (f *fakeRouteProvider) GetDirections(ctx context.Context, o, d domain.Coordinates, alternatives int) ([]domain.Route, error) {
	return f.routes, nil
}

type fakeRoadProvider struct{}

func (fakeRoadProvider) Sample(ctx context.Context, p domain.Coordinates, length float64) (domain.RoadSample, error) {
	return domain.RoadSample{RoadType: "primary", BaseQuality: 80, WidthMeters: 9}, nil
}

type fakeWeatherProvider struct{}

func (fakeWeatherProvider) Sample(ctx context.Context, lat, lon float64) (domain.WeatherSample, error) {
	return domain.WeatherSample{VisibilityM: 10000, Temperature: 25}, nil
}

func testRoute(points int) domain.Route {
	geo := make([]domain.Coordinates, points)
	for i := range geo {
		geo[i] = domain.Coordinates{Lat: 28.0 + 0.01*float64(i), Lon: 77.0}
	}
	r := domain.Route{Geometry: geo, DurationSeconds: 1200}
	r.DistanceMeters = r.TotalPathMeters()
	return r
}

func testHandler(routes []domain.Route) *AnalyzeHandler {
	pipeline := services.NewPipeline(services.PipelineConfig{
		Source:              services.NewRouteSource(&fakeRouteProvider{routes: routes}, nil, nil),
		Scorer:              services.NewSafetyScorer(fakeRoadProvider{}, fakeWeatherProvider{}, nil),
		Carbon:              services.NewCarbonAnalyzer("diesel_truck"),
		MaxSegmentLenMeters: 5000,
		MinSegmentLenMeters: 500,
	})
	return &AnalyzeHandler{Pipeline: pipeline}
}

func doAnalyze(t *testing.T, h *AnalyzeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)
	return rec
}

const validBody = `{
	"origin": {"lat": 28.61, "lon": 77.21},
	"destination": {"lat": 28.75, "lon": 77.21}
}`

func TestAnalyzeReturnsScoredRoutes(t *testing.T) {
	h := testHandler([]domain.Route{testRoute(12), testRoute(15)})
	rec := doAnalyze(t, h, validBody)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Routes, 2)
	require.NotEmpty(t, res.BestRouteName)
	require.Len(t, res.RankedRoutes, 2)
	require.Equal(t, "Route 1", res.Routes[0].Name)
	require.Equal(t, domain.PendingSummary, res.Routes[0].Summary.ShortSummary)
	require.Greater(t, res.Routes[0].OverallResilience, 0.0)
}

func TestAnalyzeNoRoutesShape(t *testing.T) {
	h := testHandler(nil)
	rec := doAnalyze(t, h, validBody)

	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.JSONEq(t, `[]`, string(res["routes"]))
	require.JSONEq(t, `null`, string(res["resilience_scores"]))
	require.Contains(t, string(res["error"]), "no routes")
}

func TestAnalyzeRejectsBadJSON(t *testing.T) {
	h := testHandler(nil)
	rec := doAnalyze(t, h, `{"origin": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeRejectsIdenticalEndpoints(t *testing.T) {
	h := testHandler(nil)
	rec := doAnalyze(t, h, `{
		"origin": {"lat": 28.61, "lon": 77.21},
		"destination": {"lat": 28.61, "lon": 77.21}
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeRejectsUnknownPriorityDimension(t *testing.T) {
	h := testHandler(nil)
	rec := doAnalyze(t, h, `{
		"origin": {"lat": 28.61, "lon": 77.21},
		"destination": {"lat": 28.75, "lon": 77.21},
		"priorities": {"speediness": 1.0}
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Contains(t, res["error"], "speediness")
}

func TestAnalyzeRejectsOutOfRangeCoordinates(t *testing.T) {
	h := testHandler(nil)
	rec := doAnalyze(t, h, `{
		"origin": {"lat": 128.61, "lon": 77.21},
		"destination": {"lat": 28.75, "lon": 77.21}
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeMethodNotAllowed(t *testing.T) {
	h := testHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
