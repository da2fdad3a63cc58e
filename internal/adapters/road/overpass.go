package road

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"route-resilience-service/internal/adapters/rest"
	"route-resilience-service/internal/domain"
)

const defaultOverpassBaseURL = "https://overpass-api.de/api/interpreter"

// OverpassProvider classifies the road at a point by querying OpenStreetMap
// through the Overpass API: the nearest tagged highway way within a small
// radius decides the segment's type, quality and width.
type OverpassProvider struct {
	client  *rest.Client
	baseURL string
}

func NewOverpassProvider() *OverpassProvider {
	return &OverpassProvider{
		client:  rest.NewClient("overpass", 15*time.Second, nil),
		baseURL: defaultOverpassBaseURL,
	}
}

// WithBaseURL overrides the API endpoint, used in tests.
func (p *OverpassProvider) WithBaseURL(u string) *OverpassProvider {
	p.baseURL = u
	return p
}

type overpassResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Sample queries the highway classification around a point. The search
// radius scales with segment length so long segments tolerate sparse
// mapping; it is clamped to [50, 500] meters.
func (p *OverpassProvider) Sample(ctx context.Context, point domain.Coordinates, lengthMeters float64) (domain.RoadSample, error) {
	radius := lengthMeters / 10
	if radius < 50 {
		radius = 50
	}
	if radius > 500 {
		radius = 500
	}

	query := fmt.Sprintf(
		`[out:json][timeout:10];way(around:%.0f,%.5f,%.5f)["highway"];out tags 1;`,
		radius, point.Lat, point.Lon,
	)
	form := url.Values{"data": {query}}

	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.client.NewRequest(ctx, http.MethodPost, p.baseURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return domain.RoadSample{}, fmt.Errorf("overpass: %w", err)
	}
	defer resp.Body.Close()

	var body overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RoadSample{}, fmt.Errorf("overpass: decode: %w", err)
	}

	if len(body.Elements) == 0 {
		return domain.DefaultRoadSample(), nil
	}

	tags := body.Elements[0].Tags
	roadType := normalizeType(tags["highway"])

	sample := domain.RoadSample{
		RoadType:    roadType,
		BaseQuality: qualityFor(roadType),
		WidthMeters: widthFor(roadType),
	}

	// A mapped width tag beats the class heuristic.
	if w, err := strconv.ParseFloat(tags["width"], 64); err == nil && w > 0 {
		sample.WidthMeters = w
	}

	return sample, nil
}
