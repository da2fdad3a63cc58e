package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"route-resilience-service/internal/adapters/rest"
	"route-resilience-service/internal/domain"
)

const defaultOpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoProvider fetches current conditions from the Open-Meteo forecast
// API. Open-Meteo needs no API key, so the provider is always configured.
type OpenMeteoProvider struct {
	client  *rest.Client
	baseURL string
}

func NewOpenMeteoProvider() *OpenMeteoProvider {
	return &OpenMeteoProvider{
		client:  rest.NewClient("open-meteo", 10*time.Second, nil),
		baseURL: defaultOpenMeteoBaseURL,
	}
}

// WithBaseURL overrides the API endpoint, used in tests.
func (p *OpenMeteoProvider) WithBaseURL(u string) *OpenMeteoProvider {
	p.baseURL = u
	return p
}

type openMeteoResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Cloudcover    float64 `json:"cloudcover"`
		Precipitation float64 `json:"precipitation"`
		Windspeed     float64 `json:"windspeed_10m"`
	} `json:"current"`
}

// Sample fetches current weather at a point. Open-Meteo has no visibility
// field on the free tier; visibility is estimated from wind and rain with a
// 100 m floor.
func (p *OpenMeteoProvider) Sample(ctx context.Context, lat, lon float64) (domain.WeatherSample, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current", "temperature_2m,cloudcover,precipitation,windspeed_10m")
	reqURL := p.baseURL + "?" + q.Encode()

	resp, err := p.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return p.client.NewRequest(ctx, http.MethodGet, reqURL, nil)
	})
	if err != nil {
		return domain.WeatherSample{}, fmt.Errorf("open-meteo: %w", err)
	}
	defer resp.Body.Close()

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.WeatherSample{}, fmt.Errorf("open-meteo: decode: %w", err)
	}

	visibility := domain.VisibilityBaseline - body.Current.Windspeed*100 - body.Current.Precipitation*50
	if visibility < 100 {
		visibility = 100
	}

	return domain.WeatherSample{
		RainfallMM:  body.Current.Precipitation,
		Windspeed:   body.Current.Windspeed,
		VisibilityM: visibility,
		Temperature: body.Current.Temperature,
		Cloudcover:  int(body.Current.Cloudcover),
	}, nil
}
