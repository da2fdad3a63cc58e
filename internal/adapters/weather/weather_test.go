package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"route-resilience-service/internal/domain"
)

func TestOpenMeteoParsesCurrentConditions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "temperature_2m,cloudcover,precipitation,windspeed_10m", r.URL.Query().Get("current"))
		require.Equal(t, "28.6100", r.URL.Query().Get("latitude"))

		fmt.Fprint(w, `{
			"current": {
				"temperature_2m": 31.5,
				"cloudcover": 75,
				"precipitation": 12.0,
				"windspeed_10m": 18.0
			}
		}`)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider().WithBaseURL(srv.URL)
	sample, err := p.Sample(context.Background(), 28.61, 77.21)
	require.NoError(t, err)

	require.InDelta(t, 12.0, sample.RainfallMM, 1e-9)
	require.InDelta(t, 18.0, sample.Windspeed, 1e-9)
	require.InDelta(t, 31.5, sample.Temperature, 1e-9)
	require.Equal(t, 75, sample.Cloudcover)
	// 10000 - 18*100 - 12*50 = 7600
	require.InDelta(t, 7600, sample.VisibilityM, 1e-9)
}

func TestOpenMeteoVisibilityFloor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current": {"precipitation": 200, "windspeed_10m": 90}}`)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider().WithBaseURL(srv.URL)
	sample, err := p.Sample(context.Background(), 0, 0)
	require.NoError(t, err)
	require.InDelta(t, 100, sample.VisibilityM, 1e-9)
}

type mapWeatherStore struct {
	entries map[string]domain.WeatherSample
	getErr  error
	puts    int
}

func (m *mapWeatherStore) Get(ctx context.Context, key string) (domain.WeatherSample, bool, error) {
	if m.getErr != nil {
		return domain.WeatherSample{}, false, m.getErr
	}
	s, ok := m.entries[key]
	return s, ok, nil
}

func (m *mapWeatherStore) Put(ctx context.Context, key string, sample domain.WeatherSample) error {
	m.puts++
	m.entries[key] = sample
	return nil
}

type countingWeatherProvider struct {
	sample domain.WeatherSample
	calls  int
}

func (c *countingWeatherProvider) Sample(ctx context.Context, lat, lon float64) (domain.WeatherSample, error) {
	c.calls++
	return c.sample, nil
}

func TestCachedProviderHitSkipsInner(t *testing.T) {
	inner := &countingWeatherProvider{sample: domain.WeatherSample{RainfallMM: 3}}
	store := &mapWeatherStore{entries: map[string]domain.WeatherSample{}}
	p := NewCachedProvider(inner, store, nil)

	first, err := p.Sample(context.Background(), 28.614, 77.212)
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)
	require.Equal(t, 1, store.puts)

	// Nearby point lands in the same grid cell.
	second, err := p.Sample(context.Background(), 28.6142, 77.2121)
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)
	require.Equal(t, first, second)
}

func TestCachedProviderStoreErrorIsAMiss(t *testing.T) {
	inner := &countingWeatherProvider{sample: domain.WeatherSample{Windspeed: 7}}
	store := &mapWeatherStore{entries: map[string]domain.WeatherSample{}, getErr: errors.New("redis down")}
	p := NewCachedProvider(inner, store, nil)

	sample, err := p.Sample(context.Background(), 28.61, 77.21)
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)
	require.InDelta(t, 7, sample.Windspeed, 1e-9)
}
